package purfectclock

// Point is a position in viewport coordinates.
type Point struct {
	X, Y float64
}

// Painter is the drawing surface a DisplayList is replayed onto.
type Painter interface {
	SetBounds(x, y [2]float64)
	SetBackground(c Color)
	DrawCircle(center Point, radius float64, c Color)
	DrawLine(from, to Point, c Color)
	DrawText(at Point, text string, c Color)
}

// Command is one recorded drawing operation. Commands are comparable values,
// so two frames can be checked for equality directly.
type Command interface {
	execute(p Painter)
}

// SetBounds fixes the coordinate space for the commands that follow.
type SetBounds struct {
	X, Y [2]float64
}

// SetBackground fills every cell with a background color.
type SetBackground struct {
	Color Color
}

// Circle draws an outline.
type Circle struct {
	Center Point
	Radius float64
	Color  Color
}

// Line draws a straight segment.
type Line struct {
	From, To Point
	Color    Color
}

// Text places a string with its first character at a point.
type Text struct {
	At    Point
	Text  string
	Color Color
}

func (c SetBounds) execute(p Painter)     { p.SetBounds(c.X, c.Y) }
func (c SetBackground) execute(p Painter) { p.SetBackground(c.Color) }
func (c Circle) execute(p Painter)        { p.DrawCircle(c.Center, c.Radius, c.Color) }
func (c Line) execute(p Painter)          { p.DrawLine(c.From, c.To, c.Color) }
func (c Text) execute(p Painter)          { p.DrawText(c.At, c.Text, c.Color) }

// DisplayList is an immutable list of drawing operations.
// It can be replayed onto any Painter.
type DisplayList struct {
	cmds []Command
}

// Paint replays the recorded operations onto the provided painter.
func (d *DisplayList) Paint(p Painter) {
	for _, cmd := range d.cmds {
		cmd.execute(p)
	}
}

// Commands returns a copy of the recorded operations.
func (d *DisplayList) Commands() []Command {
	out := make([]Command, len(d.cmds))
	copy(out, d.cmds)
	return out
}

// Len returns the number of recorded operations.
func (d *DisplayList) Len() int {
	return len(d.cmds)
}

// Recorder collects commands into a DisplayList. It implements Painter.
type Recorder struct {
	cmds []Command
}

func (r *Recorder) append(cmd Command) {
	r.cmds = append(r.cmds, cmd)
}

func (r *Recorder) SetBounds(x, y [2]float64) { r.append(SetBounds{X: x, Y: y}) }
func (r *Recorder) SetBackground(c Color)     { r.append(SetBackground{Color: c}) }

func (r *Recorder) DrawCircle(center Point, radius float64, c Color) {
	r.append(Circle{Center: center, Radius: radius, Color: c})
}

func (r *Recorder) DrawLine(from, to Point, c Color) {
	r.append(Line{From: from, To: to, Color: c})
}

func (r *Recorder) DrawText(at Point, text string, c Color) {
	r.append(Text{At: at, Text: text, Color: c})
}

// Finish returns the recorded list and resets the recorder.
func (r *Recorder) Finish() *DisplayList {
	list := &DisplayList{cmds: r.cmds}
	r.cmds = nil
	return list
}
