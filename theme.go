package purfectclock

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

// DefaultThemeName is used whenever a requested theme is unknown.
const DefaultThemeName = "default"

// Theme is a named palette for the six clock-face elements.
type Theme struct {
	Name       string
	Background Color
	Bezel      Color
	Ticks      Color
	Hour       Color
	Minute     Color
	Second     Color
}

// themeSpec is the on-disk form of a theme in themes.yaml
type themeSpec struct {
	Background string `yaml:"background"`
	Bezel      string `yaml:"bezel"`
	Ticks      string `yaml:"ticks"`
	Hour       string `yaml:"hour"`
	Minute     string `yaml:"minute"`
	Second     string `yaml:"second"`
}

//go:embed themes.yaml
var themesYAML []byte

var (
	themesOnce sync.Once
	themes     map[string]Theme
)

func loadedThemes() map[string]Theme {
	themesOnce.Do(func() {
		t, err := parseThemes(themesYAML)
		if err != nil {
			panic(fmt.Sprintf("purfectclock: embedded themes.yaml: %v", err))
		}
		themes = t
	})
	return themes
}

// parseThemes decodes a theme table. Every theme must set all six colors.
func parseThemes(data []byte) (map[string]Theme, error) {
	var specs map[string]themeSpec
	if err := yaml.Unmarshal(data, &specs); err != nil {
		return nil, fmt.Errorf("failed to parse themes: %w", err)
	}
	if _, ok := specs[DefaultThemeName]; !ok {
		return nil, fmt.Errorf("theme %q is missing", DefaultThemeName)
	}

	out := make(map[string]Theme, len(specs))
	for name, spec := range specs {
		th := Theme{Name: name}
		fields := []struct {
			key string
			val string
			dst *Color
		}{
			{"background", spec.Background, &th.Background},
			{"bezel", spec.Bezel, &th.Bezel},
			{"ticks", spec.Ticks, &th.Ticks},
			{"hour", spec.Hour, &th.Hour},
			{"minute", spec.Minute, &th.Minute},
			{"second", spec.Second, &th.Second},
		}
		for _, f := range fields {
			c, ok := ParseColor(f.val)
			if !ok {
				return nil, fmt.Errorf("theme %q: invalid %s color %q", name, f.key, f.val)
			}
			*f.dst = c
		}
		out[name] = th
	}
	return out, nil
}

// LookupTheme returns the named theme, or the default theme when the name is
// empty or unknown. The second result reports whether the name matched.
func LookupTheme(name string) (Theme, bool) {
	all := loadedThemes()
	if th, ok := all[name]; ok {
		return th, true
	}
	return all[DefaultThemeName], false
}

// DefaultTheme returns the built-in default palette.
func DefaultTheme() Theme {
	th, _ := LookupTheme(DefaultThemeName)
	return th
}

// ThemeNames lists the available themes in sorted order.
func ThemeNames() []string {
	all := loadedThemes()
	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
