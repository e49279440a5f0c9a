package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the diagram palette.
type Theme struct {
	Name   string
	Lower  lipgloss.Color
	Upper  lipgloss.Color
	Tie    lipgloss.Color
	Guide  lipgloss.Color
	Point  lipgloss.Color
	Active lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Accent lipgloss.Color
}

var (
	ThemeOcean = Theme{
		Name:   "ocean",
		Lower:  lipgloss.Color("#00a8cc"),
		Upper:  lipgloss.Color("#ff6b6b"),
		Tie:    lipgloss.Color("#e0f0ff"),
		Guide:  lipgloss.Color("#4488aa"),
		Point:  lipgloss.Color("#ffd700"),
		Active: lipgloss.Color("#ffcc00"),
		Text:   lipgloss.Color("#e0f0ff"),
		Muted:  lipgloss.Color("#4488aa"),
		Accent: lipgloss.Color("#00ff88"),
	}

	ThemeCyberpunk = Theme{
		Name:   "cyberpunk",
		Lower:  lipgloss.Color("#00ffff"),
		Upper:  lipgloss.Color("#ff00ff"),
		Tie:    lipgloss.Color("#ffffff"),
		Guide:  lipgloss.Color("#666666"),
		Point:  lipgloss.Color("#ffff00"),
		Active: lipgloss.Color("#ff8800"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#666666"),
		Accent: lipgloss.Color("#00ff00"),
	}

	ThemeRetroGreen = Theme{
		Name:   "retro",
		Lower:  lipgloss.Color("#00cc00"),
		Upper:  lipgloss.Color("#88ff88"),
		Tie:    lipgloss.Color("#00ff00"),
		Guide:  lipgloss.Color("#005500"),
		Point:  lipgloss.Color("#ffff00"),
		Active: lipgloss.Color("#ffffff"),
		Text:   lipgloss.Color("#00ff00"),
		Muted:  lipgloss.Color("#005500"),
		Accent: lipgloss.Color("#88ff88"),
	}

	ThemeMinimal = Theme{
		Name:   "minimal",
		Lower:  lipgloss.Color("#cccccc"),
		Upper:  lipgloss.Color("#ffffff"),
		Tie:    lipgloss.Color("#888888"),
		Guide:  lipgloss.Color("#555555"),
		Point:  lipgloss.Color("#0088ff"),
		Active: lipgloss.Color("#00aaff"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#888888"),
		Accent: lipgloss.Color("#0088ff"),
	}

	ThemeSunset = Theme{
		Name:   "sunset",
		Lower:  lipgloss.Color("#feca57"),
		Upper:  lipgloss.Color("#ff6b6b"),
		Tie:    lipgloss.Color("#fff5f5"),
		Guide:  lipgloss.Color("#8b6b8c"),
		Point:  lipgloss.Color("#ff9ff3"),
		Active: lipgloss.Color("#ffc048"),
		Text:   lipgloss.Color("#fff5f5"),
		Muted:  lipgloss.Color("#8b6b8c"),
		Accent: lipgloss.Color("#5fd068"),
	}

	Themes = []Theme{
		ThemeOcean,
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to ocean.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeOcean
}

// NextTheme returns the theme after t in Themes.
func NextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// layerStyles are the canvas layer styles, bottom to top.
func (t Theme) layerStyles(active bool) []lipgloss.Style {
	point := t.Point
	if active {
		point = t.Active
	}
	return []lipgloss.Style{
		lipgloss.NewStyle().Foreground(t.Guide),
		lipgloss.NewStyle().Foreground(t.Lower),
		lipgloss.NewStyle().Foreground(t.Upper),
		lipgloss.NewStyle().Foreground(t.Tie),
		lipgloss.NewStyle().Foreground(point).Bold(true),
	}
}
