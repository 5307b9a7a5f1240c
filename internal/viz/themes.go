package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the colour scheme of the live view.
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Accent    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Wire      lipgloss.Color
	Marker    lipgloss.Color
	GaugeFrom string
	GaugeTo   string
}

var (
	ThemeClassic = Theme{
		Name:      "classic",
		Primary:   lipgloss.Color("#00ffff"),
		Accent:    lipgloss.Color("#ffff00"), // charges were drawn yellow
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#666666"),
		Wire:      lipgloss.Color("#cccccc"),
		Marker:    lipgloss.Color("#ffff00"),
		GaugeFrom: "#ff0000",
		GaugeTo:   "#00ff00",
	}

	ThemeRetroGreen = Theme{
		Name:      "retro",
		Primary:   lipgloss.Color("#00ff00"),
		Accent:    lipgloss.Color("#88ff88"),
		Text:      lipgloss.Color("#00ff00"),
		Muted:     lipgloss.Color("#005500"),
		Wire:      lipgloss.Color("#00cc00"),
		Marker:    lipgloss.Color("#88ff88"),
		GaugeFrom: "#005500",
		GaugeTo:   "#88ff88",
	}

	ThemeMinimal = Theme{
		Name:      "minimal",
		Primary:   lipgloss.Color("#ffffff"),
		Accent:    lipgloss.Color("#0088ff"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#888888"),
		Wire:      lipgloss.Color("#ffffff"),
		Marker:    lipgloss.Color("#0088ff"),
		GaugeFrom: "#444444",
		GaugeTo:   "#ffffff",
	}

	ThemeOcean = Theme{
		Name:      "ocean",
		Primary:   lipgloss.Color("#0077be"),
		Accent:    lipgloss.Color("#ffd700"),
		Text:      lipgloss.Color("#e0f0ff"),
		Muted:     lipgloss.Color("#4488aa"),
		Wire:      lipgloss.Color("#00a8cc"),
		Marker:    lipgloss.Color("#ffd700"),
		GaugeFrom: "#0077be",
		GaugeTo:   "#00ff88",
	}

	Themes = []Theme{
		ThemeClassic,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeOcean,
	}
)

// GetTheme returns a theme by name, falling back to classic.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeClassic
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

func themeIndex(name string) int {
	for i, t := range Themes {
		if t.Name == name {
			return i
		}
	}
	return 0
}
