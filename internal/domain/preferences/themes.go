package preferences

// Theme represents a UI theme
type Theme struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Type        string            `json:"type"` // "dark" or "light"
	Colors      map[string]string `json:"colors"`
	Fonts       map[string]string `json:"fonts,omitempty"`
}

// DefaultThemeID is used until the user picks a theme.
const DefaultThemeID = "dark"

var defaultFonts = map[string]string{
	"sans": "Inter, system-ui, sans-serif",
	"mono": "JetBrains Mono, monospace",
}

// builtinThemes returns the shipped themes in display order
func builtinThemes() []Theme {
	return []Theme{
		{
			ID:          "dark",
			Name:        "Dark",
			Description: "Default dark theme",
			Type:        "dark",
			Colors: map[string]string{
				"background": "#1a1a1a",
				"surface":    "#252525",
				"taskbar":    "#111111",
				"titlebar":   "#2d2d2d",
				"primary":    "#3b82f6",
				"text":       "#ffffff",
				"textMuted":  "#a0a0a0",
				"border":     "#404040",
			},
			Fonts: defaultFonts,
		},
		{
			ID:          "light",
			Name:        "Light",
			Description: "Default light theme",
			Type:        "light",
			Colors: map[string]string{
				"background": "#ffffff",
				"surface":    "#f5f5f5",
				"taskbar":    "#e8e8e8",
				"titlebar":   "#dcdcdc",
				"primary":    "#3b82f6",
				"text":       "#1a1a1a",
				"textMuted":  "#666666",
				"border":     "#e0e0e0",
			},
			Fonts: defaultFonts,
		},
		{
			ID:          "high-contrast",
			Name:        "High Contrast",
			Description: "High contrast theme for accessibility",
			Type:        "dark",
			Colors: map[string]string{
				"background": "#000000",
				"surface":    "#1a1a1a",
				"taskbar":    "#000000",
				"titlebar":   "#000000",
				"primary":    "#00ffff",
				"text":       "#ffffff",
				"textMuted":  "#cccccc",
				"border":     "#ffffff",
			},
			Fonts: defaultFonts,
		},
	}
}
