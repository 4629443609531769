// Package theme holds the light and dark colour palettes of the dashboard.
package theme

import "net/http"

const CookieName = "dashboard_theme"

type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

type Palette struct {
	Background    string
	Surface       string
	Primary       string
	Secondary     string
	Accent        string
	Text          string
	TextSecondary string
	Border        string
	Success       string
	Warning       string
	Error         string
	Info          string
}

// Theme is the value passed down to every template.
type Theme struct {
	Mode   Mode
	Colors Palette
}

var (
	lightPalette = Palette{
		Background:    "#f8fafc",
		Surface:       "#ffffff",
		Primary:       "#0f172a",
		Secondary:     "#64748b",
		Accent:        "#3b82f6",
		Text:          "#0f172a",
		TextSecondary: "#64748b",
		Border:        "#e2e8f0",
		Success:       "#059669",
		Warning:       "#d97706",
		Error:         "#dc2626",
		Info:          "#0284c7",
	}
	darkPalette = Palette{
		Background:    "#0f172a",
		Surface:       "#1e293b",
		Primary:       "#ffffff",
		Secondary:     "#94a3b8",
		Accent:        "#3b82f6",
		Text:          "#ffffff",
		TextSecondary: "#94a3b8",
		Border:        "#334155",
		Success:       "#10b981",
		Warning:       "#f59e0b",
		Error:         "#ef4444",
		Info:          "#06b6d4",
	}
)

func For(m Mode) Theme {
	if m == Dark {
		return Theme{Mode: Dark, Colors: darkPalette}
	}
	return Theme{Mode: Light, Colors: lightPalette}
}

func (t Theme) IsDark() bool { return t.Mode == Dark }

// Toggled returns the opposite theme.
func (t Theme) Toggled() Theme {
	if t.IsDark() {
		return For(Light)
	}
	return For(Dark)
}

// FromRequest reads the theme cookie, defaulting to light.
func FromRequest(r *http.Request) Theme {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return For(Light)
	}
	return For(Mode(c.Value))
}

func SetCookie(w http.ResponseWriter, t Theme) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    string(t.Mode),
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
