package http

import (
	"errors"
	"net/http"

	"github.com/Markdcoder/mobile-fintech-dashboard/internal/auth"
)

const (
	msgMissingCredentials = "Please fill in all fields"
	msgInvalidCredentials = "Invalid email or password."
)

type loginView struct {
	pageData
	Mode  string
	Email string
	Error string
}

// handleLogin renders the sign-in form and checks submitted credentials.
// The login/signup toggle only changes the copy; both submit the same check.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		if _, ok := s.sessions.FromRequest(r); ok {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
		s.render(w, r, "login.html", http.StatusOK, loginView{
			pageData: s.page(r),
			Mode:     loginMode(r.URL.Query().Get("mode")),
		})
	case http.MethodPost:
		s.submitLogin(w, r)
	default:
		MethodNotAllowedError("GET, POST").Write(w)
	}
}

func (s *Server) submitLogin(w http.ResponseWriter, r *http.Request) {
	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		BadRequestError("Malformed request").Write(w)
		return
	}

	// Only a truly empty field counts as missing; a blank-looking email is
	// checked like any other and rejected as invalid.
	email := p.GetRaw("email")
	password := p.GetRaw("password")
	view := loginView{pageData: s.page(r), Mode: loginMode(p.Get("mode")), Email: p.Get("email")}

	user, err := s.authenticator.Authenticate(r.Context(), email, password)
	s.events.LogLogin(r.Context(), email, err)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMissingCredentials):
			view.Error = msgMissingCredentials
		case errors.Is(err, auth.ErrInvalidCredentials):
			view.Error = msgInvalidCredentials
		default:
			s.requestLogger(r).ErrorContext(r.Context(), "Authentication failed", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		if p.IsJSON() {
			writeJSON(w, r, http.StatusUnprocessableEntity, map[string]string{"error": view.Error})
			return
		}
		s.render(w, r, "login.html", http.StatusUnprocessableEntity, view)
		return
	}

	if err := s.sessions.SetCookie(w, r, user); err != nil {
		s.requestLogger(r).ErrorContext(r.Context(), "Failed to issue session", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if p.IsJSON() {
		writeJSON(w, r, http.StatusOK, map[string]string{"email": user.Email})
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	s.sessions.ClearCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func loginMode(m string) string {
	if m == "signup" {
		return "signup"
	}
	return "login"
}
