package http

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/Markdcoder/mobile-fintech-dashboard/internal/services"
	"github.com/Markdcoder/mobile-fintech-dashboard/internal/theme"
)

// handleQuickAction acknowledges a quick action. HTMX callers get the
// acknowledgement fragment; plain form posts get the full dashboard.
func (s *Server) handleQuickAction(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}

	user := userFromContext(r.Context())
	ack, err := s.actions.Trigger(r.Context(), r.PathValue("id"), user.Email)
	if err != nil {
		if errors.Is(err, services.ErrUnknownAction) {
			NotFoundError("Unknown quick action").Write(w)
			return
		}
		s.requestLogger(r).ErrorContext(r.Context(), "Quick action error", "error", err)
		InternalServerError("Quick action failed").Write(w)
		return
	}
	s.events.LogQuickAction(r.Context(), ack.Action.ID, ack.EventID, user.Email)

	if !isHTMX(r) {
		s.renderDashboard(w, r, ParseFilterParams(refererQuery(r)), &ack)
		return
	}

	body, err := s.renderString("action_ack", ack)
	if err != nil {
		s.requestLogger(r).ErrorContext(r.Context(), "Template execution failed", "error", err, "template", "action_ack")
		InternalServerError("Quick action failed").Write(w)
		return
	}
	NewHTMXResponse().
		TriggerActionAcknowledged(ack.Action.ID, ack.EventID).
		TriggerInfoNotification(ack.Message).
		BodyHTML(body).
		Write(w)
}

// handleTheme flips the theme cookie and returns to the submitting page.
func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if err := r.ParseForm(); err != nil {
		BadRequestError("Malformed request").Write(w)
		return
	}

	next := theme.FromRequest(r).Toggled()
	theme.SetCookie(w, next)
	http.Redirect(w, r, safeReturnPath(r.PostForm.Get("return"), "/"), http.StatusSeeOther)
}

// refererQuery keeps the active filter when a plain form post re-renders the dashboard.
func refererQuery(r *http.Request) url.Values {
	ref, err := url.Parse(r.Referer())
	if err != nil || (ref.Host != "" && ref.Host != r.Host) {
		return url.Values{}
	}
	return ref.Query()
}
