package web

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/JonMunkholm/ledgerview/internal/core"
	"github.com/JonMunkholm/ledgerview/internal/logging"
	"github.com/JonMunkholm/ledgerview/internal/viewmodel"
	"github.com/JonMunkholm/ledgerview/internal/web/templates"
)

// handleIndex renders the page for the session's current state.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	_, model, err := s.sessionModel(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := templates.Page(model.View(), nil).Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render page", "error", err)
	}
}

// handleFilter stores the chosen fund and redirects back to the page.
func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	_, model, err := s.sessionModel(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	form := filterForm{Fund: r.PostFormValue("fund")}
	if err := s.check(form); err != nil {
		s.respondError(w, r, err)
		return
	}

	model.SetFilter(form.Fund)
	logging.FromContext(r.Context()).Debug("filter changed", "fund", model.Filter())
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleSortToggle flips the date sort direction.
func (s *Server) handleSortToggle(w http.ResponseWriter, r *http.Request) {
	_, model, err := s.sessionModel(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	form := sortForm{Sort: r.PostFormValue("sort")}
	if err := s.check(form); err != nil {
		s.respondError(w, r, err)
		return
	}

	// A repeated submit of the same button must not flip twice.
	if dir, ok := viewmodel.ParseSortDirection(form.Sort); ok {
		model.SetSort(dir)
	} else {
		model.ToggleSort()
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

type healthResponse struct {
	Status   string                   `json:"status"`
	Sessions int                      `json:"sessions"`
	Uploads  core.UploadLimiterStatus `json:"uploads"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, healthResponse{
		Status:   "ok",
		Sessions: s.service.SessionCount(),
		Uploads:  s.service.LimiterStatus(),
	})
}
