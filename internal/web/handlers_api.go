package web

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/JonMunkholm/ledgerview/internal/viewmodel"
)

// handleAPIView returns the render-ready view. The fund and sort query
// parameters override the session state for this response only.
func (s *Server) handleAPIView(w http.ResponseWriter, r *http.Request) {
	_, model, err := s.sessionModel(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	q := parseViewQuery(r.URL.Query())
	if err := s.check(q); err != nil {
		s.respondError(w, r, err)
		return
	}

	filter, dir := q.resolve(model)
	render.JSON(w, r, model.ViewWith(filter, dir))
}

type optionsResponse struct {
	All     string   `json:"all"`
	Options []string `json:"options"`
	Current string   `json:"current"`
}

// handleAPIOptions lists the fund filter options of the current table.
func (s *Server) handleAPIOptions(w http.ResponseWriter, r *http.Request) {
	_, model, err := s.sessionModel(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	render.JSON(w, r, optionsResponse{
		All:     viewmodel.FilterAll,
		Options: viewmodel.DeriveFilterOptions(model.Table()),
		Current: model.Filter(),
	})
}
