package web

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/render"

	"github.com/JonMunkholm/ledgerview/internal/core"
	"github.com/JonMunkholm/ledgerview/internal/logging"
)

// multipartOverhead covers boundaries and part headers around the file.
const multipartOverhead = 64 << 10

// receiveUpload hands the multipart "file" part to the service and waits for
// the result. A superseded upload comes back with core.ErrSuperseded.
func (s *Server) receiveUpload(w http.ResponseWriter, r *http.Request) (core.UploadResult, error) {
	id, _, err := s.sessionModel(r)
	if err != nil {
		return core.UploadResult{}, err
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.service.MaxFileSize()+multipartOverhead)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxBytes *http.MaxBytesError
		switch {
		case errors.Is(err, http.ErrMissingFile):
			return core.UploadResult{}, core.ErrNoFile
		case errors.As(err, &maxBytes), strings.Contains(err.Error(), "request body too large"):
			return core.UploadResult{}, fmt.Errorf("%w: limit is %d bytes", core.ErrFileTooLarge, s.service.MaxFileSize())
		default:
			return core.UploadResult{}, fmt.Errorf("%w: read form: %w", errInvalidInput, err)
		}
	}
	defer file.Close()

	logging.FromContext(r.Context()).Debug("upload received",
		"file", header.Filename,
		"size", header.Size,
	)

	ticket, err := s.service.Upload(r.Context(), id, header.Filename, file)
	if err != nil {
		return core.UploadResult{}, err
	}
	return ticket.Wait(r.Context())
}

// handleUpload is the form post from the page. Success and superseded uploads
// both redirect to the page, which shows the newest table.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if _, err := s.receiveUpload(w, r); err != nil && !core.IsSuperseded(err) {
		s.respondError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

type uploadResponse struct {
	Generation uint64 `json:"generation"`
	Applied    bool   `json:"applied"`
	Superseded bool   `json:"superseded"`
	Rows       int    `json:"rows"`
}

// handleAPIUpload is the JSON variant of handleUpload.
func (s *Server) handleAPIUpload(w http.ResponseWriter, r *http.Request) {
	res, err := s.receiveUpload(w, r)
	if err != nil && !core.IsSuperseded(err) {
		s.respondError(w, r, err)
		return
	}

	render.JSON(w, r, uploadResponse{
		Generation: uint64(res.Generation),
		Applied:    res.Applied,
		Superseded: core.IsSuperseded(err),
		Rows:       res.Rows,
	})
}
