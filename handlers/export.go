package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"simplstream/services/export"
	"simplstream/services/profiles"
)

// Bundles larger than this are rejected on import.
const maxBundleSize = 8 << 20

type exportService interface {
	Export(profileID string) ([]byte, error)
	Import(profileID string, data []byte) error
}

var _ exportService = (*export.Service)(nil)

// ExportHandler serves profile bundle export and import.
type ExportHandler struct {
	export exportService
}

// NewExportHandler creates the export handler.
func NewExportHandler(svc exportService) *ExportHandler {
	return &ExportHandler{export: svc}
}

func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	profileID := mux.Vars(r)["id"]

	data, err := h.export.Export(profileID)
	if err != nil {
		respondProfileError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "simplstream-profile.sspb"))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (h *ExportHandler) Import(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBundleSize+1))
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to read bundle")
		return
	}
	if len(data) > maxBundleSize {
		respondError(w, http.StatusRequestEntityTooLarge, "bundle too large")
		return
	}

	err = h.export.Import(mux.Vars(r)["id"], data)
	switch {
	case err == nil:
		respondJSON(w, http.StatusOK, map[string]bool{"imported": true})
	case errors.Is(err, profiles.ErrProfileNotFound):
		respondError(w, http.StatusNotFound, "profile not found")
	case errors.Is(err, export.ErrNotABundle), errors.Is(err, export.ErrUnsupportedBundle):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}
