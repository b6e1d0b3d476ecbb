package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/momentumhq/momentum/internal/ctxkeys"
	"github.com/momentumhq/momentum/internal/service"
)

type ExportHandler struct {
	exportService *service.ExportService
}

func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
	}
}

// Download streams the user's full data snapshot as a JSON attachment.
func (h *ExportHandler) Download(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	now := time.Now()
	export, err := h.exportService.Export(user.ID, now)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	filename := fmt.Sprintf("momentum-export-%s.json", now.Format("2006-01-02"))
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	respondJSON(w, http.StatusOK, export)
}
