package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ukemeuu/mani24-kds/internal/adapter/insights"
	"github.com/ukemeuu/mani24-kds/internal/adapter/logger"
	"github.com/ukemeuu/mani24-kds/internal/app/board"
	"github.com/ukemeuu/mani24-kds/internal/app/export"
)

type ExportHandler struct {
	board    *board.Board
	insights *insights.Client
	logger   logger.Logger
}

func NewExportHandler(b *board.Board, ins *insights.Client, lgr logger.Logger) *ExportHandler {
	return &ExportHandler{board: b, insights: ins, logger: lgr}
}

// HistoryCSV streams the dispatched-order log as a CSV download.
// GET /export/history.csv
func (h *ExportHandler) HistoryCSV(w http.ResponseWriter, r *http.Request) {
	orders := h.board.Snapshot()

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", export.FileName(time.Now())))

	if err := export.WriteHistory(w, orders); err != nil {
		h.logger.Error("csv_export_failed", "Failed to write history export", "", nil, err)
	}
}

// Report returns the daily performance summary.
// GET /report
func (h *ExportHandler) Report(w http.ResponseWriter, r *http.Request) {
	report := export.BuildReport(h.board.Snapshot(), time.Now().UnixMilli())
	respondJSON(w, http.StatusOK, report)
}

// Insights returns chef advice for the current kitchen state. A rate-limited
// upstream surfaces as 503 with a service_paused code.
// GET /insights
func (h *ExportHandler) Insights(w http.ResponseWriter, r *http.Request) {
	if h.insights == nil || !h.insights.Enabled() {
		respondJSON(w, http.StatusNotFound, ErrorResponse{Error: "insight service not configured"})
		return
	}

	result, err := h.insights.Fetch(r.Context(), h.board.Snapshot(), time.Now().UnixMilli())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
