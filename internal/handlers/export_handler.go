package handlers

import (
	"fmt"
	"net/http"

	"github.com/estroop3-gif/second-watch-network-sub012/internal/export"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/middleware"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/services"
)

// ExportHandler serves flat-file downloads of receipts, takes and contest
// results. Row shapes live in the export package.
type ExportHandler struct {
	Receipts  *services.ReceiptService
	Takes     *services.TakeService
	Greenroom *services.GreenroomService
}

func NewExportHandler(receipts *services.ReceiptService, takes *services.TakeService, greenroom *services.GreenroomService) *ExportHandler {
	return &ExportHandler{Receipts: receipts, Takes: takes, Greenroom: greenroom}
}

// writeExport renders rows in the requested format and sets download headers
func writeExport(w http.ResponseWriter, exportType, format string, rows []map[string]interface{}) {
	switch format {
	case "", "csv":
		data, err := export.CSV(exportType, rows)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "failed to build export")
			return
		}
		attachment(w, "text/csv", export.Filename(exportType, "csv"), data)
	case "json":
		data, err := export.JSON(exportType, rows)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "failed to build export")
			return
		}
		attachment(w, "application/json", export.Filename(exportType, "json"), data)
	default:
		respondError(w, http.StatusBadRequest, fmt.Sprintf("unsupported format %q, use csv or json", format))
	}
}

// ExportReceipts handles GET /productions/{id}/exports/receipts
// Query params: format=csv|json
func (h *ExportHandler) ExportReceipts(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	productionID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	receipts, err := h.Receipts.ListReceipts(r.Context(), productionID, userID, "", "", false)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeExport(w, export.TypeReceipts, r.URL.Query().Get("format"), export.ReceiptRows(receipts))
}

// ExportTakes handles GET /productions/{id}/exports/takes
// Query params: format=csv|json, scene, shoot_day_id via ListTakes filters
func (h *ExportHandler) ExportTakes(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	productionID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	takes, err := h.Takes.ListTakes(r.Context(), productionID, userID, r.URL.Query().Get("scene"), 0)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeExport(w, export.TypeTakes, r.URL.Query().Get("format"), export.TakeRows(takes))
}

// ExportGreenroomResults handles GET /greenroom/results/export
// Query params: format=csv|json, cycle (defaults to the active cycle)
func (h *ExportHandler) ExportGreenroomResults(w http.ResponseWriter, r *http.Request) {
	results, err := h.Greenroom.Results(r.Context(), r.URL.Query().Get("cycle"))
	if err != nil {
		serviceError(w, err)
		return
	}
	writeExport(w, export.TypeGreenroom, r.URL.Query().Get("format"), export.GreenroomRows(results.Tallies))
}
