package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"time"

	"fincas/config"
	"fincas/models"
	"fincas/store"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type RecordHandler struct {
	config  *config.Config
	records *store.RecordStore
}

func NewRecordHandler(cfg *config.Config, records *store.RecordStore) *RecordHandler {
	return &RecordHandler{config: cfg, records: records}
}

func (h *RecordHandler) List(w http.ResponseWriter, r *http.Request) {
	projectID, ok := parseIDParam(w, r, "projectID")
	if !ok {
		return
	}

	filter, ok := parseRecordFilter(w, r)
	if !ok {
		return
	}

	records, err := h.records.List(r.Context(), projectID, filter)
	if err != nil {
		logrus.WithError(err).Error("failed to list records")
		writeError(w, http.StatusInternalServerError, "failed to load records")
		return
	}
	writeJSON(w, http.StatusOK, records)
}

type recordRequest struct {
	Fecha            string `json:"fecha"`
	NombreTrabajador string `json:"nombreTrabajador"`
	Cedula           string `json:"cedula"`
	HoraIngreso      string `json:"horaIngreso"`
	HoraSalida       string `json:"horaSalida"`
}

// Update is the manual-edit path: unlike bulk import, it validates the date
// and time formats before writing.
func (h *RecordHandler) Update(w http.ResponseWriter, r *http.Request) {
	projectID, ok := parseIDParam(w, r, "projectID")
	if !ok {
		return
	}
	recordID, ok := parseIDParam(w, r, "recordID")
	if !ok {
		return
	}

	var req recordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	fecha, err := time.Parse("2006-01-02", req.Fecha)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid fecha (expected YYYY-MM-DD)")
		return
	}
	if req.NombreTrabajador == "" || req.Cedula == "" {
		writeError(w, http.StatusBadRequest, "nombreTrabajador and cedula are required")
		return
	}
	if !models.IsValidTime(req.HoraIngreso) || !models.IsValidTime(req.HoraSalida) {
		writeError(w, http.StatusBadRequest, "invalid time format (expected HH:MM or HH:MM AM/PM)")
		return
	}

	record := models.OvertimeRecord{
		ID:               recordID,
		ProjectID:        projectID,
		Fecha:            fecha,
		NombreTrabajador: req.NombreTrabajador,
		Cedula:           req.Cedula,
		HoraIngreso:      req.HoraIngreso,
		HoraSalida:       req.HoraSalida,
	}
	if err := h.records.Update(r.Context(), &record); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "record not found")
			return
		}
		logrus.WithError(err).Error("failed to update record")
		writeError(w, http.StatusInternalServerError, "failed to update record")
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (h *RecordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	projectID, ok := parseIDParam(w, r, "projectID")
	if !ok {
		return
	}
	recordID, ok := parseIDParam(w, r, "recordID")
	if !ok {
		return
	}

	if err := h.records.Delete(r.Context(), projectID, recordID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "record not found")
			return
		}
		logrus.WithError(err).Error("failed to delete record")
		writeError(w, http.StatusInternalServerError, "failed to delete record")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// DeleteRange removes all records in a date range. The count deleted is
// always reported, including on partial failure mid-loop.
func (h *RecordHandler) DeleteRange(w http.ResponseWriter, r *http.Request) {
	projectID, ok := parseIDParam(w, r, "projectID")
	if !ok {
		return
	}

	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")
	from, err := time.Parse("2006-01-02", fromStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid from date (expected YYYY-MM-DD)")
		return
	}
	to, err := time.Parse("2006-01-02", toStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid to date (expected YYYY-MM-DD)")
		return
	}

	// Inclusive "to" day for the caller, half-open range for the store.
	count, err := h.records.DeleteRange(r.Context(), projectID, from, to.AddDate(0, 0, 1), store.DeleteBatchSize)
	if err != nil {
		logrus.WithError(err).WithField("deleted", count).Error("range deletion failed part-way")
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"error":   "deletion failed part-way; some records were removed",
			"deleted": count,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"deleted": count})
}

func (h *RecordHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	projectID, ok := parseIDParam(w, r, "projectID")
	if !ok {
		return
	}

	filter, ok := parseRecordFilter(w, r)
	if !ok {
		return
	}

	records, err := h.records.List(r.Context(), projectID, filter)
	if err != nil {
		logrus.WithError(err).Error("failed to export records")
		writeError(w, http.StatusInternalServerError, "failed to export records")
		return
	}

	filename := fmt.Sprintf("horas_extras_%d.csv", projectID)
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	writer := csv.NewWriter(w)
	defer writer.Flush()

	writer.Write([]string{"Fecha", "Nombre", "C.I.", "H. Ingreso", "H. Salida"})
	for _, record := range records {
		writer.Write([]string{
			record.Fecha.Format("2006-01-02"),
			record.NombreTrabajador,
			record.Cedula,
			record.HoraIngreso,
			record.HoraSalida,
		})
	}
}

func parseRecordFilter(w http.ResponseWriter, r *http.Request) (store.RecordFilter, bool) {
	filter := store.RecordFilter{
		Cedula: r.URL.Query().Get("cedula"),
		Nombre: r.URL.Query().Get("nombre"),
	}

	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		from, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid from date (expected YYYY-MM-DD)")
			return filter, false
		}
		filter.From = &from
	}
	if toStr := r.URL.Query().Get("to"); toStr != "" {
		to, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid to date (expected YYYY-MM-DD)")
			return filter, false
		}
		end := to.AddDate(0, 0, 1)
		filter.To = &end
	}
	return filter, true
}
