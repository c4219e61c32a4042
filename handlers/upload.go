package handlers

import (
	"errors"
	"io"
	"net/http"

	"fincas/config"
	"fincas/ingest"
	"fincas/middleware"
	"fincas/models"
	"fincas/store"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Uploads are read fully into memory before parsing; daily attendance
// sheets are small, so 10 MiB is generous.
const maxUploadBytes = 10 << 20

type UploadHandler struct {
	config   *config.Config
	staging  *ingest.Staging
	records  *store.RecordStore
	projects *store.ProjectStore
}

func NewUploadHandler(cfg *config.Config, staging *ingest.Staging, records *store.RecordStore, projects *store.ProjectStore) *UploadHandler {
	return &UploadHandler{config: cfg, staging: staging, records: records, projects: projects}
}

// Upload parses a spreadsheet and stages the result for review. Nothing is
// persisted until the user confirms.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	projectID, ok := parseIDParam(w, r, "projectID")
	if !ok {
		return
	}
	if _, err := h.projects.Get(r.Context(), h.config.CompanyID, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "project not found")
			return
		}
		logrus.WithError(err).Error("failed to load project")
		writeError(w, http.StatusInternalServerError, "failed to load project")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file selected")
		return
	}
	defer file.Close()

	gen, err := h.staging.Begin(user.ID, header.Filename)
	if err != nil {
		// Duplicate upload; staged records are left untouched.
		writeError(w, http.StatusConflict, err.Error())
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		h.staging.Complete(user.ID, gen, nil, err)
		writeError(w, http.StatusBadRequest, "failed to read file")
		return
	}

	result, parseErr := ingest.ParseWorkbook(data, header.Filename)
	if err := h.staging.Complete(user.ID, gen, result, parseErr); err != nil {
		if errors.Is(err, ingest.ErrSuperseded) {
			writeError(w, http.StatusConflict, "a newer file selection superseded this upload")
			return
		}
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Staged returns the pending parse result for review.
func (h *UploadHandler) Staged(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	result, ok := h.staging.Peek(user.ID)
	if !ok {
		writeError(w, http.StatusNotFound, "no staged upload")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Confirm persists the staged records, tagged with the active project, as a
// single all-or-nothing batch.
func (h *UploadHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	projectID, ok := parseIDParam(w, r, "projectID")
	if !ok {
		return
	}
	if _, err := h.projects.Get(r.Context(), h.config.CompanyID, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "project not found")
			return
		}
		logrus.WithError(err).Error("failed to load project")
		writeError(w, http.StatusInternalServerError, "failed to load project")
		return
	}

	result, ok := h.staging.Peek(user.ID)
	if !ok {
		writeError(w, http.StatusConflict, "no staged upload to confirm")
		return
	}

	records := make([]models.OvertimeRecord, 0, len(result.Records))
	for _, rec := range result.Records {
		records = append(records, models.OvertimeRecord{
			ProjectID:        projectID,
			Fecha:            rec.Fecha,
			NombreTrabajador: rec.NombreTrabajador,
			Cedula:           rec.Cedula,
			HoraIngreso:      rec.HoraIngreso,
			HoraSalida:       rec.HoraSalida,
		})
	}

	// The staged buffer is cleared only after the batch commits; a failed
	// write leaves it in place so the user can confirm again.
	if err := h.records.CreateBatch(r.Context(), projectID, records); err != nil {
		logrus.WithError(err).Error("failed to persist staged records")
		writeError(w, http.StatusInternalServerError, "failed to save records")
		return
	}
	h.staging.Clear(user.ID)

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"saved":    len(records),
		"filename": result.Filename,
	})
}

// Discard drops the staged upload without persisting anything.
func (h *UploadHandler) Discard(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	h.staging.Clear(user.ID)
	writeJSON(w, http.StatusOK, map[string]string{"status": "discarded"})
}
