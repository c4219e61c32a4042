package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"fincas/config"
	"fincas/models"
	"fincas/store"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ProjectHandler struct {
	config   *config.Config
	projects *store.ProjectStore
}

func NewProjectHandler(cfg *config.Config, projects *store.ProjectStore) *ProjectHandler {
	return &ProjectHandler{config: cfg, projects: projects}
}

func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.List(r.Context(), h.config.CompanyID)
	if err != nil {
		logrus.WithError(err).Error("failed to list projects")
		writeError(w, http.StatusInternalServerError, "failed to load projects")
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

type projectRequest struct {
	Name                string   `json:"name"`
	RestDays            []int    `json:"restDays"`
	WeeklyOvertimeLimit *float64 `json:"weeklyOvertimeLimit"`
	DailyOvertimeLimit  *float64 `json:"dailyOvertimeLimit"`
	HourlyRate          *float64 `json:"hourlyRate"`
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	project := models.Project{
		CompanyID:           h.config.CompanyID,
		Name:                req.Name,
		RestDays:            models.DefaultRestDays(),
		WeeklyOvertimeLimit: models.DefaultWeeklyOvertimeLimit,
		DailyOvertimeLimit:  models.DefaultDailyOvertimeLimit,
		HourlyRate:          models.DefaultHourlyRate,
	}
	if req.RestDays != nil {
		project.RestDays = req.RestDays
	}
	if req.WeeklyOvertimeLimit != nil {
		project.WeeklyOvertimeLimit = *req.WeeklyOvertimeLimit
	}
	if req.DailyOvertimeLimit != nil {
		project.DailyOvertimeLimit = *req.DailyOvertimeLimit
	}
	if req.HourlyRate != nil {
		project.HourlyRate = *req.HourlyRate
	}

	if err := h.projects.Create(r.Context(), &project); err != nil {
		if errors.Is(err, store.ErrDuplicateName) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		logrus.WithError(err).Error("failed to create project")
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, project)
}

func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "projectID")
	if !ok {
		return
	}

	project, err := h.projects.Get(r.Context(), h.config.CompanyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "project not found")
			return
		}
		logrus.WithError(err).Error("failed to load project")
		writeError(w, http.StatusInternalServerError, "failed to load project")
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "projectID")
	if !ok {
		return
	}

	var req projectRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	current, err := h.projects.Get(r.Context(), h.config.CompanyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "project not found")
			return
		}
		logrus.WithError(err).Error("failed to load project")
		writeError(w, http.StatusInternalServerError, "failed to load project")
		return
	}

	// The edit form rewrites every configurable field.
	current.Name = req.Name
	current.RestDays = req.RestDays
	if req.WeeklyOvertimeLimit != nil {
		current.WeeklyOvertimeLimit = *req.WeeklyOvertimeLimit
	}
	if req.DailyOvertimeLimit != nil {
		current.DailyOvertimeLimit = *req.DailyOvertimeLimit
	}
	if req.HourlyRate != nil {
		current.HourlyRate = *req.HourlyRate
	}

	if err := h.projects.Update(r.Context(), current); err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicateName):
			writeError(w, http.StatusConflict, err.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			writeError(w, http.StatusNotFound, "project not found")
		default:
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, current)
}

func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "projectID")
	if !ok {
		return
	}

	if err := h.projects.Delete(r.Context(), h.config.CompanyID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "project not found")
			return
		}
		logrus.WithError(err).Error("failed to delete project")
		writeError(w, http.StatusInternalServerError, "failed to delete project")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func parseIDParam(w http.ResponseWriter, r *http.Request, name string) (uint, bool) {
	idStr := chi.URLParam(r, name)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}
