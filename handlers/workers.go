package handlers

import (
	"errors"
	"net/http"

	"fincas/config"
	"fincas/models"
	"fincas/store"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type WorkerHandler struct {
	config  *config.Config
	workers *store.WorkerStore
}

func NewWorkerHandler(cfg *config.Config, workers *store.WorkerStore) *WorkerHandler {
	return &WorkerHandler{config: cfg, workers: workers}
}

func (h *WorkerHandler) List(w http.ResponseWriter, r *http.Request) {
	workers, err := h.workers.List(r.Context(), h.config.CompanyID)
	if err != nil {
		logrus.WithError(err).Error("failed to list workers")
		writeError(w, http.StatusInternalServerError, "failed to load workers")
		return
	}
	writeJSON(w, http.StatusOK, workers)
}

type workerRequest struct {
	Nombre string `json:"nombre"`
	Cedula string `json:"cedula"`
	Estado string `json:"estado"`
}

func (h *WorkerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req workerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	worker := models.Worker{
		CompanyID: h.config.CompanyID,
		Nombre:    req.Nombre,
		Cedula:    req.Cedula,
		Estado:    req.Estado,
	}
	if worker.Estado == "" {
		worker.Estado = models.WorkerActivo
	}
	if err := h.workers.Create(r.Context(), &worker); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, worker)
}

func (h *WorkerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "workerID")
	if !ok {
		return
	}

	var req workerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	worker := models.Worker{
		ID:        id,
		CompanyID: h.config.CompanyID,
		Nombre:    req.Nombre,
		Cedula:    req.Cedula,
		Estado:    req.Estado,
	}
	if err := h.workers.Update(r.Context(), &worker); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "worker not found")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, worker)
}

func (h *WorkerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "workerID")
	if !ok {
		return
	}

	if err := h.workers.Delete(r.Context(), h.config.CompanyID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "worker not found")
			return
		}
		logrus.WithError(err).Error("failed to delete worker")
		writeError(w, http.StatusInternalServerError, "failed to delete worker")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
