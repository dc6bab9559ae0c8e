package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"parlour.service/internal/core"
	"parlour.service/internal/core/model"
)

// TaskHandler exposes task CRUD.
type TaskHandler struct {
	Service *core.TaskService
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.Service.List(r.Context())
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to list tasks")
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in core.TaskInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	task, err := h.Service.Create(r.Context(), in)
	if err != nil {
		log.Ctx(r.Context()).Warn().Err(err).Msg("Failed to add task")
		writeMessage(w, http.StatusBadRequest, "Failed to add task")
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in core.TaskInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	task, err := h.Service.Update(r.Context(), mux.Vars(r)["id"], in)
	if err != nil {
		if errors.Is(err, model.ErrTaskNotFound) {
			writeMessage(w, http.StatusNotFound, "Task not found")
			return
		}
		log.Ctx(r.Context()).Warn().Err(err).Msg("Failed to update task")
		writeMessage(w, http.StatusBadRequest, "Failed to update task")
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.Service.Delete(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, model.ErrTaskNotFound) {
			writeMessage(w, http.StatusNotFound, "Task not found")
			return
		}
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to delete task")
		writeMessage(w, http.StatusBadRequest, "Failed to delete task")
		return
	}
	writeMessage(w, http.StatusOK, "Task deleted")
}
