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

// EmployeeHandler exposes the employee directory CRUD.
type EmployeeHandler struct {
	Service *core.EmployeeService
}

func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Service.List(r.Context())
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to list employees")
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, employees)
}

func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in core.EmployeeInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	employee, err := h.Service.Create(r.Context(), in)
	if err != nil {
		log.Ctx(r.Context()).Warn().Err(err).Msg("Failed to add employee")
		writeMessage(w, http.StatusBadRequest, "Failed to add employee")
		return
	}
	writeJSON(w, http.StatusCreated, employee)
}

func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in core.EmployeeInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	employee, err := h.Service.Update(r.Context(), mux.Vars(r)["id"], in)
	if err != nil {
		if errors.Is(err, model.ErrEmployeeNotFound) {
			writeMessage(w, http.StatusNotFound, "Employee not found")
			return
		}
		log.Ctx(r.Context()).Warn().Err(err).Msg("Failed to update employee")
		writeMessage(w, http.StatusBadRequest, "Failed to update employee")
		return
	}
	writeJSON(w, http.StatusOK, employee)
}

func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.Service.Delete(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, model.ErrEmployeeNotFound) {
			writeMessage(w, http.StatusNotFound, "Employee not found")
			return
		}
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to delete employee")
		writeMessage(w, http.StatusBadRequest, "Failed to delete employee")
		return
	}
	writeMessage(w, http.StatusOK, "Employee deleted")
}
