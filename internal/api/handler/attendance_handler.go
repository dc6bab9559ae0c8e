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

// AttendanceHandler exposes the punch pipeline and the dashboard query
// surface over HTTP.
type AttendanceHandler struct {
	Service *core.AttendanceService
}

// PunchRequest is the HTTP body for a punch.
type PunchRequest struct {
	EmployeeID string `json:"employeeId"`
	Type       string `json:"type"`
}

// List serves both the authenticated and the public attendance log
// endpoints; access control is decided at the router.
func (h *AttendanceHandler) List(w http.ResponseWriter, r *http.Request) {
	logs, err := h.Service.ListLogs(r.Context())
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to fetch attendance logs")
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

func (h *AttendanceHandler) Punch(w http.ResponseWriter, r *http.Request) {
	var req PunchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.EmployeeID == "" {
		writeMessage(w, http.StatusBadRequest, "employeeId is required")
		return
	}

	event, err := h.Service.Punch(r.Context(), req.EmployeeID, req.Type)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrEmployeeNotFound):
			writeMessage(w, http.StatusNotFound, "Employee not found")
		case errors.Is(err, model.ErrInvalidPunchType):
			writeMessage(w, http.StatusBadRequest, err.Error())
		default:
			log.Ctx(r.Context()).Error().Err(err).Str("employee_id", req.EmployeeID).Msg("Punch failed")
			writeMessage(w, http.StatusInternalServerError, "Failed to punch")
		}
		return
	}

	writeJSON(w, http.StatusCreated, event)
}

// Status reports the derived current in/out state for one employee.
func (h *AttendanceHandler) Status(w http.ResponseWriter, r *http.Request) {
	employeeID := mux.Vars(r)["employeeId"]

	status, err := h.Service.CurrentStatus(r.Context(), employeeID)
	if err != nil {
		if errors.Is(err, model.ErrEmployeeNotFound) {
			writeMessage(w, http.StatusNotFound, "Employee not found")
			return
		}
		log.Ctx(r.Context()).Error().Err(err).Str("employee_id", employeeID).Msg("Failed to derive status")
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"employeeId": employeeID,
		"status":     string(status),
	})
}
