package core

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"parlour.service/internal/core/model"
	"parlour.service/internal/ports/realtime"
	"parlour.service/internal/ports/repository"
)

// AttendanceService orchestrates the punch pipeline. It holds no state of
// its own: validation against the employee directory, the durable append,
// the enrichment read and the broadcast hand-off all go through its
// collaborators.
type AttendanceService struct {
	events      repository.AttendanceRepository
	directory   repository.EmployeeRepository
	broadcaster realtime.Broadcaster
}

// NewAttendanceService creates the attendance service, wiring up the event
// store, the employee directory and the realtime broadcaster.
func NewAttendanceService(events repository.AttendanceRepository, directory repository.EmployeeRepository, b realtime.Broadcaster) *AttendanceService {
	return &AttendanceService{
		events:      events,
		directory:   directory,
		broadcaster: b,
	}
}

// Punch records one attendance event. The single business rule enforced
// here is that the employee must exist; the punch type is accepted
// verbatim from the caller, so two consecutive "in" punches both succeed.
// On success the enriched event has already been handed to the broadcaster.
func (s *AttendanceService) Punch(ctx context.Context, employeeID, punchType string) (*model.EnrichedAttendanceEvent, error) {
	pt, err := model.ParsePunchType(punchType)
	if err != nil {
		return nil, err
	}

	employee, err := s.directory.GetByID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve employee: %w", err)
	}
	if employee == nil {
		return nil, model.ErrEmployeeNotFound
	}

	event, err := s.events.Append(ctx, employeeID, pt)
	if err != nil {
		return nil, fmt.Errorf("failed to append attendance event: %w", err)
	}

	enriched, err := s.events.GetEnrichedByID(ctx, event.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to read back attendance event: %w", err)
	}
	if enriched == nil {
		// The employee was deleted between the existence check and the
		// read-back. The event itself is durable; fall back to the name
		// we already resolved.
		enriched = &model.EnrichedAttendanceEvent{
			ID:           event.ID,
			EmployeeID:   event.EmployeeID,
			EmployeeName: employee.Name,
			Type:         event.Type,
			Timestamp:    event.Timestamp,
		}
	}

	log.Ctx(ctx).Info().
		Str("event_id", enriched.ID).
		Str("employee_id", enriched.EmployeeID).
		Str("type", string(enriched.Type)).
		Msg("Punch recorded")

	// The store write is durable at this point; fan out exactly once.
	s.broadcaster.Publish(*enriched)

	return enriched, nil
}

// ListLogs returns every punch joined with the employee name, most recent
// first. Events whose employee was deleted are silently dropped.
func (s *AttendanceService) ListLogs(ctx context.Context) ([]model.EnrichedAttendanceEvent, error) {
	logs, err := s.events.ListEnriched(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance logs: %w", err)
	}
	return logs, nil
}

// CurrentStatus derives an employee's in/out state from their most recent
// punch. An employee with no punches is "out".
func (s *AttendanceService) CurrentStatus(ctx context.Context, employeeID string) (model.PunchType, error) {
	employee, err := s.directory.GetByID(ctx, employeeID)
	if err != nil {
		return "", fmt.Errorf("failed to resolve employee: %w", err)
	}
	if employee == nil {
		return "", model.ErrEmployeeNotFound
	}

	last, err := s.events.FindLastByEmployee(ctx, employeeID)
	if err != nil {
		return "", fmt.Errorf("failed to query last punch: %w", err)
	}
	if last == nil {
		return model.PunchOut, nil
	}
	return last.Type, nil
}
