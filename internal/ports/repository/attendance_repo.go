package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"parlour.service/internal/core/model"
)

// AttendanceEventRepository is the concrete implementation for a PostgreSQL database.
//
// attendance_events carries no foreign key on employee_id on purpose:
// deleting an employee must leave its events in place, and the enriched
// queries filter the resulting orphans with an inner join.
type AttendanceEventRepository struct {
	DB *sql.DB
}

// NewAttendanceEventRepository create new instance
func NewAttendanceEventRepository(db *sql.DB) AttendanceRepository {
	return &AttendanceEventRepository{DB: db}
}

// Append inserts a new punch event with a server-assigned id and timestamp.
// The insert is durable before this returns.
func (r *AttendanceEventRepository) Append(ctx context.Context, employeeID string, punchType model.PunchType) (*model.AttendanceEvent, error) {
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("app.employeeId", employeeID))

	ev := &model.AttendanceEvent{
		ID:         uuid.NewString(),
		EmployeeID: employeeID,
		Type:       punchType,
		Timestamp:  time.Now().UTC(),
	}

	query := `INSERT INTO attendance_events (id, employee_id, type, event_timestamp)
              VALUES ($1, $2, $3, $4)`

	if _, err := r.DB.ExecContext(ctx, query, ev.ID, ev.EmployeeID, ev.Type, ev.Timestamp); err != nil {
		return nil, err
	}

	return ev, nil
}

// GetByID fetches a single raw event, nil when absent.
func (r *AttendanceEventRepository) GetByID(ctx context.Context, id string) (*model.AttendanceEvent, error) {
	query := `SELECT id, employee_id, type, event_timestamp
              FROM attendance_events WHERE id = $1`

	ev := &model.AttendanceEvent{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&ev.ID, &ev.EmployeeID, &ev.Type, &ev.Timestamp)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ev, nil
}

// ListAll returns every stored event, most recent first. Callers rely on
// the descending order for "most recent punch" derivations.
func (r *AttendanceEventRepository) ListAll(ctx context.Context) ([]model.AttendanceEvent, error) {
	query := `SELECT id, employee_id, type, event_timestamp
              FROM attendance_events
              ORDER BY event_timestamp DESC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []model.AttendanceEvent{}
	for rows.Next() {
		var ev model.AttendanceEvent
		if err := rows.Scan(&ev.ID, &ev.EmployeeID, &ev.Type, &ev.Timestamp); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// FindLastByEmployee gets the most recent event for an employee, nil when
// the employee has never punched.
func (r *AttendanceEventRepository) FindLastByEmployee(ctx context.Context, employeeID string) (*model.AttendanceEvent, error) {
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("app.employeeId", employeeID))

	query := `SELECT id, employee_id, type, event_timestamp
              FROM attendance_events
              WHERE employee_id = $1
              ORDER BY event_timestamp DESC
              LIMIT 1`

	ev := &model.AttendanceEvent{}
	err := r.DB.QueryRowContext(ctx, query, employeeID).Scan(&ev.ID, &ev.EmployeeID, &ev.Type, &ev.Timestamp)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ev, nil
}

// GetEnrichedByID fetches one event joined with the employee name, nil when
// the event is absent or its employee reference no longer resolves.
func (r *AttendanceEventRepository) GetEnrichedByID(ctx context.Context, id string) (*model.EnrichedAttendanceEvent, error) {
	query := `SELECT a.id, a.employee_id, e.name, a.type, a.event_timestamp
              FROM attendance_events a
              JOIN employees e ON e.id = a.employee_id
              WHERE a.id = $1`

	ev := &model.EnrichedAttendanceEvent{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&ev.ID, &ev.EmployeeID, &ev.EmployeeName, &ev.Type, &ev.Timestamp)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ev, nil
}

// ListEnriched returns all events joined with employee names, most recent
// first. The inner join silently drops events whose employee was deleted.
func (r *AttendanceEventRepository) ListEnriched(ctx context.Context) ([]model.EnrichedAttendanceEvent, error) {
	query := `SELECT a.id, a.employee_id, e.name, a.type, a.event_timestamp
              FROM attendance_events a
              JOIN employees e ON e.id = a.employee_id
              ORDER BY a.event_timestamp DESC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []model.EnrichedAttendanceEvent{}
	for rows.Next() {
		var ev model.EnrichedAttendanceEvent
		if err := rows.Scan(&ev.ID, &ev.EmployeeID, &ev.EmployeeName, &ev.Type, &ev.Timestamp); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}
