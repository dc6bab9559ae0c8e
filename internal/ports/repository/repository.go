package repository

import (
	"context"

	"parlour.service/internal/core/model"
)

// AttendanceRepository persists punch events. Events are append-only:
// there is deliberately no update or delete operation.
type AttendanceRepository interface {
	Append(ctx context.Context, employeeID string, punchType model.PunchType) (*model.AttendanceEvent, error)
	GetByID(ctx context.Context, id string) (*model.AttendanceEvent, error)
	ListAll(ctx context.Context) ([]model.AttendanceEvent, error)
	FindLastByEmployee(ctx context.Context, employeeID string) (*model.AttendanceEvent, error)
	GetEnrichedByID(ctx context.Context, id string) (*model.EnrichedAttendanceEvent, error)
	ListEnriched(ctx context.Context) ([]model.EnrichedAttendanceEvent, error)
}

// EmployeeRepository is the employee directory contract.
type EmployeeRepository interface {
	List(ctx context.Context) ([]model.Employee, error)
	GetByID(ctx context.Context, id string) (*model.Employee, error)
	Create(ctx context.Context, e *model.Employee) error
	Update(ctx context.Context, e *model.Employee) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// TaskRepository persists task assignments.
type TaskRepository interface {
	List(ctx context.Context) ([]model.Task, error)
	GetByID(ctx context.Context, id string) (*model.Task, error)
	Create(ctx context.Context, t *model.Task) error
	Update(ctx context.Context, t *model.Task) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// UserRepository persists dashboard login accounts.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	Create(ctx context.Context, u *model.User) error
}
