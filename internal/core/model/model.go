package model

import (
	"time"
)

// PunchType is the direction of an attendance punch.
type PunchType string

const (
	PunchIn  PunchType = "in"
	PunchOut PunchType = "out"
)

// ParsePunchType validates a caller-supplied punch type. The type is taken
// verbatim; the service never derives it from the employee's last state.
func ParsePunchType(s string) (PunchType, error) {
	switch PunchType(s) {
	case PunchIn:
		return PunchIn, nil
	case PunchOut:
		return PunchOut, nil
	}
	return "", ErrInvalidPunchType
}

// Role defines the access level of a user or employee.
type Role string

const (
	RoleEmployee   Role = "employee"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleEmployee, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// TaskStatus defines the progress state of a task.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
)

// Valid reports whether the status is one of the known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskPending, TaskInProgress, TaskCompleted:
		return true
	}
	return false
}

// Employee is a directory record referenced, never owned, by attendance events.
type Employee struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AttendanceEvent is a single punch as stored. Events are immutable after
// creation; no update or delete path exists for them.
type AttendanceEvent struct {
	ID         string    `json:"_id"`
	EmployeeID string    `json:"employeeId"`
	Type       PunchType `json:"type"`
	Timestamp  time.Time `json:"timestamp"`
}

// EnrichedAttendanceEvent is a punch joined with the employee's display
// name, the shape delivered to dashboard clients.
type EnrichedAttendanceEvent struct {
	ID           string    `json:"_id"`
	EmployeeID   string    `json:"employeeId"`
	EmployeeName string    `json:"employeeName"`
	Type         PunchType `json:"type"`
	Timestamp    time.Time `json:"timestamp"`
}

// Task is a unit of work optionally assigned to an employee.
type Task struct {
	ID          string     `json:"_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	AssignedTo  *string    `json:"assignedTo,omitempty"`
	Status      TaskStatus `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// User is a dashboard login account.
type User struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}
