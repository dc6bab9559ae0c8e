package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"parlour.service/internal/core/model"
)

// PostgresEmployeeRepository backs the employee directory with PostgreSQL.
type PostgresEmployeeRepository struct {
	DB *sql.DB
}

// NewEmployeeRepository create new instance
func NewEmployeeRepository(db *sql.DB) EmployeeRepository {
	return &PostgresEmployeeRepository{DB: db}
}

func (r *PostgresEmployeeRepository) List(ctx context.Context) ([]model.Employee, error) {
	query := `SELECT id, name, email, role, created_at, updated_at
              FROM employees ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := []model.Employee{}
	for rows.Next() {
		var e model.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.Email, &e.Role, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// GetByID resolves an employee, nil when the id is unknown.
func (r *PostgresEmployeeRepository) GetByID(ctx context.Context, id string) (*model.Employee, error) {
	query := `SELECT id, name, email, role, created_at, updated_at
              FROM employees WHERE id = $1`

	e := &model.Employee{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&e.ID, &e.Name, &e.Email, &e.Role, &e.CreatedAt, &e.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *PostgresEmployeeRepository) Create(ctx context.Context, e *model.Employee) error {
	now := time.Now().UTC()
	e.ID = uuid.NewString()
	e.CreatedAt = now
	e.UpdatedAt = now

	query := `INSERT INTO employees (id, name, email, role, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.DB.ExecContext(ctx, query, e.ID, e.Name, e.Email, e.Role, e.CreatedAt, e.UpdatedAt)
	return err
}

// Update rewrites the mutable fields, reporting whether a row matched.
func (r *PostgresEmployeeRepository) Update(ctx context.Context, e *model.Employee) (bool, error) {
	e.UpdatedAt = time.Now().UTC()

	query := `UPDATE employees
              SET name = $1, email = $2, role = $3, updated_at = $4
              WHERE id = $5`

	res, err := r.DB.ExecContext(ctx, query, e.Name, e.Email, e.Role, e.UpdatedAt, e.ID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Delete removes the directory record. Attendance events referencing the
// employee are left behind and filtered out of enriched reads.
func (r *PostgresEmployeeRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
