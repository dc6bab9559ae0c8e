package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"parlour.service/internal/core/model"
)

// PostgresTaskRepository backs task storage with PostgreSQL.
type PostgresTaskRepository struct {
	DB *sql.DB
}

// NewTaskRepository create new instance
func NewTaskRepository(db *sql.DB) TaskRepository {
	return &PostgresTaskRepository{DB: db}
}

func (r *PostgresTaskRepository) List(ctx context.Context) ([]model.Task, error) {
	query := `SELECT id, title, description, assigned_to, status, created_at, updated_at
              FROM tasks ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.AssignedTo, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *PostgresTaskRepository) GetByID(ctx context.Context, id string) (*model.Task, error) {
	query := `SELECT id, title, description, assigned_to, status, created_at, updated_at
              FROM tasks WHERE id = $1`

	t := &model.Task{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.Title, &t.Description, &t.AssignedTo, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *PostgresTaskRepository) Create(ctx context.Context, t *model.Task) error {
	now := time.Now().UTC()
	t.ID = uuid.NewString()
	t.CreatedAt = now
	t.UpdatedAt = now

	query := `INSERT INTO tasks (id, title, description, assigned_to, status, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.DB.ExecContext(ctx, query, t.ID, t.Title, t.Description, t.AssignedTo, t.Status, t.CreatedAt, t.UpdatedAt)
	return err
}

func (r *PostgresTaskRepository) Update(ctx context.Context, t *model.Task) (bool, error) {
	t.UpdatedAt = time.Now().UTC()

	query := `UPDATE tasks
              SET title = $1, description = $2, assigned_to = $3, status = $4, updated_at = $5
              WHERE id = $6`

	res, err := r.DB.ExecContext(ctx, query, t.Title, t.Description, t.AssignedTo, t.Status, t.UpdatedAt, t.ID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *PostgresTaskRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
