package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/todo-service/internal/domain"
)

const todoColumns = `id, owner_id, assignee_id, title, description, completed, priority,
               due_date, duration_minutes, estimated_minutes, time_spent_minutes,
               status, ticket_type, created_at, updated_at`

type todoRepository struct {
	pool *pgxpool.Pool
}

// NewTodoRepository returns a Postgres-backed implementation.
func NewTodoRepository(pool *pgxpool.Pool) TodoRepository {
	return &todoRepository{pool: pool}
}

func (r *todoRepository) Create(ctx context.Context, todo *domain.Todo) error {
	const query = `
        INSERT INTO todos (owner_id, assignee_id, title, description, completed, priority,
                           due_date, duration_minutes, estimated_minutes, time_spent_minutes,
                           status, ticket_type)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		todo.OwnerID,
		todo.AssigneeID,
		todo.Title,
		todo.Description,
		todo.Completed,
		todo.Priority,
		todo.DueDate,
		todo.DurationMinutes,
		todo.EstimatedMinutes,
		todo.TimeSpentMinutes,
		todo.Status,
		todo.TicketType,
	).Scan(&todo.ID, &todo.CreatedAt, &todo.UpdatedAt)
}

func (r *todoRepository) Update(ctx context.Context, todo *domain.Todo) error {
	const query = `
        UPDATE todos SET assignee_id=$1, title=$2, description=$3, completed=$4, priority=$5,
            due_date=$6, duration_minutes=$7, estimated_minutes=$8, time_spent_minutes=$9,
            status=$10, ticket_type=$11, updated_at=NOW()
        WHERE id=$12 AND owner_id=$13`
	cmd, err := r.pool.Exec(ctx, query,
		todo.AssigneeID,
		todo.Title,
		todo.Description,
		todo.Completed,
		todo.Priority,
		todo.DueDate,
		todo.DurationMinutes,
		todo.EstimatedMinutes,
		todo.TimeSpentMinutes,
		todo.Status,
		todo.TicketType,
		todo.ID,
		todo.OwnerID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *todoRepository) GetByID(ctx context.Context, ownerID, id string) (*domain.Todo, error) {
	const query = `SELECT ` + todoColumns + ` FROM todos WHERE id=$1 AND owner_id=$2`

	var todo domain.Todo
	if err := scanTodo(r.pool.QueryRow(ctx, query, id, ownerID), &todo); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &todo, nil
}

func (r *todoRepository) ListByOwner(ctx context.Context, ownerID string, offset, limit int) ([]domain.Todo, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	const query = `SELECT ` + todoColumns + ` FROM todos
             WHERE owner_id=$1 ORDER BY created_at LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Todo
	for rows.Next() {
		var todo domain.Todo
		if err := scanTodo(rows, &todo); err != nil {
			return nil, err
		}
		result = append(result, todo)
	}
	return result, rows.Err()
}

func (r *todoRepository) Delete(ctx context.Context, ownerID, id string) error {
	const query = `DELETE FROM todos WHERE id=$1 AND owner_id=$2`
	cmd, err := r.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanTodo(row pgx.Row, todo *domain.Todo) error {
	return row.Scan(
		&todo.ID,
		&todo.OwnerID,
		&todo.AssigneeID,
		&todo.Title,
		&todo.Description,
		&todo.Completed,
		&todo.Priority,
		&todo.DueDate,
		&todo.DurationMinutes,
		&todo.EstimatedMinutes,
		&todo.TimeSpentMinutes,
		&todo.Status,
		&todo.TicketType,
		&todo.CreatedAt,
		&todo.UpdatedAt,
	)
}
