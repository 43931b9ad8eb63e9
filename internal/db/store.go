package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/Joseda-hg/nexatask/internal/model"
)

const taskColumns = "id, title, description, category, priority, completed, due_date, tags, completed_at, created_at"

type TaskStore struct {
	DB *sql.DB
}

// TaskInput carries the caller-supplied fields for a new task. Nil optional
// fields take their documented defaults.
type TaskInput struct {
	Title       string
	Description string
	Category    string
	Priority    *int64
	DueDate     *string
	Tags        []string
}

func NewTaskStore(db *sql.DB) *TaskStore {
	return &TaskStore{DB: db}
}

// List returns every task, most recently created first.
func (s *TaskStore) List(ctx context.Context) ([]model.Task, error) {
	rows, err := s.DB.QueryContext(ctx,
		"SELECT "+taskColumns+" FROM tasks ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, storageErr("list tasks", err)
	}
	defer rows.Close()

	tasks := make([]model.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, storageErr("scan task", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list tasks", err)
	}

	return tasks, nil
}

func (s *TaskStore) Get(ctx context.Context, taskID int64) (model.Task, error) {
	row := s.DB.QueryRowContext(ctx,
		"SELECT "+taskColumns+" FROM tasks WHERE id = ?", taskID)
	task, err := scanTask(row)
	if err != nil {
		return model.Task{}, storageErr("get task", err)
	}
	return task, nil
}

func (s *TaskStore) Create(ctx context.Context, input TaskInput) (model.Task, error) {
	if input.Title == "" {
		return model.Task{}, &ValidationError{Field: "title", Reason: "is required"}
	}

	category := input.Category
	if category == "" {
		category = "General"
	}
	priority := int64(1)
	if input.Priority != nil {
		priority = *input.Priority
	}

	tags, err := encodeTags(input.Tags)
	if err != nil {
		return model.Task{}, storageErr("encode tags", err)
	}

	result, err := s.DB.ExecContext(ctx, `
		INSERT INTO tasks (title, description, category, priority, completed, due_date, tags, created_at)
		VALUES (?, ?, ?, ?, 0, ?, ?, ?)`,
		input.Title, input.Description, category, priority,
		nullableString(input.DueDate), tags, time.Now().UTC())
	if err != nil {
		return model.Task{}, storageErr("insert task", err)
	}

	taskID, err := result.LastInsertId()
	if err != nil {
		return model.Task{}, storageErr("insert task", err)
	}

	return s.Get(ctx, taskID)
}

// SetCompleted applies a completion toggle: completed_at is stamped on the
// transition to true and cleared on the transition back. An unknown id
// affects zero rows and is not an error.
func (s *TaskStore) SetCompleted(ctx context.Context, taskID int64, patch model.CompletionPatch) error {
	var completedAt any
	if patch.Completed {
		completedAt = time.Now().UTC()
	}

	if _, err := s.DB.ExecContext(ctx,
		"UPDATE tasks SET completed = ?, completed_at = ? WHERE id = ?",
		patch.Completed, completedAt, taskID); err != nil {
		return storageErr("update completion", err)
	}
	return nil
}

// ReplaceFields overwrites all six descriptive fields at once; fields the
// caller left zero are stored as such (tags clear to empty, due_date to
// null). The title invariant still holds: an empty title is rejected rather
// than stored. An unknown id affects zero rows and is not an error.
func (s *TaskStore) ReplaceFields(ctx context.Context, taskID int64, patch model.FieldPatch) error {
	if patch.Title == "" {
		return &ValidationError{Field: "title", Reason: "is required"}
	}

	tags, err := encodeTags(patch.Tags)
	if err != nil {
		return storageErr("encode tags", err)
	}

	if _, err := s.DB.ExecContext(ctx, `
		UPDATE tasks SET title = ?, description = ?, category = ?, priority = ?, due_date = ?, tags = ?
		WHERE id = ?`,
		patch.Title, patch.Description, patch.Category, patch.Priority,
		nullableString(patch.DueDate), tags, taskID); err != nil {
		return storageErr("update task", err)
	}
	return nil
}

// Delete removes the task if present; deleting an absent id is a no-op.
func (s *TaskStore) Delete(ctx context.Context, taskID int64) error {
	if _, err := s.DB.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", taskID); err != nil {
		return storageErr("delete task", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (model.Task, error) {
	var (
		task        model.Task
		description sql.NullString
		dueDate     sql.NullString
		tags        sql.NullString
		completedAt sql.NullTime
	)

	if err := row.Scan(&task.ID, &task.Title, &description, &task.Category,
		&task.Priority, &task.Completed, &dueDate, &tags, &completedAt,
		&task.CreatedAt); err != nil {
		return model.Task{}, err
	}

	task.Description = description.String
	if dueDate.Valid {
		value := dueDate.String
		task.DueDate = &value
	}
	if completedAt.Valid {
		value := completedAt.Time
		task.CompletedAt = &value
	}

	decoded, err := decodeTags(tags.String)
	if err != nil {
		return model.Task{}, err
	}
	task.Tags = decoded

	return task, nil
}

// Tags live in a single JSON TEXT column and must round-trip in order.
func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeTags(raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []string{}
	}
	return tags, nil
}

func nullableString(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *value, Valid: true}
}
