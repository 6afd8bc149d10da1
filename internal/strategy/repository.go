package strategy

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Repository defines the interface for execution history persistence.
type Repository interface {
	CreateExecution(ctx context.Context, exec *Execution) error
	GetExecution(ctx context.Context, id string) (*Execution, error)
	ListExecutions(ctx context.Context, observerID string, limit int) ([]Execution, error)
}

// executionColumns is the SELECT column list for execution queries.
const executionColumns = `id, observer_id, mode, status, steps, rejected, skipped,
			started_at, completed_at, duration_ms`

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-backed repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// CreateExecution inserts a new execution record.
func (r *SQLiteRepository) CreateExecution(ctx context.Context, exec *Execution) error {
	stepsJSON, err := json.Marshal(exec.Steps)
	if err != nil {
		return fmt.Errorf("marshalling steps: %w", err)
	}
	rejectedJSON, err := marshalIndices(exec.Rejected)
	if err != nil {
		return fmt.Errorf("marshalling rejected picks: %w", err)
	}
	skippedJSON, err := marshalIndices(exec.Skipped)
	if err != nil {
		return fmt.Errorf("marshalling skipped indices: %w", err)
	}

	query := `
		INSERT INTO strategy_executions (
			id, observer_id, mode, status, steps, rejected, skipped,
			started_at, completed_at, duration_ms
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = r.db.ExecContext(ctx, query,
		exec.ID,
		exec.ObserverID,
		string(exec.Mode),
		string(exec.Status),
		string(stepsJSON),
		rejectedJSON,
		skippedJSON,
		exec.StartedAt.Format(time.RFC3339),
		exec.CompletedAt.Format(time.RFC3339),
		exec.DurationMS,
	)
	if err != nil {
		return fmt.Errorf("inserting execution: %w", err)
	}
	return nil
}

// GetExecution retrieves an execution by ID.
func (r *SQLiteRepository) GetExecution(ctx context.Context, id string) (*Execution, error) {
	query := `SELECT ` + executionColumns + ` FROM strategy_executions WHERE id = ?`

	row := r.db.QueryRowContext(ctx, query, id)
	exec, err := scanExecutionRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrExecutionNotFound
		}
		return nil, fmt.Errorf("querying execution: %w", err)
	}
	return exec, nil
}

// ListExecutions retrieves recent executions, newest first.
// An empty observerID lists executions for every observer.
func (r *SQLiteRepository) ListExecutions(ctx context.Context, observerID string, limit int) ([]Execution, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	query := `SELECT ` + executionColumns + ` FROM strategy_executions`
	args := []any{}
	if observerID != "" {
		query += ` WHERE observer_id = ?`
		args = append(args, observerID)
	}
	query += ` ORDER BY started_at DESC, rowid DESC LIMIT ?`
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying executions: %w", err)
	}
	defer rows.Close()

	var executions []Execution
	for rows.Next() {
		exec, scanErr := scanExecutionRow(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scanning execution: %w", scanErr)
		}
		executions = append(executions, *exec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating executions: %w", err)
	}
	return executions, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExecutionRow(scanner rowScanner) (*Execution, error) {
	var e Execution
	var mode, status, stepsJSON, startedAt, completedAt string
	var rejectedJSON, skippedJSON sql.NullString

	err := scanner.Scan(
		&e.ID,
		&e.ObserverID,
		&mode,
		&status,
		&stepsJSON,
		&rejectedJSON,
		&skippedJSON,
		&startedAt,
		&completedAt,
		&e.DurationMS,
	)
	if err != nil {
		return nil, err
	}

	e.Mode = Mode(mode)
	e.Status = ExecutionStatus(status)
	if t, parseErr := time.Parse(time.RFC3339, startedAt); parseErr == nil {
		e.StartedAt = t
	}
	if t, parseErr := time.Parse(time.RFC3339, completedAt); parseErr == nil {
		e.CompletedAt = t
	}

	if stepsJSON != "" && stepsJSON != "null" {
		if jsonErr := json.Unmarshal([]byte(stepsJSON), &e.Steps); jsonErr != nil {
			return nil, fmt.Errorf("unmarshalling steps: %w", jsonErr)
		}
	}
	if e.Steps == nil {
		e.Steps = []Step{}
	}

	if rejectedJSON.Valid && rejectedJSON.String != "" {
		if jsonErr := json.Unmarshal([]byte(rejectedJSON.String), &e.Rejected); jsonErr != nil {
			return nil, fmt.Errorf("unmarshalling rejected picks: %w", jsonErr)
		}
	}
	if skippedJSON.Valid && skippedJSON.String != "" {
		if jsonErr := json.Unmarshal([]byte(skippedJSON.String), &e.Skipped); jsonErr != nil {
			return nil, fmt.Errorf("unmarshalling skipped indices: %w", jsonErr)
		}
	}

	return &e, nil
}

func marshalIndices(indices []int) (sql.NullString, error) {
	if len(indices) == 0 {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(indices)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}
