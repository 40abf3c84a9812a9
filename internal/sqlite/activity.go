package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mergington/activities/internal/domain/activity"
	"github.com/mergington/activities/internal/repository"
)

// ActivityRepository implements activity.Repository for SQLite
type ActivityRepository struct {
	db *DB
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Replace deletes all activities and participants and inserts the given set.
func (r *ActivityRepository) Replace(ctx context.Context, activities []activity.Activity) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM participants`); err != nil {
		return fmt.Errorf("failed to clear participants: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM activities`); err != nil {
		return fmt.Errorf("failed to clear activities: %w", err)
	}

	for i, a := range activities {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO activities (name, position, description, schedule, max_participants)
			VALUES (?, ?, ?, ?, ?)
		`, a.Name, i, a.Description, a.Schedule, a.MaxParticipants)
		if err != nil {
			return fmt.Errorf("failed to insert activity %q: %w", a.Name, err)
		}
		for _, email := range a.Participants {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO participants (activity_name, email) VALUES (?, ?)`,
				a.Name, email,
			); err != nil {
				return fmt.Errorf("failed to insert participant %q: %w", email, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed: %w", err)
	}
	return nil
}

// List returns every activity ordered by seed position.
func (r *ActivityRepository) List(ctx context.Context) (activity.Catalog, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT name, description, schedule, max_participants
		FROM activities
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}

	var catalog activity.Catalog
	index := make(map[string]int)
	for rows.Next() {
		a := activity.Activity{Participants: []string{}}
		if err := rows.Scan(&a.Name, &a.Description, &a.Schedule, &a.MaxParticipants); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		index[a.Name] = len(catalog)
		catalog = append(catalog, a)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("error iterating activity rows: %w", err)
	}
	rows.Close()

	prows, err := r.db.QueryContext(ctx, `SELECT activity_name, email FROM participants ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer prows.Close()

	for prows.Next() {
		var name, email string
		if err := prows.Scan(&name, &email); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		if i, ok := index[name]; ok {
			catalog[i].Participants = append(catalog[i].Participants, email)
		}
	}
	if err := prows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating participant rows: %w", err)
	}

	if catalog == nil {
		catalog = activity.Catalog{}
	}
	return catalog, nil
}

// Get returns a single activity by exact name.
func (r *ActivityRepository) Get(ctx context.Context, name string) (*activity.Activity, error) {
	a := activity.Activity{Participants: []string{}}
	err := r.db.QueryRowContext(ctx, `
		SELECT name, description, schedule, max_participants
		FROM activities
		WHERE name = ?
	`, name).Scan(&a.Name, &a.Description, &a.Schedule, &a.MaxParticipants)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT email FROM participants WHERE activity_name = ? ORDER BY id`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		a.Participants = append(a.Participants, email)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating participant rows: %w", err)
	}
	return &a, nil
}

// AddParticipant inserts email; the foreign key rejects unknown activities
// and the unique constraint rejects duplicates.
func (r *ActivityRepository) AddParticipant(ctx context.Context, name, email string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO participants (activity_name, email) VALUES (?, ?)`, name, email)
	switch {
	case err == nil:
		return nil
	case isForeignKeyViolation(err):
		return repository.ErrNotFound
	case isUniqueViolation(err):
		return repository.ErrConflict
	default:
		return fmt.Errorf("failed to add participant: %w", err)
	}
}

// RemoveParticipant deletes email from the activity.
func (r *ActivityRepository) RemoveParticipant(ctx context.Context, name, email string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM activities WHERE name = ?`, name).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to check activity: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`DELETE FROM participants WHERE activity_name = ? AND email = ?`, name, email)
	if err != nil {
		return fmt.Errorf("failed to remove participant: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return repository.ErrParticipantNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}
