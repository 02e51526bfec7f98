package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/campusdesk/campusdesk/internal/domain"
)

type actionItemStore struct {
	db *sql.DB
}

func (s *actionItemStore) List(ctx context.Context) ([]domain.ActionItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, text, date, time, notes, created_at, completed_at
		FROM action_items
		ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list action items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.ActionItem, 0)
	for rows.Next() {
		item, err := scanActionItem(rows)
		if err != nil {
			// One corrupt row must not take down the whole pass.
			slog.WarnContext(ctx, "skipping unreadable action item row",
				slog.String("error", err.Error()),
			)
			continue
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list action items: %w", err)
	}
	return items, nil
}

func (s *actionItemStore) Get(ctx context.Context, id string) (*domain.ActionItem, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, text, date, time, notes, created_at, completed_at
		FROM action_items WHERE id = ?`, id)

	item, err := scanActionItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrActionItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get action item: %w", err)
	}
	return item, nil
}

func (s *actionItemStore) Create(ctx context.Context, item *domain.ActionItem) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO action_items (id, text, date, time, notes, created_at, completed_at)
		VALUES (?,?,?,?,?,?,?)`,
		item.ID, item.Text, item.Date, item.Time, item.Notes,
		item.CreatedAt, nullTime(item.CompletedAt),
	)
	if err != nil {
		return fmt.Errorf("insert action item: %w", err)
	}
	return nil
}

func (s *actionItemStore) Update(ctx context.Context, item *domain.ActionItem) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE action_items SET text=?, date=?, time=?, notes=?
		WHERE id=?`,
		item.Text, item.Date, item.Time, item.Notes, item.ID,
	)
	if err != nil {
		return fmt.Errorf("update action item: %w", err)
	}
	return requireRow(res)
}

func (s *actionItemStore) SetCompleted(ctx context.Context, id string, completedAt *time.Time) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE action_items SET completed_at=? WHERE id=?`,
		nullTime(completedAt), id,
	)
	if err != nil {
		return fmt.Errorf("set action item completed: %w", err)
	}
	return requireRow(res)
}

func (s *actionItemStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM action_items WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete action item: %w", err)
	}
	return requireRow(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanActionItem(row rowScanner) (*domain.ActionItem, error) {
	var item domain.ActionItem
	var completedAt sql.NullTime

	err := row.Scan(&item.ID, &item.Text, &item.Date, &item.Time, &item.Notes,
		&item.CreatedAt, &completedAt)
	if err != nil {
		return nil, err
	}
	if completedAt.Valid {
		at := completedAt.Time
		item.CompletedAt = &at
	}
	return &item, nil
}

func requireRow(res sql.Result) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrActionItemNotFound
	}
	return nil
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
