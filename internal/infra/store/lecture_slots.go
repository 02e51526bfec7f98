package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/campusdesk/campusdesk/internal/domain"
)

type lectureSlotStore struct {
	db *sql.DB
}

func (s *lectureSlotStore) List(ctx context.Context) ([]domain.LectureSlot, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, day_of_week, start_time, end_time, subject_code, subject_name,
		       faculty, location, type, batch
		FROM lecture_slots
		ORDER BY day_of_week, position, start_time`)
	if err != nil {
		return nil, fmt.Errorf("list lecture slots: %w", err)
	}
	defer rows.Close()

	slots := make([]domain.LectureSlot, 0)
	for rows.Next() {
		var slot domain.LectureSlot
		var day int
		var slotType string
		err := rows.Scan(&slot.ID, &day, &slot.StartTime, &slot.EndTime,
			&slot.SubjectCode, &slot.SubjectName, &slot.Faculty, &slot.Location,
			&slotType, &slot.Batch)
		if err != nil {
			return nil, fmt.Errorf("scan lecture slot: %w", err)
		}
		slot.DayOfWeek = time.Weekday(day)
		slot.Type = domain.LectureType(slotType)
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list lecture slots: %w", err)
	}
	return slots, nil
}

// Replace installs a whole new weekly schedule in one transaction and
// records the lock instant. Slot order within a day is preserved.
func (s *lectureSlotStore) Replace(ctx context.Context, slots []domain.LectureSlot, lockedAt time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace timetable: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM lecture_slots`); err != nil {
		return fmt.Errorf("clear lecture slots: %w", err)
	}

	for position, slot := range slots {
		id := slot.ID
		if id == "" {
			id = uuid.NewString()
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO lecture_slots
				(id, day_of_week, start_time, end_time, subject_code, subject_name,
				 faculty, location, type, batch, position)
			VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
			id, int(slot.DayOfWeek), slot.StartTime, slot.EndTime,
			slot.SubjectCode, slot.SubjectName, slot.Faculty, slot.Location,
			string(slot.Type), slot.Batch, position,
		)
		if err != nil {
			return fmt.Errorf("insert lecture slot: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO timetable_meta (id, locked_at) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET locked_at=excluded.locked_at`,
		lockedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("record timetable lock: %w", err)
	}

	return tx.Commit()
}

func (s *lectureSlotStore) LockedAt(ctx context.Context) (*time.Time, error) {
	var lockedAt time.Time
	err := s.db.QueryRowContext(ctx, `SELECT locked_at FROM timetable_meta WHERE id=1`).Scan(&lockedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get timetable lock: %w", err)
	}
	return &lockedAt, nil
}
