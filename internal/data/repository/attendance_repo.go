package repository

import (
	"context"
	"fmt"
	"time"

	"symposium-registration/internal/data/entity"
	"symposium-registration/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AttendanceRepository interface {
	Upsert(ctx context.Context, att *entity.Attendance) error
	FindByEvent(ctx context.Context, eventID uuid.UUID) ([]*entity.Attendance, error)
}

type attendanceRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAttendanceRepository(db database.PgxIface, log *zap.Logger) AttendanceRepository {
	return &attendanceRepository{
		db:  db,
		log: log.With(zap.String("repository", "attendance")),
	}
}

// Upsert marks a user's attendance for an event. Re-marking overwrites the
// previous mark.
func (r *attendanceRepository) Upsert(ctx context.Context, att *entity.Attendance) error {
	query := `
		INSERT INTO attendance (id, event_id, user_id, present, marked_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (event_id, user_id)
		DO UPDATE SET present = EXCLUDED.present, marked_by = EXCLUDED.marked_by
	`

	_, err := r.db.Exec(ctx, query,
		att.ID,
		att.EventID,
		att.UserID,
		att.Present,
		att.MarkedBy,
		time.Now(),
	)

	if err != nil {
		r.log.Error("Failed to mark attendance",
			zap.Error(err),
			zap.String("event_id", att.EventID.String()),
			zap.String("user_id", att.UserID.String()),
		)
		return fmt.Errorf("mark attendance for user %s: %w", att.UserID.String(), err)
	}

	return nil
}

func (r *attendanceRepository) FindByEvent(ctx context.Context, eventID uuid.UUID) ([]*entity.Attendance, error) {
	query := `
		SELECT id, event_id, user_id, present, marked_by, created_at
		FROM attendance
		WHERE event_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, eventID)
	if err != nil {
		r.log.Error("Failed to find attendance by event",
			zap.Error(err),
			zap.String("event_id", eventID.String()),
		)
		return nil, fmt.Errorf("find attendance for event %s: %w", eventID.String(), err)
	}
	defer rows.Close()

	var marks []*entity.Attendance
	for rows.Next() {
		var att entity.Attendance
		err := rows.Scan(
			&att.ID,
			&att.EventID,
			&att.UserID,
			&att.Present,
			&att.MarkedBy,
			&att.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan attendance row", zap.Error(err))
			return nil, fmt.Errorf("scan attendance row: %w", err)
		}
		marks = append(marks, &att)
	}

	return marks, nil
}
