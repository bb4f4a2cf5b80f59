package repository

import (
	"context"
	"fmt"

	"symposium-registration/internal/data/entity"
	"symposium-registration/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type PassIssuanceRepository interface {
	Create(ctx context.Context, issuance *entity.PassIssuance) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.PassIssuance, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.PassIssuance, error)
	MarkIssued(ctx context.Context, id uuid.UUID) error
}

type passIssuanceRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPassIssuanceRepository(db database.PgxIface, log *zap.Logger) PassIssuanceRepository {
	return &passIssuanceRepository{
		db:  db,
		log: log.With(zap.String("repository", "pass_issuance")),
	}
}

func (r *passIssuanceRepository) Create(ctx context.Context, issuance *entity.PassIssuance) error {
	query := `
		INSERT INTO pass_issuances (id, user_id, pass_id, registration_id, issued, issued_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		issuance.ID,
		issuance.UserID,
		issuance.PassID,
		issuance.RegistrationID,
		issuance.Issued,
		issuance.IssuedAt,
		issuance.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create pass issuance",
			zap.Error(err),
			zap.String("user_id", issuance.UserID.String()),
			zap.String("pass_id", issuance.PassID.String()),
		)
		return fmt.Errorf("create pass issuance for user %s: %w", issuance.UserID.String(), err)
	}

	return nil
}

func (r *passIssuanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.PassIssuance, error) {
	query := `
		SELECT id, user_id, pass_id, registration_id, issued, issued_at, created_at
		FROM pass_issuances
		WHERE id = $1
	`

	var issuance entity.PassIssuance
	err := r.db.QueryRow(ctx, query, id).Scan(
		&issuance.ID,
		&issuance.UserID,
		&issuance.PassID,
		&issuance.RegistrationID,
		&issuance.Issued,
		&issuance.IssuedAt,
		&issuance.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find pass issuance by ID",
			zap.Error(err),
			zap.String("issuance_id", id.String()),
		)
		return nil, fmt.Errorf("find pass issuance by ID %s: %w", id.String(), err)
	}

	return &issuance, nil
}

func (r *passIssuanceRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.PassIssuance, error) {
	query := `
		SELECT id, user_id, pass_id, registration_id, issued, issued_at, created_at
		FROM pass_issuances
		WHERE user_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find pass issuances by user",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find pass issuances for user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var issuances []*entity.PassIssuance
	for rows.Next() {
		var issuance entity.PassIssuance
		err := rows.Scan(
			&issuance.ID,
			&issuance.UserID,
			&issuance.PassID,
			&issuance.RegistrationID,
			&issuance.Issued,
			&issuance.IssuedAt,
			&issuance.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan pass issuance row", zap.Error(err))
			return nil, fmt.Errorf("scan pass issuance row: %w", err)
		}
		issuances = append(issuances, &issuance)
	}

	return issuances, nil
}

func (r *passIssuanceRepository) MarkIssued(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE pass_issuances
		SET issued = true, issued_at = NOW()
		WHERE id = $1 AND issued = false
	`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to mark pass issued",
			zap.Error(err),
			zap.String("issuance_id", id.String()),
		)
		return fmt.Errorf("mark pass issuance %s issued: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("pass issuance %s not found or already issued", id.String())
	}

	return nil
}
