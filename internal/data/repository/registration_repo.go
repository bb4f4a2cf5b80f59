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

type RegistrationRepository interface {
	Create(ctx context.Context, reg *entity.Registration) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Registration, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Registration, error)
	FindByTransactionID(ctx context.Context, transactionID string) ([]*entity.Registration, error)
	FindPending(ctx context.Context, limit, offset int) ([]*entity.Registration, error)
	CountPending(ctx context.Context) (int64, error)
	SetVerified(ctx context.Context, id uuid.UUID, verified bool) error
	GetProof(ctx context.Context, id uuid.UUID) (string, []byte, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type registrationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRegistrationRepository(db database.PgxIface, log *zap.Logger) RegistrationRepository {
	return &registrationRepository{
		db:  db,
		log: log.With(zap.String("repository", "registration")),
	}
}

const registrationColumns = `id, user_id, kind, item_id, item_name, quantity,
	workshop_event_ids, transaction_id, transaction_time, transaction_date,
	transaction_amount, proof_name, verified, created_at, updated_at`

func scanRegistration(row pgx.Row) (*entity.Registration, error) {
	var reg entity.Registration
	err := row.Scan(
		&reg.ID,
		&reg.UserID,
		&reg.Kind,
		&reg.ItemID,
		&reg.ItemName,
		&reg.Quantity,
		&reg.WorkshopEventIDs,
		&reg.TransactionID,
		&reg.TransactionTime,
		&reg.TransactionDate,
		&reg.TransactionAmount,
		&reg.ProofName,
		&reg.Verified,
		&reg.CreatedAt,
		&reg.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *registrationRepository) Create(ctx context.Context, reg *entity.Registration) error {
	query := `
		INSERT INTO registrations (id, user_id, kind, item_id, item_name, quantity,
		                          workshop_event_ids, transaction_id, transaction_time,
		                          transaction_date, transaction_amount, proof_name,
		                          proof_data, verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.db.Exec(ctx, query,
		reg.ID,
		reg.UserID,
		reg.Kind,
		reg.ItemID,
		reg.ItemName,
		reg.Quantity,
		reg.WorkshopEventIDs,
		reg.TransactionID,
		reg.TransactionTime,
		reg.TransactionDate,
		reg.TransactionAmount,
		reg.ProofName,
		reg.ProofData,
		reg.Verified,
		reg.CreatedAt,
		reg.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create registration",
			zap.Error(err),
			zap.String("user_id", reg.UserID.String()),
			zap.String("transaction_id", reg.TransactionID),
		)
		return fmt.Errorf("create registration for transaction %s: %w", reg.TransactionID, err)
	}

	return nil
}

func (r *registrationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Registration, error) {
	query := `
		SELECT ` + registrationColumns + `
		FROM registrations
		WHERE id = $1
	`

	reg, err := scanRegistration(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find registration by ID",
			zap.Error(err),
			zap.String("registration_id", id.String()),
		)
		return nil, fmt.Errorf("find registration by ID %s: %w", id.String(), err)
	}

	return reg, nil
}

func (r *registrationRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Registration, error) {
	query := `
		SELECT ` + registrationColumns + `
		FROM registrations
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find registrations by user",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find registrations for user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var regs []*entity.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			r.log.Error("Failed to scan registration row", zap.Error(err))
			return nil, fmt.Errorf("scan registration row: %w", err)
		}
		regs = append(regs, reg)
	}

	return regs, nil
}

func (r *registrationRepository) FindByTransactionID(ctx context.Context, transactionID string) ([]*entity.Registration, error) {
	query := `
		SELECT ` + registrationColumns + `
		FROM registrations
		WHERE transaction_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, transactionID)
	if err != nil {
		r.log.Error("Failed to find registrations by transaction ID",
			zap.Error(err),
			zap.String("transaction_id", transactionID),
		)
		return nil, fmt.Errorf("find registrations for transaction %s: %w", transactionID, err)
	}
	defer rows.Close()

	var regs []*entity.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			r.log.Error("Failed to scan registration row", zap.Error(err))
			return nil, fmt.Errorf("scan registration row: %w", err)
		}
		regs = append(regs, reg)
	}

	return regs, nil
}

func (r *registrationRepository) FindPending(ctx context.Context, limit, offset int) ([]*entity.Registration, error) {
	query := `
		SELECT ` + registrationColumns + `
		FROM registrations
		WHERE verified IS NULL
		ORDER BY created_at
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find pending registrations",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find pending registrations: %w", err)
	}
	defer rows.Close()

	var regs []*entity.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			r.log.Error("Failed to scan registration row", zap.Error(err))
			return nil, fmt.Errorf("scan registration row: %w", err)
		}
		regs = append(regs, reg)
	}

	return regs, nil
}

func (r *registrationRepository) CountPending(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM registrations WHERE verified IS NULL`

	var count int64
	err := r.db.QueryRow(ctx, query).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count pending registrations", zap.Error(err))
		return 0, fmt.Errorf("count pending registrations: %w", err)
	}

	return count, nil
}

// SetVerified flips a pending registration. Rows already verified or rejected
// are never touched; the flag is terminal.
func (r *registrationRepository) SetVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	query := `
		UPDATE registrations
		SET verified = $2, updated_at = NOW()
		WHERE id = $1 AND verified IS NULL
	`

	result, err := r.db.Exec(ctx, query, id, verified)
	if err != nil {
		r.log.Error("Failed to set registration verified flag",
			zap.Error(err),
			zap.String("registration_id", id.String()),
			zap.Bool("verified", verified),
		)
		return fmt.Errorf("set registration %s verified: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("registration %s not found or already processed", id.String())
	}

	return nil
}

// GetProof loads the proof blob for a single registration. It is the only
// query that touches proof_data; everything else leaves the bytes in the
// database.
func (r *registrationRepository) GetProof(ctx context.Context, id uuid.UUID) (string, []byte, error) {
	query := `SELECT proof_name, proof_data FROM registrations WHERE id = $1`

	var name string
	var data []byte
	err := r.db.QueryRow(ctx, query, id).Scan(&name, &data)
	if err == pgx.ErrNoRows {
		return "", nil, fmt.Errorf("registration %s not found", id.String())
	}
	if err != nil {
		r.log.Error("Failed to load payment proof",
			zap.Error(err),
			zap.String("registration_id", id.String()),
		)
		return "", nil, fmt.Errorf("load proof for registration %s: %w", id.String(), err)
	}

	return name, data, nil
}

func (r *registrationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM registrations WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete registration",
			zap.Error(err),
			zap.String("registration_id", id.String()),
		)
		return fmt.Errorf("delete registration %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("registration %s not found", id.String())
	}

	r.log.Info("Registration deleted", zap.String("registration_id", id.String()))
	return nil
}
