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

type AccommodationRepository interface {
	Create(ctx context.Context, acc *entity.Accommodation) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Accommodation, error)
	FindAll(ctx context.Context) ([]*entity.Accommodation, error)
	Update(ctx context.Context, acc *entity.Accommodation) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Inventory. ReserveRoom is the authoritative write: the availability a
	// caller read beforehand is advisory only.
	ReserveRoom(ctx context.Context, id uuid.UUID) (bool, error)
	ReleaseRoom(ctx context.Context, id uuid.UUID) error
}

type accommodationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAccommodationRepository(db database.PgxIface, log *zap.Logger) AccommodationRepository {
	return &accommodationRepository{
		db:  db,
		log: log.With(zap.String("repository", "accommodation")),
	}
}

func (r *accommodationRepository) Create(ctx context.Context, acc *entity.Accommodation) error {
	query := `
		INSERT INTO accommodations (id, name, description, cost_per_night, rooms_available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		acc.ID,
		acc.Name,
		acc.Description,
		acc.CostPerNight,
		acc.RoomsAvailable,
		acc.CreatedAt,
		acc.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create accommodation",
			zap.Error(err),
			zap.String("name", acc.Name),
		)
		return fmt.Errorf("create accommodation %s: %w", acc.Name, err)
	}

	return nil
}

func (r *accommodationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Accommodation, error) {
	query := `
		SELECT id, name, description, cost_per_night, rooms_available, created_at, updated_at, deleted_at
		FROM accommodations
		WHERE id = $1 AND deleted_at IS NULL
	`

	var acc entity.Accommodation
	err := r.db.QueryRow(ctx, query, id).Scan(
		&acc.ID,
		&acc.Name,
		&acc.Description,
		&acc.CostPerNight,
		&acc.RoomsAvailable,
		&acc.CreatedAt,
		&acc.UpdatedAt,
		&acc.DeletedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find accommodation by ID",
			zap.Error(err),
			zap.String("accommodation_id", id.String()),
		)
		return nil, fmt.Errorf("find accommodation by ID %s: %w", id.String(), err)
	}

	return &acc, nil
}

func (r *accommodationRepository) FindAll(ctx context.Context) ([]*entity.Accommodation, error) {
	query := `
		SELECT id, name, description, cost_per_night, rooms_available, created_at, updated_at, deleted_at
		FROM accommodations
		WHERE deleted_at IS NULL
		ORDER BY cost_per_night
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find accommodations", zap.Error(err))
		return nil, fmt.Errorf("find accommodations: %w", err)
	}
	defer rows.Close()

	var accs []*entity.Accommodation
	for rows.Next() {
		var acc entity.Accommodation
		err := rows.Scan(
			&acc.ID,
			&acc.Name,
			&acc.Description,
			&acc.CostPerNight,
			&acc.RoomsAvailable,
			&acc.CreatedAt,
			&acc.UpdatedAt,
			&acc.DeletedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan accommodation row", zap.Error(err))
			return nil, fmt.Errorf("scan accommodation row: %w", err)
		}
		accs = append(accs, &acc)
	}

	return accs, nil
}

func (r *accommodationRepository) Update(ctx context.Context, acc *entity.Accommodation) error {
	query := `
		UPDATE accommodations
		SET name = $2, description = $3, cost_per_night = $4, rooms_available = $5, updated_at = $6
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query,
		acc.ID,
		acc.Name,
		acc.Description,
		acc.CostPerNight,
		acc.RoomsAvailable,
		acc.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update accommodation",
			zap.Error(err),
			zap.String("accommodation_id", acc.ID.String()),
		)
		return fmt.Errorf("update accommodation %s: %w", acc.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("accommodation %s not found", acc.ID.String())
	}

	return nil
}

func (r *accommodationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE accommodations SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete accommodation",
			zap.Error(err),
			zap.String("accommodation_id", id.String()),
		)
		return fmt.Errorf("delete accommodation %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("accommodation %s not found", id.String())
	}

	r.log.Info("Accommodation deleted", zap.String("accommodation_id", id.String()))
	return nil
}

// ReserveRoom decrements rooms_available by one. Returns false when no room
// was left at the moment of the write.
func (r *accommodationRepository) ReserveRoom(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		UPDATE accommodations
		SET rooms_available = rooms_available - 1, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL AND rooms_available > 0
	`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to reserve room",
			zap.Error(err),
			zap.String("accommodation_id", id.String()),
		)
		return false, fmt.Errorf("reserve room %s: %w", id.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *accommodationRepository) ReleaseRoom(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE accommodations
		SET rooms_available = rooms_available + 1, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	_, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to release room",
			zap.Error(err),
			zap.String("accommodation_id", id.String()),
		)
		return fmt.Errorf("release room %s: %w", id.String(), err)
	}

	return nil
}
