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

type PassRepository interface {
	Create(ctx context.Context, pass *entity.Pass) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Pass, error)
	FindAll(ctx context.Context) ([]*entity.Pass, error)
	Update(ctx context.Context, pass *entity.Pass) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type passRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPassRepository(db database.PgxIface, log *zap.Logger) PassRepository {
	return &passRepository{
		db:  db,
		log: log.With(zap.String("repository", "pass")),
	}
}

func (r *passRepository) Create(ctx context.Context, pass *entity.Pass) error {
	query := `
		INSERT INTO passes (id, name, description, category, cost, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		pass.ID,
		pass.Name,
		pass.Description,
		pass.Category,
		pass.Cost,
		pass.CreatedAt,
		pass.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create pass",
			zap.Error(err),
			zap.String("name", pass.Name),
		)
		return fmt.Errorf("create pass %s: %w", pass.Name, err)
	}

	return nil
}

func (r *passRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Pass, error) {
	query := `
		SELECT id, name, description, category, cost, created_at, updated_at, deleted_at
		FROM passes
		WHERE id = $1 AND deleted_at IS NULL
	`

	var pass entity.Pass
	err := r.db.QueryRow(ctx, query, id).Scan(
		&pass.ID,
		&pass.Name,
		&pass.Description,
		&pass.Category,
		&pass.Cost,
		&pass.CreatedAt,
		&pass.UpdatedAt,
		&pass.DeletedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find pass by ID",
			zap.Error(err),
			zap.String("pass_id", id.String()),
		)
		return nil, fmt.Errorf("find pass by ID %s: %w", id.String(), err)
	}

	return &pass, nil
}

func (r *passRepository) FindAll(ctx context.Context) ([]*entity.Pass, error) {
	query := `
		SELECT id, name, description, category, cost, created_at, updated_at, deleted_at
		FROM passes
		WHERE deleted_at IS NULL
		ORDER BY cost
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find passes", zap.Error(err))
		return nil, fmt.Errorf("find passes: %w", err)
	}
	defer rows.Close()

	var passes []*entity.Pass
	for rows.Next() {
		var pass entity.Pass
		err := rows.Scan(
			&pass.ID,
			&pass.Name,
			&pass.Description,
			&pass.Category,
			&pass.Cost,
			&pass.CreatedAt,
			&pass.UpdatedAt,
			&pass.DeletedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan pass row", zap.Error(err))
			return nil, fmt.Errorf("scan pass row: %w", err)
		}
		passes = append(passes, &pass)
	}

	return passes, nil
}

func (r *passRepository) Update(ctx context.Context, pass *entity.Pass) error {
	query := `
		UPDATE passes
		SET name = $2, description = $3, category = $4, cost = $5, updated_at = $6
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query,
		pass.ID,
		pass.Name,
		pass.Description,
		pass.Category,
		pass.Cost,
		pass.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update pass",
			zap.Error(err),
			zap.String("pass_id", pass.ID.String()),
		)
		return fmt.Errorf("update pass %s: %w", pass.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("pass %s not found", pass.ID.String())
	}

	return nil
}

func (r *passRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE passes SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete pass",
			zap.Error(err),
			zap.String("pass_id", id.String()),
		)
		return fmt.Errorf("delete pass %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("pass %s not found", id.String())
	}

	r.log.Info("Pass deleted", zap.String("pass_id", id.String()))
	return nil
}
