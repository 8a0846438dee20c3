package repository

import (
	"context"
	"fmt"

	"salon-booking/internal/data/entity"
	"salon-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TreatmentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Treatment, error)
	FindByShopID(ctx context.Context, shopID uuid.UUID) ([]*entity.Treatment, error)
}

type treatmentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTreatmentRepository(db database.PgxIface, log *zap.Logger) TreatmentRepository {
	return &treatmentRepository{
		db:  db,
		log: log.With(zap.String("repository", "treatment")),
	}
}

func (r *treatmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Treatment, error) {
	query := `
		SELECT id, shop_id, name, price, duration_minutes, description, created_at, updated_at
		FROM treatments
		WHERE id = $1
	`

	var treatment entity.Treatment
	err := r.db.QueryRow(ctx, query, id).Scan(
		&treatment.ID,
		&treatment.ShopID,
		&treatment.Name,
		&treatment.Price,
		&treatment.DurationMinutes,
		&treatment.Description,
		&treatment.CreatedAt,
		&treatment.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find treatment by ID",
			zap.Error(err),
			zap.String("treatment_id", id.String()),
		)
		return nil, fmt.Errorf("find treatment by ID %s: %w", id.String(), err)
	}

	return &treatment, nil
}

func (r *treatmentRepository) FindByShopID(ctx context.Context, shopID uuid.UUID) ([]*entity.Treatment, error) {
	query := `
		SELECT id, shop_id, name, price, duration_minutes, description, created_at, updated_at
		FROM treatments
		WHERE shop_id = $1
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query, shopID)
	if err != nil {
		r.log.Error("Failed to find treatments by shop ID",
			zap.Error(err),
			zap.String("shop_id", shopID.String()),
		)
		return nil, fmt.Errorf("find treatments by shop ID %s: %w", shopID.String(), err)
	}
	defer rows.Close()

	var treatments []*entity.Treatment
	for rows.Next() {
		var treatment entity.Treatment
		err := rows.Scan(
			&treatment.ID,
			&treatment.ShopID,
			&treatment.Name,
			&treatment.Price,
			&treatment.DurationMinutes,
			&treatment.Description,
			&treatment.CreatedAt,
			&treatment.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan treatment row: %w", err)
		}
		treatments = append(treatments, &treatment)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate treatment rows: %w", rows.Err())
	}

	return treatments, nil
}
