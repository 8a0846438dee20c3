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

type ShopRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Shop, error)
	FindOwnerIDByShopID(ctx context.Context, shopID uuid.UUID) (uuid.UUID, bool, error)
}

type shopRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewShopRepository(db database.PgxIface, log *zap.Logger) ShopRepository {
	return &shopRepository{
		db:  db,
		log: log.With(zap.String("repository", "shop")),
	}
}

func (r *shopRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Shop, error) {
	query := `
		SELECT id, owner_id, name, phone_number, address, operating_hours, created_at, updated_at
		FROM shops
		WHERE id = $1
	`

	var (
		shop     entity.Shop
		schedule map[string]string
	)
	err := r.db.QueryRow(ctx, query, id).Scan(
		&shop.ID,
		&shop.OwnerID,
		&shop.Name,
		&shop.PhoneNumber,
		&shop.Address,
		&schedule,
		&shop.CreatedAt,
		&shop.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find shop by ID",
			zap.Error(err),
			zap.String("shop_id", id.String()),
		)
		return nil, fmt.Errorf("find shop by ID %s: %w", id.String(), err)
	}

	hours, err := entity.NewOperatingHours(schedule)
	if err != nil {
		r.log.Error("Shop has malformed operating hours",
			zap.Error(err),
			zap.String("shop_id", id.String()),
		)
		return nil, fmt.Errorf("operating hours of shop %s: %w", id.String(), err)
	}
	shop.OperatingHours = hours

	return &shop, nil
}

func (r *shopRepository) FindOwnerIDByShopID(ctx context.Context, shopID uuid.UUID) (uuid.UUID, bool, error) {
	query := `SELECT owner_id FROM shops WHERE id = $1`

	var ownerID uuid.UUID
	err := r.db.QueryRow(ctx, query, shopID).Scan(&ownerID)
	if err == pgx.ErrNoRows {
		return uuid.Nil, false, nil
	}
	if err != nil {
		r.log.Error("Failed to find owner by shop ID",
			zap.Error(err),
			zap.String("shop_id", shopID.String()),
		)
		return uuid.Nil, false, fmt.Errorf("find owner by shop ID %s: %w", shopID.String(), err)
	}

	return ownerID, true, nil
}
