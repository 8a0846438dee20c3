package repository

import (
	"context"
	"fmt"

	"salon-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type DeviceTokenRepository interface {
	FindTokensByUserID(ctx context.Context, userID uuid.UUID) ([]string, error)
}

type deviceTokenRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewDeviceTokenRepository(db database.PgxIface, log *zap.Logger) DeviceTokenRepository {
	return &deviceTokenRepository{
		db:  db,
		log: log.With(zap.String("repository", "device_token")),
	}
}

func (r *deviceTokenRepository) FindTokensByUserID(ctx context.Context, userID uuid.UUID) ([]string, error) {
	query := `SELECT token FROM device_tokens WHERE user_id = $1`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find device tokens",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find device tokens for user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return nil, fmt.Errorf("scan device token row: %w", err)
		}
		tokens = append(tokens, token)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate device token rows: %w", rows.Err())
	}

	return tokens, nil
}
