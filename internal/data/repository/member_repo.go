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

type MemberRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Member, error)
}

type memberRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMemberRepository(db database.PgxIface, log *zap.Logger) MemberRepository {
	return &memberRepository{
		db:  db,
		log: log.With(zap.String("repository", "member")),
	}
}

func (r *memberRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Member, error) {
	query := `
		SELECT id, nickname, email, created_at, updated_at
		FROM members
		WHERE id = $1
	`

	var member entity.Member
	err := r.db.QueryRow(ctx, query, id).Scan(
		&member.ID,
		&member.Nickname,
		&member.Email,
		&member.CreatedAt,
		&member.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find member by ID",
			zap.Error(err),
			zap.String("member_id", id.String()),
		)
		return nil, fmt.Errorf("find member by ID %s: %w", id.String(), err)
	}

	return &member, nil
}
