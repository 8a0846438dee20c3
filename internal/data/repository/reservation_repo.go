package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"salon-booking/internal/data/entity"
	"salon-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type ReservationRepository interface {
	// Create inserts a new reservation after re-checking, inside one
	// transaction, that no active reservation overlaps its range.
	// Returns ErrOverlappingReservation when the slot is taken.
	Create(ctx context.Context, reservation *entity.Reservation) error

	// UpdateStatus persists a state transition guarded by the status the
	// caller read. Returns false without error when the stored status no
	// longer matches expectedFrom, so the caller can re-read and re-validate.
	UpdateStatus(ctx context.Context, reservation *entity.Reservation, expectedFrom entity.ReservationStatus) (bool, error)

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error)
	FindByMemberID(ctx context.Context, memberID uuid.UUID, limit, offset int) ([]*entity.Reservation, error)
	CountByMemberID(ctx context.Context, memberID uuid.UUID) (int64, error)
	FindByShopID(ctx context.Context, shopID uuid.UUID) ([]*entity.Reservation, error)
	FindByShopIDAndDate(ctx context.Context, shopID uuid.UUID, date time.Time) ([]*entity.Reservation, error)
	ExistsOverlapping(ctx context.Context, shopID uuid.UUID, date time.Time, start, end entity.TimeOfDay) (bool, error)
}

type reservationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReservationRepository(db database.PgxIface, log *zap.Logger) ReservationRepository {
	return &reservationRepository{
		db:  db,
		log: log.With(zap.String("repository", "reservation")),
	}
}

const reservationColumns = `id, shop_id, member_id, treatment_id, reservation_date,
		       start_time, end_time, status, memo, rejection_reason, created_at, updated_at`

// SQLSTATE codes that mean the insert lost a concurrent booking race:
// 23P01 is raised by the exclusion constraint on
// (shop_id, reservation_date, int4range(start_time, end_time)) scoped to
// active statuses, 40001 by a serialization failure.
const (
	pgExclusionViolation   = "23P01"
	pgSerializationFailure = "40001"
)

func (r *reservationRepository) Create(ctx context.Context, reservation *entity.Reservation) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create reservation tx: %w", err)
	}
	defer tx.Rollback(ctx)

	// Lock the shop's active rows for this date so a concurrent create
	// for the same slot serializes behind us until commit.
	lockQuery := `
		SELECT id FROM reservations
		WHERE shop_id = $1 AND reservation_date = $2 AND status IN ('PENDING', 'CONFIRMED')
		FOR UPDATE
	`

	rows, err := tx.Query(ctx, lockQuery, reservation.ShopID, reservation.ReservationDate)
	if err != nil {
		r.log.Error("Failed to lock active reservations",
			zap.Error(err),
			zap.String("shop_id", reservation.ShopID.String()),
		)
		return fmt.Errorf("lock active reservations for shop %s: %w", reservation.ShopID.String(), err)
	}
	rows.Close()
	if rows.Err() != nil {
		return fmt.Errorf("lock active reservations for shop %s: %w", reservation.ShopID.String(), rows.Err())
	}

	overlapQuery := `
		SELECT EXISTS (
			SELECT 1 FROM reservations
			WHERE shop_id = $1 AND reservation_date = $2
			  AND status IN ('PENDING', 'CONFIRMED')
			  AND start_time < $4 AND end_time > $3
		)
	`

	var overlaps bool
	err = tx.QueryRow(ctx, overlapQuery,
		reservation.ShopID,
		reservation.ReservationDate,
		reservation.StartTime.Minutes(),
		reservation.EndTime.Minutes(),
	).Scan(&overlaps)
	if err != nil {
		return fmt.Errorf("check overlap for shop %s: %w", reservation.ShopID.String(), err)
	}
	if overlaps {
		return ErrOverlappingReservation
	}

	insertQuery := `
		INSERT INTO reservations (` + reservationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err = tx.Exec(ctx, insertQuery,
		reservation.ID,
		reservation.ShopID,
		reservation.MemberID,
		reservation.TreatmentID,
		reservation.ReservationDate,
		reservation.StartTime.Minutes(),
		reservation.EndTime.Minutes(),
		reservation.Status,
		reservation.Memo,
		reservation.RejectionReason,
		reservation.CreatedAt,
		reservation.UpdatedAt,
	)
	if err != nil {
		if isBookingRaceError(err) {
			return ErrOverlappingReservation
		}
		r.log.Error("Failed to insert reservation",
			zap.Error(err),
			zap.String("reservation_id", reservation.ID.String()),
			zap.String("shop_id", reservation.ShopID.String()),
		)
		return fmt.Errorf("insert reservation %s: %w", reservation.ID.String(), err)
	}

	if err := tx.Commit(ctx); err != nil {
		if isBookingRaceError(err) {
			return ErrOverlappingReservation
		}
		return fmt.Errorf("commit reservation %s: %w", reservation.ID.String(), err)
	}

	return nil
}

func (r *reservationRepository) UpdateStatus(ctx context.Context, reservation *entity.Reservation, expectedFrom entity.ReservationStatus) (bool, error) {
	query := `
		UPDATE reservations
		SET status = $2, rejection_reason = $3, updated_at = $4
		WHERE id = $1 AND status = $5
	`

	result, err := r.db.Exec(ctx, query,
		reservation.ID,
		reservation.Status,
		reservation.RejectionReason,
		reservation.UpdatedAt,
		expectedFrom,
	)
	if err != nil {
		r.log.Error("Failed to update reservation status",
			zap.Error(err),
			zap.String("reservation_id", reservation.ID.String()),
			zap.String("status", string(reservation.Status)),
		)
		return false, fmt.Errorf("update reservation %s status to %s: %w",
			reservation.ID.String(), string(reservation.Status), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *reservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

	reservation, err := scanReservation(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find reservation by ID",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
		)
		return nil, fmt.Errorf("find reservation by ID %s: %w", id.String(), err)
	}

	return reservation, nil
}

func (r *reservationRepository) FindByMemberID(ctx context.Context, memberID uuid.UUID, limit, offset int) ([]*entity.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE member_id = $1
		ORDER BY reservation_date DESC, start_time DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, memberID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find reservations by member ID",
			zap.Error(err),
			zap.String("member_id", memberID.String()),
		)
		return nil, fmt.Errorf("find reservations by member ID %s: %w", memberID.String(), err)
	}
	defer rows.Close()

	return collectReservations(rows)
}

func (r *reservationRepository) CountByMemberID(ctx context.Context, memberID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM reservations WHERE member_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, memberID).Scan(&count); err != nil {
		r.log.Error("Failed to count reservations by member ID",
			zap.Error(err),
			zap.String("member_id", memberID.String()),
		)
		return 0, fmt.Errorf("count reservations by member ID %s: %w", memberID.String(), err)
	}

	return count, nil
}

func (r *reservationRepository) FindByShopID(ctx context.Context, shopID uuid.UUID) ([]*entity.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE shop_id = $1
		ORDER BY reservation_date DESC, start_time DESC
	`

	rows, err := r.db.Query(ctx, query, shopID)
	if err != nil {
		r.log.Error("Failed to find reservations by shop ID",
			zap.Error(err),
			zap.String("shop_id", shopID.String()),
		)
		return nil, fmt.Errorf("find reservations by shop ID %s: %w", shopID.String(), err)
	}
	defer rows.Close()

	return collectReservations(rows)
}

func (r *reservationRepository) FindByShopIDAndDate(ctx context.Context, shopID uuid.UUID, date time.Time) ([]*entity.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE shop_id = $1 AND reservation_date = $2
		ORDER BY start_time
	`

	rows, err := r.db.Query(ctx, query, shopID, entity.DateOnly(date))
	if err != nil {
		r.log.Error("Failed to find reservations by shop ID and date",
			zap.Error(err),
			zap.String("shop_id", shopID.String()),
			zap.String("date", date.Format(time.DateOnly)),
		)
		return nil, fmt.Errorf("find reservations by shop ID %s and date %s: %w",
			shopID.String(), date.Format(time.DateOnly), err)
	}
	defer rows.Close()

	return collectReservations(rows)
}

func (r *reservationRepository) ExistsOverlapping(ctx context.Context, shopID uuid.UUID, date time.Time, start, end entity.TimeOfDay) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM reservations
			WHERE shop_id = $1 AND reservation_date = $2
			  AND status IN ('PENDING', 'CONFIRMED')
			  AND start_time < $4 AND end_time > $3
		)
	`

	var exists bool
	err := r.db.QueryRow(ctx, query, shopID, entity.DateOnly(date), start.Minutes(), end.Minutes()).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check overlapping reservations",
			zap.Error(err),
			zap.String("shop_id", shopID.String()),
			zap.String("date", date.Format(time.DateOnly)),
		)
		return false, fmt.Errorf("check overlapping reservations for shop %s: %w", shopID.String(), err)
	}

	return exists, nil
}

func isBookingRaceError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgExclusionViolation || pgErr.Code == pgSerializationFailure
}

func scanReservation(row pgx.Row) (*entity.Reservation, error) {
	var (
		reservation entity.Reservation
		startTime   int
		endTime     int
		status      string
	)

	err := row.Scan(
		&reservation.ID,
		&reservation.ShopID,
		&reservation.MemberID,
		&reservation.TreatmentID,
		&reservation.ReservationDate,
		&startTime,
		&endTime,
		&status,
		&reservation.Memo,
		&reservation.RejectionReason,
		&reservation.CreatedAt,
		&reservation.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	reservation.StartTime = entity.TimeOfDay(startTime)
	reservation.EndTime = entity.TimeOfDay(endTime)
	reservation.Status = entity.ReservationStatus(status)

	return &reservation, nil
}

func collectReservations(rows pgx.Rows) ([]*entity.Reservation, error) {
	var reservations []*entity.Reservation
	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reservation row: %w", err)
		}
		reservations = append(reservations, reservation)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate reservation rows: %w", rows.Err())
	}

	return reservations, nil
}
