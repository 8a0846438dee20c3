package repository

import (
	"salon-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Reservation ReservationRepository
	Shop        ShopRepository
	Treatment   TreatmentRepository
	Member      MemberRepository
	Session     SessionRepository
	DeviceToken DeviceTokenRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Reservation: NewReservationRepository(db, log),
		Shop:        NewShopRepository(db, log),
		Treatment:   NewTreatmentRepository(db, log),
		Member:      NewMemberRepository(db, log),
		Session:     NewSessionRepository(db, log),
		DeviceToken: NewDeviceTokenRepository(db, log),
	}
}
