package repository

import (
	"symposium-registration/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User          UserRepository
	Session       SessionRepository
	Event         EventRepository
	Pass          PassRepository
	Accommodation AccommodationRepository
	Coupon        CouponRepository
	Cart          CartRepository
	Registration  RegistrationRepository
	PassIssuance  PassIssuanceRepository
	Attendance    AttendanceRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:          NewUserRepository(db, log),
		Session:       NewSessionRepository(db, log),
		Event:         NewEventRepository(db, log),
		Pass:          NewPassRepository(db, log),
		Accommodation: NewAccommodationRepository(db, log),
		Coupon:        NewCouponRepository(db, log),
		Cart:          NewCartRepository(db, log),
		Registration:  NewRegistrationRepository(db, log),
		PassIssuance:  NewPassIssuanceRepository(db, log),
		Attendance:    NewAttendanceRepository(db, log),
	}
}
