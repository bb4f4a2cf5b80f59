package usecase

import (
	"symposium-registration/internal/data/repository"
	"symposium-registration/pkg/mailer"
	"symposium-registration/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth         AuthService
	User         UserService
	Catalog      CatalogService
	Cart         CartService
	Checkout     CheckoutService
	Verification VerificationService
	Coupon       CouponService
	Admin        AdminService
}

func NewService(repo *repository.Repository, config *utils.Config, mail mailer.Mailer, log *zap.Logger) *Service {
	return &Service{
		Auth:         NewAuthService(repo, config, log),
		User:         NewUserService(repo.User, repo.Session, log),
		Catalog:      NewCatalogService(repo, config, log),
		Cart:         NewCartService(repo, config, log),
		Checkout:     NewCheckoutService(repo, mail, log),
		Verification: NewVerificationService(repo, mail, log),
		Coupon:       NewCouponService(repo, log),
		Admin:        NewAdminService(repo, mail, log),
	}
}
