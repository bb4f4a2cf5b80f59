package adaptor

import (
	"symposium-registration/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth         *AuthHandler
	User         *UserHandler
	Catalog      *CatalogHandler
	Cart         *CartHandler
	Checkout     *CheckoutHandler
	Verification *VerificationHandler
	Coupon       *CouponHandler
	Admin        *AdminHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(service.Auth, log),
		User:         NewUserHandler(service.User, log),
		Catalog:      NewCatalogHandler(service.Catalog, service.User, log),
		Cart:         NewCartHandler(service.Cart, log),
		Checkout:     NewCheckoutHandler(service.Checkout, log),
		Verification: NewVerificationHandler(service.Verification, log),
		Coupon:       NewCouponHandler(service.Coupon, log),
		Admin:        NewAdminHandler(service.Admin, log),
	}
}
