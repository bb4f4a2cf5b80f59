package wire

import (
	"symposium-registration/internal/adaptor"
	"symposium-registration/internal/data/repository"
	"symposium-registration/pkg/middleware"
	"symposium-registration/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireCheckout configures checkout and the user's own registration views.
func wireCheckout(
	r chi.Router,
	checkoutHandler *adaptor.CheckoutHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	auth := r.With(middleware.AuthSession(repo.Session, log))
	auth.Post("/api/checkout", checkoutHandler.Checkout)
	auth.Get("/api/my/registrations", checkoutHandler.GetMyRegistrations)
}
