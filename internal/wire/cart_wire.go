package wire

import (
	"symposium-registration/internal/adaptor"
	"symposium-registration/internal/data/repository"
	"symposium-registration/pkg/middleware"
	"symposium-registration/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireCart configures the cart routes. Everything here needs a session.
func wireCart(
	r chi.Router,
	cartHandler *adaptor.CartHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	r.With(middleware.AuthSession(repo.Session, log)).Route("/api/cart", func(r chi.Router) {
		r.Get("/", cartHandler.GetCart)
		r.Post("/events", cartHandler.AddEvent)
		r.Post("/passes", cartHandler.AddPass)
		r.Post("/accommodations", cartHandler.AddAccommodation)
		r.Delete("/items/{id}", cartHandler.RemoveItem)
		r.Post("/coupon", cartHandler.PreviewCoupon)
	})
}
