package wire

import (
	"symposium-registration/internal/adaptor"
	"symposium-registration/internal/data/repository"
	"symposium-registration/pkg/middleware"
	"symposium-registration/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireCatalog configures the event, pass and accommodation listings plus the
// admin catalog management routes.
func wireCatalog(
	r chi.Router,
	catalogHandler *adaptor.CatalogHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// Browsing is open; a session token, when present, personalizes the
	// discounts shown.
	browse := r.With(middleware.OptionalAuth(repo.Session, log))
	browse.Get("/api/events", catalogHandler.GetEvents) // GET /api/events?category=workshop
	browse.Get("/api/events/{id}", catalogHandler.GetEventByID)
	browse.Get("/api/passes", catalogHandler.GetPasses)
	browse.Get("/api/accommodations", catalogHandler.GetAccommodations)

	// ==================== ADMIN ROUTES ====================
	admin := r.With(
		middleware.AuthSession(repo.Session, log),
		middleware.Admin(repo.User, log),
	)
	admin.Post("/api/admin/events", catalogHandler.CreateEvent)
	admin.Put("/api/admin/events/{id}", catalogHandler.UpdateEvent)
	admin.Delete("/api/admin/events/{id}", catalogHandler.DeleteEvent)

	admin.Post("/api/admin/passes", catalogHandler.CreatePass)
	admin.Put("/api/admin/passes/{id}", catalogHandler.UpdatePass)
	admin.Delete("/api/admin/passes/{id}", catalogHandler.DeletePass)

	admin.Post("/api/admin/accommodations", catalogHandler.CreateAccommodation)
	admin.Put("/api/admin/accommodations/{id}", catalogHandler.UpdateAccommodation)
	admin.Delete("/api/admin/accommodations/{id}", catalogHandler.DeleteAccommodation)
}
