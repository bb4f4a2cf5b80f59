// internal/wire/wire.go
package wire

import (
	"context"
	"net/http"
	"time"

	"symposium-registration/internal/adaptor"
	"symposium-registration/internal/data/repository"
	"symposium-registration/internal/usecase"
	"symposium-registration/pkg/mailer"
	"symposium-registration/pkg/middleware"
	"symposium-registration/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired dependencies
type App struct {
	Router *chi.Mux
}

// Wiring initializes services, handlers and routes
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) *App {
	mail := mailer.NewSMTPMailer(config.Email)

	service := usecase.NewService(repo, config, mail, logger)

	// Audit trail for completed checkouts. Registered before the server
	// starts taking requests.
	auditLog := logger.With(zap.String("audit", "checkout"))
	service.Checkout.AddListener(func(userID, transactionID string, amount int) {
		auditLog.Info("Checkout recorded",
			zap.String("user_id", userID),
			zap.String("transaction_id", transactionID),
			zap.Int("amount", amount),
		)
	})

	startSessionJanitor(repo, logger)

	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, config, logger)

	return &App{
		Router: router,
	}
}

// startSessionJanitor removes expired sessions on an hourly sweep.
func startSessionJanitor(repo *repository.Repository, logger *zap.Logger) {
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			if err := repo.Session.CleanExpiredSessions(context.Background()); err != nil {
				logger.Error("Failed to clean expired sessions", zap.Error(err))
			}
		}
	}()
}

// setupRouter configures the Chi router
func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireAuth(r, handler.Auth, repo, config, logger)
	wireUser(r, handler.User, repo, config, logger)
	wireCatalog(r, handler.Catalog, repo, config, logger)
	wireCart(r, handler.Cart, repo, config, logger)
	wireCheckout(r, handler.Checkout, repo, config, logger)
	wireAdmin(r, handler, repo, config, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
