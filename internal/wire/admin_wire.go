package wire

import (
	"symposium-registration/internal/adaptor"
	"symposium-registration/internal/data/repository"
	"symposium-registration/pkg/middleware"
	"symposium-registration/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireAdmin configures payment verification, coupon management, attendance
// and broadcast email. All routes require the admin role; pass issuance
// listing is the one student-facing route here.
func wireAdmin(
	r chi.Router,
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== STUDENT ROUTES ====================
	r.With(middleware.AuthSession(repo.Session, log)).Get("/api/issuances", handler.Verification.GetMyIssuances)

	// ==================== ADMIN ROUTES ====================
	admin := r.With(
		middleware.AuthSession(repo.Session, log),
		middleware.Admin(repo.User, log),
	)

	admin.Get("/api/admin/registrations/pending", handler.Verification.ListPending)
	admin.Post("/api/admin/registrations/verify", handler.Verification.Verify)
	admin.Post("/api/admin/registrations/reject", handler.Verification.Reject)
	admin.Post("/api/admin/registrations/bulk-verify", handler.Verification.BulkVerify)
	admin.Get("/api/admin/registrations/{id}/proof", handler.Verification.GetProof)

	admin.Post("/api/admin/issuances/{id}/issue", handler.Verification.MarkPassIssued)

	admin.Post("/api/admin/coupons", handler.Coupon.CreateCoupon)
	admin.Get("/api/admin/coupons", handler.Coupon.GetCoupons)
	admin.Put("/api/admin/coupons/{id}", handler.Coupon.UpdateCoupon)
	admin.Delete("/api/admin/coupons/{id}", handler.Coupon.DeleteCoupon)

	admin.Post("/api/admin/attendance", handler.Admin.MarkAttendance)
	admin.Get("/api/admin/events/{id}/attendance", handler.Admin.GetEventAttendance)
	admin.Post("/api/admin/broadcast", handler.Admin.BroadcastEmail)
}
