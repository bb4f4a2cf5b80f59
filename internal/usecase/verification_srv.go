package usecase

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"symposium-registration/internal/data/entity"
	"symposium-registration/internal/data/repository"
	"symposium-registration/internal/dto/request"
	"symposium-registration/internal/dto/response"
	"symposium-registration/pkg/mailer"
	"symposium-registration/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type VerificationService interface {
	Verify(ctx context.Context, req *request.VerifyRequest) ([]response.RegistrationResponse, error)
	Reject(ctx context.Context, req *request.VerifyRequest) ([]response.RegistrationResponse, error)
	BulkVerify(ctx context.Context, csvData io.Reader) (*response.BulkVerifyResponse, error)
	ListPending(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.RegistrationResponse], error)
	GetProof(ctx context.Context, registrationID string) (string, []byte, error)
	MarkPassIssued(ctx context.Context, issuanceID string) (*response.PassIssuanceResponse, error)
	GetUserIssuances(ctx context.Context, userID string) ([]response.PassIssuanceResponse, error)
}

type verificationService struct {
	repo *repository.Repository
	mail mailer.Mailer
	log  *zap.Logger
}

func NewVerificationService(repo *repository.Repository, mail mailer.Mailer, log *zap.Logger) VerificationService {
	return &verificationService{
		repo: repo,
		mail: mail,
		log:  log.With(zap.String("service", "verification")),
	}
}

// Verify marks every pending registration under the transaction as paid and
// opens a pass-issuance ledger row for each pass line. A row that was already
// decided stays as it is.
func (s *verificationService) Verify(ctx context.Context, req *request.VerifyRequest) ([]response.RegistrationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}
	return s.decide(ctx, req.TransactionID, true)
}

// Reject handles a failed payment check. Accommodation lines are removed
// outright and their rooms returned to the pool; event and pass lines are
// kept with verified=false so the user can see what was declined.
func (s *verificationService) Reject(ctx context.Context, req *request.VerifyRequest) ([]response.RegistrationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}
	return s.decide(ctx, req.TransactionID, false)
}

func (s *verificationService) decide(ctx context.Context, transactionID string, approve bool) ([]response.RegistrationResponse, error) {
	regs, err := s.repo.Registration.FindByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("get registrations: %w", err)
	}
	if len(regs) == 0 {
		return nil, fmt.Errorf("transaction %s not found", transactionID)
	}

	pending := 0
	for _, reg := range regs {
		if reg.Pending() {
			pending++
		}
	}
	if pending == 0 {
		return nil, fmt.Errorf("transaction %s not found or already processed", transactionID)
	}

	decided := make([]response.RegistrationResponse, 0, pending)
	for _, reg := range regs {
		if !reg.Pending() {
			continue
		}

		if approve {
			if err := s.repo.Registration.SetVerified(ctx, reg.ID, true); err != nil {
				return decided, fmt.Errorf("verify registration %s: %w", reg.ID, err)
			}
			v := true
			reg.Verified = &v

			if reg.Kind == entity.CartItemPass {
				if err := s.openIssuance(ctx, reg); err != nil {
					s.log.Error("Failed to open pass issuance",
						zap.Error(err),
						zap.String("registration_id", reg.ID.String()),
					)
				}
			}
		} else {
			if reg.Kind == entity.CartItemAccommodation {
				if err := s.repo.Registration.Delete(ctx, reg.ID); err != nil {
					return decided, fmt.Errorf("remove registration %s: %w", reg.ID, err)
				}
				if err := s.repo.Accommodation.ReleaseRoom(ctx, reg.ItemID); err != nil {
					s.log.Error("Failed to release room on rejection",
						zap.Error(err),
						zap.String("accommodation_id", reg.ItemID.String()),
					)
				}
				continue
			}
			if err := s.repo.Registration.SetVerified(ctx, reg.ID, false); err != nil {
				return decided, fmt.Errorf("reject registration %s: %w", reg.ID, err)
			}
			v := false
			reg.Verified = &v
		}

		decided = append(decided, response.RegistrationToResponse(reg))
	}

	s.log.Info("Transaction decided",
		zap.String("transaction_id", transactionID),
		zap.Bool("approved", approve),
		zap.Int("registrations", pending),
	)

	go s.notifyDecision(regs[0].UserID, transactionID, approve)

	return decided, nil
}

// BulkVerify reads transaction ids from a one-column CSV (optional
// "transaction_id" header) and verifies each. A bad row is reported and
// skipped; it never aborts the batch.
func (s *verificationService) BulkVerify(ctx context.Context, csvData io.Reader) (*response.BulkVerifyResponse, error) {
	reader := csv.NewReader(csvData)
	reader.FieldsPerRecord = -1

	result := &response.BulkVerifyResponse{}
	first := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		if len(record) == 0 {
			continue
		}

		transactionID := strings.TrimSpace(record[0])
		if first {
			first = false
			if strings.EqualFold(transactionID, "transaction_id") {
				continue
			}
		}
		if transactionID == "" {
			continue
		}

		_, err = s.decide(ctx, transactionID, true)
		outcome := response.BulkVerifyResult{
			TransactionID: transactionID,
			Success:       err == nil,
		}
		if err != nil {
			outcome.Error = err.Error()
			result.Failed++
		} else {
			result.Succeeded++
		}
		result.Results = append(result.Results, outcome)
	}

	s.log.Info("Bulk verification finished",
		zap.Int("succeeded", result.Succeeded),
		zap.Int("failed", result.Failed),
	)

	return result, nil
}

func (s *verificationService) ListPending(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.RegistrationResponse], error) {
	regs, err := s.repo.Registration.FindPending(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get pending registrations: %w", err)
	}

	count, err := s.repo.Registration.CountPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("count pending registrations: %w", err)
	}

	regResponses := make([]response.RegistrationResponse, len(regs))
	for i, reg := range regs {
		regResponses[i] = response.RegistrationToResponse(reg)
	}

	return response.NewPaginatedResponse(regResponses, req.Page, req.PerPage, count), nil
}

// GetProof returns the uploaded payment proof for one registration. Proof
// bytes are excluded from list queries and fetched only here.
func (s *verificationService) GetProof(ctx context.Context, registrationID string) (string, []byte, error) {
	id, err := uuid.Parse(registrationID)
	if err != nil {
		return "", nil, fmt.Errorf("invalid registration ID format %s: %w", registrationID, err)
	}

	name, data, err := s.repo.Registration.GetProof(ctx, id)
	if err != nil {
		return "", nil, fmt.Errorf("get proof: %w", err)
	}
	if len(data) == 0 {
		return "", nil, fmt.Errorf("registration %s has no payment proof", registrationID)
	}
	return name, data, nil
}

func (s *verificationService) MarkPassIssued(ctx context.Context, issuanceID string) (*response.PassIssuanceResponse, error) {
	id, err := uuid.Parse(issuanceID)
	if err != nil {
		return nil, fmt.Errorf("invalid issuance ID format %s: %w", issuanceID, err)
	}

	if err := s.repo.PassIssuance.MarkIssued(ctx, id); err != nil {
		return nil, fmt.Errorf("mark pass issued: %w", err)
	}

	issuance, err := s.repo.PassIssuance.FindByID(ctx, id)
	if err != nil || issuance == nil {
		return nil, fmt.Errorf("get issuance: %w", err)
	}

	s.log.Info("Pass issued",
		zap.String("issuance_id", issuanceID),
		zap.String("user_id", issuance.UserID.String()),
	)

	resp := response.PassIssuanceToResponse(issuance)
	return &resp, nil
}

func (s *verificationService) GetUserIssuances(ctx context.Context, userID string) ([]response.PassIssuanceResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	issuances, err := s.repo.PassIssuance.FindByUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get issuances: %w", err)
	}

	resp := make([]response.PassIssuanceResponse, len(issuances))
	for i, issuance := range issuances {
		resp[i] = response.PassIssuanceToResponse(issuance)
	}
	return resp, nil
}

// ==================== HELPER METHODS ====================

func (s *verificationService) openIssuance(ctx context.Context, reg *entity.Registration) error {
	issuance := &entity.PassIssuance{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:         reg.UserID,
		PassID:         reg.ItemID,
		RegistrationID: reg.ID,
	}
	return s.repo.PassIssuance.Create(ctx, issuance)
}

// notifyDecision runs after the admin request has finished, so the lookup
// cannot use the request context.
func (s *verificationService) notifyDecision(userID uuid.UUID, transactionID string, approved bool) {
	user, err := s.repo.User.FindByID(context.Background(), userID)
	if err != nil || user == nil {
		s.log.Warn("Failed to load user for decision email",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return
	}

	subject := "Payment verified"
	body := fmt.Sprintf(
		"Hi %s,\r\n\r\nYour payment for transaction %s has been verified. Your registration is confirmed.\r\n\r\nSymposium Team",
		user.Name, transactionID,
	)
	if !approved {
		subject = "Payment could not be verified"
		body = fmt.Sprintf(
			"Hi %s,\r\n\r\nWe could not verify your payment for transaction %s. Please contact the organizing team.\r\n\r\nSymposium Team",
			user.Name, transactionID,
		)
	}

	if err := s.mail.Send([]string{user.Email}, subject, body); err != nil {
		s.log.Warn("Failed to send decision email",
			zap.Error(err),
			zap.String("email", user.Email),
		)
	}
}
