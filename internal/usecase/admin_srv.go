package usecase

import (
	"context"
	"fmt"
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

type AdminService interface {
	MarkAttendance(ctx context.Context, adminID string, req *request.AttendanceRequest) (*response.AttendanceResponse, error)
	GetEventAttendance(ctx context.Context, eventID string) ([]response.AttendanceResponse, error)
	BroadcastEmail(ctx context.Context, req *request.BroadcastEmailRequest) (*response.BroadcastResponse, error)
}

type adminService struct {
	repo *repository.Repository
	mail mailer.Mailer
	log  *zap.Logger
}

func NewAdminService(repo *repository.Repository, mail mailer.Mailer, log *zap.Logger) AdminService {
	return &adminService{
		repo: repo,
		mail: mail,
		log:  log.With(zap.String("service", "admin")),
	}
}

func (s *adminService) MarkAttendance(ctx context.Context, adminID string, req *request.AttendanceRequest) (*response.AttendanceResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Mark attendance validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	adminUUID, err := uuid.Parse(adminID)
	if err != nil {
		return nil, fmt.Errorf("invalid admin ID format %s: %w", adminID, err)
	}

	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID format %s: %w", req.EventID, err)
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", req.UserID, err)
	}

	event, err := s.repo.Event.FindByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event == nil {
		return nil, fmt.Errorf("event %s not found", req.EventID)
	}

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s not found", req.UserID)
	}

	att := &entity.Attendance{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		EventID:  eventID,
		UserID:   userID,
		Present:  req.Present,
		MarkedBy: adminUUID,
	}

	if err := s.repo.Attendance.Upsert(ctx, att); err != nil {
		return nil, fmt.Errorf("mark attendance: %w", err)
	}

	s.log.Info("Attendance marked",
		zap.String("event_id", req.EventID),
		zap.String("user_id", req.UserID),
		zap.Bool("present", req.Present),
		zap.String("marked_by", adminID),
	)

	resp := response.AttendanceToResponse(att)
	return &resp, nil
}

func (s *adminService) GetEventAttendance(ctx context.Context, eventID string) ([]response.AttendanceResponse, error) {
	id, err := uuid.Parse(eventID)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID format %s: %w", eventID, err)
	}

	records, err := s.repo.Attendance.FindByEvent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get attendance: %w", err)
	}

	resp := make([]response.AttendanceResponse, len(records))
	for i, att := range records {
		resp[i] = response.AttendanceToResponse(att)
	}
	return resp, nil
}

// BroadcastEmail sends one message per recipient so a single bad address
// cannot sink the batch. With no explicit recipient list the message goes to
// every active account.
func (s *adminService) BroadcastEmail(ctx context.Context, req *request.BroadcastEmailRequest) (*response.BroadcastResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Broadcast validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	recipients := req.Recipients
	if len(recipients) == 0 {
		var err error
		recipients, err = s.repo.User.ListEmails(ctx)
		if err != nil {
			return nil, fmt.Errorf("list recipients: %w", err)
		}
	}
	if len(recipients) == 0 {
		return nil, fmt.Errorf("no recipients to send to")
	}

	result := &response.BroadcastResponse{
		Results: make([]response.BroadcastResult, 0, len(recipients)),
	}

	for _, recipient := range recipients {
		err := s.mail.Send([]string{recipient}, req.Subject, req.Body)
		outcome := response.BroadcastResult{
			Recipient: recipient,
			Success:   err == nil,
		}
		if err != nil {
			outcome.Error = err.Error()
			result.Failed++
			s.log.Warn("Broadcast send failed",
				zap.Error(err),
				zap.String("recipient", recipient),
			)
		} else {
			result.Succeeded++
		}
		result.Results = append(result.Results, outcome)
	}

	s.log.Info("Broadcast finished",
		zap.String("subject", req.Subject),
		zap.Int("succeeded", result.Succeeded),
		zap.Int("failed", result.Failed),
	)

	return result, nil
}
