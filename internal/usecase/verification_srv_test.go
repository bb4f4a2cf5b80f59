package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"symposium-registration/internal/data/entity"
	"symposium-registration/internal/data/repository"
	"symposium-registration/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newVerificationFixture() (*mockUserRepo, *mockAccommodationRepo, *mockRegistrationRepo, *mockPassIssuanceRepo, *mockMailer, VerificationService) {
	users := new(mockUserRepo)
	accs := new(mockAccommodationRepo)
	regs := new(mockRegistrationRepo)
	issuances := new(mockPassIssuanceRepo)
	mail := new(mockMailer)

	repo := &repository.Repository{
		User:          users,
		Accommodation: accs,
		Registration:  regs,
		PassIssuance:  issuances,
	}

	service := NewVerificationService(repo, mail, zap.NewNop())
	return users, accs, regs, issuances, mail, service
}

// decisionUser wires the lookups the decision email goroutine may make.
func decisionUser(users *mockUserRepo, mail *mockMailer, userID uuid.UUID) {
	users.On("FindByID", mock.Anything, userID).Return(&entity.User{
		Base:  entity.Base{ID: userID},
		Name:  "Arjun",
		Email: "arjun@example.edu",
	}, nil).Maybe()
	mail.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
}

func pendingReg(userID uuid.UUID, kind entity.CartItemKind, txn string) *entity.Registration {
	return &entity.Registration{
		BaseNoDelete:  entity.BaseNoDelete{ID: uuid.New()},
		UserID:        userID,
		Kind:          kind,
		ItemID:        uuid.New(),
		TransactionID: txn,
	}
}

func TestVerifyMarksPendingAndOpensIssuance(t *testing.T) {
	users, _, regs, issuances, mail, service := newVerificationFixture()

	userID := uuid.New()
	decisionUser(users, mail, userID)

	eventReg := pendingReg(userID, entity.CartItemEvent, "TXN-1")
	passReg := pendingReg(userID, entity.CartItemPass, "TXN-1")

	regs.On("FindByTransactionID", mock.Anything, "TXN-1").Return([]*entity.Registration{eventReg, passReg}, nil)
	regs.On("SetVerified", mock.Anything, eventReg.ID, true).Return(nil)
	regs.On("SetVerified", mock.Anything, passReg.ID, true).Return(nil)
	issuances.On("Create", mock.Anything, mock.MatchedBy(func(iss *entity.PassIssuance) bool {
		return iss.UserID == userID &&
			iss.PassID == passReg.ItemID &&
			iss.RegistrationID == passReg.ID &&
			!iss.Issued
	})).Return(nil)

	result, err := service.Verify(context.Background(), &request.VerifyRequest{TransactionID: "TXN-1"})
	require.NoError(t, err)

	assert.Len(t, result, 2)
	for _, reg := range result {
		require.NotNil(t, reg.Verified)
		assert.True(t, *reg.Verified)
	}
	regs.AssertExpectations(t)
	issuances.AssertExpectations(t)
}

func TestVerifyIssuanceOnlyForPassLines(t *testing.T) {
	users, _, regs, issuances, mail, service := newVerificationFixture()

	userID := uuid.New()
	decisionUser(users, mail, userID)

	eventReg := pendingReg(userID, entity.CartItemEvent, "TXN-2")

	regs.On("FindByTransactionID", mock.Anything, "TXN-2").Return([]*entity.Registration{eventReg}, nil)
	regs.On("SetVerified", mock.Anything, eventReg.ID, true).Return(nil)

	_, err := service.Verify(context.Background(), &request.VerifyRequest{TransactionID: "TXN-2"})
	require.NoError(t, err)

	issuances.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestDecisionEmailOutlivesCallerContext(t *testing.T) {
	users, _, regs, _, mail, service := newVerificationFixture()

	userID := uuid.New()
	eventReg := pendingReg(userID, entity.CartItemEvent, "TXN-9")

	regs.On("FindByTransactionID", mock.Anything, "TXN-9").Return([]*entity.Registration{eventReg}, nil)
	regs.On("SetVerified", mock.Anything, eventReg.ID, true).Return(nil)

	// The email goroutine runs after the admin request has finished, so its
	// lookup must not ride on the request context.
	users.On("FindByID", mock.MatchedBy(func(c context.Context) bool {
		return c.Err() == nil
	}), userID).Return(&entity.User{
		Base:  entity.Base{ID: userID},
		Name:  "Arjun",
		Email: "arjun@example.edu",
	}, nil)

	sent := make(chan struct{})
	mail.On("Send", []string{"arjun@example.edu"}, mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { close(sent) }).Return(nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := service.Verify(ctx, &request.VerifyRequest{TransactionID: "TXN-9"})
	require.NoError(t, err)

	select {
	case <-sent:
	case <-time.After(2 * time.Second):
		t.Fatal("decision email was never sent")
	}
	users.AssertExpectations(t)
	mail.AssertExpectations(t)
}

func TestDecisionIsTerminal(t *testing.T) {
	users, _, regs, _, mail, service := newVerificationFixture()

	userID := uuid.New()
	decisionUser(users, mail, userID)

	done := true
	processed := pendingReg(userID, entity.CartItemEvent, "TXN-3")
	processed.Verified = &done

	regs.On("FindByTransactionID", mock.Anything, "TXN-3").Return([]*entity.Registration{processed}, nil)

	_, err := service.Verify(context.Background(), &request.VerifyRequest{TransactionID: "TXN-3"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already processed")
	regs.AssertNotCalled(t, "SetVerified", mock.Anything, mock.Anything, mock.Anything)
}

func TestRejectRemovesAccommodationAndFlagsTheRest(t *testing.T) {
	users, accs, regs, _, mail, service := newVerificationFixture()

	userID := uuid.New()
	decisionUser(users, mail, userID)

	accReg := pendingReg(userID, entity.CartItemAccommodation, "TXN-4")
	eventReg := pendingReg(userID, entity.CartItemEvent, "TXN-4")

	regs.On("FindByTransactionID", mock.Anything, "TXN-4").Return([]*entity.Registration{accReg, eventReg}, nil)
	// Accommodation: the booking is removed outright and its room freed.
	regs.On("Delete", mock.Anything, accReg.ID).Return(nil)
	accs.On("ReleaseRoom", mock.Anything, accReg.ItemID).Return(nil)
	// Event: kept, flagged rejected.
	regs.On("SetVerified", mock.Anything, eventReg.ID, false).Return(nil)

	result, err := service.Reject(context.Background(), &request.VerifyRequest{TransactionID: "TXN-4"})
	require.NoError(t, err)

	// Only the flagged event line is reported back; the accommodation row
	// is gone.
	assert.Len(t, result, 1)
	require.NotNil(t, result[0].Verified)
	assert.False(t, *result[0].Verified)
	regs.AssertExpectations(t)
	accs.AssertExpectations(t)
}

func TestBulkVerifyIsolatesFailures(t *testing.T) {
	users, _, regs, _, mail, service := newVerificationFixture()

	userID := uuid.New()
	decisionUser(users, mail, userID)

	good := pendingReg(userID, entity.CartItemEvent, "TXN-OK")

	regs.On("FindByTransactionID", mock.Anything, "TXN-OK").Return([]*entity.Registration{good}, nil)
	regs.On("SetVerified", mock.Anything, good.ID, true).Return(nil)
	regs.On("FindByTransactionID", mock.Anything, "TXN-MISSING").Return(nil, nil)

	csv := strings.NewReader("transaction_id\nTXN-OK\nTXN-MISSING\n\n")

	result, err := service.BulkVerify(context.Background(), csv)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Succeeded)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Results, 2)
	assert.True(t, result.Results[0].Success)
	assert.False(t, result.Results[1].Success)
	assert.Contains(t, result.Results[1].Error, "not found")
}

func TestMarkPassIssued(t *testing.T) {
	_, _, _, issuances, _, service := newVerificationFixture()

	issuanceID := uuid.New()
	issuances.On("MarkIssued", mock.Anything, issuanceID).Return(nil)
	issuances.On("FindByID", mock.Anything, issuanceID).Return(&entity.PassIssuance{
		BaseSimple: entity.BaseSimple{ID: issuanceID},
		UserID:     uuid.New(),
		PassID:     uuid.New(),
		Issued:     true,
	}, nil)

	result, err := service.MarkPassIssued(context.Background(), issuanceID.String())
	require.NoError(t, err)
	assert.True(t, result.Issued)
}

func TestGetProofMissing(t *testing.T) {
	_, _, regs, _, _, service := newVerificationFixture()

	regID := uuid.New()
	regs.On("GetProof", mock.Anything, regID).Return("", nil, nil)

	_, _, err := service.GetProof(context.Background(), regID.String())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no payment proof")
}
