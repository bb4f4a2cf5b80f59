package usecase

import (
	"context"

	"symposium-registration/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*entity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*entity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	args := m.Called(ctx, limit, offset)
	if u := args.Get(0); u != nil {
		return u.([]*entity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockUserRepo) ListEmails(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if e := args.Get(0); e != nil {
		return e.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockSessionRepo struct {
	mock.Mock
}

func (m *mockSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	return m.Called(ctx, session).Error(0)
}

func (m *mockSessionRepo) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	args := m.Called(ctx, token)
	if s := args.Get(0); s != nil {
		return s.(*entity.Session), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSessionRepo) Revoke(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *mockSessionRepo) RevokeAllUserSessions(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockSessionRepo) CleanExpiredSessions(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockEventRepo struct {
	mock.Mock
}

func (m *mockEventRepo) Create(ctx context.Context, event *entity.Event) error {
	return m.Called(ctx, event).Error(0)
}

func (m *mockEventRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	args := m.Called(ctx, id)
	if e := args.Get(0); e != nil {
		return e.(*entity.Event), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEventRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Event, error) {
	args := m.Called(ctx, ids)
	if e := args.Get(0); e != nil {
		return e.([]*entity.Event), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEventRepo) FindAll(ctx context.Context, limit, offset int, category *string) ([]*entity.Event, error) {
	args := m.Called(ctx, limit, offset, category)
	if e := args.Get(0); e != nil {
		return e.([]*entity.Event), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEventRepo) CountAll(ctx context.Context, category *string) (int64, error) {
	args := m.Called(ctx, category)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockEventRepo) Update(ctx context.Context, event *entity.Event) error {
	return m.Called(ctx, event).Error(0)
}

func (m *mockEventRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockPassRepo struct {
	mock.Mock
}

func (m *mockPassRepo) Create(ctx context.Context, pass *entity.Pass) error {
	return m.Called(ctx, pass).Error(0)
}

func (m *mockPassRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Pass, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*entity.Pass), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPassRepo) FindAll(ctx context.Context) ([]*entity.Pass, error) {
	args := m.Called(ctx)
	if p := args.Get(0); p != nil {
		return p.([]*entity.Pass), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPassRepo) Update(ctx context.Context, pass *entity.Pass) error {
	return m.Called(ctx, pass).Error(0)
}

func (m *mockPassRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockAccommodationRepo struct {
	mock.Mock
}

func (m *mockAccommodationRepo) Create(ctx context.Context, acc *entity.Accommodation) error {
	return m.Called(ctx, acc).Error(0)
}

func (m *mockAccommodationRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Accommodation, error) {
	args := m.Called(ctx, id)
	if a := args.Get(0); a != nil {
		return a.(*entity.Accommodation), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAccommodationRepo) FindAll(ctx context.Context) ([]*entity.Accommodation, error) {
	args := m.Called(ctx)
	if a := args.Get(0); a != nil {
		return a.([]*entity.Accommodation), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAccommodationRepo) Update(ctx context.Context, acc *entity.Accommodation) error {
	return m.Called(ctx, acc).Error(0)
}

func (m *mockAccommodationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockAccommodationRepo) ReserveRoom(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockAccommodationRepo) ReleaseRoom(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockCouponRepo struct {
	mock.Mock
}

func (m *mockCouponRepo) Create(ctx context.Context, coupon *entity.Coupon) error {
	return m.Called(ctx, coupon).Error(0)
}

func (m *mockCouponRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Coupon, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*entity.Coupon), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCouponRepo) FindByCode(ctx context.Context, code string) (*entity.Coupon, error) {
	args := m.Called(ctx, code)
	if c := args.Get(0); c != nil {
		return c.(*entity.Coupon), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCouponRepo) FindAll(ctx context.Context) ([]*entity.Coupon, error) {
	args := m.Called(ctx)
	if c := args.Get(0); c != nil {
		return c.([]*entity.Coupon), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCouponRepo) Update(ctx context.Context, coupon *entity.Coupon) error {
	return m.Called(ctx, coupon).Error(0)
}

func (m *mockCouponRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockCouponRepo) Redeem(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *mockCouponRepo) Unredeem(ctx context.Context, code string) error {
	return m.Called(ctx, code).Error(0)
}

type mockCartRepo struct {
	mock.Mock
}

func (m *mockCartRepo) Create(ctx context.Context, item *entity.CartItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *mockCartRepo) Update(ctx context.Context, item *entity.CartItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *mockCartRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.CartItem, error) {
	args := m.Called(ctx, id)
	if i := args.Get(0); i != nil {
		return i.(*entity.CartItem), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCartRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.CartItem, error) {
	args := m.Called(ctx, userID)
	if i := args.Get(0); i != nil {
		return i.([]*entity.CartItem), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCartRepo) FindByUserAndItem(ctx context.Context, userID uuid.UUID, kind entity.CartItemKind, itemID uuid.UUID) (*entity.CartItem, error) {
	args := m.Called(ctx, userID, kind, itemID)
	if i := args.Get(0); i != nil {
		return i.(*entity.CartItem), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCartRepo) FindByUserAndKind(ctx context.Context, userID uuid.UUID, kind entity.CartItemKind) ([]*entity.CartItem, error) {
	args := m.Called(ctx, userID, kind)
	if i := args.Get(0); i != nil {
		return i.([]*entity.CartItem), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCartRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockCartRepo) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

type mockRegistrationRepo struct {
	mock.Mock
}

func (m *mockRegistrationRepo) Create(ctx context.Context, reg *entity.Registration) error {
	return m.Called(ctx, reg).Error(0)
}

func (m *mockRegistrationRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Registration, error) {
	args := m.Called(ctx, id)
	if r := args.Get(0); r != nil {
		return r.(*entity.Registration), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRegistrationRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Registration, error) {
	args := m.Called(ctx, userID)
	if r := args.Get(0); r != nil {
		return r.([]*entity.Registration), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRegistrationRepo) FindByTransactionID(ctx context.Context, transactionID string) ([]*entity.Registration, error) {
	args := m.Called(ctx, transactionID)
	if r := args.Get(0); r != nil {
		return r.([]*entity.Registration), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRegistrationRepo) FindPending(ctx context.Context, limit, offset int) ([]*entity.Registration, error) {
	args := m.Called(ctx, limit, offset)
	if r := args.Get(0); r != nil {
		return r.([]*entity.Registration), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRegistrationRepo) CountPending(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRegistrationRepo) SetVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	return m.Called(ctx, id, verified).Error(0)
}

func (m *mockRegistrationRepo) GetProof(ctx context.Context, id uuid.UUID) (string, []byte, error) {
	args := m.Called(ctx, id)
	var data []byte
	if d := args.Get(1); d != nil {
		data = d.([]byte)
	}
	return args.String(0), data, args.Error(2)
}

func (m *mockRegistrationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockPassIssuanceRepo struct {
	mock.Mock
}

func (m *mockPassIssuanceRepo) Create(ctx context.Context, issuance *entity.PassIssuance) error {
	return m.Called(ctx, issuance).Error(0)
}

func (m *mockPassIssuanceRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.PassIssuance, error) {
	args := m.Called(ctx, id)
	if i := args.Get(0); i != nil {
		return i.(*entity.PassIssuance), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPassIssuanceRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.PassIssuance, error) {
	args := m.Called(ctx, userID)
	if i := args.Get(0); i != nil {
		return i.([]*entity.PassIssuance), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPassIssuanceRepo) MarkIssued(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockAttendanceRepo struct {
	mock.Mock
}

func (m *mockAttendanceRepo) Upsert(ctx context.Context, att *entity.Attendance) error {
	return m.Called(ctx, att).Error(0)
}

func (m *mockAttendanceRepo) FindByEvent(ctx context.Context, eventID uuid.UUID) ([]*entity.Attendance, error) {
	args := m.Called(ctx, eventID)
	if a := args.Get(0); a != nil {
		return a.([]*entity.Attendance), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) Send(to []string, subject, body string) error {
	return m.Called(to, subject, body).Error(0)
}
