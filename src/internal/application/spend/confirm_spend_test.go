package spend

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/client"
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/codes"
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/messaging"
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/shared"
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/staff"
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/venue"
)

// ===========================
// Mocks
// ===========================

// MockCodeRepository mock implementation of CodeRepository
type MockCodeRepository struct {
	mock.Mock
}

func (m *MockCodeRepository) Reserve(ctx shared.TransactionContext, tc *codes.TransactionCode) error {
	args := m.Called(ctx, tc)
	return args.Error(0)
}

func (m *MockCodeRepository) FindByCode(ctx shared.TransactionContext, code codes.Code) (*codes.TransactionCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*codes.TransactionCode), args.Error(1)
}

func (m *MockCodeRepository) MarkUsedIfUnused(ctx shared.TransactionContext, code codes.Code) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

// MockClientRepository mock implementation of ClientRepository
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) SaveIfAbsent(ctx shared.TransactionContext, c *client.Client) (bool, error) {
	args := m.Called(ctx, c)
	return args.Bool(0), args.Error(1)
}

func (m *MockClientRepository) FindByActorID(ctx shared.TransactionContext, actorID shared.ActorID) (*client.Client, error) {
	args := m.Called(ctx, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*client.Client), args.Error(1)
}

func (m *MockClientRepository) Credit(ctx shared.TransactionContext, actorID shared.ActorID, amount client.PointsAmount) error {
	args := m.Called(ctx, actorID, amount)
	return args.Error(0)
}

func (m *MockClientRepository) DebitIfSufficient(ctx shared.TransactionContext, actorID shared.ActorID, amount client.PointsAmount) (bool, error) {
	args := m.Called(ctx, actorID, amount)
	return args.Bool(0), args.Error(1)
}

// MockLedgerRepository mock implementation of LedgerRepository
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) Append(ctx shared.TransactionContext, entry *client.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) FindByActorID(ctx shared.TransactionContext, actorID shared.ActorID) ([]*client.LedgerEntry, error) {
	args := m.Called(ctx, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*client.LedgerEntry), args.Error(1)
}

// MockStaffRepository mock implementation of StaffRepository
type MockStaffRepository struct {
	mock.Mock
}

func (m *MockStaffRepository) Upsert(ctx shared.TransactionContext, s *staff.Staff) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStaffRepository) FindByActorID(ctx shared.TransactionContext, actorID shared.ActorID) (*staff.Staff, error) {
	args := m.Called(ctx, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*staff.Staff), args.Error(1)
}

func (m *MockStaffRepository) ListByVenue(ctx shared.TransactionContext, venueID venue.VenueID) ([]*staff.Staff, error) {
	args := m.Called(ctx, venueID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*staff.Staff), args.Error(1)
}

func (m *MockStaffRepository) ListAll(ctx shared.TransactionContext) ([]*staff.Staff, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*staff.Staff), args.Error(1)
}

func (m *MockStaffRepository) Remove(ctx shared.TransactionContext, actorID shared.ActorID) (bool, error) {
	args := m.Called(ctx, actorID)
	return args.Bool(0), args.Error(1)
}

// MockTransactionManager mock implementation of TransactionManager
type MockTransactionManager struct {
	mock.Mock
}

func (m *MockTransactionManager) InTransaction(fn func(ctx shared.TransactionContext) error) error {
	// Directly execute the function with nil context (for unit tests)
	return fn(nil)
}

// RecordingNotifier captures outgoing messages.
type RecordingNotifier struct {
	Sent []messaging.Message
}

func (n *RecordingNotifier) Send(_ context.Context, msg messaging.Message) error {
	n.Sent = append(n.Sent, msg)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ===========================
// Fixtures
// ===========================

func spendCodeFixture(t *testing.T) *codes.TransactionCode {
	t.Helper()
	code, err := codes.NewCode("771200")
	require.NoError(t, err)
	actor, err := shared.NewActorID(100)
	require.NoError(t, err)
	tc, err := codes.NewSpendCode(code, actor, 50, "cappuccino")
	require.NoError(t, err)
	return tc
}

func clientWithBalance(t *testing.T, balance int) *client.Client {
	t.Helper()
	actor, err := shared.NewActorID(100)
	require.NoError(t, err)
	c, err := client.NewClient(actor, "ivan", "Иван")
	require.NoError(t, err)
	if balance > 0 {
		amount, err := client.NewPointsAmount(balance)
		require.NoError(t, err)
		c.Credit(amount)
	}
	return c
}

func productCatalogFixture(t *testing.T) *venue.ProductCatalog {
	t.Helper()
	cappuccino, err := venue.NewProduct("cappuccino", "Капучино", 50)
	require.NoError(t, err)
	catalog, err := venue.NewProductCatalog([]venue.Product{cappuccino})
	require.NoError(t, err)
	return catalog
}

func venueCatalogFixture(t *testing.T) *venue.Catalog {
	t.Helper()
	vid, err := venue.NewVenueID("center")
	require.NoError(t, err)
	v, err := venue.NewVenue(vid, "Кофейня на Ленина", "ул. Ленина, 10")
	require.NoError(t, err)
	catalog, err := venue.NewCatalog([]venue.Venue{v})
	require.NoError(t, err)
	return catalog
}

func venueCashier(t *testing.T, actorID int64) *staff.Staff {
	t.Helper()
	id, err := shared.NewActorID(actorID)
	require.NoError(t, err)
	vid, err := venue.NewVenueID("center")
	require.NoError(t, err)
	s, err := staff.NewStaff(id, "Анна", vid)
	require.NoError(t, err)
	return s
}

// ===========================
// ConfirmSpendUseCase Tests
// ===========================

// Test 1: Successful settlement debits points, appends ledger, notifies the client
func TestConfirmSpendUseCase_Execute_Success(t *testing.T) {
	// Arrange
	codeRepo := new(MockCodeRepository)
	clientRepo := new(MockClientRepository)
	ledgerRepo := new(MockLedgerRepository)
	notifier := &RecordingNotifier{}
	useCase := NewConfirmSpendUseCase(codeRepo, clientRepo, ledgerRepo,
		new(MockTransactionManager), notifier, testLogger())

	tc := spendCodeFixture(t)
	codeRepo.On("FindByCode", mock.Anything, tc.Code()).Return(tc, nil)
	codeRepo.On("MarkUsedIfUnused", mock.Anything, tc.Code()).Return(true, nil)
	clientRepo.On("DebitIfSufficient", mock.Anything, tc.ActorID(), mock.Anything).Return(true, nil)
	ledgerRepo.On("Append", mock.Anything, mock.Anything).Return(nil)
	clientRepo.On("FindByActorID", mock.Anything, tc.ActorID()).
		Return(clientWithBalance(t, 20), nil)

	// Act
	result, err := useCase.Execute(ConfirmSpendCommand{StaffActorID: 555, Code: "771200"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 50, result.Cost)
	assert.Equal(t, 20, result.Balance)
	require.Len(t, notifier.Sent, 1)
	assert.Contains(t, notifier.Sent[0].Text, "Списано 50")
	ledgerRepo.AssertExpectations(t)
}

// Test 2: Debit guard failure rolls the whole settlement back
func TestConfirmSpendUseCase_Execute_InsufficientBalance(t *testing.T) {
	// Arrange: balance dropped between issuance and confirmation
	codeRepo := new(MockCodeRepository)
	clientRepo := new(MockClientRepository)
	ledgerRepo := new(MockLedgerRepository)
	notifier := &RecordingNotifier{}
	useCase := NewConfirmSpendUseCase(codeRepo, clientRepo, ledgerRepo,
		new(MockTransactionManager), notifier, testLogger())

	tc := spendCodeFixture(t)
	codeRepo.On("FindByCode", mock.Anything, tc.Code()).Return(tc, nil)
	codeRepo.On("MarkUsedIfUnused", mock.Anything, tc.Code()).Return(true, nil)
	clientRepo.On("DebitIfSufficient", mock.Anything, tc.ActorID(), mock.Anything).Return(false, nil)

	// Act
	_, err := useCase.Execute(ConfirmSpendCommand{StaffActorID: 555, Code: "771200"})

	// Assert: error aborts the transaction, so the consumed flag is rolled back too
	assert.ErrorIs(t, err, client.ErrInsufficientPoints)
	ledgerRepo.AssertNotCalled(t, "Append")
	assert.Empty(t, notifier.Sent)
}

// Test 3: Double confirmation loses the code guard
func TestConfirmSpendUseCase_Execute_AlreadyUsed(t *testing.T) {
	// Arrange
	codeRepo := new(MockCodeRepository)
	clientRepo := new(MockClientRepository)
	useCase := NewConfirmSpendUseCase(codeRepo, clientRepo, new(MockLedgerRepository),
		new(MockTransactionManager), &RecordingNotifier{}, testLogger())

	tc := spendCodeFixture(t)
	codeRepo.On("FindByCode", mock.Anything, tc.Code()).Return(tc, nil)
	codeRepo.On("MarkUsedIfUnused", mock.Anything, tc.Code()).Return(false, nil)

	// Act
	_, err := useCase.Execute(ConfirmSpendCommand{StaffActorID: 555, Code: "771200"})

	// Assert
	assert.ErrorIs(t, err, codes.ErrCodeAlreadyUsed)
	clientRepo.AssertNotCalled(t, "DebitIfSufficient")
}

// Test 4: An earn code cannot be settled through the spend path
func TestConfirmSpendUseCase_Execute_KindMismatch(t *testing.T) {
	// Arrange
	codeRepo := new(MockCodeRepository)
	useCase := NewConfirmSpendUseCase(codeRepo, new(MockClientRepository), new(MockLedgerRepository),
		new(MockTransactionManager), &RecordingNotifier{}, testLogger())

	code, err := codes.NewCode("483920")
	require.NoError(t, err)
	actor, err := shared.NewActorID(100)
	require.NoError(t, err)
	vid, err := venue.NewVenueID("center")
	require.NoError(t, err)
	earnCode, err := codes.NewEarnCode(code, actor, 14, vid)
	require.NoError(t, err)

	codeRepo.On("FindByCode", mock.Anything, code).Return(earnCode, nil)

	// Act
	_, err = useCase.Execute(ConfirmSpendCommand{StaffActorID: 555, Code: "483920"})

	// Assert
	assert.ErrorIs(t, err, codes.ErrInvalidKind)
}

// ===========================
// RequestSpendCodeUseCase Tests
// ===========================

// Test 5: Pre-check rejects a request the client obviously cannot afford
func TestRequestSpendCodeUseCase_Execute_InsufficientBalance(t *testing.T) {
	// Arrange: 20 points on hand, cappuccino costs 50
	codeRepo := new(MockCodeRepository)
	clientRepo := new(MockClientRepository)
	staffRepo := new(MockStaffRepository)
	clientRepo.On("FindByActorID", nil, mock.Anything).Return(clientWithBalance(t, 20), nil)
	staffRepo.On("ListByVenue", nil, mock.Anything).Return([]*staff.Staff{venueCashier(t, 555)}, nil)

	issuer := codes.NewIssuer(codes.NewGenerator(), codeRepo, new(MockTransactionManager))
	useCase := NewRequestSpendCodeUseCase(issuer, clientRepo, staffRepo,
		venueCatalogFixture(t), productCatalogFixture(t), &RecordingNotifier{}, testLogger())

	// Act
	_, err := useCase.Execute(RequestSpendCodeCommand{ActorID: 100, VenueID: "center", ProductID: "cappuccino"})

	// Assert
	assert.ErrorIs(t, err, client.ErrInsufficientPoints)
	codeRepo.AssertNotCalled(t, "Reserve")
}

// Test 6: Affordable request issues a code and notifies the venue cashiers
func TestRequestSpendCodeUseCase_Execute_Success(t *testing.T) {
	// Arrange
	codeRepo := new(MockCodeRepository)
	clientRepo := new(MockClientRepository)
	staffRepo := new(MockStaffRepository)
	notifier := &RecordingNotifier{}

	codeRepo.On("Reserve", mock.Anything, mock.Anything).Return(nil).Once()
	clientRepo.On("FindByActorID", nil, mock.Anything).Return(clientWithBalance(t, 70), nil)
	staffRepo.On("ListByVenue", nil, mock.Anything).Return([]*staff.Staff{venueCashier(t, 555)}, nil)

	issuer := codes.NewIssuer(codes.NewGenerator(), codeRepo, new(MockTransactionManager))
	useCase := NewRequestSpendCodeUseCase(issuer, clientRepo, staffRepo,
		venueCatalogFixture(t), productCatalogFixture(t), notifier, testLogger())

	// Act
	result, err := useCase.Execute(RequestSpendCodeCommand{ActorID: 100, VenueID: "center", ProductID: "cappuccino"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Капучино", result.ProductName)
	assert.Equal(t, 50, result.Cost)
	assert.Equal(t, 1, result.Notified)

	require.Len(t, notifier.Sent, 1)
	require.Len(t, notifier.Sent[0].Buttons, 2)
	assert.Contains(t, notifier.Sent[0].Buttons[0].Payload, "spend_confirm:"+result.Code)
}

// Test 7: A venue with an empty roster gets no code at all
func TestRequestSpendCodeUseCase_Execute_NoStaff(t *testing.T) {
	// Arrange
	codeRepo := new(MockCodeRepository)
	clientRepo := new(MockClientRepository)
	staffRepo := new(MockStaffRepository)
	staffRepo.On("ListByVenue", nil, mock.Anything).Return([]*staff.Staff{}, nil)

	issuer := codes.NewIssuer(codes.NewGenerator(), codeRepo, new(MockTransactionManager))
	useCase := NewRequestSpendCodeUseCase(issuer, clientRepo, staffRepo,
		venueCatalogFixture(t), productCatalogFixture(t), &RecordingNotifier{}, testLogger())

	// Act
	_, err := useCase.Execute(RequestSpendCodeCommand{ActorID: 100, VenueID: "center", ProductID: "cappuccino"})

	// Assert
	assert.ErrorIs(t, err, staff.ErrNoActiveStaff)
	clientRepo.AssertNotCalled(t, "FindByActorID")
	codeRepo.AssertNotCalled(t, "Reserve")
}
