package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/client"
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/shared"
)

// ===========================
// Mocks
// ===========================

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

// MockTransactionManager mock implementation of TransactionManager
type MockTransactionManager struct {
	mock.Mock
}

func (m *MockTransactionManager) InTransaction(fn func(ctx shared.TransactionContext) error) error {
	// Directly execute the function with nil context (for unit tests)
	return fn(nil)
}

func existingClient(t *testing.T, actorID int64, balance int) *client.Client {
	t.Helper()
	id, err := shared.NewActorID(actorID)
	require.NoError(t, err)
	c, err := client.NewClient(id, "ivan", "Иван")
	require.NoError(t, err)
	for balance > 0 {
		amount, err := client.NewPointsAmount(1)
		require.NoError(t, err)
		c.Credit(amount)
		balance--
	}
	return c
}

// ===========================
// RegisterClientUseCase Tests
// ===========================

// Test 1: First interaction creates the client
func TestRegisterClientUseCase_Execute_Creates(t *testing.T) {
	// Arrange
	mockRepo := new(MockClientRepository)
	mockTx := new(MockTransactionManager)
	useCase := NewRegisterClientUseCase(mockRepo, mockTx)

	mockRepo.On("SaveIfAbsent", mock.Anything, mock.Anything).Return(true, nil)
	mockRepo.On("FindByActorID", mock.Anything, mock.Anything).
		Return(existingClient(t, 100, 0), nil)

	// Act
	result, err := useCase.Execute(RegisterClientCommand{
		ActorID:  100,
		Username: "ivan",
		FullName: "Иван",
	})

	// Assert
	require.NoError(t, err)
	assert.True(t, result.Created)
	assert.Equal(t, 0, result.Balance)
	mockRepo.AssertExpectations(t)
}

// Test 2: Repeat interaction is idempotent and returns the existing balance
func TestRegisterClientUseCase_Execute_Idempotent(t *testing.T) {
	// Arrange
	mockRepo := new(MockClientRepository)
	mockTx := new(MockTransactionManager)
	useCase := NewRegisterClientUseCase(mockRepo, mockTx)

	mockRepo.On("SaveIfAbsent", mock.Anything, mock.Anything).Return(false, nil)
	mockRepo.On("FindByActorID", mock.Anything, mock.Anything).
		Return(existingClient(t, 100, 42), nil)

	// Act
	result, err := useCase.Execute(RegisterClientCommand{ActorID: 100})

	// Assert
	require.NoError(t, err)
	assert.False(t, result.Created)
	assert.Equal(t, 42, result.Balance)
}

// Test 3: Invalid actor id fails before touching storage
func TestRegisterClientUseCase_Execute_InvalidActorID(t *testing.T) {
	// Arrange
	mockRepo := new(MockClientRepository)
	mockTx := new(MockTransactionManager)
	useCase := NewRegisterClientUseCase(mockRepo, mockTx)

	// Act
	result, err := useCase.Execute(RegisterClientCommand{ActorID: -1})

	// Assert
	assert.ErrorIs(t, err, shared.ErrInvalidActorID)
	assert.Nil(t, result)
	mockRepo.AssertNotCalled(t, "SaveIfAbsent")
}

// ===========================
// GetBalanceUseCase Tests
// ===========================

// Test 4: Balance query maps aggregate state to the DTO
func TestGetBalanceUseCase_Execute(t *testing.T) {
	// Arrange
	mockRepo := new(MockClientRepository)
	useCase := NewGetBalanceUseCase(mockRepo)

	mockRepo.On("FindByActorID", nil, mock.Anything).
		Return(existingClient(t, 100, 42), nil)

	// Act
	result, err := useCase.Execute(GetBalanceQuery{ActorID: 100})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 42, result.Balance)
	assert.Equal(t, 42, result.TotalPurchases) // one credit per point in the fixture
}

// Test 5: Unknown client propagates ErrClientNotFound
func TestGetBalanceUseCase_Execute_NotFound(t *testing.T) {
	// Arrange
	mockRepo := new(MockClientRepository)
	useCase := NewGetBalanceUseCase(mockRepo)

	mockRepo.On("FindByActorID", nil, mock.Anything).Return(nil, client.ErrClientNotFound)

	// Act
	_, err := useCase.Execute(GetBalanceQuery{ActorID: 100})

	// Assert
	assert.ErrorIs(t, err, client.ErrClientNotFound)
}
