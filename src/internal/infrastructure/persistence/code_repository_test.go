package persistence

import (
	"sync"
	"testing"

	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/codes"
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/venue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCode(t *testing.T, value string) codes.Code {
	t.Helper()
	code, err := codes.NewCode(value)
	require.NoError(t, err)
	return code
}

func newEarnCodeFixture(t *testing.T, value string) *codes.TransactionCode {
	t.Helper()
	venueID, err := venue.NewVenueID("center")
	require.NoError(t, err)
	tc, err := codes.NewEarnCode(mustCode(t, value), mustActorID(t, 100), 14, venueID)
	require.NoError(t, err)
	return tc
}

func newSpendCodeFixture(t *testing.T, value string) *codes.TransactionCode {
	t.Helper()
	tc, err := codes.NewSpendCode(mustCode(t, value), mustActorID(t, 100), 50, "cappuccino")
	require.NoError(t, err)
	return tc
}

// Test 1: a reserved earn code can be read back with all fields intact
func TestGORMCodeRepository_Reserve_AndFindEarnCode(t *testing.T) {
	// Arrange
	db := setupTestDB(t)
	repo := NewGORMCodeRepository(db)
	tc := newEarnCodeFixture(t, "483920")

	// Act
	require.NoError(t, repo.Reserve(nil, tc))
	found, err := repo.FindByCode(nil, tc.Code())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "483920", found.Code().String())
	assert.Equal(t, codes.KindEarn, found.Kind())
	assert.Equal(t, int64(100), found.ActorID().Int64())
	assert.Equal(t, 14, found.Amount())
	assert.Equal(t, "center", found.VenueID().String())
	assert.False(t, found.IsUsed())
	assert.Nil(t, found.UsedAt())
}

// Test 2: a spend code stores the product and an empty venue
func TestGORMCodeRepository_Reserve_AndFindSpendCode(t *testing.T) {
	// Arrange
	db := setupTestDB(t)
	repo := NewGORMCodeRepository(db)
	tc := newSpendCodeFixture(t, "771200")

	// Act
	require.NoError(t, repo.Reserve(nil, tc))
	found, err := repo.FindByCode(nil, tc.Code())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, codes.KindSpend, found.Kind())
	assert.Equal(t, "cappuccino", found.ProductID())
	assert.True(t, found.VenueID().IsZero())
	assert.Equal(t, 50, found.Amount())
}

// Test 3: reserving the same code twice returns ErrCodeTaken
func TestGORMCodeRepository_Reserve_DuplicateCode(t *testing.T) {
	// Arrange
	db := setupTestDB(t)
	repo := NewGORMCodeRepository(db)
	require.NoError(t, repo.Reserve(nil, newEarnCodeFixture(t, "483920")))

	// Act: a different transaction collides on the same code value
	err := repo.Reserve(nil, newSpendCodeFixture(t, "483920"))

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, codes.ErrCodeTaken)
}

// Test 4: looking up an unknown code returns ErrCodeNotFound
func TestGORMCodeRepository_FindByCode_NotFound(t *testing.T) {
	// Arrange
	db := setupTestDB(t)
	repo := NewGORMCodeRepository(db)

	// Act
	_, err := repo.FindByCode(nil, mustCode(t, "999999"))

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, codes.ErrCodeNotFound)
}

// Test 5: the first consumption wins, the second is refused
func TestGORMCodeRepository_MarkUsedIfUnused_FlipsExactlyOnce(t *testing.T) {
	// Arrange
	db := setupTestDB(t)
	repo := NewGORMCodeRepository(db)
	tc := newEarnCodeFixture(t, "483920")
	require.NoError(t, repo.Reserve(nil, tc))

	// Act
	first, err := repo.MarkUsedIfUnused(nil, tc.Code())
	require.NoError(t, err)
	second, err := repo.MarkUsedIfUnused(nil, tc.Code())
	require.NoError(t, err)

	// Assert
	assert.True(t, first)
	assert.False(t, second)

	found, err := repo.FindByCode(nil, tc.Code())
	require.NoError(t, err)
	assert.True(t, found.IsUsed())
	assert.NotNil(t, found.UsedAt())
}

// Test 6: racing consumers on one code — exactly one gets it
func TestGORMCodeRepository_MarkUsedIfUnused_ConcurrentConsumers(t *testing.T) {
	// Arrange
	db := setupTestDB(t)
	repo := NewGORMCodeRepository(db)
	tc := newEarnCodeFixture(t, "483920")
	require.NoError(t, repo.Reserve(nil, tc))

	// Act: eight goroutines fight over the same code
	const attempts = 8
	results := make(chan bool, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			consumed, err := repo.MarkUsedIfUnused(nil, tc.Code())
			assert.NoError(t, err)
			results <- consumed
		}()
	}
	wg.Wait()
	close(results)

	// Assert
	wins := 0
	for consumed := range results {
		if consumed {
			wins++
		}
	}
	assert.Equal(t, 1, wins)
}

// Test 7: consuming an unknown code reports consumed=false without an error
func TestGORMCodeRepository_MarkUsedIfUnused_UnknownCode(t *testing.T) {
	// Arrange
	db := setupTestDB(t)
	repo := NewGORMCodeRepository(db)

	// Act
	consumed, err := repo.MarkUsedIfUnused(nil, mustCode(t, "999999"))

	// Assert
	require.NoError(t, err)
	assert.False(t, consumed)
}
