package persistence

import (
	"testing"

	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/staff"
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/venue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStaffFixture(t *testing.T, actorID int64, fullName, venueID string) *staff.Staff {
	t.Helper()
	vid, err := venue.NewVenueID(venueID)
	require.NoError(t, err)
	s, err := staff.NewStaff(mustActorID(t, actorID), fullName, vid)
	require.NoError(t, err)
	return s
}

// Test 1: an upserted staff member can be found by actor id
func TestGORMStaffRepository_Upsert_AndFind(t *testing.T) {
	// Arrange
	db := setupTestDB(t)
	repo := NewGORMStaffRepository(db)
	s := newStaffFixture(t, 555, "Анна Смирнова", "center")

	// Act
	require.NoError(t, repo.Upsert(nil, s))
	found, err := repo.FindByActorID(nil, s.ActorID())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int64(555), found.ActorID().Int64())
	assert.Equal(t, "Анна Смирнова", found.FullName())
	assert.Equal(t, "center", found.VenueID().String())
}

// Test 2: upserting the same actor overwrites name and venue (last-wins)
func TestGORMStaffRepository_Upsert_LastWins(t *testing.T) {
	// Arrange
	db := setupTestDB(t)
	repo := NewGORMStaffRepository(db)
	require.NoError(t, repo.Upsert(nil, newStaffFixture(t, 555, "Анна Смирнова", "center")))

	// Act
	require.NoError(t, repo.Upsert(nil, newStaffFixture(t, 555, "Анна Иванова", "park")))

	// Assert
	found, err := repo.FindByActorID(nil, mustActorID(t, 555))
	require.NoError(t, err)
	assert.Equal(t, "Анна Иванова", found.FullName())
	assert.Equal(t, "park", found.VenueID().String())

	all, err := repo.ListAll(nil)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

// Test 3: looking up an unknown actor returns ErrStaffNotFound
func TestGORMStaffRepository_FindByActorID_NotFound(t *testing.T) {
	// Arrange
	db := setupTestDB(t)
	repo := NewGORMStaffRepository(db)

	// Act
	_, err := repo.FindByActorID(nil, mustActorID(t, 404))

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, staff.ErrStaffNotFound)
}

// Test 4: ListByVenue returns only the staff assigned to that venue
func TestGORMStaffRepository_ListByVenue(t *testing.T) {
	// Arrange
	db := setupTestDB(t)
	repo := NewGORMStaffRepository(db)
	require.NoError(t, repo.Upsert(nil, newStaffFixture(t, 555, "Анна Смирнова", "center")))
	require.NoError(t, repo.Upsert(nil, newStaffFixture(t, 556, "Пётр Козлов", "center")))
	require.NoError(t, repo.Upsert(nil, newStaffFixture(t, 557, "Мария Орлова", "park")))

	// Act
	centerVenue, err := venue.NewVenueID("center")
	require.NoError(t, err)
	center, err := repo.ListByVenue(nil, centerVenue)

	// Assert
	require.NoError(t, err)
	require.Len(t, center, 2)
	assert.Equal(t, int64(555), center[0].ActorID().Int64())
	assert.Equal(t, int64(556), center[1].ActorID().Int64())
}

// Test 5: removal reports whether anything was deleted and is idempotent
func TestGORMStaffRepository_Remove_Idempotent(t *testing.T) {
	// Arrange
	db := setupTestDB(t)
	repo := NewGORMStaffRepository(db)
	require.NoError(t, repo.Upsert(nil, newStaffFixture(t, 555, "Анна Смирнова", "center")))

	// Act
	removed, err := repo.Remove(nil, mustActorID(t, 555))
	require.NoError(t, err)
	removedAgain, err := repo.Remove(nil, mustActorID(t, 555))
	require.NoError(t, err)

	// Assert
	assert.True(t, removed)
	assert.False(t, removedAgain)

	_, err = repo.FindByActorID(nil, mustActorID(t, 555))
	assert.ErrorIs(t, err, staff.ErrStaffNotFound)
}
