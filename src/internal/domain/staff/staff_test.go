package staff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/shared"
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/venue"
)

func testIDs(t *testing.T) (shared.ActorID, venue.VenueID) {
	t.Helper()
	actor, err := shared.NewActorID(555)
	require.NoError(t, err)
	vid, err := venue.NewVenueID("center")
	require.NoError(t, err)
	return actor, vid
}

// Test 1: Valid staff member with assignment event
func TestNewStaff_Valid(t *testing.T) {
	// Arrange
	actor, vid := testIDs(t)

	// Act
	s, err := NewStaff(actor, "Анна Смирнова", vid)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Анна Смирнова", s.FullName())
	assert.True(t, s.VenueID().Equals(vid))

	events := s.PullEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "staff.assigned", events[0].EventType())
}

// Test 2: Blank name and missing venue are rejected
func TestNewStaff_Invalid(t *testing.T) {
	actor, vid := testIDs(t)

	_, err := NewStaff(actor, "   ", vid)
	assert.ErrorIs(t, err, ErrInvalidStaffName)

	_, err = NewStaff(actor, "Анна", venue.VenueID{})
	assert.ErrorIs(t, err, venue.ErrInvalidVenueID)
}

// Test 3: Reassign overwrites name and venue (last-wins)
func TestStaff_Reassign(t *testing.T) {
	// Arrange
	actor, vid := testIDs(t)
	s, err := NewStaff(actor, "Анна", vid)
	require.NoError(t, err)
	s.PullEvents()

	parkID, err := venue.NewVenueID("park")
	require.NoError(t, err)

	// Act
	err = s.Reassign("Анна Смирнова", parkID)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Анна Смирнова", s.FullName())
	assert.True(t, s.VenueID().Equals(parkID))

	events := s.PullEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "staff.assigned", events[0].EventType())
}
