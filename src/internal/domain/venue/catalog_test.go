package venue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustVenue(t *testing.T, id, name, address string) Venue {
	t.Helper()
	vid, err := NewVenueID(id)
	require.NoError(t, err)
	v, err := NewVenue(vid, name, address)
	require.NoError(t, err)
	return v
}

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog([]Venue{
		mustVenue(t, "center", "Кофейня на Ленина", "ул. Ленина, 10"),
		mustVenue(t, "park", "Кофейня в парке", "Парк Горького, 1"),
		mustVenue(t, "station", "Кофейня у вокзала", "Привокзальная пл., 3"),
	})
	require.NoError(t, err)
	return c
}

// ===========================
// Venue / Catalog Tests
// ===========================

// Test 1: Blank id or name is rejected
func TestNewVenue_Invalid(t *testing.T) {
	_, err := NewVenueID("   ")
	assert.ErrorIs(t, err, ErrInvalidVenueID)

	vid, err := NewVenueID("center")
	require.NoError(t, err)

	_, err = NewVenue(vid, "", "addr")
	assert.ErrorIs(t, err, ErrInvalidVenueName)
}

// Test 2: Lookup by id and by name
func TestCatalog_Find(t *testing.T) {
	// Arrange
	catalog := testCatalog(t)
	parkID, _ := NewVenueID("park")

	// Act & Assert: by id
	v, err := catalog.FindByID(parkID)
	require.NoError(t, err)
	assert.Equal(t, "Кофейня в парке", v.Name())

	// Act & Assert: by name
	v, err = catalog.FindByName("Кофейня у вокзала")
	require.NoError(t, err)
	assert.Equal(t, "station", v.ID().String())

	// Act & Assert: miss
	unknownID, _ := NewVenueID("mall")
	_, err = catalog.FindByID(unknownID)
	assert.ErrorIs(t, err, ErrVenueNotFound)
}

// Test 3: Catalog preserves declaration order and is defensively copied
func TestCatalog_All_Order(t *testing.T) {
	catalog := testCatalog(t)

	all := catalog.All()
	require.Len(t, all, 3)
	assert.Equal(t, "center", all[0].ID().String())
	assert.Equal(t, "station", all[2].ID().String())

	// mutating the returned slice must not affect the catalog
	all[0] = Venue{}
	again := catalog.All()
	assert.Equal(t, "center", again[0].ID().String())
}

// Test 4: Empty catalog and duplicate ids are rejected
func TestNewCatalog_Invalid(t *testing.T) {
	_, err := NewCatalog(nil)
	assert.ErrorIs(t, err, ErrEmptyCatalog)

	_, err = NewCatalog([]Venue{
		mustVenue(t, "center", "A", ""),
		mustVenue(t, "center", "B", ""),
	})
	assert.ErrorIs(t, err, ErrDuplicateVenue)
}

// ===========================
// Product Catalog Tests
// ===========================

// Test 5: Product validation
func TestNewProduct_Invalid(t *testing.T) {
	_, err := NewProduct("", "Печенье", 30)
	assert.ErrorIs(t, err, ErrInvalidProduct)

	_, err = NewProduct("cookie", "Печенье", 0)
	assert.ErrorIs(t, err, ErrInvalidProduct)

	_, err = NewProduct("cookie", "Печенье", -5)
	assert.ErrorIs(t, err, ErrInvalidProduct)
}

// Test 6: Product lookup by id
func TestProductCatalog_FindByID(t *testing.T) {
	// Arrange
	cookie, err := NewProduct("cookie", "Печенье", 30)
	require.NoError(t, err)
	cappuccino, err := NewProduct("cappuccino", "Капучино", 50)
	require.NoError(t, err)
	croissant, err := NewProduct("croissant", "Круассан", 70)
	require.NoError(t, err)

	catalog, err := NewProductCatalog([]Product{cookie, cappuccino, croissant})
	require.NoError(t, err)

	// Act & Assert
	p, err := catalog.FindByID("cappuccino")
	require.NoError(t, err)
	assert.Equal(t, 50, p.Cost())

	_, err = catalog.FindByID("tea")
	assert.ErrorIs(t, err, ErrProductNotFound)

	assert.Len(t, catalog.All(), 3)
}

// Test 7: Duplicate product ids are rejected
func TestNewProductCatalog_Duplicate(t *testing.T) {
	a, _ := NewProduct("cookie", "Печенье", 30)
	b, _ := NewProduct("cookie", "Другое печенье", 40)

	_, err := NewProductCatalog([]Product{a, b})
	assert.ErrorIs(t, err, ErrInvalidProduct)
}
