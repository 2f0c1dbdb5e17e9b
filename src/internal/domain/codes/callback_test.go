package codes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test 1: Every variant round-trips through Encode/Parse
func TestCallback_RoundTrip(t *testing.T) {
	code := mustCode(t, "483920")

	variants := []Callback{
		EarnAccept{Code: code, Points: 14},
		EarnReject{Code: code},
		SpendAccept{Code: code, Cost: 50},
		SpendReject{Code: code},
	}

	for _, v := range variants {
		parsed, err := ParseCallback(v.Encode())

		require.NoError(t, err, "payload %q", v.Encode())
		assert.Equal(t, v, parsed)
	}
}

// Test 2: Wire format is stable (buttons rendered by older processes must still parse)
func TestCallback_WireFormat(t *testing.T) {
	code := mustCode(t, "483920")

	assert.Equal(t, "purchase_confirm:483920:14", EarnAccept{Code: code, Points: 14}.Encode())
	assert.Equal(t, "purchase_reject:483920", EarnReject{Code: code}.Encode())
	assert.Equal(t, "spend_confirm:483920:50", SpendAccept{Code: code, Cost: 50}.Encode())
	assert.Equal(t, "spend_reject:483920", SpendReject{Code: code}.Encode())
}

// Test 3: Malformed payloads never panic, always ErrInvalidCallback
func TestParseCallback_Malformed(t *testing.T) {
	malformed := []string{
		"",
		"purchase_confirm",
		"purchase_confirm:483920",      // missing amount
		"purchase_confirm:483920:abc",  // non-numeric amount
		"purchase_confirm:483920:0",    // zero amount
		"purchase_confirm:483920:-5",   // negative amount
		"purchase_reject:483920:14",    // reject must not carry amount
		"spend_reject:12a456",          // bad code
		"unknown_action:483920",        // unknown action
		"::",
	}

	for _, payload := range malformed {
		parsed, err := ParseCallback(payload)

		assert.ErrorIs(t, err, ErrInvalidCallback, "payload %q", payload)
		assert.Nil(t, parsed)
	}
}
