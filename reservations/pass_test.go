package reservations

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPassPayloadRoundTrip(t *testing.T) {
	payload := PassPayload("1234567890123456", "Pelican", "2025-07-01")
	assert.True(t, VerifyPassPayload(payload))
}

func TestVerifyPassPayloadRejectsTampering(t *testing.T) {
	payload := PassPayload("1234567890123456", "Pelican", "2025-07-01")

	tampered := "9" + payload[1:]
	assert.False(t, VerifyPassPayload(tampered))

	assert.False(t, VerifyPassPayload("no-signature-here"))
	assert.False(t, VerifyPassPayload(""))
}
