package notifications

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayloadRoundTrip(t *testing.T) {
	original := &MatchCreatedPayload{
		MatchID:       7,
		JobID:         12,
		JobTitle:      "Barista",
		CounterpartID: 3,
	}

	raw, err := EncodePayload(original)
	require.NoError(t, err)

	decoded, err := DecodePayload(raw)
	require.NoError(t, err)

	restored, ok := decoded.(*MatchCreatedPayload)
	require.True(t, ok)
	assert.Equal(t, original, restored)
}

func TestDecodePayloadSwitchesOnType(t *testing.T) {
	raw, err := EncodePayload(&CreditsGrantedPayload{CreditType: "swipe", Amount: 10})
	require.NoError(t, err)

	decoded, err := DecodePayload(raw)
	require.NoError(t, err)

	granted, ok := decoded.(*CreditsGrantedPayload)
	require.True(t, ok)
	assert.Equal(t, "swipe", granted.CreditType)
	assert.Equal(t, 10, granted.Amount)
}

func TestDecodePayloadRejectsUnknownType(t *testing.T) {
	raw := json.RawMessage(`{"type":"mystery_event","data":{}}`)

	_, err := DecodePayload(raw)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mystery_event")
}

func TestDecodePayloadRejectsMalformedEnvelope(t *testing.T) {
	_, err := DecodePayload(json.RawMessage(`not json`))
	assert.Error(t, err)
}

func TestDecodePayloadRejectsMalformedData(t *testing.T) {
	raw := json.RawMessage(`{"type":"credits_granted","data":[1,2,3]}`)

	_, err := DecodePayload(raw)
	assert.Error(t, err)
}
