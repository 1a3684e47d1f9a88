package admin

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionDetailsRoundTrip(t *testing.T) {
	original := &SuspendUserDetails{UserID: 42, Reason: "spam postings"}

	raw, err := EncodeActionDetails(original)
	require.NoError(t, err)

	decoded, err := DecodeActionDetails(raw)
	require.NoError(t, err)

	restored, ok := decoded.(*SuspendUserDetails)
	require.True(t, ok)
	assert.Equal(t, original, restored)
}

func TestDecodeActionDetailsAllKinds(t *testing.T) {
	note := "documents look legitimate"
	details := []ActionDetails{
		&WarnUserDetails{UserID: 1, Reason: "rude messages"},
		&SuspendUserDetails{UserID: 1, Reason: "abuse"},
		&ReinstateUserDetails{UserID: 1},
		&CloseJobDetails{JobID: 2, Reason: "scam listing"},
		&ResolveReportDetails{ReportID: 3, Status: "resolved", Resolution: "user warned"},
		&VerificationDecisionDetails{RequestID: 4, Approved: true, Note: &note},
	}

	for _, d := range details {
		raw, err := EncodeActionDetails(d)
		require.NoError(t, err)

		decoded, err := DecodeActionDetails(raw)
		require.NoError(t, err)
		assert.Equal(t, d.ActionKind(), decoded.ActionKind())
		assert.Equal(t, d, decoded)
	}
}

func TestDecodeActionDetailsRejectsUnknownKind(t *testing.T) {
	raw := json.RawMessage(`{"kind":"delete_everything","data":{}}`)

	_, err := DecodeActionDetails(raw)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delete_everything")
}

func TestDecodeActionDetailsRejectsMalformed(t *testing.T) {
	_, err := DecodeActionDetails(json.RawMessage(`{broken`))
	assert.Error(t, err)
}
