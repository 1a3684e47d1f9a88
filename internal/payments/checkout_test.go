package payments

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProvider() *CheckoutProvider {
	return NewCheckoutProvider("kind-merchant", "pass-one", "pass-two",
		"https://checkout.example.com/pay", "PHP")
}

func TestPaymentURL(t *testing.T) {
	provider := testProvider()

	raw := provider.PaymentURL("inv-123", 199.5, "Swipe Pack 50")

	parsed, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "checkout.example.com", parsed.Host)

	q := parsed.Query()
	assert.Equal(t, "kind-merchant", q.Get("MrchLogin"))
	assert.Equal(t, "199.50", q.Get("OutSum"))
	assert.Equal(t, "inv-123", q.Get("InvId"))
	assert.Equal(t, "Swipe Pack 50", q.Get("Desc"))
	assert.Equal(t, "PHP", q.Get("IncCurrLabel"))

	expected := md5.Sum([]byte("kind-merchant:199.50:inv-123:pass-one"))
	assert.Equal(t, strings.ToUpper(hex.EncodeToString(expected[:])), q.Get("SignatureValue"))
}

func TestVerifyResultSignature(t *testing.T) {
	provider := testProvider()

	sum := md5.Sum([]byte("199.50:inv-123:pass-two"))
	sig := hex.EncodeToString(sum[:])

	assert.True(t, provider.VerifyResultSignature(199.5, "inv-123", strings.ToUpper(sig)))
	assert.True(t, provider.VerifyResultSignature(199.5, "inv-123", sig), "case-insensitive match")
}

func TestVerifyResultSignatureRejectsTampering(t *testing.T) {
	provider := testProvider()

	sum := md5.Sum([]byte("199.50:inv-123:pass-two"))
	sig := strings.ToUpper(hex.EncodeToString(sum[:]))

	assert.False(t, provider.VerifyResultSignature(999.0, "inv-123", sig), "amount changed")
	assert.False(t, provider.VerifyResultSignature(199.5, "inv-999", sig), "invoice changed")
	assert.False(t, provider.VerifyResultSignature(199.5, "inv-123", "deadbeef"))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "100.00", formatAmount(100))
	assert.Equal(t, "99.90", formatAmount(99.9))
	assert.Equal(t, "0.50", formatAmount(0.5))
}

func resultSignature(p *CheckoutProvider, amount float64, invoiceID string) string {
	sum := md5.Sum([]byte(fmt.Sprintf("%s:%s:%s", formatAmount(amount), invoiceID, p.Password2)))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}
