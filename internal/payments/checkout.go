// internal/payments/checkout.go
// Hosted checkout-session provider. The payment URL carries an MD5
// signature over merchant login, amount, invoice id and the first
// merchant password; result redirects are verified against the second
// password.

package payments

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
)

type CheckoutProvider struct {
	MerchantLogin string
	Password1     string
	Password2     string
	BaseURL       string
	Currency      string
}

func NewCheckoutProvider(merchantLogin, password1, password2, baseURL, currency string) *CheckoutProvider {
	return &CheckoutProvider{
		MerchantLogin: merchantLogin,
		Password1:     password1,
		Password2:     password2,
		BaseURL:       baseURL,
		Currency:      currency,
	}
}

// PaymentURL builds the hosted checkout link for an invoice.
func (p *CheckoutProvider) PaymentURL(invoiceID string, amount float64, description string) string {
	params := url.Values{}
	params.Set("MrchLogin", p.MerchantLogin)
	params.Set("OutSum", formatAmount(amount))
	params.Set("InvId", invoiceID)
	params.Set("Desc", description)
	params.Set("SignatureValue", p.requestSignature(invoiceID, amount))
	params.Set("IncCurrLabel", p.Currency)

	return fmt.Sprintf("%s?%s", p.BaseURL, params.Encode())
}

// VerifyResultSignature checks the signature the provider attaches to
// success redirects.
func (p *CheckoutProvider) VerifyResultSignature(amount float64, invoiceID, receivedSig string) bool {
	plain := fmt.Sprintf("%s:%s:%s", formatAmount(amount), invoiceID, p.Password2)
	return strings.EqualFold(md5Hex(plain), receivedSig)
}

func (p *CheckoutProvider) requestSignature(invoiceID string, amount float64) string {
	plain := fmt.Sprintf("%s:%s:%s:%s", p.MerchantLogin, formatAmount(amount), invoiceID, p.Password1)
	return md5Hex(plain)
}

func formatAmount(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

func md5Hex(s string) string {
	hash := md5.Sum([]byte(s))
	return strings.ToUpper(hex.EncodeToString(hash[:]))
}
