package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jedipath/quiz-api/internal/entitlement"
	"github.com/jedipath/quiz-api/internal/payment/stripe"
)

const (
	webhookSecret  = "whsec_test"
	publishableKey = "pk_test_123"
)

func newHandlers(t *testing.T, client *stripe.Client) *HTTPHandlers {
	t.Helper()
	issuer, err := entitlement.NewIssuer([]byte("test-secret"), time.Hour, "test")
	require.NoError(t, err)
	return NewHTTPHandlers(client, webhookSecret, issuer, "http://localhost:3000", 497, publishableKey, zerolog.Nop())
}

func signedHeader(payload string) string {
	now := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(webhookSecret))
	fmt.Fprintf(mac, "%d.%s", now, payload)
	return fmt.Sprintf("t=%d,v1=%s", now, hex.EncodeToString(mac.Sum(nil)))
}

func cookieNames(res *http.Response) []string {
	var names []string
	for _, c := range res.Cookies() {
		names = append(names, c.Name)
	}
	return names
}

func TestConfigExposesPublishableKey(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer upstream.Close()
	h := newHandlers(t, stripe.NewClient("sk_test", upstream.URL, zerolog.Nop()))

	rec := httptest.NewRecorder()
	h.HandleConfig(rec, httptest.NewRequest(http.MethodGet, "/v1/payments/config", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		PublishableKey string `json:"publishable_key"`
		PriceCents     int64  `json:"price_cents"`
		Enabled        bool   `json:"enabled"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, publishableKey, body.PublishableKey)
	assert.Equal(t, int64(497), body.PriceCents)
	assert.True(t, body.Enabled)
}

func TestConfigReportsDisabledPayments(t *testing.T) {
	h := newHandlers(t, nil)

	rec := httptest.NewRecorder()
	h.HandleConfig(rec, httptest.NewRequest(http.MethodGet, "/v1/payments/config", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"enabled":false`)
}

func TestCheckoutDisabledWithoutClient(t *testing.T) {
	h := newHandlers(t, nil)

	rec := httptest.NewRecorder()
	h.HandleCheckout(rec, httptest.NewRequest(http.MethodPost, "/v1/payments/checkout", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "payment_not_configured")
}

func TestCheckoutReturnsHostedURL(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/checkout/sessions", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "payment", r.PostFormValue("mode"))
		assert.Equal(t, "497", r.PostFormValue("line_items[0][price_data][unit_amount]"))
		assert.Equal(t, "http://localhost:3000/?paid=true", r.PostFormValue("success_url"))
		json.NewEncoder(w).Encode(map[string]string{"id": "cs_1", "url": "https://checkout.example/cs_1"})
	}))
	defer upstream.Close()

	h := newHandlers(t, stripe.NewClient("sk_test", upstream.URL, zerolog.Nop()))

	rec := httptest.NewRecorder()
	h.HandleCheckout(rec, httptest.NewRequest(http.MethodPost, "/v1/payments/checkout", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "https://checkout.example/cs_1", body["url"])
}

func TestWebhookRejectsInvalidSignature(t *testing.T) {
	h := newHandlers(t, nil)
	payload := `{"id":"evt_1","type":"checkout.session.completed"}`

	req := httptest.NewRequest(http.MethodPost, "/v1/payments/webhook", strings.NewReader(payload))
	req.Header.Set(stripe.SignatureHeader, "t=1,v1=deadbeef")
	rec := httptest.NewRecorder()
	h.HandleWebhook(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, rec.Result().Cookies(), "rejected webhooks must not mutate cookies")
}

func TestWebhookRejectsMissingSignature(t *testing.T) {
	h := newHandlers(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/payments/webhook", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	h.HandleWebhook(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
}

func TestWebhookCompletedGrantsEntitlement(t *testing.T) {
	h := newHandlers(t, nil)
	payload := `{"id":"evt_1","type":"checkout.session.completed"}`

	req := httptest.NewRequest(http.MethodPost, "/v1/payments/webhook", strings.NewReader(payload))
	req.Header.Set(stripe.SignatureHeader, signedHeader(payload))
	rec := httptest.NewRecorder()
	h.HandleWebhook(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	names := cookieNames(rec.Result())
	assert.Contains(t, names, entitlement.TokenCookieName)
	assert.Contains(t, names, entitlement.LegacyCookieName)

	var body map[string]bool
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body["received"])
}

func TestWebhookAcknowledgesOtherEvents(t *testing.T) {
	h := newHandlers(t, nil)
	payload := `{"id":"evt_2","type":"invoice.paid"}`

	req := httptest.NewRequest(http.MethodPost, "/v1/payments/webhook", strings.NewReader(payload))
	req.Header.Set(stripe.SignatureHeader, signedHeader(payload))
	rec := httptest.NewRecorder()
	h.HandleWebhook(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Result().Cookies(), "only completed checkouts grant entitlement")
}
