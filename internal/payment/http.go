package payment

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/jedipath/quiz-api/internal/entitlement"
	"github.com/jedipath/quiz-api/internal/metrics"
	"github.com/jedipath/quiz-api/internal/payment/stripe"
	httperrors "github.com/jedipath/quiz-api/pkg/http/errors"
)

const maxWebhookBody = 1 << 20

// HTTPHandlers exposes the checkout and webhook endpoints. A nil stripe
// client means payments are disabled and checkout responds with a
// configuration error.
type HTTPHandlers struct {
	client         *stripe.Client
	webhookSecret  string
	issuer         *entitlement.Issuer
	siteURL        string
	priceCents     int64
	publishableKey string
	logger         zerolog.Logger
}

func NewHTTPHandlers(client *stripe.Client, webhookSecret string, issuer *entitlement.Issuer, siteURL string, priceCents int64, publishableKey string, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		client:         client,
		webhookSecret:  webhookSecret,
		issuer:         issuer,
		siteURL:        siteURL,
		priceCents:     priceCents,
		publishableKey: publishableKey,
		logger:         logger.With().Str("component", "payment_http").Logger(),
	}
}

// HandleConfig handles GET /v1/payments/config. It publishes the
// settings the checkout front end needs; the publishable key is safe
// to expose by definition.
func (h *HTTPHandlers) HandleConfig(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"publishable_key": h.publishableKey,
		"price_cents":     h.priceCents,
		"enabled":         h.client != nil,
	})
}

// HandleCheckout handles POST /v1/payments/checkout.
func (h *HTTPHandlers) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}

	if h.client == nil {
		httperrors.RespondError(w, http.StatusInternalServerError, httperrors.ErrCodePaymentNotConfigured, "Payments are not configured.")
		return
	}

	session, err := h.client.CreateCheckoutSession(r.Context(), stripe.CheckoutParams{
		ProductName: "Jedi Path Destiny",
		Description: "Unlock your full Jedi destiny",
		Currency:    "usd",
		AmountCents: h.priceCents,
		SuccessURL:  h.siteURL + "/?paid=true",
		CancelURL:   h.siteURL + "/?canceled=true",
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to create checkout session")
		httperrors.RespondError(w, http.StatusInternalServerError, httperrors.ErrCodeCheckoutFailed, "Failed to create checkout session")
		return
	}

	metrics.CheckoutSessionsTotal.Inc()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"url": session.URL})
}

// HandleWebhook handles POST /v1/payments/webhook. A completed checkout
// grants entitlement: the signed token cookie plus the legacy display
// flag. Anything with a bad signature is rejected before any state
// change.
func (h *HTTPHandlers) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
	if err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Unreadable payload")
		return
	}

	signature := r.Header.Get(stripe.SignatureHeader)
	if err := stripe.VerifySignature(body, signature, h.webhookSecret, stripe.DefaultTolerance); err != nil {
		metrics.WebhookEventsTotal.WithLabelValues("rejected").Inc()
		h.logger.Warn().Err(err).Msg("webhook signature verification failed")
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidSignature, "Webhook signature verification failed")
		return
	}

	var event stripe.Event
	if err := json.Unmarshal(body, &event); err != nil {
		metrics.WebhookEventsTotal.WithLabelValues("rejected").Inc()
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Malformed event payload")
		return
	}

	if event.Type != stripe.EventCheckoutCompleted {
		metrics.WebhookEventsTotal.WithLabelValues("ignored").Inc()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]bool{"received": true})
		return
	}

	cookie, err := h.issuer.Cookie()
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to mint entitlement token")
		httperrors.RespondInternalError(w, "Failed to grant entitlement")
		return
	}
	http.SetCookie(w, cookie)
	http.SetCookie(w, entitlement.LegacyCookie(h.issuer.TTL()))

	metrics.WebhookEventsTotal.WithLabelValues("completed").Inc()
	h.logger.Info().Str("event_id", event.ID).Msg("payment completed, entitlement granted")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"received": true})
}
