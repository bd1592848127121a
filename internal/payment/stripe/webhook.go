package stripe

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SignatureHeader is the header carrying the webhook signature.
const SignatureHeader = "Stripe-Signature"

// EventCheckoutCompleted marks a finished payment.
const EventCheckoutCompleted = "checkout.session.completed"

// DefaultTolerance bounds the age of an accepted signed timestamp to
// limit replay.
const DefaultTolerance = 5 * time.Minute

var (
	ErrMissingSignature = errors.New("missing signature or secret")
	ErrInvalidSignature = errors.New("signature verification failed")
	ErrStaleTimestamp   = errors.New("signed timestamp outside tolerance")
)

// Event is the subset of a webhook event we handle.
type Event struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// VerifySignature checks the `t=<unix>,v1=<hex>` signature scheme: an
// HMAC-SHA256 of "<t>.<payload>" keyed by the endpoint secret. Any v1
// candidate may match; comparison is constant-time.
func VerifySignature(payload []byte, header, secret string, tolerance time.Duration) error {
	if header == "" || secret == "" {
		return ErrMissingSignature
	}
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}

	var timestamp int64
	var candidates []string
	for _, part := range strings.Split(header, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch key {
		case "t":
			ts, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return ErrInvalidSignature
			}
			timestamp = ts
		case "v1":
			candidates = append(candidates, value)
		}
	}
	if timestamp == 0 || len(candidates) == 0 {
		return ErrInvalidSignature
	}

	if age := time.Since(time.Unix(timestamp, 0)); age > tolerance || age < -tolerance {
		return ErrStaleTimestamp
	}

	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", timestamp, payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	for _, candidate := range candidates {
		if hmac.Equal([]byte(expected), []byte(candidate)) {
			return nil
		}
	}
	return ErrInvalidSignature
}
