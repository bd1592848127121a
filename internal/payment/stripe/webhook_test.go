package stripe

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const testSecret = "whsec_test"

func signPayload(t *testing.T, payload []byte, secret string, at time.Time) string {
	t.Helper()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", at.Unix(), payload)
	return fmt.Sprintf("t=%d,v1=%s", at.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func TestVerifySignatureAcceptsValid(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed"}`)
	header := signPayload(t, payload, testSecret, time.Now())

	assert.NoError(t, VerifySignature(payload, header, testSecret, DefaultTolerance))
}

func TestVerifySignatureAcceptsAnyMatchingCandidate(t *testing.T) {
	payload := []byte(`{}`)
	header := signPayload(t, payload, testSecret, time.Now()) + ",v1=deadbeef"

	assert.NoError(t, VerifySignature(payload, header, testSecret, DefaultTolerance))
}

func TestVerifySignatureRejectsWrongSecret(t *testing.T) {
	payload := []byte(`{}`)
	header := signPayload(t, payload, "whsec_other", time.Now())

	assert.ErrorIs(t, VerifySignature(payload, header, testSecret, DefaultTolerance), ErrInvalidSignature)
}

func TestVerifySignatureRejectsTamperedPayload(t *testing.T) {
	header := signPayload(t, []byte(`{"amount":497}`), testSecret, time.Now())

	assert.ErrorIs(t, VerifySignature([]byte(`{"amount":1}`), header, testSecret, DefaultTolerance), ErrInvalidSignature)
}

func TestVerifySignatureRejectsStaleTimestamp(t *testing.T) {
	payload := []byte(`{}`)
	header := signPayload(t, payload, testSecret, time.Now().Add(-time.Hour))

	assert.ErrorIs(t, VerifySignature(payload, header, testSecret, DefaultTolerance), ErrStaleTimestamp)
}

func TestVerifySignatureRequiresHeaderAndSecret(t *testing.T) {
	payload := []byte(`{}`)
	header := signPayload(t, payload, testSecret, time.Now())

	assert.ErrorIs(t, VerifySignature(payload, "", testSecret, DefaultTolerance), ErrMissingSignature)
	assert.ErrorIs(t, VerifySignature(payload, header, "", DefaultTolerance), ErrMissingSignature)
}

func TestVerifySignatureRejectsMalformedHeader(t *testing.T) {
	assert.ErrorIs(t, VerifySignature([]byte(`{}`), "v1=abc", testSecret, DefaultTolerance), ErrInvalidSignature)
	assert.ErrorIs(t, VerifySignature([]byte(`{}`), "t=notanumber,v1=abc", testSecret, DefaultTolerance), ErrInvalidSignature)
}
