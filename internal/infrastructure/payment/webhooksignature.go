package payment

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

// DefaultSignatureTolerance bounds how old a signed webhook payload may be.
const DefaultSignatureTolerance = 5 * time.Minute

var (
	ErrInvalidSignatureHeader = errors.New("invalid signature header")
	ErrSignatureExpired       = errors.New("signature timestamp outside tolerance")
	ErrSignatureMismatch      = errors.New("signature mismatch")
)

// WebhookVerifier checks Stripe-style webhook signatures. The header format
// is "t=<unix>,v1=<hex hmac>" where the HMAC-SHA256 input is "<t>.<payload>".
type WebhookVerifier struct {
	secret    []byte
	tolerance time.Duration
}

func NewWebhookVerifier(secret string, tolerance time.Duration) *WebhookVerifier {
	if tolerance <= 0 {
		tolerance = DefaultSignatureTolerance
	}
	return &WebhookVerifier{
		secret:    []byte(secret),
		tolerance: tolerance,
	}
}

// Verify validates the signature header against the raw payload.
func (v *WebhookVerifier) Verify(payload []byte, header string, now time.Time) error {
	timestamp, signatures, err := parseSignatureHeader(header)
	if err != nil {
		return err
	}

	signedAt := time.Unix(timestamp, 0)
	age := now.Sub(signedAt)
	if age < -v.tolerance || age > v.tolerance {
		return ErrSignatureExpired
	}

	expected := v.computeSignature(timestamp, payload)
	for _, sig := range signatures {
		decoded, err := hex.DecodeString(sig)
		if err != nil {
			continue
		}
		if hmac.Equal(decoded, expected) {
			return nil
		}
	}
	return ErrSignatureMismatch
}

func (v *WebhookVerifier) computeSignature(timestamp int64, payload []byte) []byte {
	mac := hmac.New(sha256.New, v.secret)
	fmt.Fprintf(mac, "%d.", timestamp)
	mac.Write(payload)
	return mac.Sum(nil)
}

// parseSignatureHeader extracts the timestamp and all v1 signatures. Multiple
// v1 entries appear during secret rotation.
func parseSignatureHeader(header string) (int64, []string, error) {
	if header == "" {
		return 0, nil, ErrInvalidSignatureHeader
	}

	var timestamp int64
	var signatures []string
	seenTimestamp := false

	for _, part := range strings.Split(header, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "t":
			ts, err := strconv.ParseInt(kv[1], 10, 64)
			if err != nil {
				return 0, nil, ErrInvalidSignatureHeader
			}
			timestamp = ts
			seenTimestamp = true
		case "v1":
			signatures = append(signatures, kv[1])
		}
	}

	if !seenTimestamp || len(signatures) == 0 {
		return 0, nil, ErrInvalidSignatureHeader
	}
	return timestamp, signatures, nil
}
