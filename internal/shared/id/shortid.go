// Package id generates Stripe-style short identifiers for aggregates.
package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	// Base62 alphabet: 0-9, A-Z, a-z
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// DefaultLength is the default length for generated short IDs
	DefaultLength = 12
)

// Prefixes for different entity types (Stripe-style)
const (
	PrefixPlan                = "plan"
	PrefixSubscription        = "sub"
	PrefixOrganization        = "org"
	PrefixInvitation          = "in"
	PrefixBillingSubscription = "bsub"
	PrefixInvoice             = "iv"
	PrefixBooking             = "bk"
	PrefixSeatOverage         = "seat"
)

// Generate creates a random short ID with the specified length using Base62
// encoding. The generated ID is cryptographically random and URL-safe.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	result := make([]byte, length)
	alphabetLen := big.NewInt(int64(len(alphabet)))

	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		result[i] = alphabet[num.Int64()]
	}

	return string(result), nil
}

// MustGenerate creates a random short ID and panics on error.
func MustGenerate(length int) string {
	id, err := Generate(length)
	if err != nil {
		panic(err)
	}
	return id
}

// GenerateWithPrefix creates a prefixed ID in the format "prefix_randomstring".
func GenerateWithPrefix(prefix string, length int) (string, error) {
	id, err := Generate(length)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s_%s", prefix, id), nil
}

// MustGenerateWithPrefix creates a prefixed ID and panics on error.
func MustGenerateWithPrefix(prefix string, length int) string {
	id, err := GenerateWithPrefix(prefix, length)
	if err != nil {
		panic(err)
	}
	return id
}

// ValidatePrefix checks that sid has the form "prefix_xxxx" with a non-empty
// random part.
func ValidatePrefix(sid, prefix string) error {
	rest, ok := strings.CutPrefix(sid, prefix+"_")
	if !ok || rest == "" {
		return fmt.Errorf("invalid id %q: expected prefix %q", sid, prefix)
	}
	return nil
}

// HasPrefix reports whether sid carries the given entity prefix.
func HasPrefix(sid, prefix string) bool {
	return ValidatePrefix(sid, prefix) == nil
}

// StripPrefix removes the "prefix_" part of a short ID if present.
func StripPrefix(sid string) string {
	if idx := strings.Index(sid, "_"); idx >= 0 {
		return sid[idx+1:]
	}
	return sid
}
