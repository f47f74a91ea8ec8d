package platform

import (
	"errors"
	"strings"
)

// ErrQuotaExceeded denotes that the cloud storage quota is exhausted.
// Sources should attach it (or wrap it) to sync-event notifications when the
// engine reports quota exhaustion.
var ErrQuotaExceeded = errors.New("cloud storage quota exceeded")

// IsQuotaExceeded reports whether err denotes quota exhaustion. Besides the
// sentinel it recognizes error text containing "quota", since notification
// payloads that cross a process boundary lose their error identity.
func IsQuotaExceeded(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrQuotaExceeded) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "quota")
}
