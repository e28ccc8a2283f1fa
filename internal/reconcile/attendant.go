package reconcile

import (
	"crypto/rand"
	mrand "math/rand"
	"strconv"
	"strings"
)

const (
	attendantIDLength   = 28
	attendantIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// GenerateAttendantID returns the existing id trimmed when one is present,
// otherwise a fresh 28-character alphanumeric identifier. The result is
// never empty.
func GenerateAttendantID(existing string) string {
	if trimmed := strings.TrimSpace(existing); trimmed != "" {
		return trimmed
	}

	if id, err := secureAttendantID(); err == nil {
		return id
	}
	return fallbackAttendantID()
}

func secureAttendantID() (string, error) {
	buf := make([]byte, attendantIDLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	out := make([]byte, attendantIDLength)
	for i, b := range buf {
		out[i] = attendantIDAlphabet[int(b)%len(attendantIDAlphabet)]
	}
	return string(out), nil
}

// fallbackAttendantID concatenates pseudo-random base-36 fragments until
// the target length is reached, then truncates.
func fallbackAttendantID() string {
	var sb strings.Builder
	for sb.Len() < attendantIDLength {
		sb.WriteString(strconv.FormatUint(mrand.Uint64(), 36))
	}
	return sb.String()[:attendantIDLength]
}
