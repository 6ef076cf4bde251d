package order

import (
	"errors"
	"strings"
)

var ErrInvalidDestination = errors.New("destination must be 10-13 digits")

// NormalizeDestination membersihkan nomor tujuan dan menormalkan ke format
// internasional: 08xx -> 628xx, 8xx -> 628xx, 628xx dibiarkan. Validasi
// panjang dihitung dari digit sebelum normalisasi.
func NormalizeDestination(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	if len(digits) < 10 || len(digits) > 13 {
		return "", ErrInvalidDestination
	}

	switch {
	case strings.HasPrefix(digits, "0"):
		return "62" + digits[1:], nil
	case strings.HasPrefix(digits, "62"):
		return digits, nil
	default:
		return "62" + digits, nil
	}
}
