package gateway

import (
	"crypto/sha1"
	"encoding/base64"
	"strconv"
	"strings"
)

// Signer menghasilkan token otentikasi format OtomaX untuk setiap call.
// Rumus upstream (dokumentasi H2H):
//
//	sign = str_replace('/','_', str_replace('+','-', rtrim(base64_encode(sha1(str, true)), '=')))
//
// yang persis sama dengan base64 raw URL encoding dari digest SHA-1.
// Satu karakter saja beda di field order / prefix, gateway menolak request.
type Signer struct {
	MemberID string
	PIN      string
	Password string
}

func (s Signer) ForTransaction(product, dest, refID string) string {
	return encode(strings.Join([]string{"OtomaX", s.MemberID, product, dest, refID, s.PIN, s.Password}, "|"))
}

func (s Signer) ForCheckBalance() string {
	return encode(strings.Join([]string{"OtomaX", "CheckBalance", s.MemberID, s.PIN, s.Password}, "|"))
}

func (s Signer) ForDeposit(amount int64) string {
	return encode(strings.Join([]string{"OtomaX", "ticket", s.MemberID, s.PIN, s.Password, strconv.FormatInt(amount, 10)}, "|"))
}

func encode(canonical string) string {
	sum := sha1.Sum([]byte(canonical))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
