package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"unicode"

	"github.com/bodavargasprado/wedding-api/internal/constants"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeFirstName returns the lower-cased first word of name folded to a-z.
// Diacritics are removed and any other character is dropped, so "María José"
// becomes "maria" and "Jean-Luc" becomes "jeanluc". The result is capped at
// MaxCodePrefixLength.
func NormalizeFirstName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}

	first := strings.ToLower(fields[0])
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(t, first); err == nil {
		first = folded
	}

	var b strings.Builder
	for _, r := range first {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
			if b.Len() == constants.MaxCodePrefixLength {
				break
			}
		}
	}
	return b.String()
}

// GenerateInviteCode generates a code in the format {firstname}{NNNN}
// where NNNN is drawn uniformly from [1000, 9999]. Names without any
// usable letter get the "invitado" prefix.
func GenerateInviteCode(primaryGuest string) (string, error) {
	if strings.TrimSpace(primaryGuest) == "" {
		return "", fmt.Errorf("cannot derive invite code from empty name")
	}
	prefix := NormalizeFirstName(primaryGuest)
	if prefix == "" {
		prefix = constants.FallbackCodePrefix
	}

	span := big.NewInt(constants.MaxCodeSuffix - constants.MinCodeSuffix + 1)
	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		return "", fmt.Errorf("failed to generate random suffix: %w", err)
	}

	return fmt.Sprintf("%s%d", prefix, n.Int64()+constants.MinCodeSuffix), nil
}
