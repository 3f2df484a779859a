package utils

import (
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/bodavargasprado/wedding-api/internal/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var codePattern = regexp.MustCompile(`^[a-z]+[0-9]{4}$`)

func TestNormalizeFirstName(t *testing.T) {
	assert.Equal(t, "maria", NormalizeFirstName("María José"))
	assert.Equal(t, "jose", NormalizeFirstName("  JOSÉ   Pérez"))
	assert.Equal(t, "nono", NormalizeFirstName("Ñoño"))
	assert.Equal(t, "andres", NormalizeFirstName("Andrés\tFelipe"))
	assert.Equal(t, "", NormalizeFirstName("   "))
}

func TestNormalizeFirstName_DropsNonLetters(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"hyphenated", "Jean-Luc Picard", "jeanluc"},
		{"apostrophe", "O'Brien", "obrien"},
		{"stroke letter", "Łukasz Nowak", "ukasz"},
		{"digits", "Ana2 Prado", "ana"},
		{"cyrillic", "Иван Петров", ""},
		{"emoji only", "🎉", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeFirstName(tt.in))
		})
	}
}

func TestNormalizeFirstName_CapsLength(t *testing.T) {
	long := strings.Repeat("a", 120)
	assert.Len(t, NormalizeFirstName(long), constants.MaxCodePrefixLength)
}

func TestGenerateInviteCode_AlwaysMatchesFormat(t *testing.T) {
	names := []string{
		"Jean-Luc Picard",
		"O'Brien",
		"Łukasz Nowak",
		"Иван Петров",
		"李小龙",
		strings.Repeat("Bartholomew", 10) + " Smith",
	}
	for _, name := range names {
		code, err := GenerateInviteCode(name)
		require.NoError(t, err, name)
		assert.Regexp(t, codePattern, code, name)
		assert.LessOrEqual(t, len(code), 50, name)
	}

	code, err := GenerateInviteCode("Иван")
	require.NoError(t, err)
	assert.Equal(t, constants.FallbackCodePrefix, code[:len(constants.FallbackCodePrefix)])
}

func TestGenerateInviteCode_Format(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := GenerateInviteCode("María José")
		require.NoError(t, err)
		require.Regexp(t, codePattern, code)
		require.Equal(t, "maria", code[:5])

		suffix, err := strconv.Atoi(code[5:])
		require.NoError(t, err)
		require.GreaterOrEqual(t, suffix, 1000)
		require.LessOrEqual(t, suffix, 9999)
	}
}

func TestGenerateInviteCode_EmptyName(t *testing.T) {
	_, err := GenerateInviteCode("   ")
	assert.Error(t, err)
}
