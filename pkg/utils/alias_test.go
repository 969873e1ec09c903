package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAlias(t *testing.T) {
	cases := map[string]string{
		"my-alias":              "my-alias",
		"  my-alias  ":          "my-alias",
		"my custom   alias":     "my-custom-alias",
		"  spaced \t alias  ":   "spaced-alias",
		"Already-Fine-ALIAS-42": "Already-Fine-ALIAS-42",
	}
	for input, want := range cases {
		assert.Equal(t, want, NormalizeAlias(input), "input %q", input)
	}
}

func TestDeriveAlias(t *testing.T) {
	cases := map[string]string{
		"My Post":                      "my-post",
		"  My Post  ":                  "my-post",
		"Compound  Exercise  Benefits": "compound-exercise-benefits",
		"C++ & Go, compared":           "c-go-compared",
		"already-hyphenated":           "already-hyphenated",
		"UPPER lower 123":              "upper-lower-123",
	}
	for input, want := range cases {
		assert.Equal(t, want, DeriveAlias(input), "input %q", input)
	}
}

func TestIsValidShortCode(t *testing.T) {
	valid := []string{"ab", "my-post", "ABC-123", "x9", "a1b2c3"}
	for _, s := range valid {
		assert.True(t, IsValidShortCode(s), "expected %q to be valid", s)
	}

	invalid := []string{
		"",
		"a",
		"has space",
		"bad!alias",
		"héllo",
		"under_score",
		"waaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaay-too-long",
	}
	for _, s := range invalid {
		assert.False(t, IsValidShortCode(s), "expected %q to be invalid", s)
	}
}

func TestIsValidURL(t *testing.T) {
	valid := []string{
		"https://example.com",
		"http://example.com/path?q=1",
		"https://sub.example.com:8443/a/b",
	}
	for _, s := range valid {
		assert.True(t, IsValidURL(s), "expected %q to be valid", s)
	}

	invalid := []string{
		"",
		"not-a-url",
		"example.com",
		"//example.com",
		"https://",
		"/relative/path",
	}
	for _, s := range invalid {
		assert.False(t, IsValidURL(s), "expected %q to be invalid", s)
	}
}
