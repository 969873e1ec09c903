package utils

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	shortCodePattern = regexp.MustCompile(`^[a-zA-Z0-9-]{2,50}$`)
	nonAliasChars    = regexp.MustCompile(`[^a-z0-9\s-]+`)
	whitespaceRun    = regexp.MustCompile(`\s+`)
)

// NormalizeAlias prepares a user-requested custom alias: trims the ends
// and collapses internal whitespace runs to single hyphens.
func NormalizeAlias(alias string) string {
	return whitespaceRun.ReplaceAllString(strings.TrimSpace(alias), "-")
}

// DeriveAlias builds the deterministic short-code candidate for a bulk
// caption: lowercase, trim, strip everything outside [a-z0-9\s-], then
// collapse whitespace runs to single hyphens.
func DeriveAlias(caption string) string {
	alias := strings.ToLower(strings.TrimSpace(caption))
	alias = nonAliasChars.ReplaceAllString(alias, "")
	alias = whitespaceRun.ReplaceAllString(alias, "-")
	return alias
}

// IsValidShortCode reports whether s satisfies the short-code format.
func IsValidShortCode(s string) bool {
	return shortCodePattern.MatchString(s)
}

// IsValidURL reports whether s parses as an absolute URL with a scheme
// and a host.
func IsValidURL(s string) bool {
	parsed, err := url.ParseRequestURI(s)
	if err != nil {
		return false
	}
	return parsed.Scheme != "" && parsed.Host != ""
}
