// Package email validates and deduplicates member e-mail lists.
//
// The validity rule is intentionally loose: one or more non-"@" characters,
// an "@", one or more non-"." characters, a ".", then anything. The match is
// unanchored, so strings such as "a@b@c.d" pass. Do not tighten it without a
// product decision; stored memberships depend on it.
package email

import (
	"regexp"
	"strings"

	"github.com/acerto/acerto/internal/models"
)

var (
	validPattern = regexp.MustCompile(`[^@]+@[^.]+\..+`)
	separators   = regexp.MustCompile(`[;,\s]+`)
)

// Valid reports whether s passes the loose e-mail rule.
func Valid(s string) bool {
	return validPattern.MatchString(s)
}

// Canonical trims and lower-cases s.
func Canonical(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// SplitInput breaks a free-text field into candidate addresses on any run of
// commas, semicolons or whitespace.
func SplitInput(s string) []string {
	parts := separators.Split(s, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Normalize canonicalizes raw, dropping invalid and duplicate entries while
// keeping first-seen order. It never fails; callers check for an empty result.
func Normalize(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		e := Canonical(r)
		if !Valid(e) {
			continue
		}
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return out
}

// NormalizeMembers applies Normalize to member entries. The invited flag of
// the first occurrence wins.
func NormalizeMembers(members []models.Member) []models.Member {
	seen := make(map[string]struct{}, len(members))
	out := make([]models.Member, 0, len(members))
	for _, m := range members {
		e := Canonical(m.Email)
		if !Valid(e) {
			continue
		}
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, models.Member{Email: e, Invited: m.Invited})
	}
	return out
}

// MembersFromEmails wraps plain addresses as non-invited members.
func MembersFromEmails(emails []string) []models.Member {
	out := make([]models.Member, len(emails))
	for i, e := range emails {
		out[i] = models.Member{Email: e}
	}
	return out
}
