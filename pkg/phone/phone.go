// Package phone canonicalizes Vietnamese phone numbers to the
// international format used by the SMS providers: country code 84
// followed by the national significant number, digits only.
package phone

import "strings"

// Normalize accepts a phone number in local ("0xxxxxxxxx"), bare
// national ("xxxxxxxxx") or international ("84xxxxxxxxx") form, with
// arbitrary non-digit characters interspersed, and returns the
// canonical "84..." form.
//
// No length validation is performed; malformed numbers are passed
// through to the provider, which is the authority on rejection.
func Normalize(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	digits := b.String()

	switch {
	case strings.HasPrefix(digits, "0"):
		return "84" + digits[1:]
	case !strings.HasPrefix(digits, "84"):
		return "84" + digits
	default:
		return digits
	}
}
