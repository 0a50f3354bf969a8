package utils

import "strings"

var mobilePrefixes = []string{"010", "011", "016", "017", "018", "019"}

// NormalizePhone validates a Korean mobile number candidate and formats it
// with dashes. Non-digits are stripped first; the result must be 10 or 11
// digits starting with a mobile prefix. Returns ("", false) otherwise.
func NormalizePhone(raw string) (string, bool) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) != 10 && len(digits) != 11 {
		return "", false
	}

	valid := false
	for _, p := range mobilePrefixes {
		if strings.HasPrefix(digits, p) {
			valid = true
			break
		}
	}
	if !valid {
		return "", false
	}

	return digits[:3] + "-" + digits[3:7] + "-" + digits[7:], true
}
