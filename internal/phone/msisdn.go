// Package phone converts user-entered phone numbers into the MSISDN
// format the mobile-money gateway expects.
package phone

import (
	"errors"
	"strings"
	"unicode"
)

// CountryCode is the Ugandan calling code every valid MSISDN starts with.
const CountryCode = "256"

var ErrInvalid = errors.New("invalid phone number")

// Normalize returns the canonical MSISDN for a raw phone string:
// whitespace is stripped, a leading "+" dropped, and a trunk "0" on a
// number of at least ten digits replaced with the country code. Anything
// that does not end up as digits starting with the country code is
// rejected.
func Normalize(raw string) (string, error) {
	p := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)

	if p == "" {
		return "", ErrInvalid
	}

	p = strings.TrimPrefix(p, "+")
	if strings.HasPrefix(p, "0") && len(p) >= 10 {
		p = CountryCode + p[1:]
	}

	if !digitsOnly(p) || !strings.HasPrefix(p, CountryCode) {
		return "", ErrInvalid
	}
	return p, nil
}

func digitsOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
