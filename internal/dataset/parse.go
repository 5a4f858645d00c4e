package dataset

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ParseError reports a cell value that could not be converted to a number.
// Country and Year are filled in by the reshaper, which knows the cell's
// position; the parser itself only knows the token.
type ParseError struct {
	Country string
	Year    int
	Token   string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Country != "" {
		return fmt.Sprintf("parse %q for %s/%d: %v", e.Token, e.Country, e.Year, e.Err)
	}
	return fmt.Sprintf("parse %q: %v", e.Token, e.Err)
}

// Unwrap allows errors.Is and errors.As to reach the underlying cause
func (e *ParseError) Unwrap() error {
	return e.Err
}

var (
	nonDigits = regexp.MustCompile(`[^0-9]`)

	// wellFormedKToken is the only "k" shape the x100 rule recovers exactly:
	// digits, a decimal point, one fractional digit, trailing "k".
	wellFormedKToken = regexp.MustCompile(`^[0-9]+\.[0-9]k$`)
)

// ParseIncomeValue converts a raw income cell into a number.
//
// Tokens with a trailing lowercase "k" are fixed-point thousands: every
// non-digit character is stripped and the remaining digit string is
// multiplied by 100, so "12.3k" becomes 12300. The rule recovers the
// intended value only for tokens with exactly one fractional digit; it is
// applied verbatim to every k-token regardless ("12k" yields 1200), and
// ill-shaped tokens are flagged separately via IsSuspectKToken. Everything
// else parses as a plain float.
func ParseIncomeValue(token string) (float64, error) {
	trimmed := strings.TrimSpace(token)

	if strings.HasSuffix(trimmed, "k") {
		digits := nonDigits.ReplaceAllString(trimmed, "")
		n, err := strconv.Atoi(digits)
		if err != nil {
			return 0, &ParseError{Token: token, Err: fmt.Errorf("no digits in k-suffixed token: %w", err)}
		}
		return float64(n) * 100, nil
	}

	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, &ParseError{Token: token, Err: err}
	}
	return value, nil
}

// ParsePlainValue converts a raw sanitation cell into a number. Sanitation
// cells carry no "k" convention; any non-numeric token is a ParseError.
func ParsePlainValue(token string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(token), 64)
	if err != nil {
		return 0, &ParseError{Token: token, Err: err}
	}
	return value, nil
}

// IsSuspectKToken reports whether a k-suffixed token has a shape the x100
// rule does not recover exactly (no fraction, or more than one fractional
// digit). Such tokens still parse under the standard rule; callers count and
// log them as data-quality concerns instead of reinterpreting them.
func IsSuspectKToken(token string) bool {
	trimmed := strings.TrimSpace(token)
	if !strings.HasSuffix(trimmed, "k") {
		return false
	}
	return !wellFormedKToken.MatchString(trimmed)
}
