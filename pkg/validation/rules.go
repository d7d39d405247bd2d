package validation

import (
	"regexp"
	"unicode/utf8"

	"github.com/oksasatya/store-rating-platform/internal/domain/entity"
)

// Field rules shared by registration and admin-driven user creation.
// Each rule is a pure predicate returning a human-readable reason on
// failure; Collector gathers every violated rule so the API can report
// them all at once.

var (
	emailRe        = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	upperRe        = regexp.MustCompile(`[A-Z]`)
	passwordSymbol = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
)

const (
	NameMin     = 20
	NameMax     = 60
	PasswordMin = 8
	PasswordMax = 16
	AddressMax  = 400
	StoreName   = 100
)

func Name(name string) (string, bool) {
	if n := utf8.RuneCountInString(name); n < NameMin || n > NameMax {
		return "Name must be between 20 and 60 characters.", false
	}
	return "", true
}

func Email(email string) (string, bool) {
	if !emailRe.MatchString(email) {
		return "Invalid email address.", false
	}
	return "", true
}

func Password(password string) (string, bool) {
	if n := utf8.RuneCountInString(password); n < PasswordMin || n > PasswordMax ||
		!upperRe.MatchString(password) || !passwordSymbol.MatchString(password) {
		return "Password must be 8-16 chars, include uppercase and special char.", false
	}
	return "", true
}

func Address(address string) (string, bool) {
	if utf8.RuneCountInString(address) > AddressMax {
		return "Address must be at most 400 characters.", false
	}
	return "", true
}

func Role(role string) (string, bool) {
	if _, ok := entity.ParseRole(role); !ok {
		return "Invalid role.", false
	}
	return "", true
}

func Rating(rating int) (string, bool) {
	if rating < 1 || rating > 5 {
		return "Rating must be between 1 and 5.", false
	}
	return "", true
}

func StoreNameRule(name string) (string, bool) {
	if n := utf8.RuneCountInString(name); n < 1 || n > StoreName {
		return "Store name required (max 100 chars).", false
	}
	return "", true
}

// Collector accumulates rule violations across multiple fields.
type Collector struct {
	reasons []string
}

func (c *Collector) Check(reason string, ok bool) {
	if !ok {
		c.reasons = append(c.reasons, reason)
	}
}

// Add records a violation unconditionally.
func (c *Collector) Add(reason string) {
	c.reasons = append(c.reasons, reason)
}

func (c *Collector) Failed() bool { return len(c.reasons) > 0 }

func (c *Collector) Reasons() []string { return c.reasons }
