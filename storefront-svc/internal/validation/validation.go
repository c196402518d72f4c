package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"net/mail"
	"strings"
	"time"

	"jollof-hub/storefront-svc/internal/domain"

	"github.com/shopspring/decimal"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Number keeps a client-supplied numeric field as text until it is parsed.
// Both JSON numbers and numeric strings are accepted.
type Number struct {
	raw string
	set bool
}

func NumberFrom(v string) Number {
	v = strings.TrimSpace(v)
	return Number{raw: v, set: v != ""}
}

func (n Number) IsSet() bool { return n.set }

func (n Number) String() string { return n.raw }

func (n *Number) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	switch {
	case s == "null":
		*n = Number{}
	case strings.HasPrefix(s, `"`):
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*n = NumberFrom(str)
	default:
		*n = Number{raw: s, set: true}
	}
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.set {
		return []byte("null"), nil
	}
	return json.Marshal(n.raw)
}

func Required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return ValidationError{Field: field, Message: "is required"}
	}
	return nil
}

// maxAmount is the first value that no longer fits a NUMERIC(10, 2) column.
var maxAmount = decimal.New(1, 8)

// Amount parses a non-negative money value with at most two decimal places.
func Amount(field string, n Number) (decimal.Decimal, error) {
	if !n.set {
		return decimal.Zero, ValidationError{Field: field, Message: "is required"}
	}
	d, err := decimal.NewFromString(n.raw)
	if err != nil {
		return decimal.Zero, ValidationError{Field: field, Message: "must be a number"}
	}
	if d.IsNegative() {
		return decimal.Zero, ValidationError{Field: field, Message: "must not be negative"}
	}
	if !d.Equal(d.Truncate(2)) {
		return decimal.Zero, ValidationError{Field: field, Message: "must have at most 2 decimal places"}
	}
	if d.GreaterThanOrEqual(maxAmount) {
		return decimal.Zero, ValidationError{Field: field, Message: "must be less than 100000000"}
	}
	return d, nil
}

// Count parses a whole number that is at least 1.
func Count(field string, n Number) (int, error) {
	if !n.set {
		return 0, ValidationError{Field: field, Message: "is required"}
	}
	d, err := decimal.NewFromString(n.raw)
	if err != nil {
		return 0, ValidationError{Field: field, Message: "must be a number"}
	}
	if !d.IsInteger() || d.LessThan(decimal.NewFromInt(1)) || d.GreaterThan(decimal.NewFromInt(math.MaxInt32)) {
		return 0, ValidationError{Field: field, Message: "must be a positive whole number"}
	}
	return int(d.IntPart()), nil
}

// Email returns the bare address of value, so "Ama <ama@x.com>" yields
// "ama@x.com".
func Email(field, value string) (string, error) {
	if err := Required(field, value); err != nil {
		return "", err
	}
	addr, err := mail.ParseAddress(value)
	if err != nil {
		return "", ValidationError{Field: field, Message: "must be a valid email address"}
	}
	return addr.Address, nil
}

var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// DateTime accepts RFC 3339 or a browser datetime-local value, which is read
// in loc.
func DateTime(field, value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, ValidationError{Field: field, Message: "is required"}
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range dateTimeLayouts[1:] {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ValidationError{Field: field, Message: "must be a date and time"}
}

func OrderStatus(value string) (domain.OrderStatus, error) {
	for _, s := range domain.OrderStatuses {
		if string(s) == value {
			return s, nil
		}
	}
	return "", ValidationError{Field: "status", Message: "invalid status provided"}
}

func ReservationStatus(value string) (domain.ReservationStatus, error) {
	for _, s := range domain.ReservationStatuses {
		if string(s) == value {
			return s, nil
		}
	}
	return "", ValidationError{Field: "status", Message: "invalid status provided"}
}
