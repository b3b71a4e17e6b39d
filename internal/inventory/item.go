package inventory

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/tmarbury/stockroom/internal/store"
)

// Item is a single stock line in a warehouse. ID is assigned at construction
// and never changes; Category is the secondary key items are grouped by.
type Item struct {
	ID         int    `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	Category   string `json:"category" yaml:"category"`
	Quantity   int    `json:"quantity" yaml:"quantity"`
	UnitPrice  Price  `json:"unit_price" yaml:"unit_price"`
	ReceivedAt Date   `json:"received_at" yaml:"received_at"`
}

// Key returns the item id.
func (i Item) Key() int {
	return i.ID
}

// NewItem validates the domain fields and builds an Item. Identity
// uniqueness is not checked here; that is the repository's job at Add time.
func NewItem(id int, name, category string, quantity int, unitPrice Price, receivedAt Date) (Item, error) {
	if id <= 0 {
		return Item{}, fmt.Errorf("item id %d must be positive: %w", id, store.ErrInvalidValue)
	}
	if strings.TrimSpace(name) == "" {
		return Item{}, fmt.Errorf("item %d has no name: %w", id, store.ErrInvalidValue)
	}
	if strings.TrimSpace(category) == "" {
		return Item{}, fmt.Errorf("item %d has no category: %w", id, store.ErrInvalidValue)
	}
	if quantity < 0 {
		return Item{}, fmt.Errorf("item %d quantity %d is negative: %w", id, quantity, store.ErrInvalidValue)
	}
	if unitPrice.IsNegative() {
		return Item{}, fmt.Errorf("item %d unit price %s is negative: %w", id, unitPrice, store.ErrInvalidValue)
	}
	return Item{
		ID:         id,
		Name:       strings.TrimSpace(name),
		Category:   strings.TrimSpace(category),
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		ReceivedAt: receivedAt,
	}, nil
}

// Price is a fixed-point monetary amount. It persists as a decimal literal
// string in both JSON and YAML, never as a binary float.
type Price struct {
	decimal.Decimal
}

// PriceFromString parses a decimal literal such as "12.50".
func PriceFromString(s string) (Price, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Price{}, fmt.Errorf("parse price %q: %w", s, err)
	}
	return Price{d}, nil
}

// MustPrice is PriceFromString for literals in tests and seed data; it
// panics on a malformed literal.
func MustPrice(s string) Price {
	p, err := PriceFromString(s)
	if err != nil {
		panic(err)
	}
	return p
}

// MarshalYAML encodes the price as a decimal literal string.
func (p Price) MarshalYAML() (any, error) {
	return p.String(), nil
}

// UnmarshalYAML decodes a decimal literal scalar.
func (p *Price) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := PriceFromString(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// dateLayout is the ISO-8601 calendar date form items persist with.
const dateLayout = "2006-01-02"

// Date is a calendar date without a time-of-day component.
type Date struct {
	t time.Time
}

// DateOf truncates t to its calendar date in UTC.
func DateOf(t time.Time) Date {
	u := t.UTC()
	return Date{t: time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO-8601 calendar date such as "2026-08-30".
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date{t: t}, nil
}

// String formats the date as ISO-8601.
func (d Date) String() string {
	return d.t.Format(dateLayout)
}

// After reports whether d falls after other.
func (d Date) After(other Date) bool {
	return d.t.After(other.t)
}

// IsZero reports whether the date is the zero value.
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// MarshalText encodes the date as ISO-8601. JSON encoding goes through this.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText parses an ISO-8601 date.
func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalYAML encodes the date as an ISO-8601 scalar.
func (d Date) MarshalYAML() (any, error) {
	return d.String(), nil
}

// UnmarshalYAML parses an ISO-8601 scalar. The yaml decoder does not honor
// encoding.TextUnmarshaler, so this cannot be folded into UnmarshalText.
func (d *Date) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(s))
}
