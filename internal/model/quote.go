package model

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ContactUs is shown instead of a price for courses quoted on request.
const ContactUs = "Contact Us"

// QuoteKind tells what a Quote holds.
type QuoteKind int

const (
	QuoteNone QuoteKind = iota
	QuoteAmount
	QuoteContactUs
)

// Quote is the computed total for a registration form.
type Quote struct {
	Kind        QuoteKind
	AmountCents int64
}

// NoQuote is the quote for a form without a course.
func NoQuote() Quote { return Quote{Kind: QuoteNone} }

// ContactUsQuote is the quote for a course without a listed price.
func ContactUsQuote() Quote { return Quote{Kind: QuoteContactUs} }

// AmountQuote is a quote for a fixed amount in cents.
func AmountQuote(cents int64) Quote { return Quote{Kind: QuoteAmount, AmountCents: cents} }

// Dollars formats the amount without trailing zeros: "$105", "$157.5",
// "$183.75".
func (q Quote) Dollars() string {
	whole, frac := q.AmountCents/100, q.AmountCents%100
	switch {
	case frac == 0:
		return fmt.Sprintf("$%d", whole)
	case frac%10 == 0:
		return fmt.Sprintf("$%d.%d", whole, frac/10)
	default:
		return fmt.Sprintf("$%d.%02d", whole, frac)
	}
}

func (q Quote) String() string {
	switch q.Kind {
	case QuoteAmount:
		return q.Dollars()
	case QuoteContactUs:
		return ContactUs
	default:
		return ""
	}
}

// MarshalJSON encodes null, a dollar number, or "Contact Us".
func (q Quote) MarshalJSON() ([]byte, error) {
	switch q.Kind {
	case QuoteAmount:
		return []byte(strconv.FormatFloat(float64(q.AmountCents)/100, 'f', -1, 64)), nil
	case QuoteContactUs:
		return json.Marshal(ContactUs)
	default:
		return []byte("null"), nil
	}
}
