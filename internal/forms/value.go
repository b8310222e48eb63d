package forms

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"flightdeck.io/console/internal/travel"
)

// valueKind tags the variant held by a Value.
type valueKind int

const (
	kindEmpty valueKind = iota
	kindText
	kindNumber
	kindBool
	kindTime
)

// Value is a typed form field value. The tagged variant replaces the loose
// string bags the screens would otherwise pass around: a number stays a
// number all the way to the wire.
type Value struct {
	kind valueKind
	text string
	num  float64
	b    bool
	t    time.Time
}

// Text wraps a string value.
func Text(s string) Value { return Value{kind: kindText, text: s} }

// Number wraps a numeric value.
func Number(f float64) Value { return Value{kind: kindNumber, num: f} }

// Bool wraps a boolean value.
func Bool(b bool) Value { return Value{kind: kindBool, b: b} }

// Time wraps a point in time.
func Time(t time.Time) Value { return Value{kind: kindTime, t: t} }

// IsZero reports whether v counts as "empty" for required-field validation:
// the unset Value or a blank string. Numbers, booleans and times are never
// empty once set.
func (v Value) IsZero() bool {
	switch v.kind {
	case kindEmpty:
		return true
	case kindText:
		return strings.TrimSpace(v.text) == ""
	default:
		return false
	}
}

// String renders v for display and validator input.
func (v Value) String() string {
	switch v.kind {
	case kindText:
		return v.text
	case kindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case kindBool:
		return strconv.FormatBool(v.b)
	case kindTime:
		return v.t.Format(time.RFC3339)
	default:
		return ""
	}
}

// Float returns the numeric payload; ok is false for non-number variants.
func (v Value) Float() (float64, bool) {
	if v.kind != kindNumber {
		return 0, false
	}
	return v.num, true
}

// Int returns the numeric payload truncated to int64.
func (v Value) Int() (int64, bool) {
	f, ok := v.Float()
	return int64(f), ok
}

// Time returns the time payload; ok is false for non-time variants.
func (v Value) Time() (time.Time, bool) {
	if v.kind != kindTime {
		return time.Time{}, false
	}
	return v.t, true
}

// any returns the wire representation used in create/update payloads.
func (v Value) any() any {
	switch v.kind {
	case kindText:
		return v.text
	case kindNumber:
		return v.num
	case kindBool:
		return v.b
	case kindTime:
		return v.t.Format(time.RFC3339)
	default:
		return nil
	}
}

// MarshalJSON encodes the payload without the tag.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.any())
}

// Values maps field names to their current typed values.
type Values map[string]Value

// Fields converts vs into the payload shape the resource client sends.
// Unset values are omitted rather than sent as nulls.
func (vs Values) Fields() travel.Fields {
	out := make(travel.Fields, len(vs))
	for name, v := range vs {
		if v.kind == kindEmpty {
			continue
		}
		out[name] = v.any()
	}
	return out
}

// clone returns an independent copy of vs.
func (vs Values) clone() Values {
	out := make(Values, len(vs))
	for k, v := range vs {
		out[k] = v
	}
	return out
}

// ParseValue interprets raw user input according to the field kind. Dates
// accept the HTML input formats (2006-01-02 and 2006-01-02T15:04).
func ParseValue(kind Kind, raw string) (Value, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Value{}, nil
	}
	switch kind {
	case KindNumber:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Value{}, err
		}
		return Number(f), nil
	case KindDate:
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return Value{}, err
		}
		return Time(t), nil
	case KindDatetimeLocal:
		t, err := time.Parse("2006-01-02T15:04", raw)
		if err != nil {
			t, err = time.Parse(time.RFC3339, raw)
			if err != nil {
				return Value{}, err
			}
		}
		return Time(t), nil
	default:
		return Text(raw), nil
	}
}
