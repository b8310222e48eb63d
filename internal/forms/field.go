package forms

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Kind enumerates the editable field kinds the screens declare.
type Kind string

const (
	KindText          Kind = "text"
	KindEmail         Kind = "email"
	KindPassword      Kind = "password"
	KindNumber        Kind = "number"
	KindDate          Kind = "date"
	KindDatetimeLocal Kind = "datetime-local"
	KindSelect        Kind = "select"
)

// Option is one selectable label/value pair.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// OptionProducer fetches options for a select field. It is invoked once per
// form instance, under the form's own context; cancelling that context on
// form close makes a late resolution harmless.
type OptionProducer func(ctx context.Context) ([]Option, error)

// Validator checks a non-empty value. A non-empty return is stored verbatim
// as the field's error message; the empty string means valid.
type Validator func(Value) string

// Field is the declarative description of one editable attribute. A screen
// declares its fields once; the form engine never mutates them.
type Field struct {
	Name        string
	Label       string
	Kind        Kind
	Required    bool
	Section     string
	Options     []Option
	LoadOptions OptionProducer
	Validate    Validator
}

var fieldValidate = validator.New()

// Email returns a validator accepting syntactically valid email addresses.
func Email() Validator {
	return func(v Value) string {
		if err := fieldValidate.Var(v.String(), "email"); err != nil {
			return "must be a valid email address"
		}
		return ""
	}
}

// Min returns a validator requiring a numeric value >= n.
func Min(n float64) Validator {
	return func(v Value) string {
		f, ok := v.Float()
		if !ok {
			return "must be a number"
		}
		if f < n {
			return fmt.Sprintf("must be at least %v", n)
		}
		return ""
	}
}

// MaxLen returns a validator capping the rendered length of a value.
func MaxLen(n int) Validator {
	return func(v Value) string {
		if len(v.String()) > n {
			return fmt.Sprintf("must be at most %d characters", n)
		}
		return ""
	}
}

// Length returns a validator requiring an exact rendered length, used for
// codes like IATA identifiers.
func Length(n int) Validator {
	return func(v Value) string {
		if len(v.String()) != n {
			return fmt.Sprintf("must be exactly %d characters", n)
		}
		return ""
	}
}
