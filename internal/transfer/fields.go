package transfer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

// errNull is returned by decoders when the wire value is JSON null.
var errNull = errors.New(msgNull)

// Field is one wire key of an entity, with the functions that move it
// between the row and its JSON value.
type Field[T any] struct {
	Name     string
	ReadOnly bool
	Required bool

	encode func(v *T) any
	decode func(raw json.RawMessage, v *T) error
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// ID is the read-only primary key.
func ID[T any](at func(*T) *int64) Field[T] {
	return Field[T]{
		Name:     "id",
		ReadOnly: true,
		encode:   func(v *T) any { return *at(v) },
	}
}

// Text is a required string checked against a validator rule.
func Text[T any](name, rule string, at func(*T) *string) Field[T] {
	return Field[T]{
		Name:     name,
		Required: true,
		encode:   func(v *T) any { return *at(v) },
		decode: func(raw json.RawMessage, v *T) error {
			if isNull(raw) {
				return errNull
			}
			var s string
			if err := json.Unmarshal(raw, &s); err != nil {
				return errors.New("Not a valid string.")
			}
			if err := validate.Var(s, rule); err != nil {
				return ruleError(err)
			}
			*at(v) = s
			return nil
		},
	}
}

func ruleError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return errors.New(msgBlank)
	case "max":
		return fmt.Errorf("Ensure this field has no more than %s characters.", fe.Param())
	case "email":
		return errors.New("Enter a valid email address.")
	}
	return fmt.Errorf("Failed %s validation.", fe.Tag())
}

// Enum is a required code of a closed enumeration.
func Enum[T any, E fmt.Stringer](name string, parse func(string) (E, error), at func(*T) *E) Field[T] {
	return Field[T]{
		Name:     name,
		Required: true,
		encode:   func(v *T) any { return (*at(v)).String() },
		decode: func(raw json.RawMessage, v *T) error {
			if isNull(raw) {
				return errNull
			}
			var code string
			if err := json.Unmarshal(raw, &code); err != nil {
				return fmt.Errorf("%q is not a valid choice.", string(raw))
			}
			e, err := parse(code)
			if err != nil {
				return fmt.Errorf("%q is not a valid choice.", code)
			}
			*at(v) = e
			return nil
		},
	}
}

// Decimal is a required fixed-point number with at most maxDigits digits,
// places of them after the decimal point. It is written as a string.
func Decimal[T any](name string, maxDigits, places int32, at func(*T) *decimal.Decimal) Field[T] {
	limit := decimal.New(1, maxDigits-places)

	return Field[T]{
		Name:     name,
		Required: true,
		encode:   func(v *T) any { return (*at(v)).StringFixed(places) },
		decode: func(raw json.RawMessage, v *T) error {
			if isNull(raw) {
				return errNull
			}

			text := string(bytes.TrimSpace(raw))
			if len(text) > 0 && text[0] == '"' {
				if err := json.Unmarshal(raw, &text); err != nil {
					return errors.New("A valid number is required.")
				}
			}

			d, err := decimal.NewFromString(text)
			if err != nil {
				return errors.New("A valid number is required.")
			}
			if -d.Exponent() > places {
				return fmt.Errorf("Ensure that there are no more than %d decimal places.", places)
			}
			if d.Abs().GreaterThanOrEqual(limit) {
				return fmt.Errorf("Ensure that there are no more than %d digits before the decimal point.", maxDigits-places)
			}

			*at(v) = d
			return nil
		},
	}
}

func decodePK(raw json.RawMessage) (int64, error) {
	var id int64
	if err := json.Unmarshal(raw, &id); err == nil {
		return id, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if id, err := strconv.ParseInt(s, 10, 64); err == nil {
			return id, nil
		}
	}

	return 0, fmt.Errorf("Incorrect type. Expected pk value, received %s.", jsonKind(raw))
}

func jsonKind(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "nothing"
	}
	switch raw[0] {
	case '"':
		return "str"
	case '{':
		return "dict"
	case '[':
		return "list"
	case 't', 'f':
		return "bool"
	}
	return "float"
}

// Ref is a required, non-null primary key of another entity.
func Ref[T any](name string, at func(*T) *int64) Field[T] {
	return Field[T]{
		Name:     name,
		Required: true,
		encode:   func(v *T) any { return *at(v) },
		decode: func(raw json.RawMessage, v *T) error {
			if isNull(raw) {
				return errNull
			}
			id, err := decodePK(raw)
			if err != nil {
				return err
			}
			*at(v) = id
			return nil
		},
	}
}

// NullableRef is an optional primary key of another entity that accepts null.
func NullableRef[T any](name string, at func(*T) **int64) Field[T] {
	return Field[T]{
		Name: name,
		encode: func(v *T) any {
			if p := *at(v); p != nil {
				return *p
			}
			return nil
		},
		decode: func(raw json.RawMessage, v *T) error {
			if isNull(raw) {
				*at(v) = nil
				return nil
			}
			id, err := decodePK(raw)
			if err != nil {
				return err
			}
			*at(v) = &id
			return nil
		},
	}
}

// Bool is an optional boolean.
func Bool[T any](name string, at func(*T) *bool) Field[T] {
	return Field[T]{
		Name:   name,
		encode: func(v *T) any { return *at(v) },
		decode: func(raw json.RawMessage, v *T) error {
			if isNull(raw) {
				return errNull
			}
			var b bool
			if err := json.Unmarshal(raw, &b); err != nil {
				return errors.New("Must be a valid boolean.")
			}
			*at(v) = b
			return nil
		},
	}
}
