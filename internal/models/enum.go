package models

import (
	"errors"
	"fmt"
)

// ErrUnknownCode is returned when a wire code does not name an enumeration value.
var ErrUnknownCode = errors.New("unknown code")

type variant struct {
	code  string
	label string
}

// enum maps a closed set of values to their wire codes and display labels.
type enum[T ~uint8] struct {
	name     string
	variants map[T]variant
	byCode   map[string]T
}

func newEnum[T ~uint8](name string, variants map[T]variant) enum[T] {
	byCode := make(map[string]T, len(variants))
	for v, vr := range variants {
		byCode[vr.code] = v
	}
	return enum[T]{name: name, variants: variants, byCode: byCode}
}

func (e enum[T]) code(v T) string {
	if vr, ok := e.variants[v]; ok {
		return vr.code
	}
	return ""
}

func (e enum[T]) label(v T) string {
	if vr, ok := e.variants[v]; ok {
		return vr.label
	}
	return ""
}

func (e enum[T]) parse(code string) (T, error) {
	if v, ok := e.byCode[code]; ok {
		return v, nil
	}
	return 0, fmt.Errorf("%w: %q is not a valid %s", ErrUnknownCode, code, e.name)
}

func (e enum[T]) marshal(v T) ([]byte, error) {
	c := e.code(v)
	if c == "" {
		return nil, fmt.Errorf("%w: %s value %d has no code", ErrUnknownCode, e.name, v)
	}
	return []byte(c), nil
}
