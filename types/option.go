// SPDX-License-Identifier: MIT
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type (
	// Option holds a value of type T that may be absent.
	//
	// The zero Option is absent.
	Option[T comparable] struct {
		value T
		some  bool
	}
)

var jsonNull = []byte("null")

// Some wraps a present value.
func Some[T comparable](value T) Option[T] { return Option[T]{value: value, some: true} }

// None creates an absent value.
func None[T comparable]() Option[T] { return Option[T]{} }

// IsSome reports value presence.
func (o Option[T]) IsSome() bool { return o.some }

// IsNone reports value absence.
func (o Option[T]) IsNone() bool { return !o.some }

// Get returns the contained value & a presence flag.
func (o Option[T]) Get() (value T, ok bool) { return o.value, o.some }

// OrZero returns the contained value, defaulting to T's zero value when absent.
func (o Option[T]) OrZero() (value T) {
	if o.some {
		value = o.value
	}

	return
}

// String renders the contained value; an absent value renders as T's zero value.
func (o Option[T]) String() string { return fmt.Sprint(o.OrZero()) }

// MarshalJSON implements [json.Marshaler]; an absent value encodes as null.
func (o Option[T]) MarshalJSON() ([]byte, error) {
	if !o.some {
		return jsonNull, nil
	}

	return json.Marshal(o.value)
}

// UnmarshalJSON implements [json.Unmarshaler]; null decodes as absent.
func (o *Option[T]) UnmarshalJSON(data []byte) (err error) {
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		*o = Option[T]{}
		return
	}

	var value T
	if err = json.Unmarshal(data, &value); err != nil {
		return
	}
	*o = Option[T]{value: value, some: true}

	return
}
