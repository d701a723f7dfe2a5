package protocol

import (
	"encoding/json"
	"math"
)

// Number is the set of numeric types that may be optional on the wire.
type Number interface {
	~int | ~int64 | ~float64
}

// Opt is a numeric value that may be unset.
//
// On the wire an unset value is an empty token. Older peers also use the
// type maximum (math.MaxInt32, math.MaxFloat64) as the unset marker; the
// decoder folds both forms into the zero Opt so that nothing above the
// codec ever compares against those numbers.
type Opt[T Number] struct {
	v   T
	set bool
}

// Some returns a set optional holding v.
func Some[T Number](v T) Opt[T] {
	return Opt[T]{v: v, set: true}
}

// None returns an unset optional.
func None[T Number]() Opt[T] {
	return Opt[T]{}
}

// IsSet reports whether the value is present.
func (o Opt[T]) IsSet() bool { return o.set }

// Get returns the value and whether it is present.
func (o Opt[T]) Get() (T, bool) { return o.v, o.set }

// Or returns the value, or def when unset.
func (o Opt[T]) Or(def T) T {
	if !o.set {
		return def
	}
	return o.v
}

// MarshalJSON encodes an unset value as null.
func (o Opt[T]) MarshalJSON() ([]byte, error) {
	if !o.set {
		return []byte("null"), nil
	}
	return json.Marshal(o.v)
}

// UnmarshalJSON accepts null or a number.
func (o *Opt[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*o = Opt[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}

// Legacy "unset" markers used by peers that predate empty-token encoding.
const (
	unsetInt   = math.MaxInt32
	unsetInt64 = math.MaxInt64
)

func isLegacyUnset[T Number](v T) bool {
	switch x := any(v).(type) {
	case int:
		return x == unsetInt
	case int64:
		return x == unsetInt64 || x == unsetInt
	case float64:
		return x == math.MaxFloat64
	}
	return false
}
