package schema

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

// Type is the logical type of a column or value.
type Type uint8

// Logical types. TypeNull is a value-only tag; columns must be declared
// with one of the concrete types.
const (
	TypeInvalid Type = iota
	TypeNull
	TypeBool
	TypeInt8
	TypeInt16
	TypeInt32
	TypeInt64
	TypeUint8
	TypeUint16
	TypeUint32
	TypeUint64
	TypeFloat32
	TypeFloat64
	TypeString
	TypeBytes
	TypeTime
	TypeUUID
	TypeCustom
	endTypes
)

var typeNames = [endTypes]string{
	TypeInvalid: "invalid",
	TypeNull:    "null",
	TypeBool:    "bool",
	TypeInt8:    "int8",
	TypeInt16:   "int16",
	TypeInt32:   "int32",
	TypeInt64:   "int64",
	TypeUint8:   "uint8",
	TypeUint16:  "uint16",
	TypeUint32:  "uint32",
	TypeUint64:  "uint64",
	TypeFloat32: "float32",
	TypeFloat64: "float64",
	TypeString:  "string",
	TypeBytes:   "bytes",
	TypeTime:    "time",
	TypeUUID:    "uuid",
	TypeCustom:  "custom",
}

// String returns the name of the type.
func (t Type) String() string {
	if t < endTypes {
		return typeNames[t]
	}
	return fmt.Sprintf("invalid<%d>", t)
}

// Valid reports whether t is a concrete column type.
func (t Type) Valid() bool { return t > TypeNull && t < endTypes }

// Numeric reports whether t is an integer or floating point type.
func (t Type) Numeric() bool { return t >= TypeInt8 && t <= TypeFloat64 }

// Integer reports whether t is an integer type.
func (t Type) Integer() bool { return t >= TypeInt8 && t <= TypeUint64 }

// Signed reports whether t is a signed integer type.
func (t Type) Signed() bool { return t >= TypeInt8 && t <= TypeInt64 }

// Float reports whether t is a floating point type.
func (t Type) Float() bool { return t == TypeFloat32 || t == TypeFloat64 }

// Value is a self-describing tagged union over every value a statement can
// bind or a row can yield. A Value is immutable; the zero Value is NULL.
type Value struct {
	typ Type
	b   bool
	i   int64 // signed integers
	u   uint64
	f   float64
	s   string // TypeString payload; TypeCustom type tag
	p   []byte // TypeBytes payload; TypeCustom serialized form
	t   time.Time
	id  uuid.UUID
}

// NullValue returns the SQL NULL value.
func NullValue() Value { return Value{typ: TypeNull} }

// BoolValue returns a boolean value.
func BoolValue(v bool) Value { return Value{typ: TypeBool, b: v} }

// Int8Value returns an 8-bit signed integer value.
func Int8Value(v int8) Value { return Value{typ: TypeInt8, i: int64(v)} }

// Int16Value returns a 16-bit signed integer value.
func Int16Value(v int16) Value { return Value{typ: TypeInt16, i: int64(v)} }

// Int32Value returns a 32-bit signed integer value.
func Int32Value(v int32) Value { return Value{typ: TypeInt32, i: int64(v)} }

// Int64Value returns a 64-bit signed integer value.
func Int64Value(v int64) Value { return Value{typ: TypeInt64, i: v} }

// Uint8Value returns an 8-bit unsigned integer value.
func Uint8Value(v uint8) Value { return Value{typ: TypeUint8, u: uint64(v)} }

// Uint16Value returns a 16-bit unsigned integer value.
func Uint16Value(v uint16) Value { return Value{typ: TypeUint16, u: uint64(v)} }

// Uint32Value returns a 32-bit unsigned integer value.
func Uint32Value(v uint32) Value { return Value{typ: TypeUint32, u: uint64(v)} }

// Uint64Value returns a 64-bit unsigned integer value.
func Uint64Value(v uint64) Value { return Value{typ: TypeUint64, u: v} }

// Float32Value returns a 32-bit floating point value.
func Float32Value(v float32) Value { return Value{typ: TypeFloat32, f: float64(v)} }

// Float64Value returns a 64-bit floating point value.
func Float64Value(v float64) Value { return Value{typ: TypeFloat64, f: v} }

// StringValue returns a text value.
func StringValue(v string) Value { return Value{typ: TypeString, s: v} }

// BytesValue returns a binary value.
func BytesValue(v []byte) Value { return Value{typ: TypeBytes, p: v} }

// TimeValue returns a timestamp value.
func TimeValue(v time.Time) Value { return Value{typ: TypeTime, t: v} }

// UUIDValue returns a UUID value.
func UUIDValue(v uuid.UUID) Value { return Value{typ: TypeUUID, id: v} }

// CustomValue returns a user-defined scalar value. The Go value is
// serialized with msgpack and carried alongside its type tag, so the value
// stays self-describing without the engine knowing the concrete type.
func CustomValue(tag string, v any) (Value, error) {
	data, err := msgpack.Marshal(v)
	if err != nil {
		return Value{}, fmt.Errorf("quercus/schema: encode custom value %q: %w", tag, err)
	}
	return Value{typ: TypeCustom, s: tag, p: data}, nil
}

// CustomRawValue returns a user-defined scalar value from its already
// serialized form, as read back from storage.
func CustomRawValue(tag string, data []byte) Value {
	return Value{typ: TypeCustom, s: tag, p: data}
}

// Type returns the tag of the value.
func (v Value) Type() Type {
	if v.typ == TypeInvalid {
		return TypeNull
	}
	return v.typ
}

// IsNull reports whether the value is SQL NULL.
func (v Value) IsNull() bool { return v.Type() == TypeNull }

// Bool returns the boolean payload. It reports false for any other tag.
func (v Value) Bool() (bool, bool) { return v.b, v.typ == TypeBool }

// Int returns the signed integer payload widened to 64 bits.
func (v Value) Int() (int64, bool) { return v.i, v.typ.Signed() }

// Uint returns the unsigned integer payload widened to 64 bits.
func (v Value) Uint() (uint64, bool) {
	return v.u, v.typ.Integer() && !v.typ.Signed()
}

// Float returns the floating point payload widened to 64 bits.
func (v Value) Float() (float64, bool) { return v.f, v.typ.Float() }

// Text returns the text payload.
func (v Value) Text() (string, bool) { return v.s, v.typ == TypeString }

// Bytes returns the binary payload.
func (v Value) Bytes() ([]byte, bool) { return v.p, v.typ == TypeBytes }

// Time returns the timestamp payload.
func (v Value) Time() (time.Time, bool) { return v.t, v.typ == TypeTime }

// UUID returns the UUID payload.
func (v Value) UUID() (uuid.UUID, bool) { return v.id, v.typ == TypeUUID }

// CustomTag returns the type tag of a custom value.
func (v Value) CustomTag() (string, bool) { return v.s, v.typ == TypeCustom }

// DecodeCustom deserializes a custom value into dst.
func (v Value) DecodeCustom(dst any) error {
	if v.typ != TypeCustom {
		return fmt.Errorf("quercus/schema: decode custom: value is %s", v.Type())
	}
	if err := msgpack.Unmarshal(v.p, dst); err != nil {
		return fmt.Errorf("quercus/schema: decode custom value %q: %w", v.s, err)
	}
	return nil
}

// Bind returns the dialect-neutral bind token handed to the driver. The
// driver substitutes it for a placeholder; quercus never inlines it as text.
func (v Value) Bind() any {
	switch v.Type() {
	case TypeNull:
		return nil
	case TypeBool:
		return v.b
	case TypeInt8:
		return int8(v.i)
	case TypeInt16:
		return int16(v.i)
	case TypeInt32:
		return int32(v.i)
	case TypeInt64:
		return v.i
	case TypeUint8:
		return uint8(v.u)
	case TypeUint16:
		return uint16(v.u)
	case TypeUint32:
		return uint32(v.u)
	case TypeUint64:
		return v.u
	case TypeFloat32:
		return float32(v.f)
	case TypeFloat64:
		return v.f
	case TypeString:
		return v.s
	case TypeBytes:
		return v.p
	case TypeTime:
		return v.t
	case TypeUUID:
		return v.id.String()
	case TypeCustom:
		return v.p
	default:
		return nil
	}
}

// String implements fmt.Stringer for debugging output. Bind values are
// never rendered through it.
func (v Value) String() string {
	switch v.Type() {
	case TypeNull:
		return "NULL"
	case TypeBool:
		return fmt.Sprintf("%s(%t)", v.typ, v.b)
	case TypeString:
		return fmt.Sprintf("%s(%q)", v.typ, v.s)
	case TypeBytes, TypeCustom:
		return fmt.Sprintf("%s(%d bytes)", v.typ, len(v.p))
	case TypeTime:
		return fmt.Sprintf("%s(%s)", v.typ, v.t.Format(time.RFC3339Nano))
	case TypeUUID:
		return fmt.Sprintf("%s(%s)", v.typ, v.id)
	default:
		if v.typ.Signed() {
			return fmt.Sprintf("%s(%d)", v.typ, v.i)
		}
		if v.typ.Integer() {
			return fmt.Sprintf("%s(%d)", v.typ, v.u)
		}
		return fmt.Sprintf("%s(%g)", v.typ, v.f)
	}
}

// Equal reports whether two values are equal. Numeric values of different
// widths are normalized to the widest compatible width before comparing;
// all other kinds require matching tags. NULL equals only NULL.
func (v Value) Equal(o Value) bool {
	if v.Type().Numeric() && o.Type().Numeric() {
		c, ok := v.Compare(o)
		return ok && c == 0
	}
	if v.Type() != o.Type() {
		return false
	}
	switch v.Type() {
	case TypeNull:
		return true
	case TypeBool:
		return v.b == o.b
	case TypeString:
		return v.s == o.s
	case TypeBytes:
		return string(v.p) == string(o.p)
	case TypeTime:
		return v.t.Equal(o.t)
	case TypeUUID:
		return v.id == o.id
	case TypeCustom:
		return v.s == o.s && string(v.p) == string(o.p)
	default:
		return false
	}
}

// Compare orders two values of compatible kinds. It returns -1, 0 or +1,
// and reports false when the kinds cannot be ordered against each other.
func (v Value) Compare(o Value) (int, bool) {
	a, b := v.Type(), o.Type()
	switch {
	case a.Numeric() && b.Numeric():
		return compareNumeric(v, o), true
	case a != b:
		return 0, false
	}
	switch a {
	case TypeBool:
		switch {
		case v.b == o.b:
			return 0, true
		case !v.b:
			return -1, true
		default:
			return 1, true
		}
	case TypeString:
		return cmp(v.s, o.s), true
	case TypeBytes:
		return cmp(string(v.p), string(o.p)), true
	case TypeTime:
		switch {
		case v.t.Equal(o.t):
			return 0, true
		case v.t.Before(o.t):
			return -1, true
		default:
			return 1, true
		}
	case TypeUUID:
		return cmp(v.id.String(), o.id.String()), true
	default:
		return 0, false
	}
}

func cmp[T interface{ ~string }](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// compareNumeric compares after widening both sides: floats compare as
// float64, mixed-signedness integers compare without overflow by checking
// the sign first.
func compareNumeric(v, o Value) int {
	if v.typ.Float() || o.typ.Float() {
		a, b := v.widenFloat(), o.widenFloat()
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	}
	vs, os := v.typ.Signed(), o.typ.Signed()
	switch {
	case vs && os:
		switch {
		case v.i < o.i:
			return -1
		case v.i > o.i:
			return 1
		default:
			return 0
		}
	case !vs && !os:
		switch {
		case v.u < o.u:
			return -1
		case v.u > o.u:
			return 1
		default:
			return 0
		}
	case vs: // signed vs unsigned
		if v.i < 0 {
			return -1
		}
		return -compareMagnitude(o.u, uint64(v.i))
	default: // unsigned vs signed
		if o.i < 0 {
			return 1
		}
		return compareMagnitude(v.u, uint64(o.i))
	}
}

func compareMagnitude(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (v Value) widenFloat() float64 {
	switch {
	case v.typ.Float():
		return v.f
	case v.typ.Signed():
		return float64(v.i)
	default:
		return float64(v.u)
	}
}

// intRange returns the inclusive [min, max] of a signed integer type.
func intRange(t Type) (int64, int64) {
	switch t {
	case TypeInt8:
		return math.MinInt8, math.MaxInt8
	case TypeInt16:
		return math.MinInt16, math.MaxInt16
	case TypeInt32:
		return math.MinInt32, math.MaxInt32
	default:
		return math.MinInt64, math.MaxInt64
	}
}

// uintMax returns the maximum of an unsigned integer type.
func uintMax(t Type) uint64 {
	switch t {
	case TypeUint8:
		return math.MaxUint8
	case TypeUint16:
		return math.MaxUint16
	case TypeUint32:
		return math.MaxUint32
	default:
		return math.MaxUint64
	}
}

// FromRaw converts a raw driver cell into a Value of the given logical
// type. A storage tag that disagrees with the logical type fails with
// *TypeMismatchError; a stored value that does not fit the declared width
// fails with *OverflowError. Narrowing is performed only when lossless.
func FromRaw(t Type, raw any) (Value, error) {
	if raw == nil {
		return NullValue(), nil
	}
	switch t {
	case TypeBool:
		switch x := raw.(type) {
		case bool:
			return BoolValue(x), nil
		case int64: // backends storing booleans as integers
			return BoolValue(x != 0), nil
		}
	case TypeInt8, TypeInt16, TypeInt32, TypeInt64:
		x, err := rawInt(t, raw)
		if err != nil {
			return Value{}, err
		}
		if x == nil {
			break
		}
		lo, hi := intRange(t)
		if *x < lo || *x > hi {
			return Value{}, &OverflowError{Type: t, Stored: fmt.Sprint(*x)}
		}
		return Value{typ: t, i: *x}, nil
	case TypeUint8, TypeUint16, TypeUint32, TypeUint64:
		x, err := rawUint(t, raw)
		if err != nil {
			return Value{}, err
		}
		if x == nil {
			break
		}
		if *x > uintMax(t) {
			return Value{}, &OverflowError{Type: t, Stored: fmt.Sprint(*x)}
		}
		return Value{typ: t, u: *x}, nil
	case TypeFloat32:
		if x, ok := rawFloat(raw); ok {
			if !math.IsInf(x, 0) && math.IsInf(float64(float32(x)), 0) {
				return Value{}, &OverflowError{Type: t, Stored: fmt.Sprint(x)}
			}
			return Value{typ: t, f: x}, nil
		}
	case TypeFloat64:
		if x, ok := rawFloat(raw); ok {
			return Float64Value(x), nil
		}
	case TypeString:
		switch x := raw.(type) {
		case string:
			return StringValue(x), nil
		case []byte:
			return StringValue(string(x)), nil
		}
	case TypeBytes, TypeCustom:
		if x, ok := raw.([]byte); ok {
			return Value{typ: t, p: x}, nil
		}
	case TypeTime:
		switch x := raw.(type) {
		case time.Time:
			return TimeValue(x), nil
		case string:
			return parseTime(x)
		case []byte:
			return parseTime(string(x))
		}
	case TypeUUID:
		switch x := raw.(type) {
		case string:
			id, err := uuid.Parse(x)
			if err != nil {
				return Value{}, &TypeMismatchError{Type: t, Stored: fmt.Sprintf("%T", raw)}
			}
			return UUIDValue(id), nil
		case []byte:
			id, err := uuid.ParseBytes(x)
			if err != nil {
				return Value{}, &TypeMismatchError{Type: t, Stored: fmt.Sprintf("%T", raw)}
			}
			return UUIDValue(id), nil
		}
	}
	return Value{}, &TypeMismatchError{Type: t, Stored: fmt.Sprintf("%T", raw)}
}

// rawInt extracts a signed integer cell. nil with no error means the raw
// kind did not match at all.
func rawInt(t Type, raw any) (*int64, error) {
	switch x := raw.(type) {
	case int64:
		return &x, nil
	case int32:
		v := int64(x)
		return &v, nil
	case int:
		v := int64(x)
		return &v, nil
	case uint64:
		if x > math.MaxInt64 {
			return nil, &OverflowError{Type: t, Stored: fmt.Sprint(x)}
		}
		v := int64(x)
		return &v, nil
	}
	return nil, nil
}

func rawUint(t Type, raw any) (*uint64, error) {
	switch x := raw.(type) {
	case uint64:
		return &x, nil
	case int64:
		if x < 0 {
			return nil, &OverflowError{Type: t, Stored: fmt.Sprint(x)}
		}
		v := uint64(x)
		return &v, nil
	case int:
		if x < 0 {
			return nil, &OverflowError{Type: t, Stored: fmt.Sprint(x)}
		}
		v := uint64(x)
		return &v, nil
	}
	return nil, nil
}

func rawFloat(raw any) (float64, bool) {
	switch x := raw.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	}
	return 0, false
}

// timeLayouts are the textual timestamp forms backends hand back when the
// column is stored as text (SQLite) or the driver does not parse times.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTime(s string) (Value, error) {
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return TimeValue(ts), nil
		}
	}
	return Value{}, &TypeMismatchError{Type: TypeTime, Stored: fmt.Sprintf("string %q", s)}
}
