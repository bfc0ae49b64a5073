package field

import (
	"fmt"
	"regexp"
	"time"

	"github.com/quercus-db/quercus/schema"
)

// String returns a new text column builder.
func String(name string) *StringBuilder {
	return &StringBuilder{&schema.Column{Name: name, Type: schema.TypeString, Nullable: true}}
}

// Bool returns a new boolean column builder.
func Bool(name string) *BoolBuilder {
	return &BoolBuilder{&schema.Column{Name: name, Type: schema.TypeBool, Nullable: true}}
}

// Int8 returns a new 8-bit signed integer column builder.
func Int8(name string) *IntBuilder { return intBuilder(name, schema.TypeInt8) }

// Int16 returns a new 16-bit signed integer column builder.
func Int16(name string) *IntBuilder { return intBuilder(name, schema.TypeInt16) }

// Int32 returns a new 32-bit signed integer column builder.
func Int32(name string) *IntBuilder { return intBuilder(name, schema.TypeInt32) }

// Int64 returns a new 64-bit signed integer column builder.
func Int64(name string) *IntBuilder { return intBuilder(name, schema.TypeInt64) }

// Uint8 returns a new 8-bit unsigned integer column builder.
func Uint8(name string) *UintBuilder { return uintBuilder(name, schema.TypeUint8) }

// Uint16 returns a new 16-bit unsigned integer column builder.
func Uint16(name string) *UintBuilder { return uintBuilder(name, schema.TypeUint16) }

// Uint32 returns a new 32-bit unsigned integer column builder.
func Uint32(name string) *UintBuilder { return uintBuilder(name, schema.TypeUint32) }

// Uint64 returns a new 64-bit unsigned integer column builder.
func Uint64(name string) *UintBuilder { return uintBuilder(name, schema.TypeUint64) }

// Float32 returns a new 32-bit floating point column builder.
func Float32(name string) *FloatBuilder { return floatBuilder(name, schema.TypeFloat32) }

// Float64 returns a new 64-bit floating point column builder.
func Float64(name string) *FloatBuilder { return floatBuilder(name, schema.TypeFloat64) }

// Bytes returns a new binary column builder.
func Bytes(name string) *BytesBuilder {
	return &BytesBuilder{&schema.Column{Name: name, Type: schema.TypeBytes, Nullable: true}}
}

// Time returns a new timestamp column builder.
func Time(name string) *TimeBuilder {
	return &TimeBuilder{&schema.Column{Name: name, Type: schema.TypeTime, Nullable: true}}
}

// UUID returns a new UUID column builder.
func UUID(name string) *UUIDBuilder {
	return &UUIDBuilder{&schema.Column{Name: name, Type: schema.TypeUUID, Nullable: true}}
}

// Custom returns a builder for a user-defined scalar column. The tag names
// the application type and travels with every value of the column.
func Custom(name, tag string) *CustomBuilder {
	c := &schema.Column{Name: name, Type: schema.TypeCustom, Nullable: true, CustomTag: tag}
	if tag == "" {
		c.Err = fmt.Errorf("custom column %q requires a type tag", name)
	}
	return &CustomBuilder{c}
}

func intBuilder(name string, t schema.Type) *IntBuilder {
	return &IntBuilder{&schema.Column{Name: name, Type: t, Nullable: true}}
}

func uintBuilder(name string, t schema.Type) *UintBuilder {
	return &UintBuilder{&schema.Column{Name: name, Type: t, Nullable: true}}
}

func floatBuilder(name string, t schema.Type) *FloatBuilder {
	return &FloatBuilder{&schema.Column{Name: name, Type: t, Nullable: true}}
}

// StringBuilder builds text columns.
type StringBuilder struct{ c *schema.Column }

// NotNull adds a NOT NULL constraint.
func (b *StringBuilder) NotNull() *StringBuilder { b.c.Nullable = false; return b }

// Unique adds a UNIQUE constraint.
func (b *StringBuilder) Unique() *StringBuilder { b.c.Unique = true; return b }

// PrimaryKey marks the column as the table's primary key. Primary keys are
// implicitly NOT NULL.
func (b *StringBuilder) PrimaryKey() *StringBuilder {
	b.c.PrimaryKey = true
	b.c.Nullable = false
	return b
}

// Indexed creates an index on the column.
func (b *StringBuilder) Indexed() *StringBuilder { b.c.Indexed = true; return b }

// Default sets a literal default value.
func (b *StringBuilder) Default(v string) *StringBuilder {
	b.c.Default = schema.Default{Kind: schema.DefaultLiteral, Value: schema.StringValue(v)}
	return b
}

// DefaultRandomUUID defaults the column to a backend-generated UUID string.
func (b *StringBuilder) DefaultRandomUUID() *StringBuilder {
	b.c.Default = schema.Default{Kind: schema.DefaultRandomUUID}
	return b
}

// Comment sets the column comment.
func (b *StringBuilder) Comment(s string) *StringBuilder { b.c.Comment = s; return b }

// Charset sets the column character set (MySQL).
func (b *StringBuilder) Charset(s string) *StringBuilder { b.c.Charset = s; return b }

// Collate sets the column collation (MySQL).
func (b *StringBuilder) Collate(s string) *StringBuilder { b.c.Collate = s; return b }

// Check adds a CHECK constraint expression.
func (b *StringBuilder) Check(expr string) *StringBuilder { b.c.Check = expr; return b }

// Invisible hides the column from SELECT * (MySQL 8).
func (b *StringBuilder) Invisible() *StringBuilder { b.c.Invisible = true; return b }

// GeneratedVirtual defines the column as VIRTUAL generated from expr.
func (b *StringBuilder) GeneratedVirtual(expr string) *StringBuilder {
	b.c.Generated = &schema.Generated{Expr: expr}
	return b
}

// GeneratedStored defines the column as STORED generated from expr.
func (b *StringBuilder) GeneratedStored(expr string) *StringBuilder {
	b.c.Generated = &schema.Generated{Expr: expr, Stored: true}
	return b
}

// NotEmpty rejects empty strings on insert and update.
func (b *StringBuilder) NotEmpty() *StringBuilder { return b.MinLen(1) }

// MinLen rejects strings shorter than n.
func (b *StringBuilder) MinLen(n int) *StringBuilder {
	b.c.Validators = append(b.c.Validators, func(v schema.Value) error {
		if s, ok := v.Text(); ok && len(s) < n {
			return fmt.Errorf("value is less than the required length %d", n)
		}
		return nil
	})
	return b
}

// MaxLen rejects strings longer than n.
func (b *StringBuilder) MaxLen(n int) *StringBuilder {
	b.c.Validators = append(b.c.Validators, func(v schema.Value) error {
		if s, ok := v.Text(); ok && len(s) > n {
			return fmt.Errorf("value is greater than the required length %d", n)
		}
		return nil
	})
	return b
}

// Match rejects strings not matching re.
func (b *StringBuilder) Match(re *regexp.Regexp) *StringBuilder {
	b.c.Validators = append(b.c.Validators, func(v schema.Value) error {
		if s, ok := v.Text(); ok && !re.MatchString(s) {
			return fmt.Errorf("value does not match validation %q", re)
		}
		return nil
	})
	return b
}

// Descriptor returns the column descriptor.
func (b *StringBuilder) Descriptor() *schema.Column { return b.c }

// BoolBuilder builds boolean columns.
type BoolBuilder struct{ c *schema.Column }

// NotNull adds a NOT NULL constraint.
func (b *BoolBuilder) NotNull() *BoolBuilder { b.c.Nullable = false; return b }

// Default sets a literal default value.
func (b *BoolBuilder) Default(v bool) *BoolBuilder {
	b.c.Default = schema.Default{Kind: schema.DefaultLiteral, Value: schema.BoolValue(v)}
	return b
}

// Comment sets the column comment.
func (b *BoolBuilder) Comment(s string) *BoolBuilder { b.c.Comment = s; return b }

// Descriptor returns the column descriptor.
func (b *BoolBuilder) Descriptor() *schema.Column { return b.c }

// IntBuilder builds signed integer columns of any width.
type IntBuilder struct{ c *schema.Column }

// NotNull adds a NOT NULL constraint.
func (b *IntBuilder) NotNull() *IntBuilder { b.c.Nullable = false; return b }

// Unique adds a UNIQUE constraint.
func (b *IntBuilder) Unique() *IntBuilder { b.c.Unique = true; return b }

// PrimaryKey marks the column as the table's primary key.
func (b *IntBuilder) PrimaryKey() *IntBuilder {
	b.c.PrimaryKey = true
	b.c.Nullable = false
	return b
}

// AutoIncrement marks the column as backend-generated (auto-increment or
// identity, per dialect). Such a column may be omitted on insert.
func (b *IntBuilder) AutoIncrement() *IntBuilder { b.c.AutoIncrement = true; return b }

// Indexed creates an index on the column.
func (b *IntBuilder) Indexed() *IntBuilder { b.c.Indexed = true; return b }

// Default sets a literal default value, carried at the column's width.
func (b *IntBuilder) Default(v int64) *IntBuilder {
	b.c.Default = schema.Default{Kind: schema.DefaultLiteral, Value: intValue(b.c.Type, v)}
	return b
}

// Comment sets the column comment.
func (b *IntBuilder) Comment(s string) *IntBuilder { b.c.Comment = s; return b }

// Check adds a CHECK constraint expression.
func (b *IntBuilder) Check(expr string) *IntBuilder { b.c.Check = expr; return b }

// Min rejects values below n.
func (b *IntBuilder) Min(n int64) *IntBuilder {
	b.c.Validators = append(b.c.Validators, func(v schema.Value) error {
		if i, ok := v.Int(); ok && i < n {
			return fmt.Errorf("value out of range: %d < %d", i, n)
		}
		return nil
	})
	return b
}

// Max rejects values above n.
func (b *IntBuilder) Max(n int64) *IntBuilder {
	b.c.Validators = append(b.c.Validators, func(v schema.Value) error {
		if i, ok := v.Int(); ok && i > n {
			return fmt.Errorf("value out of range: %d > %d", i, n)
		}
		return nil
	})
	return b
}

// Range combines Min and Max.
func (b *IntBuilder) Range(lo, hi int64) *IntBuilder { return b.Min(lo).Max(hi) }

// Positive rejects values below 1.
func (b *IntBuilder) Positive() *IntBuilder { return b.Min(1) }

// NonNegative rejects values below 0.
func (b *IntBuilder) NonNegative() *IntBuilder { return b.Min(0) }

// Descriptor returns the column descriptor.
func (b *IntBuilder) Descriptor() *schema.Column { return b.c }

// UintBuilder builds unsigned integer columns of any width.
type UintBuilder struct{ c *schema.Column }

// NotNull adds a NOT NULL constraint.
func (b *UintBuilder) NotNull() *UintBuilder { b.c.Nullable = false; return b }

// Unique adds a UNIQUE constraint.
func (b *UintBuilder) Unique() *UintBuilder { b.c.Unique = true; return b }

// PrimaryKey marks the column as the table's primary key.
func (b *UintBuilder) PrimaryKey() *UintBuilder {
	b.c.PrimaryKey = true
	b.c.Nullable = false
	return b
}

// AutoIncrement marks the column as backend-generated.
func (b *UintBuilder) AutoIncrement() *UintBuilder { b.c.AutoIncrement = true; return b }

// Indexed creates an index on the column.
func (b *UintBuilder) Indexed() *UintBuilder { b.c.Indexed = true; return b }

// Default sets a literal default value, carried at the column's width.
func (b *UintBuilder) Default(v uint64) *UintBuilder {
	b.c.Default = schema.Default{Kind: schema.DefaultLiteral, Value: uintValue(b.c.Type, v)}
	return b
}

// Comment sets the column comment.
func (b *UintBuilder) Comment(s string) *UintBuilder { b.c.Comment = s; return b }

// Max rejects values above n.
func (b *UintBuilder) Max(n uint64) *UintBuilder {
	b.c.Validators = append(b.c.Validators, func(v schema.Value) error {
		if u, ok := v.Uint(); ok && u > n {
			return fmt.Errorf("value out of range: %d > %d", u, n)
		}
		return nil
	})
	return b
}

// Descriptor returns the column descriptor.
func (b *UintBuilder) Descriptor() *schema.Column { return b.c }

// FloatBuilder builds floating point columns.
type FloatBuilder struct{ c *schema.Column }

// NotNull adds a NOT NULL constraint.
func (b *FloatBuilder) NotNull() *FloatBuilder { b.c.Nullable = false; return b }

// Default sets a literal default value.
func (b *FloatBuilder) Default(v float64) *FloatBuilder {
	val := schema.Float64Value(v)
	if b.c.Type == schema.TypeFloat32 {
		val = schema.Float32Value(float32(v))
	}
	b.c.Default = schema.Default{Kind: schema.DefaultLiteral, Value: val}
	return b
}

// Min rejects values below n.
func (b *FloatBuilder) Min(n float64) *FloatBuilder {
	b.c.Validators = append(b.c.Validators, func(v schema.Value) error {
		if f, ok := v.Float(); ok && f < n {
			return fmt.Errorf("value out of range: %g < %g", f, n)
		}
		return nil
	})
	return b
}

// Max rejects values above n.
func (b *FloatBuilder) Max(n float64) *FloatBuilder {
	b.c.Validators = append(b.c.Validators, func(v schema.Value) error {
		if f, ok := v.Float(); ok && f > n {
			return fmt.Errorf("value out of range: %g > %g", f, n)
		}
		return nil
	})
	return b
}

// Positive rejects values at or below zero.
func (b *FloatBuilder) Positive() *FloatBuilder {
	b.c.Validators = append(b.c.Validators, func(v schema.Value) error {
		if f, ok := v.Float(); ok && f <= 0 {
			return fmt.Errorf("value out of range: %g <= 0", f)
		}
		return nil
	})
	return b
}

// Comment sets the column comment.
func (b *FloatBuilder) Comment(s string) *FloatBuilder { b.c.Comment = s; return b }

// Descriptor returns the column descriptor.
func (b *FloatBuilder) Descriptor() *schema.Column { return b.c }

// BytesBuilder builds binary columns.
type BytesBuilder struct{ c *schema.Column }

// NotNull adds a NOT NULL constraint.
func (b *BytesBuilder) NotNull() *BytesBuilder { b.c.Nullable = false; return b }

// MaxLen rejects payloads longer than n bytes.
func (b *BytesBuilder) MaxLen(n int) *BytesBuilder {
	b.c.Validators = append(b.c.Validators, func(v schema.Value) error {
		if p, ok := v.Bytes(); ok && len(p) > n {
			return fmt.Errorf("value is greater than the required length %d", n)
		}
		return nil
	})
	return b
}

// Comment sets the column comment.
func (b *BytesBuilder) Comment(s string) *BytesBuilder { b.c.Comment = s; return b }

// Descriptor returns the column descriptor.
func (b *BytesBuilder) Descriptor() *schema.Column { return b.c }

// TimeBuilder builds timestamp columns.
type TimeBuilder struct{ c *schema.Column }

// NotNull adds a NOT NULL constraint.
func (b *TimeBuilder) NotNull() *TimeBuilder { b.c.Nullable = false; return b }

// Indexed creates an index on the column.
func (b *TimeBuilder) Indexed() *TimeBuilder { b.c.Indexed = true; return b }

// Default sets a literal default value.
func (b *TimeBuilder) Default(v time.Time) *TimeBuilder {
	b.c.Default = schema.Default{Kind: schema.DefaultLiteral, Value: schema.TimeValue(v)}
	return b
}

// DefaultNow defaults the column to the backend's current timestamp.
func (b *TimeBuilder) DefaultNow() *TimeBuilder {
	b.c.Default = schema.Default{Kind: schema.DefaultCurrentTimestamp}
	return b
}

// OnUpdateNow refreshes the column to the current timestamp on every
// update (MySQL).
func (b *TimeBuilder) OnUpdateNow() *TimeBuilder { b.c.OnUpdateNow = true; return b }

// Comment sets the column comment.
func (b *TimeBuilder) Comment(s string) *TimeBuilder { b.c.Comment = s; return b }

// Descriptor returns the column descriptor.
func (b *TimeBuilder) Descriptor() *schema.Column { return b.c }

// UUIDBuilder builds UUID columns.
type UUIDBuilder struct{ c *schema.Column }

// NotNull adds a NOT NULL constraint.
func (b *UUIDBuilder) NotNull() *UUIDBuilder { b.c.Nullable = false; return b }

// Unique adds a UNIQUE constraint.
func (b *UUIDBuilder) Unique() *UUIDBuilder { b.c.Unique = true; return b }

// PrimaryKey marks the column as the table's primary key.
func (b *UUIDBuilder) PrimaryKey() *UUIDBuilder {
	b.c.PrimaryKey = true
	b.c.Nullable = false
	return b
}

// Indexed creates an index on the column.
func (b *UUIDBuilder) Indexed() *UUIDBuilder { b.c.Indexed = true; return b }

// DefaultRandom defaults the column to a backend-generated random UUID.
func (b *UUIDBuilder) DefaultRandom() *UUIDBuilder {
	b.c.Default = schema.Default{Kind: schema.DefaultRandomUUID}
	return b
}

// Descriptor returns the column descriptor.
func (b *UUIDBuilder) Descriptor() *schema.Column { return b.c }

// CustomBuilder builds user-defined scalar columns.
type CustomBuilder struct{ c *schema.Column }

// NotNull adds a NOT NULL constraint.
func (b *CustomBuilder) NotNull() *CustomBuilder { b.c.Nullable = false; return b }

// Comment sets the column comment.
func (b *CustomBuilder) Comment(s string) *CustomBuilder { b.c.Comment = s; return b }

// Descriptor returns the column descriptor.
func (b *CustomBuilder) Descriptor() *schema.Column { return b.c }

func intValue(t schema.Type, v int64) schema.Value {
	switch t {
	case schema.TypeInt8:
		return schema.Int8Value(int8(v))
	case schema.TypeInt16:
		return schema.Int16Value(int16(v))
	case schema.TypeInt32:
		return schema.Int32Value(int32(v))
	default:
		return schema.Int64Value(v)
	}
}

func uintValue(t schema.Type, v uint64) schema.Value {
	switch t {
	case schema.TypeUint8:
		return schema.Uint8Value(uint8(v))
	case schema.TypeUint16:
		return schema.Uint16Value(uint16(v))
	case schema.TypeUint32:
		return schema.Uint32Value(uint32(v))
	default:
		return schema.Uint64Value(v)
	}
}
