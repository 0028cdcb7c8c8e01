package database

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

// Kind discriminates the dynamic type of a result cell.
type Kind int

const (
	KindNull Kind = iota
	KindNumber
	KindText
	KindStructured
)

// Value is a single result cell. Query results carry mixed
// null/numeric/textual/structured cells, so cells are tagged values
// rather than plain strings; comparison and rendering switch on the tag.
type Value struct {
	kind Kind
	num  float64
	text string
}

// Null returns the null value.
func Null() Value {
	return Value{kind: KindNull}
}

// Number returns a numeric value.
func Number(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// Text returns a textual value.
func Text(s string) Value {
	return Value{kind: KindText, text: s}
}

// Structured returns a structured value carrying its serialized form.
func Structured(serialized string) Value {
	return Value{kind: KindStructured, text: serialized}
}

// Kind returns the value's tag.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether the value is null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Number returns the numeric payload. Meaningful only for KindNumber.
func (v Value) Number() float64 {
	return v.num
}

// Text returns the textual payload: the text itself for KindText, the
// serialized form for KindStructured, the formatted number for
// KindNumber and "" for null.
func (v Value) Text() string {
	switch v.kind {
	case KindNumber:
		return formatNumber(v.num)
	case KindText, KindStructured:
		return v.text
	default:
		return ""
	}
}

// Display returns the form shown in the results table. Null renders as
// a literal NULL marker, distinct from the empty string.
func (v Value) Display() string {
	if v.kind == KindNull {
		return "NULL"
	}
	return v.Text()
}

// formatNumber keeps integral values free of exponents and decimal
// points, so a count of 1000000 reads as such and not as 1e+06.
func formatNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// FromAny converts a value scanned from a database driver into a tagged
// Value. Maps and slices (json columns, arrays) become Structured;
// anything unrecognized falls back to string coercion.
func FromAny(raw any) Value {
	switch val := raw.(type) {
	case nil:
		return Null()
	case int64:
		return Number(float64(val))
	case int32:
		return Number(float64(val))
	case int:
		return Number(float64(val))
	case float64:
		return Number(val)
	case float32:
		return Number(float64(val))
	case string:
		return Text(val)
	case []byte:
		return Text(string(val))
	case bool:
		return Text(strconv.FormatBool(val))
	case time.Time:
		return Text(val.Format(time.RFC3339))
	case map[string]any, []any:
		serialized, err := json.Marshal(val)
		if err != nil {
			return Text(fmt.Sprintf("%v", val))
		}
		return Structured(string(serialized))
	default:
		return Text(fmt.Sprintf("%v", val))
	}
}
