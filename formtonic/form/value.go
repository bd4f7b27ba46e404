package form

import (
	"fmt"
	"strconv"
	"time"
)

// DateLayout is the format used by <input type="date"> and for CSV output.
const DateLayout = "2006-01-02"

// Value is what a field holds once data has been applied to it.  The zero
// Value is null: the field received data but it was empty.  A field that
// never received data has no Value at all.
type Value struct {
	v interface{}
}

// ValueOf wraps v.  ValueOf(nil) is the null Value.
func ValueOf(v interface{}) Value {
	return Value{v: v}
}

// IsNull reports whether the value was explicitly cleared.
func (v Value) IsNull() bool {
	return v.v == nil
}

// Interface returns the stored Go value (nil when null).
func (v Value) Interface() interface{} {
	return v.v
}

// String returns the plain string form of the value, "" when null.
func (v Value) String() string {
	return stringify(v.v)
}

func stringify(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case uint:
		return strconv.FormatUint(uint64(t), 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case time.Time:
		return t.Format(DateLayout)
	case Identifier:
		return stringify(t.Identity())
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

// truthy follows the usual notion of an "empty" form value: nil, false,
// zero numbers, the empty string and the zero time.
func truthy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	case float32:
		return t != 0
	case int:
		return t != 0
	case int64:
		return t != 0
	case int32:
		return t != 0
	case uint:
		return t != 0
	case uint64:
		return t != 0
	case time.Time:
		return !t.IsZero()
	default:
		return true
	}
}
