package tableview

import (
	"cmp"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Stringify returns the string form of a field value used for searching and
// default rendering. It reports false for values with no meaningful text:
// nil, nil pointers, funcs, channels and unsafe pointers.
func Stringify(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		return x, true
	case []byte:
		return string(x), true
	case bool:
		return strconv.FormatBool(x), true
	case time.Time:
		return x.Format(time.RFC3339), true
	case fmt.Stringer:
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Pointer && rv.IsNil() {
			return "", false
		}
		return x.String(), true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64), true
	case reflect.Func, reflect.Chan, reflect.UnsafePointer, reflect.Invalid:
		return "", false
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return "", false
		}
		return Stringify(rv.Elem().Interface())
	case reflect.Map, reflect.Slice:
		if rv.IsNil() {
			return "", false
		}
	}
	return fmt.Sprint(v), true
}

// kind ranks used when two present values have different kinds.
const (
	rankBool = iota
	rankNumber
	rankTime
	rankString
	rankOther
)

// scalar is a field value reduced to something comparable.
type scalar struct {
	rank    int
	isInt   bool
	isUint  bool
	i       int64
	u       uint64
	f       float64
	t       time.Time
	s       string
	b       bool
	present bool
}

func toScalar(v any) scalar {
	switch x := v.(type) {
	case nil:
		return scalar{}
	case string:
		return scalar{rank: rankString, s: x, present: true}
	case bool:
		return scalar{rank: rankBool, b: x, present: true}
	case time.Time:
		return scalar{rank: rankTime, t: x, present: true}
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return scalar{rank: rankNumber, isInt: true, i: rv.Int(), f: float64(rv.Int()), present: true}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return scalar{rank: rankNumber, isUint: true, u: rv.Uint(), f: float64(rv.Uint()), present: true}
	case reflect.Float32, reflect.Float64:
		return scalar{rank: rankNumber, f: rv.Float(), present: true}
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return scalar{}
		}
		return toScalar(rv.Elem().Interface())
	}

	s, ok := Stringify(v)
	if !ok {
		return scalar{}
	}
	return scalar{rank: rankOther, s: s, present: true}
}

// Compare orders two raw field values. Absent values come first; values of
// different kinds are ordered bool < number < time < string < other.
func Compare(a, b any) int {
	x, y := toScalar(a), toScalar(b)
	switch {
	case !x.present && !y.present:
		return 0
	case !x.present:
		return -1
	case !y.present:
		return 1
	case x.rank != y.rank:
		return cmp.Compare(x.rank, y.rank)
	}

	switch x.rank {
	case rankBool:
		switch {
		case x.b == y.b:
			return 0
		case !x.b:
			return -1
		default:
			return 1
		}
	case rankNumber:
		switch {
		case x.isInt && y.isInt:
			return cmp.Compare(x.i, y.i)
		case x.isUint && y.isUint:
			return cmp.Compare(x.u, y.u)
		default:
			return cmp.Compare(x.f, y.f)
		}
	case rankTime:
		return x.t.Compare(y.t)
	default:
		return strings.Compare(x.s, y.s)
	}
}
