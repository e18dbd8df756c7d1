package cli

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
)

// Record is one row of a dataset: field name to value, as decoded from
// YAML, JSON or a SQLite row.
type Record = map[string]any

// Value ranks. Values of different kinds order by rank.
const (
	rankNil = iota
	rankBool
	rankNumber
	rankString
	rankOther
)

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func rank(v any) int {
	switch v.(type) {
	case nil:
		return rankNil
	case bool:
		return rankBool
	case string:
		return rankString
	}
	if _, ok := number(v); ok {
		return rankNumber
	}
	return rankOther
}

// compareValues orders nil first, then booleans, numbers and strings.
// Numbers compare by value whatever their Go type; anything else compares
// by its printed form.
func compareValues(a, b any) int {
	ra, rb := rank(a), rank(b)
	if ra != rb {
		return cmp.Compare(ra, rb)
	}
	switch ra {
	case rankNil:
		return 0
	case rankBool:
		x, y := a.(bool), b.(bool)
		switch {
		case x == y:
			return 0
		case !x:
			return -1
		}
		return 1
	case rankNumber:
		x, _ := number(a)
		y, _ := number(b)
		return cmp.Compare(x, y)
	case rankString:
		return strings.Compare(a.(string), b.(string))
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

// groupKey maps v to a comparable key such that values that compare equal
// share a key: 27 from YAML and 27.0 from SQLite land in the same group.
func groupKey(v any) string {
	switch rank(v) {
	case rankNil:
		return "nil"
	case rankNumber:
		n, _ := number(v)
		return "n:" + strconv.FormatFloat(n, 'g', -1, 64)
	case rankString:
		return "s:" + v.(string)
	}
	return fmt.Sprintf("%T:%v", v, v)
}

// formatValue renders v for text output.
func formatValue(v any) string {
	if s, ok := v.(string); ok && (s == "" || strings.ContainsAny(s, " \t\n\"=")) {
		return strconv.Quote(s)
	}
	return fmt.Sprint(v)
}
