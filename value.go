package xlwrap

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// DateFormatCode is the only number format applied to date cells. Reading a
// cell relies on it to tell a date from a plain number, so a date cell's
// format code must never be changed apart from its value.
const DateFormatCode = "dd/mm/yyyy"

// Dates outside this span have no serial number and cannot be stored as dates.
var (
	minStorableDate = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)
	maxStorableDate = time.Date(9999, time.December, 31, 23, 59, 59, 999999999, time.UTC)
)

// ValueKind tags the variant held by a Value.
type ValueKind int

const (
	KindEmpty ValueKind = iota
	KindNumber
	KindText
	KindDate
)

// String returns a human-readable name for the ValueKind.
func (k ValueKind) String() string {
	switch k {
	case KindEmpty:
		return "Empty"
	case KindNumber:
		return "Number"
	case KindText:
		return "Text"
	case KindDate:
		return "Date"
	default:
		return "Unknown"
	}
}

// Value is the content of a single cell: Empty, Number, Text or Date.
// The zero Value is Empty.
type Value struct {
	kind ValueKind
	num  float64
	text string
	date time.Time
}

// Empty returns the empty cell value.
func Empty() Value { return Value{} }

// Number returns a numeric cell value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Text returns a text cell value. Text("") is stored as an empty cell.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// Date returns a date cell value.
func Date(t time.Time) Value { return Value{kind: KindDate, date: t} }

// Kind reports which variant v holds.
func (v Value) Kind() ValueKind { return v.kind }

// IsEmpty reports whether v is Empty.
func (v Value) IsEmpty() bool { return v.kind == KindEmpty }

// Float returns the number held by a Number value.
func (v Value) Float() (float64, bool) { return v.num, v.kind == KindNumber }

// Time returns the date held by a Date value.
func (v Value) Time() (time.Time, bool) { return v.date, v.kind == KindDate }

// Text returns the string held by a Text value.
func (v Value) Text() (string, bool) { return v.text, v.kind == KindText }

// Interface returns the held value as nil, float64, string or time.Time.
func (v Value) Interface() any {
	switch v.kind {
	case KindNumber:
		return v.num
	case KindText:
		return v.text
	case KindDate:
		return v.date
	default:
		return nil
	}
}

// String formats v for display. Dates use the date format code's layout.
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindText:
		return v.text
	case KindDate:
		return v.date.Format("02/01/2006")
	default:
		return ""
	}
}

// ValueOf coerces an arbitrary Go value into a Value. Integers and floats
// become Number, strings Text, time.Time Date and nil Empty.
func ValueOf(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Empty(), nil
	case Value:
		return t, nil
	case int:
		return Number(float64(t)), nil
	case int8:
		return Number(float64(t)), nil
	case int16:
		return Number(float64(t)), nil
	case int32:
		return Number(float64(t)), nil
	case int64:
		return Number(float64(t)), nil
	case uint:
		return Number(float64(t)), nil
	case uint8:
		return Number(float64(t)), nil
	case uint16:
		return Number(float64(t)), nil
	case uint32:
		return Number(float64(t)), nil
	case uint64:
		return Number(float64(t)), nil
	case float32:
		return Number(float64(t)), nil
	case float64:
		return Number(t), nil
	case string:
		return Text(t), nil
	case time.Time:
		return Date(t), nil
	default:
		return Value{}, fmt.Errorf("%w: %T", ErrUnsupportedValueType, x)
	}
}

// decodeCell turns a cell's raw text and format code into a Value. The order
// matters: the format code is checked before the numeric fallback so a date,
// stored as a serial number, never reads back as a Number.
func decodeCell(text, formatCode string, date func() (time.Time, error)) (Value, error) {
	if text == "" {
		return Empty(), nil
	}
	if formatCode == DateFormatCode {
		t, err := date()
		if err != nil {
			return Value{}, err
		}
		return Date(t), nil
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return Number(f), nil
	}
	return Text(text), nil
}

// checkStorable rejects a Date with no serial number.
func checkStorable(v Value) error {
	t, ok := v.Time()
	if !ok {
		return nil
	}
	if t.Before(minStorableDate) || t.After(maxStorableDate) {
		return fmt.Errorf("%w: date %s outside 1900-01-01..9999-12-31", ErrUnsupportedValueType, t.Format(time.RFC3339))
	}
	return nil
}
