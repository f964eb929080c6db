package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/SscSPs/business_report_engine/internal/utils/numeric"
	"github.com/shopspring/decimal"
)

// FieldValue is the atomic unit of a document: either a decimal amount or free text.
// The zero value is the number zero.
type FieldValue struct {
	num    decimal.Decimal
	text   string
	isText bool
}

// Number returns a numeric field value.
func Number(d decimal.Decimal) FieldValue {
	return FieldValue{num: d}
}

// NumberFromInt returns a numeric field value for an integer amount.
func NumberFromInt(i int64) FieldValue {
	return FieldValue{num: decimal.NewFromInt(i)}
}

// Text returns a text field value.
func Text(s string) FieldValue {
	return FieldValue{text: s, isText: true}
}

// ParseValue turns raw user input into a field value: anything that parses as a
// decimal becomes numeric, everything else stays text.
func ParseValue(raw string) FieldValue {
	trimmed := strings.TrimSpace(raw)
	if trimmed != "" && numeric.IsNumeric(trimmed) {
		return Number(numeric.Coerce(trimmed))
	}
	return Text(raw)
}

// IsText reports whether v holds text rather than a number.
func (v FieldValue) IsText() bool {
	return v.isText
}

// Decimal returns the numeric value used for aggregation. Text is parsed
// leniently and anything non-numeric counts as zero.
func (v FieldValue) Decimal() decimal.Decimal {
	if v.isText {
		return numeric.Coerce(v.text)
	}
	return v.num
}

// String renders the value for display.
func (v FieldValue) String() string {
	if v.isText {
		return v.text
	}
	return v.num.String()
}

// Equal reports whether both values have the same kind and content. Numbers
// compare by value, so 3000 equals 3000.00.
func (v FieldValue) Equal(other FieldValue) bool {
	if v.isText != other.isText {
		return false
	}
	if v.isText {
		return v.text == other.text
	}
	return v.num.Equal(other.num)
}

// MarshalJSON writes numbers as JSON numbers and text as JSON strings.
func (v FieldValue) MarshalJSON() ([]byte, error) {
	if v.isText {
		return json.Marshal(v.text)
	}
	return []byte(v.num.String()), nil
}

// UnmarshalJSON accepts JSON numbers, strings, booleans and null.
func (v *FieldValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*v = Text("")
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode text field value: %w", err)
		}
		*v = Text(s)
		return nil
	case bytes.Equal(data, []byte("true")), bytes.Equal(data, []byte("false")):
		*v = Text(string(data))
		return nil
	default:
		d, err := decimal.NewFromString(string(data))
		if err != nil {
			return fmt.Errorf("decode numeric field value %s: %w", data, err)
		}
		*v = Number(d)
		return nil
	}
}

// FieldSet maps field keys to values. Collection items use positional keys
// built by ItemKey.
type FieldSet map[string]FieldValue

// Clone returns a shallow copy; FieldValue is immutable so this is a full copy.
func (fs FieldSet) Clone() FieldSet {
	out := make(FieldSet, len(fs))
	for k, v := range fs {
		out[k] = v
	}
	return out
}

// Overlay writes every entry of other into fs, replacing existing keys.
func (fs FieldSet) Overlay(other FieldSet) {
	for k, v := range other {
		fs[k] = v
	}
}

// Decimal returns the numeric value of key, treating absent keys as zero.
func (fs FieldSet) Decimal(key string) decimal.Decimal {
	v, ok := fs[key]
	if !ok {
		return decimal.Zero
	}
	return v.Decimal()
}

// Text returns the display value of key, or "" when absent.
func (fs FieldSet) Text(key string) string {
	v, ok := fs[key]
	if !ok {
		return ""
	}
	return v.String()
}

// Has reports whether key is present.
func (fs FieldSet) Has(key string) bool {
	_, ok := fs[key]
	return ok
}

// Keys returns the keys in sorted order.
func (fs FieldSet) Keys() []string {
	keys := make([]string, 0, len(fs))
	for k := range fs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Equal reports whether both sets hold the same keys with equal values.
func (fs FieldSet) Equal(other FieldSet) bool {
	if len(fs) != len(other) {
		return false
	}
	for k, v := range fs {
		ov, ok := other[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// ItemKey builds the positional key of one attribute of a collection item,
// e.g. ItemKey("materials", 2, "init") == "materials_2_init".
func ItemKey(collection string, index int, attribute string) string {
	return collection + "_" + strconv.Itoa(index) + "_" + attribute
}

// MaxCollectionItems bounds the item index of every collection key.
const MaxCollectionItems = 100

// ParseItemKey splits a positional key into collection, index and attribute.
// Only the given collection names are recognised, which keeps names that
// contain underscores (non_ins) unambiguous. The index must be written in
// canonical decimal form (no sign, no leading zeros) and be below
// MaxCollectionItems, so every item slot has exactly one key.
func ParseItemKey(key string, collections []string) (collection string, index int, attribute string, ok bool) {
	for _, c := range collections {
		prefix := c + "_"
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		rest := key[len(prefix):]
		sep := strings.IndexByte(rest, '_')
		if sep <= 0 || sep == len(rest)-1 {
			continue
		}
		idx, err := strconv.Atoi(rest[:sep])
		if err != nil || idx < 0 || idx >= MaxCollectionItems || strconv.Itoa(idx) != rest[:sep] {
			continue
		}
		return c, idx, rest[sep+1:], true
	}
	return "", 0, "", false
}
