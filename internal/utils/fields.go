package utils

import (
	"fmt"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FieldChain is an ordered list of document fields. The first field that is
// present and not null wins, mirroring nested $ifNull expressions.
type FieldChain []string

// Lookup returns the value of the first present field.
func (c FieldChain) Lookup(doc map[string]interface{}) (interface{}, bool) {
	for _, field := range c {
		if v, ok := doc[field]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// String returns the first present field rendered as a string, or "".
func (c FieldChain) String(doc map[string]interface{}) string {
	v, ok := c.Lookup(doc)
	if !ok {
		return ""
	}
	return AsString(v)
}

// AsString renders scalar document values. Unknown types become "".
func AsString(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case primitive.ObjectID:
		return x.Hex()
	case primitive.Decimal128:
		return x.String()
	case fmt.Stringer:
		return x.String()
	default:
		return ""
	}
}

// CanonicalKey trims and lowercases s so comparisons ignore case and
// surrounding whitespace.
func CanonicalKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ContainsFold reports whether substr is within s, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
