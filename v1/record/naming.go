package record

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Accessor prefixes recognized on record interface operations.
// Classification checks them in this order.
const (
	PrefixGet        = "Get"
	PrefixIs         = "Is"
	PrefixSet        = "Set"
	PrefixAddTo      = "AddTo"
	PrefixPutInto    = "PutInto"
	PrefixRemoveFrom = "RemoveFrom"
)

// FieldName resolves an operation name into its field name by stripping the
// given accessor prefix and lower-casing the leading rune of the remainder:
// FieldName("GetFirstName", PrefixGet) == "firstName".
//
// Returns a NamingError when the remainder is empty or the prefix does not
// match. Pure function, no side effects.
func FieldName(operation, prefix string) (string, error) {
	rest := strings.TrimPrefix(operation, prefix)
	if rest == operation || rest == "" {
		return "", &NamingError{Operation: operation, Prefix: prefix}
	}

	r, size := utf8.DecodeRuneInString(rest)
	return string(unicode.ToLower(r)) + rest[size:], nil
}
