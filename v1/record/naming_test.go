package record

import "testing"

func TestFieldNameRoundTrip(t *testing.T) {
	cases := []struct {
		operation string
		prefix    string
		want      string
	}{
		{"GetFirstName", PrefixGet, "firstName"},
		{"GetA", PrefixGet, "a"},
		{"IsActive", PrefixIs, "active"},
		{"SetFirstName", PrefixSet, "firstName"},
		{"AddToTags", PrefixAddTo, "tags"},
		{"PutIntoAttributes", PrefixPutInto, "attributes"},
		{"RemoveFromAttributes", PrefixRemoveFrom, "attributes"},
	}

	for _, tc := range cases {
		got, err := FieldName(tc.operation, tc.prefix)
		if err != nil {
			t.Errorf("FieldName(%q, %q): unexpected error: %v", tc.operation, tc.prefix, err)
			continue
		}
		if got != tc.want {
			t.Errorf("FieldName(%q, %q) = %q, want %q", tc.operation, tc.prefix, got, tc.want)
		}
	}
}

func TestFieldNameEmptyRemainder(t *testing.T) {
	for _, prefix := range []string{PrefixGet, PrefixIs, PrefixSet, PrefixAddTo, PrefixPutInto, PrefixRemoveFrom} {
		_, err := FieldName(prefix, prefix)
		if !IsNamingError(err) {
			t.Errorf("FieldName(%q, %q): expected NamingError, got %v", prefix, prefix, err)
		}
	}
}

func TestFieldNamePrefixMismatch(t *testing.T) {
	_, err := FieldName("Fetch", PrefixGet)
	if !IsNamingError(err) {
		t.Fatalf("expected NamingError, got %v", err)
	}
}
