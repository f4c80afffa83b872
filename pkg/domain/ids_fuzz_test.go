package domain

import (
	"strings"
	"testing"
	"unicode/utf8"
)

// FuzzParseEmployeeID checks parsing never panics and accepted IDs are canonical.
func FuzzParseEmployeeID(f *testing.F) {
	f.Add("")
	f.Add("6002056")
	f.Add(" emp-01 ")
	f.Add("'; DROP TABLE employees;--")
	f.Add(string([]byte{0xff, 0xfe}))

	f.Fuzz(func(t *testing.T, input string) {
		id, err := ParseEmployeeID(input)
		if err != nil {
			return
		}
		if !utf8.ValidString(input) {
			t.Error("non-UTF8 input was accepted")
		}
		if string(id) != strings.ToUpper(string(id)) {
			t.Errorf("accepted id %q is not upper-case", id)
		}
		again, err := ParseEmployeeID(string(id))
		if err != nil || again != id {
			t.Errorf("round-trip changed %q", id)
		}
	})
}
