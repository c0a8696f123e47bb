// Package cik validates SEC Central Index Key identifiers.
package cik

// Default is the identifier used when the caller supplies none or an invalid one.
const Default = "0000318154"

// Length is the number of digits in a zero-padded CIK.
const Length = 10

// Valid reports whether s is exactly ten ASCII digits.
func Valid(s string) bool {
	if len(s) != Length {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Choose returns raw when it is a valid CIK and def otherwise.
// custom is true only when the returned id differs from def.
func Choose(raw, def string) (id string, custom bool) {
	if Valid(raw) {
		return raw, raw != def
	}
	return def, false
}
