// Package identity derives the stable natural keys that tie bills,
// actions, summaries, and linked votes to a single Legislation row.
package identity

import (
	"fmt"
	"strings"
)

// validBillTypes is the allow-list of recognized bill subtypes. Resources
// with any other subtype are silently skipped wherever gating applies.
var validBillTypes = map[string]struct{}{
	"HR":      {},
	"S":       {},
	"HJRES":   {},
	"SJRES":   {},
	"HCONRES": {},
	"SCONRES": {},
	"HRES":    {},
	"SRES":    {},
}

// NormalizeType upper-cases and trims a bill subtype code. Secondary
// endpoints return the code lower-cased while the detail endpoint does
// not; every key derivation normalizes first so both spellings resolve
// to the same row.
func NormalizeType(billType string) string {
	return strings.ToUpper(strings.TrimSpace(billType))
}

// ValidBillType reports whether the subtype is on the allow-list. The
// check is case-insensitive.
func ValidBillType(billType string) bool {
	_, ok := validBillTypes[NormalizeType(billType)]
	return ok
}

// BillKey concatenates congress, subtype, and number into the natural
// key, e.g. (119, "HR", "1234") -> "119HR1234". Callers pass the subtype
// through NormalizeType first; BillKey itself does not alter casing.
func BillKey(congress int, billType, number string) string {
	return fmt.Sprintf("%d%s%s", congress, billType, number)
}
