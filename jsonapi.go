// Package jsonapi validates incoming JSON:API request documents against the
// document-shape rules of the JSON:API specification and against an
// externally supplied Schema describing which resource types, fields, and ids
// the endpoint recognises.
//
// Validation never stops at the first problem: every independent violation is
// accumulated into the built Document so a client gets a complete error
// report in one round trip. Each error carries a JSON Pointer locating the
// offending value, an HTTP status, and a title/detail pair resolved from a
// replaceable message catalog.
package jsonapi

import (
	"fmt"
	"strings"
)

func isGloballyAllowedCharacter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func isInternallyAllowedCharacter(r rune) bool {
	return isGloballyAllowedCharacter(r) || r == '-' || r == '_'
}

// https://jsonapi.org/format/#document-member-names
func validateMemberName(name string) error {
	if len(name) < 1 {
		return fmt.Errorf("member names must have at least one character")
	} else if strings.IndexFunc(name, func(r rune) bool {
		return !isInternallyAllowedCharacter(r)
	}) >= 0 {
		return fmt.Errorf("member names may only contain numbers, letters, hyphens, and underscores")
	} else if !isGloballyAllowedCharacter(rune(name[0])) || !isGloballyAllowedCharacter(rune(name[len(name)-1])) {
		return fmt.Errorf("member names must begin and end with a number or letter")
	}
	return nil
}
