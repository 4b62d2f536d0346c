// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package names sanitizes and uniquifies identifiers for generated
// SystemVerilog.
//
package names

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var reserved = map[string]bool{
	"always": true, "always_comb": true, "always_ff": true, "assign": true,
	"begin": true, "case": true, "casez": true, "default": true, "else": true,
	"end": true, "endcase": true, "endmodule": true, "if": true, "input": true,
	"logic": true, "module": true, "negedge": true, "or": true, "output": true,
	"posedge": true, "priority": true, "reg": true, "unique": true, "wire": true,
}

// Sanitize returns name with accents stripped and every remaining character
// that is not an ASCII letter, a digit or an underscore replaced by an
// underscore. Names that are empty, start with a digit or are reserved words
// get an extra underscore.
//
func Sanitize(name string) string {
	var b strings.Builder
	for _, r := range norm.NFKD.String(name) {
		switch {
		case unicode.Is(unicode.Mn, r):
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	s := b.String()
	switch {
	case s == "":
		return "_"
	case s[0] >= '0' && s[0] <= '9':
		return "_" + s
	case reserved[s]:
		return s + "_"
	}
	return s
}

// Uniquifier hands out unique sanitized names.
//
// The zero value is ready to use.
//
type Uniquifier struct {
	taken map[string]bool
}

// Get returns the sanitized name, or the sanitized name with the smallest
// numeric suffix that makes it unique.
//
func (u *Uniquifier) Get(name string) string {
	if u.taken == nil {
		u.taken = make(map[string]bool)
	}
	base := Sanitize(name)
	n := base
	for i := 0; u.taken[n]; i++ {
		n = base + "_" + strconv.Itoa(i)
	}
	u.taken[n] = true
	return n
}

// Taken returns true if name has already been handed out.
//
func (u *Uniquifier) Taken(name string) bool { return u.taken[name] }
