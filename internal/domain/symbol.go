package domain

import "strings"

// Symbol identifies a tradable instrument. Symbols are stored and matched
// uppercase; use NormalizeSymbol before any lookup.
type Symbol string

func NormalizeSymbol(s string) Symbol {
	return Symbol(strings.ToUpper(strings.TrimSpace(s)))
}

func (s Symbol) String() string { return string(s) }
