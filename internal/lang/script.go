package lang

import "unicode"

// Whole Unicode blocks, not just the assigned code points of unicode.Tamil
// and unicode.Devanagari.
var (
	tamilBlock = &unicode.RangeTable{
		R16: []unicode.Range16{{Lo: 0x0B80, Hi: 0x0BFF, Stride: 1}},
	}
	devanagariBlock = &unicode.RangeTable{
		R16: []unicode.Range16{{Lo: 0x0900, Hi: 0x097F, Stride: 1}},
	}
)

var scripts = map[string]*unicode.RangeTable{
	Tamil: tamilBlock,
	Hindi: devanagariBlock,
}

// NeedsScriptCheck reports whether translations into code are validated by
// HasTargetScript.
func NeedsScriptCheck(code string) bool {
	_, ok := scripts[code]
	return ok
}

// HasTargetScript reports whether text contains at least one character of
// the writing system used by code. Languages without a known script always
// pass. Invalid UTF-8 decodes to U+FFFD, which belongs to no checked block.
func HasTargetScript(text, code string) bool {
	table, ok := scripts[code]
	if !ok {
		return true
	}
	for _, r := range text {
		if unicode.Is(table, r) {
			return true
		}
	}
	return false
}
