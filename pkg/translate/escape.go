package translate

import "strings"

// DecodeEscapes processes a raw surface string constant, converting
// escape substrings into their proper characters: `\"`, `\\`, `\n`,
// `\r`, `\t`, `\0`, and a backslash-newline continuation that consumes
// the run of whitespace that follows it (letting a string literal span
// source lines without embedding the newline). An escape character this
// function doesn't recognize is left unchanged, backslash and all. A
// trailing lone backslash (no following character) is also left
// unchanged rather than treated as an error, since this helper runs
// at a boundary (JSON-embedded raw strings) where failing softly is
// preferable to aborting the whole load.
func DecodeEscapes(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		if c != '\\' || i == len(runes)-1 {
			b.WriteRune(c)
			continue
		}
		next := runes[i+1]
		switch next {
		case '"':
			b.WriteRune('"')
			i++
		case '\\':
			b.WriteRune('\\')
			i++
		case 'n':
			b.WriteRune('\n')
			i++
		case 'r':
			b.WriteRune('\r')
			i++
		case 't':
			b.WriteRune('\t')
			i++
		case '0':
			b.WriteRune(0)
			i++
		case '\n':
			i++
			for i+1 < len(runes) && isContinuationSpace(runes[i+1]) {
				i++
			}
		default:
			b.WriteRune('\\')
			b.WriteRune(next)
			i++
		}
	}
	return b.String()
}

func isContinuationSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r':
		return true
	default:
		return false
	}
}
