package utils

import "bytes"

// The backend does not always emit strict JSON: numeric fields with no
// market data can arrive as bare NaN (or Infinity) tokens, which
// encoding/json rejects outright.
var nonFiniteTokens = [][]byte{
	[]byte("-Infinity"),
	[]byte("Infinity"),
	[]byte("NaN"),
}

// SanitizeNonFiniteJSON rewrites bare NaN/Infinity value tokens to null so
// the payload parses and the missing values surface as nil pointers rather
// than fabricated zeros. Occurrences inside JSON strings are left alone.
func SanitizeNonFiniteJSON(payload []byte) []byte {
	inString := false
	escaped := false
	out := make([]byte, 0, len(payload))

	for i := 0; i < len(payload); i++ {
		c := payload[i]

		if inString {
			out = append(out, c)
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
			continue
		}

		if c == '"' {
			inString = true
			out = append(out, c)
			continue
		}

		replaced := false
		for _, token := range nonFiniteTokens {
			if bytes.HasPrefix(payload[i:], token) {
				out = append(out, []byte("null")...)
				i += len(token) - 1
				replaced = true
				break
			}
		}

		if !replaced {
			out = append(out, c)
		}
	}

	return out
}
