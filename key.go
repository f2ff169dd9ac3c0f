package horizon

import "strings"

var accents = strings.NewReplacer("á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ñ", "n")

// NormalizeKey canonicalizes a label for fuzzy matching: lower case, trimmed,
// Spanish accents folded, and anything outside [a-z0-9] removed.
//
//	NormalizeKey("Ingresó Operación") == "ingresooperacion"
//
// Only the accents listed above are folded; other letters such as 'ü' are
// simply dropped.
func NormalizeKey(s string) string {
	s = accents.Replace(strings.TrimSpace(strings.ToLower(s)))
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			b.WriteByte(c)
		}
	}
	return b.String()
}
