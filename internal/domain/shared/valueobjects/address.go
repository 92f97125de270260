package valueobjects

import "strings"

// ValidAddress reports whether s looks like a TON wallet address. Both the
// user-friendly base64 form (EQ.../UQ...) and the raw workchain form
// (0:<hex>) are accepted. Full checksum verification belongs to the chain
// layer, which is outside the core.
func ValidAddress(s string) bool {
	if s == "" {
		return false
	}
	if strings.HasPrefix(s, "EQ") || strings.HasPrefix(s, "UQ") {
		return len(s) == 48
	}
	if strings.HasPrefix(s, "0:") || strings.HasPrefix(s, "-1:") {
		return len(s) > 2
	}
	return false
}
