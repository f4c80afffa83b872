package email

import (
	"net/mail"
	"strings"
	"unicode"
)

// personalDomains are consumer mailbox providers that cannot be used to
// register a verifier account.
var personalDomains = map[string]struct{}{
	"gmail.com":      {},
	"googlemail.com": {},
	"yahoo.com":      {},
	"hotmail.com":    {},
	"outlook.com":    {},
	"live.com":       {},
	"aol.com":        {},
	"icloud.com":     {},
	"mail.com":       {},
	"protonmail.com": {},
	"proton.me":      {},
}

// Normalize trims and lower-cases an address.
func Normalize(addr string) string {
	return strings.ToLower(strings.TrimSpace(addr))
}

// IsValid reports whether addr is a bare address (no display name).
func IsValid(addr string) bool {
	parsed, err := mail.ParseAddress(addr)
	if err != nil {
		return false
	}
	return parsed.Address == addr && strings.Contains(Domain(addr), ".")
}

// Domain returns the part after the last '@', lower-cased.
func Domain(addr string) string {
	at := strings.LastIndexByte(addr, '@')
	if at < 0 {
		return ""
	}
	return strings.ToLower(addr[at+1:])
}

// IsPersonal reports whether addr belongs to a consumer mail provider.
func IsPersonal(addr string) bool {
	_, ok := personalDomains[Domain(addr)]
	return ok
}

// DisplayName derives a greeting name from the local part, e.g.
// "ravi.kumar@acme.com" gives "Ravi Kumar".
func DisplayName(addr string) string {
	localPart := addr
	if at := strings.IndexByte(addr, '@'); at >= 0 {
		localPart = addr[:at]
	}

	parts := strings.FieldsFunc(localPart, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == '+'
	})
	if len(parts) == 0 {
		return "User"
	}
	for i, p := range parts {
		parts[i] = capitalize(p)
	}
	return strings.Join(parts, " ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}

	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
