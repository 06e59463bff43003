package distributor

import (
	"net/mail"
	"strconv"
	"strings"

	apperrors "github.com/nguyentantai21042004/meeting-digest/internal/errors"
)

// RecipientSet is an ordered list of unique, validated addresses. The zero
// value is empty and cannot be sent to.
type RecipientSet struct {
	addrs []string
}

// ParseRecipients validates free-text recipient input. The whole input is
// rejected if any entry is empty or not a valid address; the error names every
// offending entry.
func ParseRecipients(raw string) (RecipientSet, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return RecipientSet{}, apperrors.Validationf("no recipients given")
	}

	var (
		addrs   []string
		invalid []string
		seen    = make(map[string]bool)
	)

	for i, entry := range splitRecipients(raw) {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			invalid = append(invalid, "(empty entry #"+strconv.Itoa(i+1)+")")
			continue
		}
		if !strings.Contains(entry, "@") {
			invalid = append(invalid, entry)
			continue
		}
		addr, err := mail.ParseAddress(entry)
		if err != nil {
			invalid = append(invalid, entry)
			continue
		}

		key := strings.ToLower(addr.Address)
		if seen[key] {
			continue
		}
		seen[key] = true
		addrs = append(addrs, addr.Address)
	}

	if len(invalid) > 0 {
		return RecipientSet{}, apperrors.Validationf("invalid recipients: %s", strings.Join(invalid, ", "))
	}
	return RecipientSet{addrs: addrs}, nil
}

// Addresses returns a copy of the addresses in input order.
func (r RecipientSet) Addresses() []string {
	return append([]string(nil), r.addrs...)
}

func (r RecipientSet) Len() int {
	return len(r.addrs)
}

func (r RecipientSet) String() string {
	return strings.Join(r.addrs, ", ")
}

// splitRecipients splits on commas, semicolons and newlines outside quoted
// display names and angle brackets. A comma or semicolon at the end of a
// line counts as a single separator.
func splitRecipients(raw string) []string {
	var (
		entries []string
		b       strings.Builder
		quoted  bool
		escaped bool
		angle   int
		eol     bool // after , or ; only blanks so far
	)

	for _, r := range raw {
		if eol {
			switch r {
			case ' ', '\t', '\r':
				continue
			case '\n':
				eol = false
				continue
			}
			eol = false
		}

		switch {
		case escaped:
			escaped = false
		case quoted && r == '\\':
			escaped = true
		case r == '"':
			quoted = !quoted
		case quoted:
		case r == '<':
			angle++
		case r == '>' && angle > 0:
			angle--
		case angle == 0 && (r == ',' || r == ';' || r == '\n'):
			entries = append(entries, b.String())
			b.Reset()
			eol = r != '\n'
			continue
		}
		b.WriteRune(r)
	}
	return append(entries, b.String())
}
