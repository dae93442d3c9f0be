package user

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"go.uber.org/zap"
)

// Status label message keys. The German catalog carries the labels the
// membership grew up with.
const (
	statusActive  = "Active"
	statusPassive = "Passive"
)

func init() {
	for _, entry := range []struct {
		tag  language.Tag
		key  string
		text string
	}{
		{language.German, statusActive, "Aktiv"},
		{language.German, statusPassive, "Passiv"},
		{language.English, statusActive, "Active"},
		{language.English, statusPassive, "Passive"},
	} {
		if err := message.SetString(entry.tag, entry.key, entry.text); err != nil {
			panic(err)
		}
	}
}

// newPrinter builds a label printer for the configured locale, falling
// back to German like the reference deployment.
func newPrinter(locale string) *message.Printer {
	tag, err := language.Parse(locale)
	if err != nil {
		zap.L().Warn("Unknown locale, falling back to German", zap.String("locale", locale))
		tag = language.German
	}
	return message.NewPrinter(tag)
}

// statusLabel returns the localized membership status. It agrees with
// the connection flag by construction: active members and only active
// members carry the active label.
func statusLabel(p *message.Printer, active bool) string {
	if active {
		return p.Sprintf(statusActive)
	}
	return p.Sprintf(statusPassive)
}
