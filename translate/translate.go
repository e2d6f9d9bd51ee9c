// Package translate formats user-visible messages for the host locale.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DEFAULT_LOCALE is used when the host locale cannot be determined.
const DEFAULT_LOCALE = "en-US"

var printer *message.Printer

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("uvm: locale: %v", err)
	}

	printer = NewPrinter(locales...)
}

// NewPrinter returns a message printer for the best match of the locales.
func NewPrinter(locales ...string) *message.Printer {
	if len(locales) == 0 {
		locales = []string{DEFAULT_LOCALE}
	}

	tag := message.MatchLanguage(locales...)
	if tag == language.Und {
		tag = language.MustParse(DEFAULT_LOCALE)
	}

	return message.NewPrinter(tag)
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
