// Package translate renders user facing messages in the language of
// the host locale.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer *message.Printer

var tag language.Tag

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("i8080: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	tag = message.MatchLanguage(locales...)
	printer = message.NewPrinter(tag)
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}

// Language returns the language messages are rendered in.
func Language() language.Tag {
	return tag
}
