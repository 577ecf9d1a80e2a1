// Package translate formats user facing messages for the current locale.
package translate

import (
	"log"
	"sync"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const fallback = "en-US"

var (
	once    sync.Once
	tag     language.Tag
	printer *message.Printer
)

func setup() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("asmkit: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{fallback}
	}

	tag = message.MatchLanguage(locales...)
	printer = message.NewPrinter(tag)
}

// Language returns the language messages are formatted for.
func Language() language.Tag {
	once.Do(setup)
	return tag
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	once.Do(setup)
	return printer.Sprintf(key, args...)
}
