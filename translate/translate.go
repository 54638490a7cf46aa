// Package translate formats user-visible messages for the locale of the host.
package translate

import (
	"sync"

	"github.com/jeandeaual/go-locale"
	log "github.com/sirupsen/logrus"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:generate go tool gotext -srclang=en-US update -out=catalog.go -lang=en-US github.com/ezrec/bus8/...

var (
	once    sync.Once
	printer *message.Printer
	tag     language.Tag
)

func setup() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("bus8: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	tag = message.MatchLanguage(locales...)
	printer = message.NewPrinter(tag)
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	once.Do(setup)
	return printer.Sprintf(key, args...)
}

// Language is the language tag selected for the host.
func Language() language.Tag {
	once.Do(setup)
	return tag
}
