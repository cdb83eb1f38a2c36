package app

import (
	"errors"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Operator-facing message keys. They double as the English text.
const (
	msgNoFiles        = "No files found"
	msgNoPresentation = "No presentation found in %s; slide distribution skipped"
	msgDropped        = "%d URLs did not fit on %d slides and were dropped"
)

var catalog = []struct {
	key string
	uk  string
}{
	{msgNoFiles, "Немає файлів"},
	{msgNoPresentation, "Немає файлу презентації в %s; розподіл по слайдах пропущено"},
	{msgDropped, "%d посилань не вмістилися на %d слайдів і були відкинуті"},
}

func init() {
	for _, m := range catalog {
		_ = message.SetString(language.Ukrainian, m.key, m.uk)
		_ = message.SetString(language.English, m.key, m.key)
	}
}

// newPrinter returns a printer for lang. Anything that is not English falls
// back to Ukrainian.
func newPrinter(lang string) *message.Printer {
	tag, err := language.Parse(lang)
	if err != nil {
		return message.NewPrinter(language.Ukrainian)
	}
	if base, _ := tag.Base(); base == mustBase(language.English) {
		return message.NewPrinter(language.English)
	}
	return message.NewPrinter(language.Ukrainian)
}

func mustBase(t language.Tag) language.Base {
	b, _ := t.Base()
	return b
}

// Diagnostic returns the localized operator message for known run errors,
// or the error text otherwise.
func Diagnostic(lang string, err error) string {
	if err == nil {
		return ""
	}
	p := newPrinter(lang)
	if errors.Is(err, ErrNoInputs) {
		return p.Sprintf(msgNoFiles)
	}
	return err.Error()
}
