package loader

import (
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

// bundle holds the loader's handful of user-facing message templates.
// Real multi-locale support would register additional message files per
// locale with bundle.LoadMessageFile; only the English defaults are
// registered inline here since the framework ships no translation files
// of its own — a host embedding this loader can still add locales to the
// same bundle before the first Load call.
var (
	bundleOnce sync.Once
	bundle     *i18n.Bundle
)

func getBundle() *i18n.Bundle {
	bundleOnce.Do(func() {
		bundle = i18n.NewBundle(language.English)
		if err := bundle.AddMessages(language.English,
			&i18n.Message{
				ID:    "lexer_not_found",
				Other: `no lexer named "{{.Name}}" on search path "{{.SearchPath}}"`,
			},
		); err != nil {
			panic(err)
		}
	})
	return bundle
}

// Localize renders messageID against data using the loader's message
// bundle, defaulting to English (the only locale this package registers
// out of the box).
func Localize(messageID string, data map[string]interface{}) string {
	localizer := i18n.NewLocalizer(getBundle(), language.English.String())
	msg, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: messageID, TemplateData: data})
	if err != nil {
		return messageID
	}
	return msg
}
