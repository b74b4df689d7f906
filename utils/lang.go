package utils

import (
	"embed"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v2"
)

//go:embed locales/*.yaml
var localeFiles embed.FS

var (
	bundle     *i18n.Bundle
	bundleOnce sync.Once
)

// InitI18NBundle loads the embedded message files. It is safe to call more
// than once.
func InitI18NBundle() {
	bundleOnce.Do(func() {
		b := i18n.NewBundle(language.English)
		b.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)
		for _, name := range []string{"en.yaml", "sk.yaml"} {
			buf, err := localeFiles.ReadFile("locales/" + name)
			if err != nil {
				panic(err)
			}
			b.MustParseMessageFileBytes(buf, name)
		}
		bundle = b
	})
}

// NewLocalizer returns a localizer for the given languages, typically the
// raw Accept-Language header
func NewLocalizer(langs ...string) *i18n.Localizer {
	InitI18NBundle()
	return i18n.NewLocalizer(bundle, langs...)
}

// Localize translates a message id. The id itself is returned when there is
// no such message.
func Localize(lang, messageID string, data map[string]interface{}) string {
	msg, err := NewLocalizer(lang).Localize(&i18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: data,
	})
	if err != nil {
		return messageID
	}
	return msg
}
