// Package i18n localizes the labels shown by the views.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/BurntSushi/toml"
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localeFS embed.FS

// Localizer translates message IDs for one locale.
type Localizer struct {
	tag       language.Tag
	localizer *goi18n.Localizer
}

// New builds a localizer for locale, e.g. "es" or "en-GB". Unknown or
// unsupported locales fall back to English.
func New(locale string) (*Localizer, error) {
	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files, err := fs.Glob(localeFS, "locales/*.toml")
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		if _, err := bundle.LoadMessageFileFS(localeFS, f); err != nil {
			return nil, fmt.Errorf("i18n: load %s: %w", f, err)
		}
	}

	tag := language.English
	if locale != "" {
		parsed, err := language.Parse(locale)
		if err == nil {
			matcher := language.NewMatcher(bundle.LanguageTags())
			_, idx, conf := matcher.Match(parsed)
			if conf != language.No {
				tag = bundle.LanguageTags()[idx]
			}
		}
	}

	return &Localizer{
		tag:       tag,
		localizer: goi18n.NewLocalizer(bundle, tag.String()),
	}, nil
}

// Language returns the tag the localizer resolved to.
func (l *Localizer) Language() language.Tag {
	return l.tag
}

// Text returns the translation of id, or fallback when there is none. An
// empty id always yields fallback.
func (l *Localizer) Text(id, fallback string) string {
	if l == nil || id == "" {
		return fallback
	}
	msg, err := l.localizer.Localize(&goi18n.LocalizeConfig{
		DefaultMessage: &goi18n.Message{ID: id, Other: fallback},
	})
	if err != nil || msg == "" {
		return fallback
	}
	return msg
}
