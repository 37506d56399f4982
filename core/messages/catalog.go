// ABOUTME: Localized interface messages with positional parameters
// ABOUTME: Picks the best supported language for a request using x/text/language

package messages

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
)

// Message keys used by the feed service
const (
	BlikiDesc    = "bliki-desc"
	BlikiNewPage = "bliki-newpage"
)

var builtin = map[string]map[string]string{
	"en": {
		BlikiDesc:    "The latest $1 from $2",
		BlikiNewPage: "New page",
	},
	"de": {
		BlikiDesc:    "Die neuesten $1 aus $2",
		BlikiNewPage: "Neue Seite",
	},
	"fr": {
		BlikiDesc:    "Les derniers $1 de $2",
		BlikiNewPage: "Nouvelle page",
	},
}

// Catalog resolves message keys for a language
type Catalog struct {
	fallback string
	messages map[string]map[string]string
	tags     []language.Tag
	matcher  language.Matcher
}

// NewCatalog creates a catalog with the built-in messages. The content
// language is preferred when nothing better matches a request.
func NewCatalog(contentLanguage string) *Catalog {
	fallback := "en"
	if _, ok := builtin[contentLanguage]; ok {
		fallback = contentLanguage
	}

	// The first tag is what the matcher returns on no match
	tags := []language.Tag{language.Make(fallback)}
	for code := range builtin {
		if code != fallback {
			tags = append(tags, language.Make(code))
		}
	}

	return &Catalog{
		fallback: fallback,
		messages: builtin,
		tags:     tags,
		matcher:  language.NewMatcher(tags),
	}
}

// Match chooses a supported language code. preferred is an explicit
// language code, acceptLanguage an Accept-Language header value; either may be empty.
func (c *Catalog) Match(preferred, acceptLanguage string) string {
	var wanted []language.Tag
	if preferred != "" {
		if tag, err := language.Parse(preferred); err == nil {
			wanted = append(wanted, tag)
		}
	}
	if acceptLanguage != "" {
		if tags, _, err := language.ParseAcceptLanguage(acceptLanguage); err == nil {
			wanted = append(wanted, tags...)
		}
	}
	if len(wanted) == 0 {
		return c.fallback
	}

	_, index, confidence := c.matcher.Match(wanted...)
	if confidence == language.No {
		return c.fallback
	}
	base, _ := c.tags[index].Base()
	return base.String()
}

// Text formats a message, replacing $1..$n with params. Missing keys
// fall back to the content language and then render as ⧼key⧽.
func (c *Catalog) Text(lang, key string, params ...string) string {
	msg, ok := c.messages[lang][key]
	if !ok {
		msg, ok = c.messages[c.fallback][key]
	}
	if !ok {
		return "⧼" + key + "⧽"
	}

	// Replace from the highest index so $1 does not clobber $10
	for i := len(params); i > 0; i-- {
		msg = strings.ReplaceAll(msg, "$"+strconv.Itoa(i), params[i-1])
	}
	return msg
}
