// ABOUTME: Title resolver turns user supplied page names into normalized titles
// ABOUTME: Also builds absolute page URLs from the configured site layout

package title

import (
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"

	"bliki-feed-api/core/domain"
	"bliki-feed-api/core/errors"
)

// illegalChars may not appear in a page name
const illegalChars = "#<>[]|{}"

// maxTitleLength is the maximum byte length of a page name
const maxTitleLength = 255

// Resolver normalizes page names and constructs their URLs
type Resolver struct {
	// Server is the scheme and host of the wiki, e.g. "https://wiki.example.org"
	Server string

	// ArticlePath is the pretty URL path; "$1" is replaced by the page name
	ArticlePath string

	// Script is the path of the entry point used for URLs with a query string
	Script string
}

// NewResolver creates a resolver with the default wiki URL layout
func NewResolver(server string) *Resolver {
	return &Resolver{
		Server:      strings.TrimRight(server, "/"),
		ArticlePath: "/wiki/$1",
		Script:      "/index.php",
	}
}

// NewFromText parses a page name. A known namespace prefix overrides
// defaultNS; a leading colon forces the main namespace.
func (r *Resolver) NewFromText(text string, defaultNS domain.Namespace) (*domain.Title, error) {
	name := normalizeWhitespace(text)

	ns := defaultNS
	if strings.HasPrefix(name, ":") {
		ns = domain.NamespaceMain
		name = strings.TrimSpace(name[1:])
	} else if idx := strings.Index(name, ":"); idx > 0 {
		if found, ok := domain.LookupNamespace(name[:idx]); ok {
			ns = found
			name = strings.TrimSpace(name[idx+1:])
		}
	}

	if name == "" {
		return nil, &errors.ValidationError{Field: "title", Message: "empty page name"}
	}
	if strings.ContainsAny(name, illegalChars) {
		return nil, &errors.ValidationError{Field: "title", Message: "page name contains illegal characters: " + name}
	}
	if len(name) > maxTitleLength {
		return nil, &errors.ValidationError{Field: "title", Message: "page name is too long"}
	}

	return &domain.Title{
		Namespace: ns,
		Text:      ucfirst(name),
	}, nil
}

// FullURL returns the absolute URL of the page. When query is not empty the
// script entry point is used so the query can be appended.
func (r *Resolver) FullURL(t domain.Title, query string) string {
	key := escapeKey(t.PrefixedDBKey())
	if query == "" {
		return r.Server + strings.Replace(r.ArticlePath, "$1", key, 1)
	}
	return r.Server + r.Script + "?title=" + key + "&" + query
}

func normalizeWhitespace(text string) string {
	text = strings.ReplaceAll(text, "_", " ")
	return strings.Join(strings.Fields(text), " ")
}

func ucfirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// escapeKey URL-encodes a database key while keeping the characters the
// wiki leaves readable in paths.
func escapeKey(key string) string {
	escaped := url.QueryEscape(key)
	replacer := strings.NewReplacer("%3A", ":", "%2F", "/", "%28", "(", "%29", ")", "%2C", ",", "%21", "!", "%7E", "~")
	return replacer.Replace(escaped)
}
