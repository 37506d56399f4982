// ABOUTME: Title domain model represents a reference to a wiki page
// ABOUTME: Provides namespace handling and the database key form of a page name

package domain

import "strings"

// Namespace identifies the namespace a page lives in
type Namespace int

// Well-known wiki namespaces. Odd numbers are the talk namespaces.
const (
	NamespaceMain         Namespace = 0
	NamespaceTalk         Namespace = 1
	NamespaceUser         Namespace = 2
	NamespaceUserTalk     Namespace = 3
	NamespaceProject      Namespace = 4
	NamespaceProjectTalk  Namespace = 5
	NamespaceFile         Namespace = 6
	NamespaceFileTalk     Namespace = 7
	NamespaceTemplate     Namespace = 10
	NamespaceTemplateTalk Namespace = 11
	NamespaceHelp         Namespace = 12
	NamespaceHelpTalk     Namespace = 13
	NamespaceCategory     Namespace = 14
	NamespaceCategoryTalk Namespace = 15
)

var namespaceNames = map[Namespace]string{
	NamespaceMain:         "",
	NamespaceTalk:         "Talk",
	NamespaceUser:         "User",
	NamespaceUserTalk:     "User talk",
	NamespaceProject:      "Project",
	NamespaceProjectTalk:  "Project talk",
	NamespaceFile:         "File",
	NamespaceFileTalk:     "File talk",
	NamespaceTemplate:     "Template",
	NamespaceTemplateTalk: "Template talk",
	NamespaceHelp:         "Help",
	NamespaceHelpTalk:     "Help talk",
	NamespaceCategory:     "Category",
	NamespaceCategoryTalk: "Category talk",
}

// Name returns the canonical display name of the namespace
func (ns Namespace) Name() string {
	return namespaceNames[ns]
}

// IsTalk reports whether the namespace is a talk namespace
func (ns Namespace) IsTalk() bool {
	return ns%2 == 1
}

// LookupNamespace finds a namespace by its display or database name.
// The match is case-insensitive and accepts underscores for spaces.
func LookupNamespace(name string) (Namespace, bool) {
	name = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), "_", " "))
	if name == "" {
		return NamespaceMain, false
	}
	for ns, n := range namespaceNames {
		if strings.ToLower(n) == name {
			return ns, true
		}
	}
	return NamespaceMain, false
}

// Title is a normalized reference to a page
type Title struct {
	// Namespace is the page namespace
	Namespace Namespace

	// Text is the page name without the namespace prefix, using spaces
	Text string
}

// DBKey returns the page name in database form (spaces become underscores)
func (t Title) DBKey() string {
	return strings.ReplaceAll(t.Text, " ", "_")
}

// PrefixedText returns the page name including its namespace prefix
func (t Title) PrefixedText() string {
	if name := t.Namespace.Name(); name != "" {
		return name + ":" + t.Text
	}
	return t.Text
}

// PrefixedDBKey returns the prefixed page name in database form
func (t Title) PrefixedDBKey() string {
	return strings.ReplaceAll(t.PrefixedText(), " ", "_")
}

// TalkPage returns the discussion page of the title. A talk page is its own talk page.
func (t Title) TalkPage() Title {
	return Title{Namespace: t.Namespace | 1, Text: t.Text}
}
