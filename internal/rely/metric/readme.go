package metric

import (
	"strings"

	"github.com/build-flow-labs/rely/internal/rely/repo"
)

// readmeExtensions are the markup extensions GitHub renders READMEs from,
// plus txt.
var readmeExtensions = []string{
	"markdown", "mdown", "mkdn", "md",
	"textile", "rdoc", "org", "creole",
	"mediawiki", "wiki", "rst",
	"asciidoc", "adoc", "asc",
	"pod", "txt",
}

var readmeNames = func() map[string]bool {
	names := map[string]bool{"readme": true}
	for _, ext := range readmeExtensions {
		names["readme."+ext] = true
	}
	return names
}()

// IsReadme reports whether a root listing entry is a non-empty README file.
// Paths containing a slash are never root entries.
func IsReadme(e repo.Entry) bool {
	return e.Type == repo.EntryFile &&
		e.Size > 0 &&
		readmeNames[strings.ToLower(e.Path)]
}

// hasReadme: does the repo have a non-empty README in its root directory?
type hasReadme struct{ snap *repo.Snapshot }

func newHasReadme(s *repo.Snapshot) Metric { return hasReadme{s} }

func (m hasReadme) found() bool {
	found := false
	m.snap.EachEntry(func(e repo.Entry) bool {
		found = IsReadme(e)
		return !found
	})
	return found
}

func (m hasReadme) Value() Value { return BoolValue(m.found()) }
func (m hasReadme) Score() Score { return flag(m.found(), true) }
