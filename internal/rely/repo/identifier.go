// Package repo models a GitHub repository as seen by the scoring core: the
// identifier a caller supplies and the immutable snapshot metrics read from.
package repo

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// GitHubHost is the only host accepted in repository URLs.
const GitHubHost = "github.com"

// Owner and repository name character sets. Underscores appear in owner
// logins of managed enterprise accounts.
var (
	ownerPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	namePattern  = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)
)

// ValidationError reports a malformed repository identifier. It is always
// raised before any network access.
type ValidationError struct {
	Input  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Input == "" {
		return "invalid repository: " + e.Reason
	}
	return fmt.Sprintf("invalid repository %q: %s", e.Input, e.Reason)
}

// Identifier uniquely identifies a GitHub repository.
type Identifier struct {
	Owner string `json:"owner" yaml:"owner"`
	Name  string `json:"name" yaml:"name"`
}

// ParseIdentifier validates a repository URL of the form
// https://github.com/OWNER/REPO and returns its owner and name.
func ParseIdentifier(raw string) (Identifier, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Identifier{}, &ValidationError{Reason: "repository URL is required"}
	}

	u, err := url.Parse(raw)
	if err != nil {
		return Identifier{}, &ValidationError{Input: raw, Reason: "not a valid URL"}
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return Identifier{}, &ValidationError{Input: raw, Reason: "URL scheme must be http or https"}
	}
	if !strings.EqualFold(u.Hostname(), GitHubHost) {
		return Identifier{}, &ValidationError{Input: raw, Reason: "must include a GitHub domain"}
	}

	owner, name, reason := splitPath(u.Path)
	if reason != "" {
		return Identifier{}, &ValidationError{Input: raw, Reason: reason}
	}
	if reason := segmentReason(owner, name); reason != "" {
		return Identifier{}, &ValidationError{Input: raw, Reason: reason}
	}
	return Identifier{Owner: owner, Name: name}, nil
}

// NewIdentifier builds an identifier from separate owner and name values,
// as collected by the web form and the interactive CLI prompt.
func NewIdentifier(owner, name string) (Identifier, error) {
	owner = strings.TrimSpace(owner)
	name = strings.TrimSpace(name)
	input := owner + "/" + name
	if owner == "" || name == "" {
		return Identifier{}, &ValidationError{Input: input, Reason: "owner and name are required"}
	}
	if strings.Contains(owner, "/") || strings.Contains(name, "/") {
		return Identifier{}, &ValidationError{Input: input, Reason: "path must follow the format OWNER/REPO"}
	}
	id := Identifier{Owner: owner, Name: name}
	if err := id.Validate(); err != nil {
		return Identifier{}, err
	}
	return id, nil
}

// Validate checks that both segments are safe to place in an API path: no
// dot segments and only characters GitHub allows in logins and repository
// names.
func (id Identifier) Validate() error {
	if reason := segmentReason(id.Owner, id.Name); reason != "" {
		return &ValidationError{Input: id.FullName(), Reason: reason}
	}
	return nil
}

func segmentReason(owner, name string) string {
	if !ownerPattern.MatchString(owner) {
		return "owner may only contain letters, digits, '-' and '_'"
	}
	if name == "." || name == ".." || !namePattern.MatchString(name) {
		return "name may only contain letters, digits, '.', '-' and '_'"
	}
	return ""
}

// splitPath returns a non-empty reason when path is not exactly OWNER/REPO.
func splitPath(path string) (owner, name, reason string) {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return "", "", "path can not be empty"
	}
	parts := strings.Split(trimmed, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", "path must follow the format OWNER/REPO"
	}
	return parts[0], parts[1], ""
}

// FullName returns OWNER/REPO.
func (id Identifier) FullName() string {
	return id.Owner + "/" + id.Name
}

// URL returns the canonical web URL of the repository.
func (id Identifier) URL() string {
	return "https://" + GitHubHost + "/" + id.FullName()
}

func (id Identifier) String() string {
	return id.FullName()
}
