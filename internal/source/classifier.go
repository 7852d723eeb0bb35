// Package source finds the source files fmtree formats.
package source

import (
	"slices"
	"strings"
)

// DefaultExtensions are the suffixes recognised when none are configured.
var DefaultExtensions = []string{".hpp", ".cpp"}

// Classifier decides whether a path names an eligible source file.
type Classifier struct {
	extensions []string
}

// NewClassifier creates a Classifier for the given suffixes. Matching is
// case-sensitive. With no suffixes, DefaultExtensions are used.
func NewClassifier(extensions ...string) *Classifier {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	return &Classifier{extensions: slices.Clone(extensions)}
}

// IsSource returns true if path ends with one of the recognised suffixes.
func (c *Classifier) IsSource(path string) bool {
	for _, ext := range c.extensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// Extensions returns the recognised suffixes.
func (c *Classifier) Extensions() []string {
	return slices.Clone(c.extensions)
}
