// Package report provides reporting functionality for fmtree.
package report

import (
	"time"

	"github.com/andyballingall/fmtree/internal/formatter"
)

// Reporter presents formatting results.
type Reporter interface {
	// Add is called once for every file as soon as it has been formatted.
	Add(r formatter.Result) error
	// Finish is called once after the last file.
	Finish(s *Summary) error
}

// Summary totals the results of a run.
type Summary struct {
	StartTime time.Time
	EndTime   time.Time
	Passed    int
	Changed   int
	CheckOnly bool
}

// NewSummary creates a Summary starting now.
func NewSummary(checkOnly bool) *Summary {
	return &Summary{StartTime: time.Now(), CheckOnly: checkOnly}
}

// Add counts a result.
func (s *Summary) Add(r formatter.Result) {
	switch r.Status {
	case formatter.StatusPass:
		s.Passed++
	case formatter.StatusChanged:
		s.Changed++
	}
}

// Total returns the number of files counted.
func (s *Summary) Total() int {
	return s.Passed + s.Changed
}

// End records the end time.
func (s *Summary) End() {
	s.EndTime = time.Now()
}

// Duration returns the time between start and end.
func (s *Summary) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}
