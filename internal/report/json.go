package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/andyballingall/fmtree/internal/formatter"
)

// JSONReporter collects results and writes a single JSON document on Finish.
type JSONReporter struct {
	w     io.Writer
	files []jsonFile
}

type jsonFile struct {
	Path    string `json:"path"`
	Status  string `json:"status"`
	Written bool   `json:"written"`
}

type jsonOutput struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Duration  string `json:"duration"`
	CheckOnly bool   `json:"checkOnly"`
	Stats     struct {
		Total   int `json:"total"`
		Passed  int `json:"passed"`
		Changed int `json:"changed"`
	} `json:"stats"`
	Files []jsonFile `json:"files"`
}

// NewJSONReporter creates a JSONReporter writing to w.
func NewJSONReporter(w io.Writer) *JSONReporter {
	return &JSONReporter{w: w, files: []jsonFile{}}
}

func (jr *JSONReporter) Add(r formatter.Result) error {
	jr.files = append(jr.files, jsonFile{
		Path:    r.Path,
		Status:  string(r.Status),
		Written: r.Written,
	})
	return nil
}

func (jr *JSONReporter) Finish(s *Summary) error {
	out := jsonOutput{
		StartTime: s.StartTime.Format(time.RFC3339),
		EndTime:   s.EndTime.Format(time.RFC3339),
		Duration:  s.Duration().String(),
		CheckOnly: s.CheckOnly,
		Files:     jr.files,
	}
	out.Stats.Total = s.Total()
	out.Stats.Passed = s.Passed
	out.Stats.Changed = s.Changed

	enc := json.NewEncoder(jr.w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
