package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/andyballingall/fmtree/internal/formatter"
)

var (
	passResult    = formatter.Result{Path: "include/a.hpp", Status: formatter.StatusPass}
	changedResult = formatter.Result{Path: "include/sub/b.hpp", Status: formatter.StatusChanged, Written: true}
)

func TestSummary(t *testing.T) {
	t.Parallel()
	s := NewSummary(false)
	s.Add(passResult)
	s.Add(changedResult)
	s.Add(passResult)
	s.End()

	assert.Equal(t, 2, s.Passed)
	assert.Equal(t, 1, s.Changed)
	assert.Equal(t, 3, s.Total())
	assert.GreaterOrEqual(t, s.Duration(), time.Duration(0))
}

func TestTextReporter(t *testing.T) {
	t.Parallel()

	t.Run("plain", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		tr := NewTextReporter(&buf, false)
		require.NoError(t, tr.Add(passResult))
		require.NoError(t, tr.Add(changedResult))
		require.NoError(t, tr.Finish(NewSummary(false)))

		assert.Equal(t, "✓ include/a.hpp\nX include/sub/b.hpp\n", buf.String())
	})

	t.Run("colour", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		tr := NewTextReporter(&buf, true)
		require.NoError(t, tr.Add(passResult))
		require.NoError(t, tr.Add(changedResult))

		lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
		require.Len(t, lines, 2)
		assert.Contains(t, string(lines[0]), "\x1b[1;32m✓")
		assert.Contains(t, string(lines[0]), " include/a.hpp")
		assert.Contains(t, string(lines[1]), "\x1b[1;31mX")
		assert.Contains(t, string(lines[1]), " include/sub/b.hpp")
	})

	t.Run("nothing formatted", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		tr := NewTextReporter(&buf, true)
		require.NoError(t, tr.Finish(NewSummary(false)))
		assert.Empty(t, buf.String())
	})
}

func TestJSONReporter(t *testing.T) {
	t.Parallel()

	t.Run("results", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		jr := NewJSONReporter(&buf)
		s := &Summary{StartTime: time.Time{}, EndTime: time.Time{}.Add(time.Second), CheckOnly: true}
		for _, r := range []formatter.Result{passResult, changedResult} {
			require.NoError(t, jr.Add(r))
			s.Add(r)
		}
		assert.Empty(t, buf.String(), "nothing is written until Finish")
		require.NoError(t, jr.Finish(s))

		out := buf.Bytes()
		assert.Equal(t, "1s", gjson.GetBytes(out, "duration").String())
		assert.True(t, gjson.GetBytes(out, "checkOnly").Bool())
		assert.Equal(t, int64(2), gjson.GetBytes(out, "stats.total").Int())
		assert.Equal(t, int64(1), gjson.GetBytes(out, "stats.passed").Int())
		assert.Equal(t, int64(1), gjson.GetBytes(out, "stats.changed").Int())
		assert.Equal(t, "include/a.hpp", gjson.GetBytes(out, "files.0.path").String())
		assert.Equal(t, "pass", gjson.GetBytes(out, "files.0.status").String())
		assert.Equal(t, "changed", gjson.GetBytes(out, "files.1.status").String())
		assert.True(t, gjson.GetBytes(out, "files.1.written").Bool())
	})

	t.Run("empty run has an empty files array", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		jr := NewJSONReporter(&buf)
		s := NewSummary(false)
		s.End()
		require.NoError(t, jr.Finish(s))

		files := gjson.GetBytes(buf.Bytes(), "files")
		assert.True(t, files.IsArray())
		assert.Empty(t, files.Array())
		assert.Equal(t, int64(0), gjson.GetBytes(buf.Bytes(), "stats.total").Int())
	})
}
