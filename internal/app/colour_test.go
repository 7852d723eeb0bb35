package app

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUseColour(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		noColour bool
		env      map[string]string
	}{
		{name: "flag set", noColour: true},
		{name: "NO_COLOR set", env: map[string]string{NoColourEnvVar: "1"}},
		{name: "not a terminal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env := &mockEnvProvider{values: tt.env}
			assert.False(t, useColour(&bytes.Buffer{}, tt.noColour, env))
		})
	}
}

func TestIsTerminal(t *testing.T) {
	t.Parallel()
	assert.False(t, isTerminal(&bytes.Buffer{}))
}
