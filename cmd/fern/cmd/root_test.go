package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/fern/pkg/hazardous"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "should use 1 for plain errors", err: errors.New("boom"), expected: 1},
		{name: "should use 2 for validation errors", err: &exitError{err: httperror.NewHTTPError(http.StatusBadRequest, "bad")}, expected: 2},
		{name: "should use 3 for upstream errors", err: &exitError{err: httperror.NewHTTPError(http.StatusBadGateway, "down")}, expected: 3},
		{name: "should use 4 for store errors", err: &exitError{err: httperror.NewHTTPError(http.StatusInternalServerError, "db")}, expected: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, exitCode(tt.err))
		})
	}
}

func TestHazardousCommand(t *testing.T) {
	t.Setenv("HAZARDOUS_SCHEDULE_PATH", "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"hazardous", "--env-file", "does-not-exist.env", "--date", "2025-01-06"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())

	var result hazardous.Collections
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.True(t, result.HasCollectionToday)
	assert.Equal(t, "2025-01-06", result.Date)
}
