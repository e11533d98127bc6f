package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldAutoJSON(t *testing.T) {
	assert.True(t, shouldAutoJSON([]string{"--brand", "Toyota"}, false))
	assert.True(t, shouldAutoJSON([]string{"brands"}, false))
	assert.False(t, shouldAutoJSON([]string{"--brand", "Toyota", "--json"}, false))
	assert.False(t, shouldAutoJSON([]string{"completion", "zsh"}, false))
	assert.False(t, shouldAutoJSON([]string{"tui"}, false))
	assert.False(t, shouldAutoJSON([]string{"--help"}, false))
	assert.False(t, shouldAutoJSON([]string{"--brand", "Toyota"}, true))
}

func TestFirstCommand_SkipsFlagValues(t *testing.T) {
	assert.Equal(t, "brands", firstCommand([]string{"--catalog", "snapshot.json", "brands"}))
	assert.Equal(t, "compare", firstCommand([]string{"-b", "Toyota", "compare"}))
	assert.Equal(t, "", firstCommand([]string{"--brand", "Toyota"}))
}

func TestPrintQuickStart_JSON(t *testing.T) {
	var buf bytes.Buffer
	err := printQuickStart(&buf, true)
	require.NoError(t, err)

	var payload quickStartJSON
	err = json.Unmarshal(buf.Bytes(), &payload)
	require.NoError(t, err)

	assert.Equal(t, "padcli", payload.Name)
	assert.NotEmpty(t, payload.Usage)
	assert.Len(t, payload.Examples, 3)
}

func TestPrintCLIErrorJSON(t *testing.T) {
	var buf bytes.Buffer
	err := printCLIErrorJSON(&buf, classifyCLIError(invalidArgsError("bad flag", "padcli --brand Toyota")))
	require.NoError(t, err)

	var payload map[string]any
	err = json.Unmarshal(buf.Bytes(), &payload)
	require.NoError(t, err)

	errorObject, ok := payload["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "INVALID_ARGS", errorObject["code"])
	assert.Equal(t, "bad flag", errorObject["message"])
}

func TestClassifyCLIError_TypedErrorPassesThrough(t *testing.T) {
	classified := classifyCLIError(notFoundError("no references match your filters"))

	assert.Equal(t, "NOT_FOUND", classified.Code)
	assert.Equal(t, ExitNotFound, classified.ExitCode)
}

func TestClassifyCLIError_NoMatchMessage(t *testing.T) {
	classified := classifyCLIError(errors.New("no references match your filters"))

	assert.Equal(t, "NOT_FOUND", classified.Code)
	assert.Equal(t, ExitNotFound, classified.ExitCode)
}

func TestClassifyCLIError_UpstreamMessage(t *testing.T) {
	classified := classifyCLIError(errors.New("fetching catalog: unexpected status 502 from https://example.test"))

	assert.Equal(t, "UPSTREAM_ERROR", classified.Code)
	assert.Equal(t, ExitUpstream, classified.ExitCode)
	assert.NotEmpty(t, classified.Suggestions)
}

func TestClassifyCLIError_DefaultIsInternal(t *testing.T) {
	classified := classifyCLIError(errors.New("something odd happened"))

	assert.Equal(t, "INTERNAL_ERROR", classified.Code)
	assert.Equal(t, ExitInternal, classified.ExitCode)
}

func TestFormatCLIErrorText(t *testing.T) {
	msg := formatCLIErrorText(classifyCLIError(notFoundError("no references match your filters", "padcli brands")))

	assert.Contains(t, msg, "error[not_found]: no references match your filters")
	assert.Contains(t, msg, "suggestions:")
	assert.Contains(t, msg, "  padcli brands")
}
