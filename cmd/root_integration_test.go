package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcardenasv/brakepad-catalog/internal/display"
)

const testCatalogJSON = `{
  "updatedAt": "2025-06-01",
  "items": [
    {
      "id": "1",
      "primaryReference": "7898BP",
      "alternateReferences": ["D1060-8797"],
      "oemCodes": ["04465-02220"],
      "fmsiCodes": ["D1060"],
      "manufacturer": "Brake Pak",
      "position": "front",
      "applications": [
        {"brand": "Toyota", "model": "Corolla", "year": "05-25", "position": "front"}
      ],
      "dimensions": {"width": 131.5, "height": "58,5"}
    },
    {
      "id": "2",
      "primaryReference": "8020INC",
      "oemCodes": ["04465-02220", "41060-3X90A"],
      "fmsiCodes": ["D1060"],
      "manufacturer": "Incolbest",
      "position": "rear",
      "applications": [
        {"brand": "Nissan", "model": "Frontier", "year": "98/04", "position": "rear"}
      ],
      "dimensions": {"width": 103, "height": 47}
    }
  ]
}`

func writeTestCatalog(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(testCatalogJSON), 0o644))
	return path
}

func TestRunCLI_CompletionZsh(t *testing.T) {
	var stdout bytes.Buffer
	var stderr bytes.Buffer

	code := runCLI([]string{"completion", "zsh"}, &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "#compdef padcli")
	assert.Empty(t, stderr.String())
}

func TestRunCLI_HelpBrands(t *testing.T) {
	var stdout bytes.Buffer
	var stderr bytes.Buffer

	code := runCLI([]string{"help", "brands"}, &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "padcli brands [flags]")
	assert.Empty(t, stderr.String())
}

func TestRunCLI_TolerantRewriteWithoutNetworkCall(t *testing.T) {
	var stdout bytes.Buffer
	var stderr bytes.Buffer

	code := runCLI([]string{"brands", "-catalog", "snapshot.json", "--help"}, &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "padcli brands [flags]")
	assert.Contains(t, stderr.String(), "interpreted `-catalog` as `--catalog`")
}

func TestRunCLI_DoubleDashBoundary(t *testing.T) {
	path := writeTestCatalog(t)
	t.Setenv(catalogEnvVar, path)
	var stdout bytes.Buffer
	var stderr bytes.Buffer

	code := runCLI([]string{"brands", "--", "catalog", "snapshot.json"}, &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.False(t, strings.Contains(stderr.String(), "interpreted `catalog` as `--catalog`"))
}

func TestRunCLI_SearchAgainstLocalCatalog(t *testing.T) {
	path := writeTestCatalog(t)
	var stdout bytes.Buffer
	var stderr bytes.Buffer

	code := runCLI([]string{"--catalog", path, "--brand", "Toyota", "--json"}, &stdout, &stderr)

	require.Equal(t, 0, code, "stderr: %s", stderr.String())
	var items []display.ItemJSON
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "7898BP", items[0].PrimaryRef)
}

func TestRunCLI_CatalogFromEnvironment(t *testing.T) {
	path := writeTestCatalog(t)
	t.Setenv(catalogEnvVar, path)
	var stdout bytes.Buffer
	var stderr bytes.Buffer

	code := runCLI([]string{"--query", "frontier", "--json"}, &stdout, &stderr)

	require.Equal(t, 0, code, "stderr: %s", stderr.String())
	var items []display.ItemJSON
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "8020INC", items[0].PrimaryRef)
}

func TestRunCLI_NoMatchReturnsNotFoundJSON(t *testing.T) {
	path := writeTestCatalog(t)
	var stdout bytes.Buffer
	var stderr bytes.Buffer

	code := runCLI([]string{"--catalog", path, "--brand", "Mazda", "--json"}, &stdout, &stderr)

	assert.Equal(t, ExitNotFound, code)
	var payload map[string]any
	require.NoError(t, json.Unmarshal(stderr.Bytes(), &payload))
	errorObject, ok := payload["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", errorObject["code"])
}

func TestRunCLI_BrandsCounts(t *testing.T) {
	path := writeTestCatalog(t)
	var stdout bytes.Buffer
	var stderr bytes.Buffer

	code := runCLI([]string{"brands", "--catalog", path, "--json"}, &stdout, &stderr)

	require.Equal(t, 0, code, "stderr: %s", stderr.String())
	var counts map[string]int
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &counts))
	assert.Equal(t, 1, counts["toyota"])
	assert.Equal(t, 1, counts["nissan"])
}

func TestRunCLI_CompareEntries(t *testing.T) {
	path := writeTestCatalog(t)
	var stdout bytes.Buffer
	var stderr bytes.Buffer

	code := runCLI([]string{"compare", "7898BP", "8020INC", "--catalog", path, "--json"}, &stdout, &stderr)

	require.Equal(t, 0, code, "stderr: %s", stderr.String())
	var entries []compareEntry
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "7898BP", entries[0].Reference)
	assert.Equal(t, []string{"04465-02220"}, entries[0].SharedOEM)
}

func TestRunCLI_FromLink(t *testing.T) {
	path := writeTestCatalog(t)
	var stdout bytes.Buffer
	var stderr bytes.Buffer

	code := runCLI([]string{"--catalog", path, "--from-link", "?brand=Nissan&pos=rear", "--json"}, &stdout, &stderr)

	require.Equal(t, 0, code, "stderr: %s", stderr.String())
	var items []display.ItemJSON
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "8020INC", items[0].PrimaryRef)
}

func TestRunCLI_MissingCatalogFileIsInvalidArgs(t *testing.T) {
	var stdout bytes.Buffer
	var stderr bytes.Buffer

	code := runCLI([]string{"--brand", "Toyota", "--catalog", "does-not-exist.json"}, &stdout, &stderr)

	assert.Equal(t, ExitInvalidArgs, code)
	assert.Contains(t, stderr.String(), "cannot read catalog file")
}
