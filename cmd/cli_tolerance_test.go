package cmd

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCLIArgs_RewritesCommonFlagSyntax(t *testing.T) {
	args, notes := normalizeCLIArgs([]string{"-brand", "Toyota", "json"})

	assert.Equal(t, []string{"--brand", "Toyota", "--json"}, args)
	assert.NotEmpty(t, notes)
}

func TestNormalizeCLIArgs_RewritesTypoFlag(t *testing.T) {
	args, notes := normalizeCLIArgs([]string{"--bramd", "Toyota"})

	assert.Equal(t, []string{"--brand", "Toyota"}, args)
	assert.NotEmpty(t, notes)
}

func TestNormalizeCLIArgs_RewritesSpanishAlias(t *testing.T) {
	args, notes := normalizeCLIArgs([]string{"--marca", "Renault", "--ano", "2015"})

	assert.Equal(t, []string{"--brand", "Renault", "--year", "2015"}, args)
	assert.Len(t, notes, 2)
}

func TestNormalizeCLIArgs_RewritesBareAssignment(t *testing.T) {
	args, notes := normalizeCLIArgs([]string{"search=d1060"})

	assert.Equal(t, []string{"--query=d1060"}, args)
	assert.NotEmpty(t, notes)
}

func TestNormalizeCLIArgs_RewritesCommandTypo(t *testing.T) {
	args, notes := normalizeCLIArgs([]string{"brandss", "--catalog", "snapshot.json"})

	assert.Equal(t, []string{"brands", "--catalog", "snapshot.json"}, args)
	assert.NotEmpty(t, notes)
}

func TestNormalizeCLIArgs_DoesNotRewriteCompletionPositionalArgs(t *testing.T) {
	args, notes := normalizeCLIArgs([]string{"completion", "zsh"})

	assert.Equal(t, []string{"completion", "zsh"}, args)
	assert.Empty(t, notes)
}

func TestNormalizeCLIArgs_DoesNotRewriteHelpCommandArgAsFlag(t *testing.T) {
	args, notes := normalizeCLIArgs([]string{"help", "brands"})

	assert.Equal(t, []string{"help", "brands"}, args)
	assert.Empty(t, notes)
}

func TestNormalizeCLIArgs_LeavesCompareReferencesAlone(t *testing.T) {
	args, notes := normalizeCLIArgs([]string{"compare", "7898BP", "8020INC"})

	assert.Equal(t, []string{"compare", "7898BP", "8020INC"}, args)
	assert.Empty(t, notes)
}

func TestNormalizeCLIArgs_RespectsDoubleDashBoundary(t *testing.T) {
	args, notes := normalizeCLIArgs([]string{"compare", "--", "marca", "modelo"})

	assert.Equal(t, []string{"compare", "--", "marca", "modelo"}, args)
	assert.Empty(t, notes)
}

func TestNormalizeCLIArgs_LeavesKnownShorthandUntouched(t *testing.T) {
	args, notes := normalizeCLIArgs([]string{"-b", "Toyota", "-n", "5"})

	assert.Equal(t, []string{"-b", "Toyota", "-n", "5"}, args)
	assert.Empty(t, notes)
}

func TestExplainCLIError_UnknownFlagIncludesSuggestionAndExamples(t *testing.T) {
	msg := explainCLIError(errors.New("unknown flag: --bramd"))

	assert.Contains(t, msg, "Try `--brand`.")
	assert.Contains(t, msg, "padcli --brand Toyota")
	assert.Contains(t, msg, "padcli --query d1060")
}

func TestExplainCLIError_UnknownCommandIncludesSuggestionAndExamples(t *testing.T) {
	msg := explainCLIError(errors.New("unknown command \"brandz\" for \"padcli\""))

	assert.Contains(t, msg, "Did you mean `brands`?")
	assert.Contains(t, msg, "padcli brands")
	assert.Contains(t, msg, "padcli --brand Toyota --model Corolla")
}
