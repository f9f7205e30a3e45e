package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listing-pricing/core/catalog"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestQuoteCommand(t *testing.T) {
	out, err := run(t, "quote", "--category", "job", "--tier", "standard", "--months", "3", "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "Standard job post × 3 months: $30.00")
	assert.Contains(t, out, "Total: $27.00")
}

func TestQuoteCommandJSON(t *testing.T) {
	out, err := run(t, "quote", "--category", "booth", "--renewal", "--format", "json")
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "5.00", decoded["final_price"])
	assert.Equal(t, "renewal", decoded["override"])
}

func TestQuoteCommandRejectsBadInput(t *testing.T) {
	_, err := run(t, "quote", "--category", "booth", "--tier", "gold", "--months", "1", "--renewal=false")
	assert.Error(t, err)

	_, err = run(t, "quote", "--category", "job", "--tier", "standard", "--months", "2", "--renewal=false")
	assert.Error(t, err)
}

func TestCatalogCommands(t *testing.T) {
	out, err := run(t, "catalog", "hash")
	require.NoError(t, err)
	assert.Equal(t, catalog.Default().Hash().Hex(), strings.TrimSpace(out))

	out, err = run(t, "catalog", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Booth Rental (booth_rental)")
	assert.Contains(t, out, "Diamond (invite-only)")
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "listing-price version "+version+"\n", out)
}
