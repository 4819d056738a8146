package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/tally/internal/inventory"
	"github.com/five82/tally/internal/inventory/inventorytest"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeConfig(t *testing.T) (configPath, apiURL string) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	fake := inventorytest.New(
		inventory.Product{ID: inventory.NumericID(1), Name: "Widget", Quantity: 5, Price: decimal.RequireFromString("2.50")},
		inventory.Product{ID: inventory.NumericID(2), Name: "Bolt", Quantity: 40, Price: decimal.RequireFromString("0.30")},
	)
	srv := httptest.NewServer(fake.Handler())
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	configPath = filepath.Join(dir, "config.toml")
	body := fmt.Sprintf("log_dir = %q\n", filepath.Join(dir, "logs"))
	require.NoError(t, os.WriteFile(configPath, []byte(body), 0o644))
	return configPath, srv.URL + "/api"
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "tally "+version+"\n", out)
}

func TestListCommand(t *testing.T) {
	configPath, apiURL := writeConfig(t)

	out, err := execute(t, "list", "--config", configPath, "--api-url", apiURL, "--sort", "quantity", "--desc")
	require.NoError(t, err)
	assert.Contains(t, out, "Status ▼")
	assert.Contains(t, out, "Page 1 of 1, 2 matching")
}

func TestStatsCommand(t *testing.T) {
	configPath, apiURL := writeConfig(t)

	out, err := execute(t, "stats", "--config", configPath, "--api-url", apiURL)
	require.NoError(t, err)
	assert.Contains(t, out, "Total Products:  2")
	assert.Contains(t, out, "Total Value:     $24.50")
}

func TestListRejectsUnknownSort(t *testing.T) {
	configPath, apiURL := writeConfig(t)

	_, err := execute(t, "list", "--config", configPath, "--api-url", apiURL, "--sort", "colour")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown sort key")
}

func TestRootRejectsArgs(t *testing.T) {
	_, err := execute(t, "extra")
	require.Error(t, err)
}
