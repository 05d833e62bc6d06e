package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harmonicstack/harmonicstack/internal/config"
)

// syncBuffer is a bytes.Buffer safe for the concurrent writes of both
// schedulers.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func fastConfig() *config.Config {
	cfg := config.Default()
	for _, c := range []*config.CoreConfig{&cfg.Harmonic, &cfg.ASIC} {
		c.Interval = time.Millisecond
		c.Backoff = time.Millisecond
		c.ReportEvery = 1
	}
	return cfg
}

func TestRunOptimizer_ReportsBothCores(t *testing.T) {
	var out syncBuffer
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	require.NoError(t, runOptimizer(ctx, fastConfig(), "", &out))

	got := out.String()
	assert.Contains(t, got, "MHM Optimization Active:")
	assert.Contains(t, got, "ASIC Optimization Status:")
}

func TestRunOptimizer_PrometheusFormat(t *testing.T) {
	cfg := fastConfig()
	cfg.Report.Format = "prometheus"
	cfg.ASIC.Enabled = false

	var out syncBuffer
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	require.NoError(t, runOptimizer(ctx, cfg, "", &out))
	assert.Contains(t, out.String(), `mhm_improvement_percent{core="harmonic",term="total"}`)
	assert.NotContains(t, out.String(), `core="asic"`)
}

func TestRunOptimizer_NoCores(t *testing.T) {
	cfg := fastConfig()
	cfg.Harmonic.Enabled = false
	cfg.ASIC.Enabled = false

	var out syncBuffer
	require.NoError(t, runOptimizer(context.Background(), cfg, "", &out))
	assert.Empty(t, out.String())
}

func TestRunOptimizer_UnknownFormat(t *testing.T) {
	cfg := fastConfig()
	cfg.Report.Format = "xml"
	assert.Error(t, runOptimizer(context.Background(), cfg, "", &syncBuffer{}))
}

func TestSummaryCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("asic:\n  enabled: false\n"), 0o600))

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"summary", "--config", path})
	require.NoError(t, root.Execute())

	got := out.String()
	assert.Contains(t, got, "HARMONIC performance summary")
	assert.Contains(t, got, "Baseline: 3779 H/s")
	assert.Contains(t, got, "Optimization cycles: 1")
	assert.False(t, strings.Contains(got, "ASIC"), "asic is disabled")
}

func TestSummaryCommand_BadConfig(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"summary", "--config", filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, root.Execute())
}
