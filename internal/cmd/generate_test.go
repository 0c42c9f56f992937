package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGenerateRun(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out")
	g := &Generate{InputDir: "testdata/schema", OutputDir: out}
	require.NoError(t, g.Run(testLogger()))

	for _, name := range []string{
		filepath.Join("account", "AccountVO.java"),
		filepath.Join("account", "AccountQueryVO.java"),
		filepath.Join("account", "AccountController.java"),
		"LoginController.java",
		"CommonResult.java",
		"UploadController.java",
	} {
		assert.FileExists(t, filepath.Join(out, name))
	}

	vo, err := os.ReadFile(filepath.Join(out, "account", "AccountVO.java"))
	require.NoError(t, err)
	assert.Contains(t, string(vo), "private Long id;")
	assert.NotContains(t, string(vo), "balance", "unknown data types are skipped")
}

func TestGenerateStrict(t *testing.T) {
	g := &Generate{InputDir: "testdata/schema", OutputDir: t.TempDir(), Strict: true}
	err := g.Run(testLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 field(s)")
}

func TestGenerateMissingInput(t *testing.T) {
	g := &Generate{InputDir: filepath.Join(t.TempDir(), "nope"), OutputDir: t.TempDir()}
	assert.Error(t, g.Run(testLogger()))
}

func TestWatchStart(t *testing.T) {
	defer goleak.VerifyNone(t)

	in := t.TempDir()
	out := t.TempDir()
	w := &Watch{InputDir: in, OutputDir: out, Debounce: 20 * time.Millisecond}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx, testLogger()) }()

	// the initial run writes the boilerplate before watching starts
	require.Eventually(t, func() bool {
		_, err := os.Stat(filepath.Join(out, "CommonResult.java"))
		return err == nil
	}, 5*time.Second, 10*time.Millisecond)

	target := filepath.Join(out, "invoice", "InvoiceVO.java")
	schema := []byte("module.exports = [\n  {\n    key: 'total',\n    dataType: 'float',\n  },\n];\n")
	require.Eventually(t, func() bool {
		// rewrite until the watcher, which may still be starting, sees it
		_ = os.WriteFile(filepath.Join(in, "invoice.dataSchema.js"), schema, 0o644)
		_, err := os.Stat(target)
		return err == nil
	}, 5*time.Second, 100*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestWatchMissingInput(t *testing.T) {
	w := &Watch{InputDir: filepath.Join(t.TempDir(), "nope"), OutputDir: t.TempDir()}
	assert.Error(t, w.Start(context.Background(), testLogger()))
}
