package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newParser(t *testing.T, cli *CLI, opts ...kong.Option) *kong.Kong {
	t.Helper()
	opts = append([]kong.Option{
		kong.Name("goos"),
		kong.Vars{"version": "test"},
		kong.Exit(func(int) { t.Fatal("unexpected exit") }),
	}, opts...)
	parser, err := kong.New(cli, opts...)
	require.NoError(t, err)
	return parser
}

func TestParseDefaultCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantIn  string
		wantOut string
	}{
		{"both dirs", []string{"schema", "out"}, "schema", "out"},
		{"input only", []string{"schema"}, "schema", "output"},
		{"explicit command", []string{"generate", "schema", "out"}, "schema", "out"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cli CLI
			ctx, err := newParser(t, &cli).Parse(tt.args)
			require.NoError(t, err)
			assert.Contains(t, ctx.Command(), "generate")
			assert.Equal(t, tt.wantIn, cli.Generate.InputDir)
			assert.Equal(t, tt.wantOut, cli.Generate.OutputDir)
			assert.Equal(t, "info", cli.Log.Level)
		})
	}
}

func TestParseTooManyArgs(t *testing.T) {
	var cli CLI
	_, err := newParser(t, &cli).Parse([]string{"a", "b", "c"})
	assert.Error(t, err)
}

func TestParseWatch(t *testing.T) {
	var cli CLI
	ctx, err := newParser(t, &cli).Parse([]string{"watch", "--debounce=1s", "in"})
	require.NoError(t, err)
	assert.Contains(t, ctx.Command(), "watch")
	assert.Equal(t, "in", cli.Watch.InputDir)
	assert.Equal(t, "output", cli.Watch.OutputDir)
	assert.Equal(t, time.Second, cli.Watch.Debounce)
}

func TestParseConfigInit(t *testing.T) {
	var cli CLI
	ctx, err := newParser(t, &cli).Parse([]string{"config", "init", "watch", "--format=toml"})
	require.NoError(t, err)
	assert.Equal(t, "config init <command>", ctx.Command())
	assert.Equal(t, "watch", cli.Config.Init.Command)
	assert.Equal(t, "toml", cli.Config.Init.Format)
}

func TestParseEnv(t *testing.T) {
	t.Setenv("GOOS_LOG_LEVEL", "debug")
	t.Setenv("GOOS_STRICT", "true")

	var cli CLI
	_, err := newParser(t, &cli).Parse([]string{"schema"})
	require.NoError(t, err)
	assert.Equal(t, "debug", cli.Log.Level)
	assert.True(t, cli.Generate.Strict)
}

func TestParseJSONConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "goos.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"log": {"level": "warn"}}`), 0o644))

	var cli CLI
	parser := newParser(t, &cli, kong.Configuration(kong.JSON, path))
	_, err := parser.Parse([]string{"schema"})
	require.NoError(t, err)
	assert.Equal(t, "warn", cli.Log.Level)

	// flags win over config files
	cli = CLI{}
	parser = newParser(t, &cli, kong.Configuration(kong.JSON, path))
	_, err = parser.Parse([]string{"--log.level=error", "schema"})
	require.NoError(t, err)
	assert.Equal(t, "error", cli.Log.Level)
}

func TestFindUserConfig(t *testing.T) {
	t.Setenv("GOOS_CONFIG", "")
	assert.Equal(t, "a.yaml", FindUserConfig([]string{"--config=a.yaml", "in"}))
	assert.Equal(t, "b.toml", FindUserConfig([]string{"in", "--config", "b.toml"}))
	assert.Equal(t, "", FindUserConfig([]string{"in", "--config"}))

	t.Setenv("GOOS_CONFIG", "env.json")
	assert.Equal(t, "env.json", FindUserConfig([]string{"in"}))
}

func TestOptions(t *testing.T) {
	var cli CLI
	_, err := kong.New(&cli, Options("")...)
	require.NoError(t, err)
}
