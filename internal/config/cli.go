// Package config defines the root command line of goos.
package config

import (
	"github.com/alecthomas/kong"

	"github.com/jxy/goos/internal/cmd"
	"github.com/jxy/goos/internal/log"
)

// CLI is the kong grammar. Flags can also be set from config files; the
// positional directories only from the command line.
type CLI struct {
	ConfigFile string           `name:"config" help:"Config file (JSON, YAML or TOML); see 'goos config init'" env:"GOOS_CONFIG"`
	Version    kong.VersionFlag `help:"Print version and exit"`
	Log        log.Config       `embed:"" prefix:"log."`

	Generate cmd.Generate      `cmd:"" default:"withargs" help:"Generate Java sources from schema files (default command)"`
	Watch    cmd.Watch         `cmd:"" help:"Generate, then regenerate whenever a schema file changes"`
	Config   cmd.ConfigCommand `cmd:"" help:"Configuration helpers"`
}
