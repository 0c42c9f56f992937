package config

import (
	"os"
	"strings"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"

	"github.com/jxy/goos/internal/codegen/common"
	"github.com/jxy/goos/internal/configpaths"
)

// Options returns the kong options shared by main and tests. userCfg is an
// explicitly requested config file, prioritized over the default locations.
func Options(userCfg string) []kong.Option {
	paths := configpaths.ConfigCandidatePaths(userCfg)
	version, err := common.GetVersion()
	if err != nil {
		version = common.Version
	}
	return []kong.Option{
		kong.Name("goos"),
		kong.Description("Generates Java admin backend classes from JavaScript schema files"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
		// Load configuration from JSON/YAML/TOML in priority order; flags/env override config values.
		kong.Configuration(kong.JSON, paths.JSON...),
		kong.Configuration(kongyaml.Loader, paths.YAML...),
		kong.Configuration(kongtoml.Loader, paths.TOML...),
	}
}

// FindUserConfig extracts --config from raw arguments before kong parses
// them, falling back to GOOS_CONFIG.
func FindUserConfig(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if strings.HasPrefix(a, "--config=") {
			return a[len("--config="):]
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return os.Getenv("GOOS_CONFIG")
}
