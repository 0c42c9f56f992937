package configpaths

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
)

const appName = "goos"

// baseNames are the config file names looked up in every location.
var baseNames = []string{"goos", "config", "generate", "watch"}

// DefaultConfigDir returns the platform-specific configuration directory.
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		if appdata := os.Getenv("AppData"); appdata != "" {
			return filepath.Join(appdata, appName), nil
		}
		return "", errors.New("AppData not set")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		if home := os.Getenv("HOME"); home != "" {
			return filepath.Join(home, ".config", appName), nil
		}
		return "", errors.New("HOME not set")
	}
}

// EnsureDir ensures the directory for a given file path exists.
func EnsureDir(filePath string) error {
	return os.MkdirAll(filepath.Dir(filePath), 0o755)
}

// Candidates holds config file paths per format, highest priority first.
type Candidates struct {
	JSON []string
	YAML []string
	TOML []string
}

func (c *Candidates) addBase(dir string) {
	for _, base := range baseNames {
		p := filepath.Join(dir, base)
		c.JSON = append(c.JSON, p+".json")
		c.YAML = append(c.YAML, p+".yaml", p+".yml")
		c.TOML = append(c.TOML, p+".toml")
	}
}

// ConfigCandidatePaths builds candidate paths for config files per format.
// A user supplied path goes first and is routed to a loader by extension;
// then the working directory, the user config directory and, on unix,
// /etc/goos are searched.
func ConfigCandidatePaths(userPath string) Candidates {
	var c Candidates

	if userPath != "" {
		switch filepath.Ext(userPath) {
		case ".yaml", ".yml":
			c.YAML = append(c.YAML, userPath)
		case ".toml":
			c.TOML = append(c.TOML, userPath)
		default:
			c.JSON = append(c.JSON, userPath)
		}
	}

	if wd, err := os.Getwd(); err == nil {
		c.addBase(wd)
	}
	if dir, err := DefaultConfigDir(); err == nil {
		c.addBase(dir)
	}
	if runtime.GOOS != "windows" {
		c.addBase(filepath.Join("/etc", appName))
	}
	return c
}
