// Package platform resolves per-OS config and data locations.
package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// DefaultAppName names the config and data directories.
const DefaultAppName = "tack"

// Paths lists resolved locations for one app name.
type Paths struct {
	ConfigPath string
	DataDir    string
	DBPath     string
	BoardPath  string
}

// Options selects the app name and dev-mode suffix.
type Options struct {
	AppName string
	DevMode bool
}

// Bases are the OS-provided base directories before app scoping.
type Bases struct {
	Config string
	Data   string
}

// appName returns the effective directory name for opts.
func (o Options) appName() string {
	name := strings.TrimSpace(o.AppName)
	if name == "" {
		name = DefaultAppName
	}
	if o.DevMode {
		name += "-dev"
	}
	return name
}

// DefaultPaths resolves paths for the running OS.
func DefaultPaths(opts Options) (Paths, error) {
	bases, err := osBases(runtime.GOOS)
	if err != nil {
		return Paths{}, err
	}
	return PathsFor(runtime.GOOS, os.Getenv, bases, opts.appName())
}

// osBases reads the user config and data base directories.
func osBases(goos string) (Bases, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return Bases{}, fmt.Errorf("user config dir: %w", err)
	}
	bases := Bases{Config: configDir, Data: configDir}
	switch goos {
	case "linux":
		home, err := os.UserHomeDir()
		if err != nil {
			return Bases{}, fmt.Errorf("user home dir: %w", err)
		}
		bases.Data = filepath.Join(home, ".local", "share")
	case "windows":
		if v := strings.TrimSpace(os.Getenv("LOCALAPPDATA")); v != "" {
			bases.Data = v
		}
	}
	return bases, nil
}

// PathsFor applies per-OS environment overrides to bases and scopes them to appName.
func PathsFor(goos string, getenv func(string) string, bases Bases, appName string) (Paths, error) {
	if bases.Config == "" || bases.Data == "" {
		return Paths{}, fmt.Errorf("empty base dirs")
	}
	appName = strings.TrimSpace(appName)
	if appName == "" {
		return Paths{}, fmt.Errorf("empty app name")
	}
	if getenv == nil {
		getenv = func(string) string { return "" }
	}

	configBase, dataBase := bases.Config, bases.Data
	switch goos {
	case "linux":
		if v := getenv("XDG_CONFIG_HOME"); v != "" {
			configBase = v
		}
		if v := getenv("XDG_DATA_HOME"); v != "" {
			dataBase = v
		}
	case "windows":
		if v := getenv("APPDATA"); v != "" {
			configBase = v
		}
		if v := getenv("LOCALAPPDATA"); v != "" {
			dataBase = v
		}
	}

	dataDir := filepath.Join(dataBase, appName)
	return Paths{
		ConfigPath: filepath.Join(configBase, appName, "config.toml"),
		DataDir:    dataDir,
		DBPath:     filepath.Join(dataDir, appName+".db"),
		BoardPath:  filepath.Join(dataDir, "board.json"),
	}, nil
}
