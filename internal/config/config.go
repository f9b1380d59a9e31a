package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/happy-machine/clipboard-warrior/internal/app"
	"github.com/happy-machine/clipboard-warrior/internal/store"
	"gopkg.in/yaml.v3"
)

// Config captures runtime configuration for the application.
type Config struct {
	App        app.Config
	Logging    Logging
	ConfigFile string
	Flags      map[string]string
	Args       []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

// File mirrors the optional YAML configuration file. Unset keys keep the
// built-in defaults.
type File struct {
	DB                 *string `yaml:"db,omitempty"`
	Create             *bool   `yaml:"create,omitempty"`
	Tick               *string `yaml:"tick,omitempty"`
	Footer             *bool   `yaml:"footer,omitempty"`
	Verbose            *bool   `yaml:"verbose,omitempty"`
	AllowReservedPaste *bool   `yaml:"allow_reserved_paste,omitempty"`
	OSC52              *bool   `yaml:"osc52,omitempty"`
	Width              *int    `yaml:"width,omitempty"`
	Height             *int    `yaml:"height,omitempty"`
	Trace              *bool   `yaml:"trace,omitempty"`
	LogFile            *string `yaml:"log_file,omitempty"`
}

const (
	envConfig             = "CLIPBOARD_WARRIOR_CONFIG"
	envDB                 = "CLIPBOARD_WARRIOR_DB"
	envCreate             = "CLIPBOARD_WARRIOR_CREATE"
	envTick               = "CLIPBOARD_WARRIOR_TICK"
	envWidth              = "CLIPBOARD_WARRIOR_WIDTH"
	envHeight             = "CLIPBOARD_WARRIOR_HEIGHT"
	envShowFooter         = "CLIPBOARD_WARRIOR_FOOTER"
	envVerbose            = "CLIPBOARD_WARRIOR_VERBOSE"
	envAllowReservedPaste = "CLIPBOARD_WARRIOR_ALLOW_RESERVED_PASTE"
	envOSC52              = "CLIPBOARD_WARRIOR_OSC52"
	envTrace              = "CLIPBOARD_WARRIOR_TRACE"
	envLogFile            = "CLIPBOARD_WARRIOR_LOG_FILE"
)

const (
	defaultLogFile = "clipboard-warrior.log"
	minTick        = 10 * time.Millisecond
)

// HelpError is returned when -h or -help was given. Usage holds the flag
// summary.
type HelpError struct {
	Usage string
}

func (e *HelpError) Error() string { return "help requested" }

func (e *HelpError) Unwrap() error { return flag.ErrHelp }

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment. Flags override
// environment variables, which override the config file.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	configPath, explicit := configFlagValue(args)
	if !explicit {
		if v, ok := env[envConfig]; ok && strings.TrimSpace(v) != "" {
			configPath, explicit = v, true
		} else if def, err := DefaultConfigPath(); err == nil {
			configPath = def
		}
	}
	file, err := ReadFile(configPath, explicit)
	if err != nil {
		return Config{}, err
	}
	fileTick, err := file.tick()
	if err != nil {
		return Config{}, err
	}

	fs := flag.NewFlagSet("clipboard-warrior", flag.ContinueOnError)
	usage := new(strings.Builder)
	fs.SetOutput(usage)

	fs.String("config", configPath, "path to the YAML config file")
	db := fs.String("db", envOrDefault(env, envDB, fileString(file.DB, store.DefaultPath)), "path to the command store")
	create := fs.Bool("create", envOrBool(env, envCreate, fileBool(file.Create, true)), "create an empty store when the file is missing")
	tick := fs.Duration("tick", envOrDuration(env, envTick, fileTick), "input loop tick interval")
	width := fs.Int("width", envOrInt(env, envWidth, fileInt(file.Width, 0)), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, fileInt(file.Height, 0)), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, fileBool(file.Footer, true)), "show the key help footer")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, fileBool(file.Verbose, true)), "print success messages for actions")
	allowReserved := fs.Bool("allow-reserved-paste", envOrBool(env, envAllowReservedPaste, fileBool(file.AllowReservedPaste, false)), "allow pasting into reserved tabs such as Home or Delete")
	osc52 := fs.Bool("osc52", envOrBool(env, envOSC52, fileBool(file.OSC52, true)), "fall back to OSC52 when no system clipboard is available")
	trace := fs.Bool("trace", envOrBool(env, envTrace, fileBool(file.Trace, false)), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, fileString(file.LogFile, defaultLogFile)), "path to the log file")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return Config{}, &HelpError{Usage: usage.String()}
		}
		return Config{}, err
	}
	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	cfg := Config{
		App: app.Config{
			DBPath:             *db,
			CreateDB:           *create,
			TickInterval:       *tick,
			Width:              *width,
			Height:             *height,
			ShowFooter:         *footer,
			Verbose:            *verbose,
			AllowReservedPaste: *allowReserved,
			OSC52:              *osc52,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		ConfigFile: configPath,
		Flags: map[string]string{
			"config":             configPath,
			"db":                 *db,
			"create":             strconv.FormatBool(*create),
			"tick":               tick.String(),
			"width":              strconv.Itoa(*width),
			"height":             strconv.Itoa(*height),
			"footer":             strconv.FormatBool(*footer),
			"verbose":            strconv.FormatBool(*verbose),
			"allowReservedPaste": strconv.FormatBool(*allowReserved),
			"osc52":              strconv.FormatBool(*osc52),
			"trace":              strconv.FormatBool(*trace),
			"logFile":            *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

// DefaultConfigPath returns the per-user config file location.
func DefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, "clipboard-warrior", "config.yaml"), nil
}

// ReadFile loads the YAML config at path. A missing file yields an empty
// File unless required is set.
func ReadFile(path string, required bool) (File, error) {
	if path == "" {
		return File{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return File{}, nil
		}
		return File{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return File{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return file, nil
}

func (f File) tick() (time.Duration, error) {
	if f.Tick == nil || strings.TrimSpace(*f.Tick) == "" {
		return app.DefaultTick, nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(*f.Tick))
	if err != nil {
		return 0, fmt.Errorf("config file tick: %w", err)
	}
	return d, nil
}

// configFlagValue finds -config/--config in args ahead of the full parse so
// the file layer can seed flag defaults.
func configFlagValue(args []string) (string, bool) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}
		name := strings.TrimLeft(arg, "-")
		if name == arg {
			continue
		}
		if value, ok := strings.CutPrefix(name, "config="); ok {
			return value, true
		}
		if name == "config" && i+1 < len(args) {
			return args[i+1], true
		}
	}
	return "", false
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return parsed
}

func fileString(v *string, fallback string) string {
	if v == nil {
		return fallback
	}
	return *v
}

func fileBool(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

func fileInt(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}

// MustLoad returns configuration or exits. Help requests print the flag
// summary and exit 0.
func MustLoad() Config {
	cfg, err := Load()
	var help *HelpError
	switch {
	case errors.As(err, &help):
		fmt.Fprint(os.Stdout, help.Usage)
		os.Exit(0)
	case err != nil:
		color.New(color.FgRed).Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.App.DBPath) == "" {
		return errors.New("db path must not be empty")
	}
	if cfg.App.TickInterval < minTick {
		return fmt.Errorf("tick must be >= %s (got %s)", minTick, cfg.App.TickInterval)
	}
	if cfg.App.Width < 0 {
		return fmt.Errorf("width must be >= 0 (got %d)", cfg.App.Width)
	}
	if cfg.App.Height < 0 {
		return fmt.Errorf("height must be >= 0 (got %d)", cfg.App.Height)
	}
	return nil
}
