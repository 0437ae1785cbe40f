// Package config loads the description of a stacknav application: its
// routes, the two routes the intents move between, and the settings of the
// surrounding process.
package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/BrandonKowalski/stacknav/pkg/stacknav/constants"
	"github.com/BrandonKowalski/stacknav/pkg/stacknav/internal"
	"github.com/BrandonKowalski/stacknav/pkg/stacknav/router"
)

// Config is the application configuration.
type Config struct {
	InitialRoute       string           `toml:"initial_route" yaml:"initial_route"`
	AdvanceRoute       string           `toml:"advance_route" yaml:"advance_route"`
	FullActionCoverage bool             `toml:"full_action_coverage" yaml:"full_action_coverage"`
	LogLevel           string           `toml:"log_level" yaml:"log_level"`
	LogPath            string           `toml:"log_path" yaml:"log_path"`
	Locale             string           `toml:"locale" yaml:"locale"`
	KeyPrefix          string           `toml:"key_prefix" yaml:"key_prefix"` // Sequential keys instead of UUIDs when set
	Routes             map[string]Route `toml:"routes" yaml:"routes"`
	Window             Window           `toml:"window" yaml:"window"`
	Input              Input            `toml:"input" yaml:"input"`
	Metrics            Metrics          `toml:"metrics" yaml:"metrics"`
	Devtools           Devtools         `toml:"devtools" yaml:"devtools"`
}

// Route describes one screen.
type Route struct {
	Title      string `toml:"title" yaml:"title"`
	TitleID    string `toml:"title_id" yaml:"title_id"`
	Button     string `toml:"button" yaml:"button"`
	ButtonID   string `toml:"button_id" yaml:"button_id"`
	Background string `toml:"background" yaml:"background"` // "#rrggbb", "#rgb", "0xrrggbb" or a colour name
	Icon       string `toml:"icon" yaml:"icon"`             // Built-in icon name or path to an SVG file
}

// Window configures the SDL view.
type Window struct {
	Width    int32  `toml:"width" yaml:"width"`
	Height   int32  `toml:"height" yaml:"height"`
	Title    string `toml:"title" yaml:"title"`
	Mode     string `toml:"mode" yaml:"mode"`           // windowed, borderless, fullscreen or desktop; empty picks by environment
	FontPath string `toml:"font_path" yaml:"font_path"` // TTF for labels; empty uses the system DejaVu Sans
}

var windowModes = []string{"", "windowed", "borderless", "fullscreen", "desktop"}

// Input configures hardware input.
type Input struct {
	BackDevice string `toml:"back_device" yaml:"back_device"` // evdev device path for the hardware back button
}

// Metrics configures the Prometheus endpoint.
type Metrics struct {
	Addr string `toml:"addr" yaml:"addr"` // Empty disables the endpoint
}

// Devtools configures the remote action log.
type Devtools struct {
	NATSURL string `toml:"nats_url" yaml:"nats_url"` // Empty disables publishing
	Subject string `toml:"subject" yaml:"subject"`
}

func defaults() *Config {
	return &Config{
		InitialRoute:       constants.DefaultInitialRoute,
		AdvanceRoute:       constants.DefaultAdvanceRoute,
		FullActionCoverage: true,
		LogLevel:           "info",
		Locale:             "en",
		Window: Window{
			Width:  1024,
			Height: 768,
			Title:  "stacknav",
		},
	}
}

// Default returns the stock two-screen application.
func Default() *Config {
	cfg := defaults()
	cfg.Routes = defaultRoutes()
	return cfg
}

func defaultRoutes() map[string]Route {
	return map[string]Route{
		constants.DefaultInitialRoute: {
			Title:      "Page 1",
			TitleID:    "page1.title",
			Button:     "Go Next!",
			ButtonID:   "page1.button",
			Background: "#aaaaff",
			Icon:       "arrow-right",
		},
		constants.DefaultAdvanceRoute: {
			Title:      "Page 2",
			TitleID:    "page2.title",
			Button:     "Time to go back",
			ButtonID:   "page2.button",
			Background: "red",
			Icon:       "arrow-left",
		},
	}
}

// Load reads a TOML or YAML file, chosen by extension, applies environment
// overrides and validates the result. A file without routes gets the
// stock ones.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := defaults()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}

	if len(cfg.Routes) == 0 {
		cfg.Routes = defaultRoutes()
	}
	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides the log level and locale from the environment.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(constants.LogLevelEnvVar); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(constants.LocaleEnvVar); v != "" {
		c.Locale = v
	}
}

// Validate reports every problem found, joined.
func (c *Config) Validate() error {
	var errs []error

	if len(c.Routes) == 0 {
		errs = append(errs, errors.New("no routes configured"))
	}
	if _, ok := c.Routes[c.InitialRoute]; !ok {
		errs = append(errs, router.NewUnknownRouteError("initial_route", c.InitialRoute))
	}
	if _, ok := c.Routes[c.AdvanceRoute]; !ok {
		errs = append(errs, router.NewUnknownRouteError("advance_route", c.AdvanceRoute))
	}

	for _, name := range slices.Sorted(maps.Keys(c.Routes)) {
		if name == "" {
			errs = append(errs, errors.New("route with empty name"))
			continue
		}
		if _, err := ParseColor(c.Routes[name].Background); err != nil {
			errs = append(errs, fmt.Errorf("routes.%s.background: %w", name, err))
		}
	}

	if _, ok := internal.ParseLevel(c.LogLevel); !ok {
		errs = append(errs, fmt.Errorf("log_level: unknown level %q", c.LogLevel))
	}
	if c.Window.Width < 0 || c.Window.Height < 0 {
		errs = append(errs, fmt.Errorf("window: negative size %dx%d", c.Window.Width, c.Window.Height))
	}
	if !slices.Contains(windowModes, strings.ToLower(strings.TrimSpace(c.Window.Mode))) {
		errs = append(errs, fmt.Errorf("window.mode: unknown mode %q", c.Window.Mode))
	}

	return errors.Join(errs...)
}

// Registry builds the route registry. Colours that do not parse are left
// black; call Validate first.
func (c *Config) Registry() *router.Registry {
	registry := router.NewRegistry()
	for name, r := range c.Routes {
		bg, _ := ParseColor(r.Background)
		registry.Register(name, router.Screen{
			Title:      r.Title,
			TitleID:    r.TitleID,
			Button:     r.Button,
			ButtonID:   r.ButtonID,
			Background: bg,
			Icon:       r.Icon,
		})
	}
	return registry
}

// KeyFunc returns the entry key generator the configuration asks for.
func (c *Config) KeyFunc() router.KeyFunc {
	if c.KeyPrefix != "" {
		return router.SequentialKeys(c.KeyPrefix)
	}
	return router.UUIDKeys()
}
