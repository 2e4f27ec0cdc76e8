package config

import (
	"errors"
	"flag"
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultAPIURL is the calculation service used when nothing is configured.
	DefaultAPIURL = "http://localhost:8900"

	DefaultWidth       = 1024
	DefaultHeight      = 768
	DefaultRevealDelay = 100 * time.Millisecond
	DefaultTimeout     = 30 * time.Second

	// MinWidth fits the tool strip with the default palette.
	MinWidth  = 760
	MinHeight = 240
	MaxSide   = 4096
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid config")

// Config is the complete runtime configuration.
type Config struct {
	// APIURL is the base URL of the calculation service. Requests go to
	// APIURL + "/calculate".
	APIURL string
	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// Width and Height size both the window and the drawing surface.
	Width  int
	Height int

	// RevealDelay staggers the overlay reveal of consecutive results.
	// Zero reveals every result as soon as the response is applied.
	RevealDelay time.Duration
	// Timeout bounds a single calculation request.
	Timeout time.Duration
	// MaxImageSide downscales uploads whose larger side exceeds it (0 = off).
	MaxImageSide int

	// ClearOnResult clears the drawing when a result is revealed.
	ClearOnResult bool
	// Typeset enables the LaTeX-to-text pass over overlay labels.
	Typeset bool

	Headless bool
	Hz       int
	Ticks    uint64
}

// FromEnv returns defaults overlaid with environment values.
//
// getenv is usually os.Getenv.
func FromEnv(getenv func(string) string) *Config {
	apiURL := getenvFirst(getenv, "CALC_API_URL", "VITE_API_URL")
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	level := strings.ToLower(strings.TrimSpace(getenv("CALC_LOG_LEVEL")))
	if level == "" {
		level = "info"
	}
	if v := getenv("DEBUG"); v == "1" || v == "true" {
		level = "debug"
	}

	return &Config{
		APIURL:        apiURL,
		LogLevel:      level,
		Width:         DefaultWidth,
		Height:        DefaultHeight,
		RevealDelay:   DefaultRevealDelay,
		Timeout:       DefaultTimeout,
		ClearOnResult: true,
		Typeset:       true,
		Hz:            60,
	}
}

// RegisterFlags binds command line flags to c, using the current values as
// defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.APIURL, "api-url", c.APIURL, "Base URL of the calculation service (env CALC_API_URL).")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Log level: debug|info|warn|error (env CALC_LOG_LEVEL).")
	fs.IntVar(&c.Width, "width", c.Width, "Canvas width in pixels.")
	fs.IntVar(&c.Height, "height", c.Height, "Canvas height in pixels.")
	fs.DurationVar(&c.RevealDelay, "reveal-delay", c.RevealDelay, "Delay between revealing consecutive results.")
	fs.DurationVar(&c.Timeout, "timeout", c.Timeout, "Timeout for one calculation request.")
	fs.IntVar(&c.MaxImageSide, "max-image-side", c.MaxImageSide, "Downscale uploads larger than this many pixels (0 = off).")
	fs.BoolVar(&c.ClearOnResult, "clear-on-result", c.ClearOnResult, "Clear the drawing when a result is shown.")
	fs.BoolVar(&c.Typeset, "typeset", c.Typeset, "Convert LaTeX in results to plain text.")
	fs.BoolVar(&c.Headless, "headless", c.Headless, "Run without a window.")
	fs.IntVar(&c.Hz, "hz", c.Hz, "Tick rate in headless mode.")
	fs.Uint64Var(&c.Ticks, "ticks", c.Ticks, "Stop after N ticks in headless mode (0 = run forever).")
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("%w: api url %q: %v", ErrInvalid, c.APIURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: api url %q: scheme must be http or https", ErrInvalid, c.APIURL)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: api url %q: missing host", ErrInvalid, c.APIURL)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log level %q (expected debug, info, warn or error)", ErrInvalid, c.LogLevel)
	}
	if c.Width < MinWidth || c.Width > MaxSide || c.Height < MinHeight || c.Height > MaxSide {
		return fmt.Errorf("%w: canvas size %dx%d outside %dx%d..%dx%d", ErrInvalid, c.Width, c.Height, MinWidth, MinHeight, MaxSide, MaxSide)
	}
	if c.RevealDelay < 0 {
		return fmt.Errorf("%w: negative reveal delay %s", ErrInvalid, c.RevealDelay)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive, got %s", ErrInvalid, c.Timeout)
	}
	if c.MaxImageSide < 0 {
		return fmt.Errorf("%w: negative max image side %d", ErrInvalid, c.MaxImageSide)
	}
	if c.Headless && c.Hz <= 0 {
		return fmt.Errorf("%w: headless hz must be positive, got %d", ErrInvalid, c.Hz)
	}
	return nil
}

func getenvFirst(getenv func(string) string, primary, fallback string) string {
	if val := getenv(primary); val != "" {
		return val
	}
	return getenv(fallback)
}
