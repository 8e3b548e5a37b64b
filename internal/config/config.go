package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Environment variables read by Load.
const (
	EnvConfigFile    = "DOICHECK_CONFIG"
	EnvTimeout       = "DOICHECK_TIMEOUT"
	EnvMaxRedirects  = "DOICHECK_MAX_REDIRECTS"
	EnvUserAgent     = "DOICHECK_USER_AGENT"
	EnvResolvePolicy = "DOICHECK_RESOLVE_POLICY"
	EnvLogLevel      = "DOICHECK_LOG_LEVEL"
	EnvBanner        = "DOICHECK_BANNER"
	EnvNoColor       = "NO_COLOR"
)

// Config holds the tunables of a run. The command line only carries the
// input file, so everything else comes from a YAML file or the environment.
type Config struct {
	Timeout       time.Duration `yaml:"timeout" validate:"gt=0"`
	MaxRedirects  int           `yaml:"max_redirects" validate:"min=1"`
	UserAgent     string        `yaml:"user_agent"`
	ResolvePolicy string        `yaml:"resolve_policy" validate:"policy"`
	LogLevel      string        `yaml:"log_level" validate:"loglevel"`
	NoColor       bool          `yaml:"no_color"`
	Banner        bool          `yaml:"banner"`

	// Headers are added to every request.
	Headers map[string]string `yaml:"headers"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Timeout:       10 * time.Second,
		MaxRedirects:  30,
		ResolvePolicy: "history",
		LogLevel:      "warn",
		Banner:        true,
	}
}

// Load builds the configuration from defaults, the optional YAML file named
// by DOICHECK_CONFIG, and environment overrides, in that order.
func Load(getenv func(string) string) (Config, error) {
	cfg := Default()

	if path := getenv(EnvConfigFile); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.mergeEnv(getenv); err != nil {
		return Config{}, err
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %q: %w", path, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config %q: %w", path, err)
	}
	return nil
}

func (c *Config) mergeEnv(getenv func(string) string) error {
	if v := getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		c.Timeout = d
	}
	if v := getenv(EnvMaxRedirects); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMaxRedirects, err)
		}
		c.MaxRedirects = n
	}
	if v := getenv(EnvUserAgent); v != "" {
		c.UserAgent = v
	}
	if v := getenv(EnvResolvePolicy); v != "" {
		c.ResolvePolicy = strings.ToLower(v)
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v := getenv(EnvBanner); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvBanner, err)
		}
		c.Banner = b
	}
	// https://no-color.org: any non-empty value disables colour.
	if getenv(EnvNoColor) != "" {
		c.NoColor = true
	}
	return nil
}

// HTTPHeader converts Headers for the HTTP client.
func (c Config) HTTPHeader() http.Header {
	if len(c.Headers) == 0 {
		return nil
	}
	h := make(http.Header, len(c.Headers))
	for k, v := range c.Headers {
		h.Set(strings.TrimSpace(k), v)
	}
	return h
}

// Validate checks cfg with the registered rules.
func Validate(cfg Config) error {
	validate := validator.New()

	_ = validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
			return true
		default:
			return false
		}
	})
	_ = validate.RegisterValidation("policy", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "", "history", "final":
			return true
		default:
			return false
		}
	})

	for k := range cfg.Headers {
		if strings.TrimSpace(k) == "" {
			return errors.New("invalid configuration: headers: empty header name")
		}
	}

	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, fmt.Sprintf("%s: invalid value %v (rule %q)", e.Field(), e.Value(), e.Tag()))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}
