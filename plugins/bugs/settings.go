package bugs

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/myply/myply-go/host/config"
)

const (
	pluginName = "bugs"
	envPrefix  = config.EnvPrefix + "_BUGS_"
)

// Settings configures the Bugs plugin. Values come from the [plugins.bugs]
// section and can be overridden by MYPLY_BUGS_* environment variables.
// BreakerFailures of zero disables the circuit breaker.
type Settings struct {
	SearchEndpoint  string        `env:"SEARCH_ENDPOINT"`
	ContentEndpoint string        `env:"CONTENT_ENDPOINT"`
	Timeout         time.Duration `env:"TIMEOUT"`
	StrictLinks     bool          `env:"STRICT_LINKS"`
	BreakerFailures uint32        `env:"BREAKER_FAILURES"`
	UserAgent       string        `env:"USER_AGENT"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		SearchEndpoint:  defaultSearchEndpoint,
		ContentEndpoint: defaultContentEndpoint,
		Timeout:         defaultTimeout,
		UserAgent:       defaultUserAgent,
	}
}

// LoadSettings layers config file values and environment overrides on top of the defaults.
func LoadSettings(cfg *config.Config) (Settings, error) {
	settings := DefaultSettings()

	if cfg != nil {
		if v := strings.TrimSpace(cfg.GetPluginString(pluginName, "search_endpoint")); v != "" {
			settings.SearchEndpoint = v
		}
		if v := strings.TrimSpace(cfg.GetPluginString(pluginName, "content_endpoint")); v != "" {
			settings.ContentEndpoint = v
		}
		if v := cfg.GetPluginInt(pluginName, "timeout"); v > 0 {
			settings.Timeout = time.Duration(v) * time.Second
		}
		if cfg.HasPluginKey(pluginName, "strict_links") {
			settings.StrictLinks = cfg.GetPluginBool(pluginName, "strict_links")
		}
		if v := cfg.GetPluginInt(pluginName, "breaker_failures"); v > 0 {
			settings.BreakerFailures = uint32(v)
		}
		if v := strings.TrimSpace(cfg.GetPluginString(pluginName, "user_agent")); v != "" {
			settings.UserAgent = v
		}
	}

	if err := env.ParseWithOptions(&settings, env.Options{Prefix: envPrefix}); err != nil {
		return Settings{}, fmt.Errorf("bugs: parse env: %w", err)
	}
	if err := settings.validate(); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

func (s Settings) validate() error {
	for key, raw := range map[string]string{
		"search_endpoint":  s.SearchEndpoint,
		"content_endpoint": s.ContentEndpoint,
	} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("bugs: invalid %s %q", key, raw)
		}
	}
	if s.Timeout <= 0 {
		return fmt.Errorf("bugs: timeout must be positive")
	}
	return nil
}
