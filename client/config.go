package client

import (
	"fmt"
	"time"

	"github.com/kbukum/httpseq/logger"
)

// Config configures a Client.
type Config struct {
	// UserAgent is sent as the User-Agent header when set.
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`

	// Headers are default headers applied to every request. Request
	// headers override them.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// Timeout is a default per-request deadline applied when a request
	// does not set its own. Zero means requests run without a deadline;
	// timeouts stay strictly opt-in.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Trace enables an OpenTelemetry span per request.
	Trace bool `yaml:"trace" mapstructure:"trace"`

	// Log configures the client's logger.
	Log logger.Config `yaml:"log" mapstructure:"log"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	c.Log.ApplyDefaults()
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Timeout < 0 {
		return fmt.Errorf("client: timeout must not be negative")
	}
	return c.Log.Validate()
}
