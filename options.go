package htmlpdf

import "time"

type converterConfig struct {
	chromePath   string
	timeout      time.Duration
	noSandbox    bool
	autoDownload bool
	headless     string
}

func defaultConfig() converterConfig {
	return converterConfig{
		timeout:  30 * time.Second,
		headless: "new",
	}
}

// Option configures a [Converter].
type Option func(*converterConfig)

// WithChromePath launches the given Chrome or Chromium executable instead of
// searching the usual install locations.
func WithChromePath(path string) Option {
	return func(c *converterConfig) { c.chromePath = path }
}

// WithTimeout bounds each conversion, from navigation to the printed bytes.
// The default is 30 seconds; d <= 0 removes the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *converterConfig) { c.timeout = d }
}

// WithNoSandbox runs Chromium without its sandbox, which it refuses to start
// without when running as root (typically in containers).
func WithNoSandbox() Option {
	return func(c *converterConfig) { c.noSandbox = true }
}

// WithAutoDownload fetches a known-good Chromium build when no path was set
// with [WithChromePath].
func WithAutoDownload() Option {
	return func(c *converterConfig) { c.autoDownload = true }
}
