package eventmodels

import "time"

// DashboardConfigYAML is the dashboard's YAML configuration file.
type DashboardConfigYAML struct {
	BackendURL            string   `yaml:"backend_url"`
	Tickers               []string `yaml:"tickers"`
	DefaultOtmPercent     int      `yaml:"default_otm_percent"`
	PollIntervalSeconds   int      `yaml:"poll_interval_seconds"`
	RequestTimeoutSeconds int      `yaml:"request_timeout_seconds"`
}

func (c *DashboardConfigYAML) PollInterval() time.Duration {
	if c.PollIntervalSeconds <= 0 {
		return 10 * time.Second
	}

	return time.Duration(c.PollIntervalSeconds) * time.Second
}

func (c *DashboardConfigYAML) RequestTimeout() time.Duration {
	if c.RequestTimeoutSeconds <= 0 {
		return 30 * time.Second
	}

	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

func (c *DashboardConfigYAML) OtmPercent() int {
	if c.DefaultOtmPercent <= 0 {
		return 10
	}

	return c.DefaultOtmPercent
}
