package monitoring

type Config struct {
	Port             int
	URLPrefix        string
	MetricEnabled    bool
	ProfilingEnabled bool
}

func (c Config) IsEnabled() bool { return c.MetricEnabled || c.ProfilingEnabled }
