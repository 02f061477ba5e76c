package config

import (
	"github.com/hostcast/signaler/pkg/monitoring"
	"github.com/spf13/pflag"
)

type (
	Config struct {
		Signaler Signaler
	}
	Signaler struct {
		Debug      bool
		Server     Server
		Monitoring monitoring.Config
	}
	Server struct {
		Address   string
		PortRoll  bool
		Https     bool
		HttpsCert string
		HttpsKey  string
		Domain    string
	}
)

// NewConfig loads the configuration from a signaler.yaml file found in
// the standard directories, with SIGNALER_* environment overrides
// applied on top.
func NewConfig() (conf Config, err error) {
	conf = Config{
		Signaler: Signaler{
			Server: Server{Address: ":8000"},
			Monitoring: monitoring.Config{
				Port:      6601,
				URLPrefix: "/signaler",
			},
		},
	}
	err = LoadConfig(&conf)
	return
}

func (c *Config) ParseFlags() {
	c.AddFlags(pflag.CommandLine)
	pflag.Parse()
}

func (c *Config) AddFlags(fs *pflag.FlagSet) *Config {
	fs.StringVarP(&c.Signaler.Server.Address, "address", "a", c.Signaler.Server.Address, "HTTP server address")
	fs.BoolVarP(&c.Signaler.Debug, "debug", "d", c.Signaler.Debug, "Enable debug logs")
	fs.BoolVar(&c.Signaler.Server.PortRoll, "portroll", c.Signaler.Server.PortRoll, "Probe next ports when the address is busy")
	fs.IntVar(&c.Signaler.Monitoring.Port, "monitoring.port", c.Signaler.Monitoring.Port, "Monitoring server port")
	fs.BoolVar(&c.Signaler.Monitoring.MetricEnabled, "monitoring.metrics", c.Signaler.Monitoring.MetricEnabled, "Enable the Prometheus metrics endpoint")
	fs.BoolVar(&c.Signaler.Monitoring.ProfilingEnabled, "monitoring.pprof", c.Signaler.Monitoring.ProfilingEnabled, "Enable the pprof endpoints")
	return c
}
