package main

import (
	"context"
	goflag "flag"

	"github.com/hostcast/signaler/pkg/config"
	"github.com/hostcast/signaler/pkg/logger"
	"github.com/hostcast/signaler/pkg/os"
	"github.com/hostcast/signaler/pkg/signaler"
	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"
)

var Version = "?"

func main() {
	conf, err := config.NewConfig()
	if err != nil {
		logger.Default().Fatal().Err(err).Msg("config load failed")
	}
	flag.CommandLine.AddGoFlagSet(goflag.CommandLine)
	conf.ParseFlags()

	log := logger.NewConsole(conf.Signaler.Debug, "sig", false)
	log.Info().Msgf("version %s", Version)
	if log.GetLevel() <= zerolog.DebugLevel {
		log.Debug().Msgf("config: %+v", conf)
	}

	s, err := signaler.New(conf, log)
	if err != nil {
		log.Fatal().Err(err).Msg("couldn't init the signaler")
	}
	s.Start()

	ctx, cancel := context.WithCancel(context.Background())
	defer func() {
		if err := s.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("service shutdown errors")
		}
	}()
	<-os.ExpectTermination()
	cancel()
}
