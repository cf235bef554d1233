package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/utils"
)

const configFile = "config.json"

func main() {
	// Load configuration - fallback to defaults if file doesn't exist
	config, err := utils.LoadConfig(configFile)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Fatal(err)
		}
		config = utils.DefaultConfig()
	}
	config.Bind(flag.CommandLine)
	flag.Parse()

	if err := config.Validate(); err != nil {
		log.Fatal(err)
	}
	rule, err := resolveRule(config)
	if err != nil {
		log.Fatal(err)
	}

	logger, closeLog, err := newLogger(config)
	if err != nil {
		log.Fatal(err)
	}
	defer closeLog()

	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Printf("starting: rule %s, canvas %s, workers %d", rule, config.CanvasMode, config.Workers)
	if config.Plain {
		err = runPlain(ctx, config, rule, logger)
	} else {
		err = runScreen(ctx, config, rule, logger)
	}
	if err != nil {
		logger.Printf("exiting: %+v", err)
		closeLog()
		log.Fatal(err)
	}
}
