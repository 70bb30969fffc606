package main

import (
	"os"

	"github.com/urfave/cli/v3"

	"github.com/mhx/filtcoef/internal/archive"
	"github.com/mhx/filtcoef/internal/logger"
)

var (
	schemaName  string
	sectionName string
	rawSection  bool
	logLevel    string
	logFormat   string
	debug       bool
)

func commonSectionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "schema",
			Aliases:     []string{"s"},
			Usage:       "record header schema (a or b)",
			Value:       "a",
			Destination: &schemaName,
		},
		&cli.StringFlag{
			Name:        "section",
			Usage:       "ELF section holding the coefficient records",
			Value:       archive.DefaultSection,
			Destination: &sectionName,
		},
		&cli.BoolFlag{
			Name:        "raw",
			Usage:       "treat the input as raw section bytes even when it looks like an ELF",
			Destination: &rawSection,
		},
	}
}

func loggingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (pretty, json, text)",
			Value:       "pretty",
			Destination: &logFormat,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "enable debug logging (shorthand for --log-level=debug)",
			Destination: &debug,
		},
	}
}

func setupLogger() logger.Logger {
	level := logLevel
	if debug {
		level = "debug"
	}
	return logger.Setup(os.Stderr, logFormat, level)
}
