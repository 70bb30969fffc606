package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/mhx/filtcoef/internal/secjson"
	"github.com/mhx/filtcoef/pkg/filtsec"
)

func packCmd() *cli.Command {
	var (
		inputPath  string
		outputPath string
	)

	return &cli.Command{
		Name:  "pack",
		Usage: "Pack a JSON coefficient document into a binary section file",
		Flags: append(loggingFlags(),
			&cli.StringFlag{
				Name:        "input",
				Aliases:     []string{"in"},
				Usage:       "path to the JSON coefficient document",
				Destination: &inputPath,
				Required:    true,
			},
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"out"},
				Usage:       "output section file path",
				Destination: &outputPath,
				Required:    true,
			},
			&cli.StringFlag{
				Name:        "schema",
				Aliases:     []string{"s"},
				Usage:       "override the document's header schema (a or b)",
				Destination: &schemaName,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := LoadConfig()
			applyCommonConfig(cmd, cfg)
			log := setupLogger()
			_ = ctx

			data, err := os.ReadFile(inputPath)
			if err != nil {
				return fmt.Errorf("pack: read %s: %w", inputPath, err)
			}
			doc, err := secjson.Unmarshal(data)
			if err != nil {
				return fmt.Errorf("pack: parse document: %w", err)
			}
			sec, schema, err := doc.Section()
			if err != nil {
				return fmt.Errorf("pack: %w", err)
			}
			if cmd.IsSet("schema") {
				schema, err = filtsec.ParseSchema(schemaName)
				if err != nil {
					return fmt.Errorf("pack: %w", err)
				}
			}

			out, err := filtsec.Encode(sec, schema)
			if err != nil {
				return fmt.Errorf("pack: encode: %w", err)
			}
			if err := os.WriteFile(outputPath, out, 0o644); err != nil {
				return fmt.Errorf("pack: write %s: %w", outputPath, err)
			}
			log.Info("packed section",
				"records", len(sec),
				"schema", schema.String(),
				"bytes", len(out),
				"output", outputPath,
			)
			return nil
		},
	}
}
