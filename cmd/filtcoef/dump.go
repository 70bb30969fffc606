package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/mhx/filtcoef/internal/archive"
	"github.com/mhx/filtcoef/internal/iir"
	"github.com/mhx/filtcoef/internal/logger"
	"github.com/mhx/filtcoef/internal/secjson"
	"github.com/mhx/filtcoef/pkg/filtsec"
)

func dumpCmd() *cli.Command {
	var (
		filePath    string
		nameFilter  string
		showJSON    bool
		showPoles   bool
		showAll     bool
		impulseLen  int
		responseLen int
	)

	return &cli.Command{
		Name:  "dump",
		Usage: "Dump the filter records embedded in an object or section file",
		Flags: append(append(commonSectionFlags(), loggingFlags()...),
			&cli.StringFlag{
				Name:        "file",
				Aliases:     []string{"f"},
				Usage:       "path to an ELF object or raw section file",
				Destination: &filePath,
				Required:    true,
			},
			&cli.StringFlag{Name: "name", Usage: "dump only the record with this name", Destination: &nameFilter},
			&cli.BoolFlag{Name: "json", Usage: "emit the section as a JSON document", Destination: &showJSON},
			&cli.IntFlag{Name: "impulse", Usage: "print N impulse-response samples per record (0 = off)", Destination: &impulseLen},
			&cli.IntFlag{Name: "response", Usage: "print the magnitude response at N frequencies (0 = off)", Destination: &responseLen},
			&cli.BoolFlag{Name: "poles", Usage: "print per-stage poles and stability", Destination: &showPoles},
			&cli.BoolFlag{Name: "all", Usage: "show impulse, response and poles for every record", Destination: &showAll},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := LoadConfig()
			applyCommonConfig(cmd, cfg)
			log := setupLogger()
			ctx = logger.WithContext(ctx, log)
			_ = ctx

			if showAll {
				if impulseLen == 0 {
					impulseLen = 8
				}
				if responseLen == 0 {
					responseLen = 9
				}
				showPoles = true
			}

			schema, err := filtsec.ParseSchema(schemaName)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			stat, err := os.Stat(filePath)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: stat %q: %v", filePath, err), 1)
			}
			if stat.IsDir() {
				return cli.Exit(fmt.Sprintf("error: %q is a directory", filePath), 1)
			}

			log.Debug("loading section", "file", filePath, "schema", schema.String(), "section", sectionName)
			sec, err := archive.Load(filePath, archive.Options{
				Schema:      schema,
				SectionName: sectionName,
				Raw:         rawSection,
			})
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: load %s: %v", filePath, err), 1)
			}

			if nameFilter != "" {
				idx, ok := sec.Find(nameFilter)
				if !ok {
					return cli.Exit(fmt.Sprintf("error: record %q not found", nameFilter), 1)
				}
				sec = filtsec.Section{sec[idx]}
			}

			if showJSON {
				out, err := secjson.MarshalIndent(secjson.FromSection(sec, schema))
				if err != nil {
					return cli.Exit(fmt.Sprintf("error: marshal document: %v", err), 1)
				}
				fmt.Println(string(out))
				return nil
			}

			fmt.Printf("Coefficient dump: %s\n", filePath)
			fmt.Printf("File: %s (%s), schema %s, %d record(s)\n",
				filepath.Base(filePath), formatBytes(uint64(stat.Size())), schema, len(sec))

			for i := range sec {
				printRecord(&sec[i], impulseLen, responseLen, showPoles)
			}
			return nil
		},
	}
}

func printRecord(r *filtsec.Record, impulseLen, responseLen int, showPoles bool) {
	name := r.Name
	if name == "" {
		name = "(unnamed)"
	}
	section(name)
	row("structure", r.Structure.String())
	row("value type", r.ValueType.String())
	rowInt("order", r.Order())

	switch r.Structure {
	case filtsec.StructureSOS:
		for i, s := range r.Stages() {
			fmt.Printf("stage %-2d b=[%g %g %g] a=[1 %g %g]\n", i, s.B0, s.B1, s.B2, s.A1, s.A2)
		}
	case filtsec.StructurePolynomial:
		b, a := r.Polynomial()
		row("b", formatVec(b))
		row("a", formatVec(a))
	}

	if showPoles && r.Structure == filtsec.StructureSOS {
		stages := r.Stages()
		for i, s := range stages {
			poles := iir.StagePoles(s)
			fmt.Printf("stage %-2d poles=%s %s\n", i, formatComplex(poles[0]), formatComplex(poles[1]))
		}
		row("stable", fmt.Sprintf("%t", iir.Stable(stages)))
	}

	if impulseLen <= 0 && responseLen <= 0 {
		return
	}
	f, err := iir.FromRecord(r)
	if err != nil {
		row("filter", err.Error())
		return
	}
	if impulseLen > 0 {
		row("impulse", formatVec(iir.Impulse(f, impulseLen)))
	}
	if responseLen > 0 {
		for k := 0; k < responseLen; k++ {
			w := 0.0
			if responseLen > 1 {
				w = math.Pi * float64(k) / float64(responseLen-1)
			}
			fmt.Printf("w=%-8.4f |H|=%8.3f dB\n", w, iir.MagnitudeDB(f, w))
		}
	}
}

func section(title string) {
	line := strings.Repeat("-", len(title)+8)
	fmt.Printf("\n%s\n--- %s ---\n%s\n", line, title, line)
}

func row(label, value string) {
	if value == "" {
		return
	}
	fmt.Printf("%-24s %s\n", label+":", value)
}

func rowInt(label string, v int) {
	if v == 0 {
		return
	}
	row(label, fmt.Sprintf("%d", v))
}

func formatVec(v []float64) string {
	if len(v) == 0 {
		return "[]"
	}
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = fmt.Sprintf("%g", x)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func formatComplex(c complex128) string {
	return fmt.Sprintf("%.4f%+.4fi", real(c), imag(c))
}

func formatBytes(b uint64) string {
	const (
		kb = 1024
		mb = 1024 * kb
		gb = 1024 * mb
	)
	switch {
	case b >= gb:
		return fmt.Sprintf("%.2f GiB", float64(b)/float64(gb))
	case b >= mb:
		return fmt.Sprintf("%.2f MiB", float64(b)/float64(mb))
	case b >= kb:
		return fmt.Sprintf("%.2f KiB", float64(b)/float64(kb))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
