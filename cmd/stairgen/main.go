// stairgen is a CLI utility for generating linear staircase brushes.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-stairs/internal/builder"
	"github.com/Faultbox/midgard-stairs/internal/config"
	"github.com/Faultbox/midgard-stairs/internal/logger"
	"github.com/Faultbox/midgard-stairs/pkg/brush"
	"github.com/Faultbox/midgard-stairs/pkg/export"
	"github.com/Faultbox/midgard-stairs/pkg/stairs"
)

func main() {
	config.ParseFlags()
	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	command := args[0]
	args = args[1:]

	if command == "help" || command == "-h" || command == "--help" {
		printUsage()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Sugar.Debugf("Config: %+v", cfg)

	switch command {
	case "count":
		err = cmdCount(cfg, args)
	case "layout":
		err = cmdLayout(cfg, args)
	case "generate", "gen":
		err = cmdGenerate(cfg, args)
	case "preset":
		err = cmdPreset(cfg, args)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		logger.Error("command failed", zap.String("command", command), zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`stairgen - linear staircase brush generator

Usage:
  stairgen [global options] <command> [options]

Global options:
  -config <file>     Config file (default ./stairgen.yaml)
  -debug             Enable debug logging
  -log-file <file>   Also write JSON logs to file
  -workers <n>       Concurrent preset builds
  -no-check          Skip brush validation
  -precision <n>     Decimals for exported coordinates

Commands:
  count [preset...]              Print brush counts per preset
  layout [preset...]             Print the brush band layout per preset
  generate [-o file] [preset...] Generate brushes and write Wavefront OBJ
  preset [-o file]               Write the effective config as YAML

Examples:
  stairgen count
  stairgen -config level.yaml generate -o level.obj entrance cellar
  stairgen preset -o stairgen.yaml`)
}

// selectPresets returns the named presets, or all of them when names is empty.
func selectPresets(cfg *config.Config, names []string) ([]config.Preset, error) {
	if len(names) == 0 {
		return cfg.Stairs, nil
	}
	presets := make([]config.Preset, 0, len(names))
	for _, name := range names {
		p, ok := cfg.Preset(name)
		if !ok {
			return nil, fmt.Errorf("unknown preset %q", name)
		}
		presets = append(presets, p)
	}
	return presets, nil
}

func cmdCount(cfg *config.Config, args []string) error {
	presets, err := selectPresets(cfg, args)
	if err != nil {
		return err
	}

	_, placements, total, err := builder.Plan(presets)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tSTEPS\tBRUSHES")
	for _, pl := range placements {
		fmt.Fprintf(w, "%s\t%d\t%d\n", pl.Name, pl.Steps, pl.Count)
	}
	fmt.Fprintf(w, "total\t\t%d\n", total)
	return w.Flush()
}

func cmdLayout(cfg *config.Config, args []string) error {
	presets, err := selectPresets(cfg, args)
	if err != nil {
		return err
	}

	defs, placements, _, err := builder.Plan(presets)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for i, pl := range placements {
		def := defs[i]
		fmt.Fprintf(w, "%s: %d steps, riser %s, left %s, right %s\n",
			pl.Name, pl.Steps, def.RiserType, def.LeftSide, def.RightSide)
		fmt.Fprintln(w, "  BAND\tSLOTS\tSIZE")
		for _, band := range pl.Layout.Bands() {
			start := pl.Start + band.Start
			fmt.Fprintf(w, "  %s\t%d-%d\t%d\n", band.Kind, start, start+band.Size-1, band.Size)
		}
	}
	return w.Flush()
}

func cmdGenerate(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	output := fs.String("o", cfg.Output.Path, "Output OBJ file (- for stdout)")
	fs.Parse(args)

	presets, err := selectPresets(cfg, fs.Args())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := builder.FromConfig(cfg.Build).BuildAll(ctx, presets)
	if err != nil {
		return err
	}

	groups := make([]export.Group, len(res.Placements))
	for i, pl := range res.Placements {
		groups[i] = export.Group{Name: pl.Name, Start: pl.Start, Count: pl.Count}
	}

	opts := export.Options{
		Precision: cfg.Output.Precision,
		Groups:    groups,
	}
	stats, err := writeOBJ(*output, &res.Container, opts)
	if err != nil {
		return fmt.Errorf("writing %s: %w", *output, err)
	}
	if stats.Objects == 0 {
		logger.Warn("no brushes generated", zap.Int("presets", len(presets)))
	}

	logger.Info("wrote obj",
		zap.String("path", *output),
		zap.Int("objects", stats.Objects),
		zap.Int("vertices", stats.Vertices),
		zap.Int("faces", stats.Faces))
	return nil
}

// writeOBJ writes c to path, or to stdout when path is "-". A failed close
// of the file is reported like a failed write.
func writeOBJ(path string, c *brush.Container, opts export.Options) (stats export.Stats, err error) {
	if path == "-" {
		return export.WriteOBJ(os.Stdout, c, opts)
	}

	logger.Debug("creating output", zap.String("path", path))
	f, err := os.Create(path)
	if err != nil {
		return stats, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return export.WriteOBJ(f, c, opts)
}

func cmdPreset(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("preset", flag.ExitOnError)
	output := fs.String("o", "-", "Output YAML file (- for stdout)")
	riser := fs.String("riser", "", "Override riser type of every preset ("+strings.Join(riserNames(), ", ")+")")
	fs.Parse(args)

	if *riser != "" {
		var rt stairs.RiserType
		if err := rt.UnmarshalText([]byte(*riser)); err != nil {
			return err
		}
		for i := range cfg.Stairs {
			cfg.Stairs[i].Definition.RiserType = rt
		}
	}

	if *output != "-" {
		if err := cfg.SaveTo(*output); err != nil {
			return err
		}
		logger.Info("wrote config", zap.String("path", *output))
		return nil
	}

	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

func riserNames() []string {
	names := make([]string, 0, 5)
	for rt := stairs.RiserNone; rt <= stairs.Smooth; rt++ {
		names = append(names, rt.String())
	}
	return names
}
