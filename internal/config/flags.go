package config

import "flag"

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagLogFile   = flag.String("log-file", "", "Write JSON logs to this file")
	flagWorkers   = flag.Int("workers", 0, "Concurrent preset builds (0 = GOMAXPROCS)")
	flagNoCheck   = flag.Bool("no-check", false, "Skip brush validation after generation")
	flagPrecision = flag.Int("precision", 0, "Decimal places for exported vertices")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the arguments left after global flags.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if *flagWorkers > 0 {
		cfg.Build.Workers = *flagWorkers
	}
	if *flagNoCheck {
		cfg.Build.Check = false
	}
	if *flagPrecision > 0 {
		cfg.Output.Precision = *flagPrecision
	}
}
