package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/urldeck/internal/app"
)

// flagValues mirrors the command-line surface before it is merged with the
// config file and the environment.
type flagValues struct {
	dir           string
	configPath    string
	envFiles      string
	verbose       bool
	language      string
	keepGoing     bool
	skipProcessed bool
	report        string
}

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	fv := registerFlags(fs)
	_ = fs.Parse(os.Args[1:])

	cfg, err := buildConfig(fs, fv)
	if err != nil {
		log.Error().Err(err).Msg("configuration failed")
		os.Exit(1)
	}

	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log.Debug().Str("version", app.BuildVersion).Str("commit", app.BuildCommit).Interface("config", cfg).Msg("starting")

	os.Exit(exitCode(cfg, run(cfg), os.Stderr))
}

func registerFlags(fs *flag.FlagSet) *flagValues {
	fv := &flagValues{}
	fs.StringVar(&fv.dir, "dir", ".", "Directory scanned for .xlsx, .docx and .pptx files")
	fs.StringVar(&fv.configPath, "config", os.Getenv("URLDECK_CONFIG"), "Optional YAML or JSON config file")
	fs.StringVar(&fv.envFiles, "env", ".env", "Comma-separated dotenv files loaded before reading the environment")
	fs.BoolVar(&fv.verbose, "v", false, "Verbose logging")
	fs.StringVar(&fv.language, "lang", "uk", "Diagnostics language, 'uk' or 'en'")
	fs.BoolVar(&fv.keepGoing, "keep-going", false, "Skip unreadable source documents instead of aborting")
	fs.BoolVar(&fv.skipProcessed, "skip-processed", false, "Ignore files already named processed_*")
	fs.StringVar(&fv.report, "report", "", "Optional run report path (.json, .yaml, .html or .pdf)")
	return fv
}

// buildConfig merges defaults, the config file, the environment and the
// explicitly set flags, in increasing order of precedence.
func buildConfig(fs *flag.FlagSet, fv *flagValues) (app.Config, error) {
	if err := app.LoadEnvFiles(strings.Split(fv.envFiles, ",")...); err != nil {
		return app.Config{}, fmt.Errorf("load env files: %w", err)
	}

	cfg := app.DefaultConfig()
	if p := strings.TrimSpace(fv.configPath); p != "" {
		fc, err := app.LoadConfigFile(p)
		if err != nil {
			return app.Config{}, fmt.Errorf("load config %s: %w", p, err)
		}
		app.ApplyFileConfig(&cfg, fc)
	}
	app.ApplyEnvOverrides(&cfg)

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "dir":
			cfg.Dir = fv.dir
		case "v":
			cfg.Verbose = fv.verbose
		case "lang":
			cfg.Language = fv.language
		case "keep-going":
			cfg.KeepGoing = fv.keepGoing
		case "skip-processed":
			cfg.SkipProcessed = fv.skipProcessed
		case "report":
			cfg.ReportPath = fv.report
		}
	})
	return cfg, nil
}

// exitCode maps the run outcome to the process status. Missing inputs get
// the localized operator message and status 2; other failures exit 1.
func exitCode(cfg app.Config, err error, stderr io.Writer) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, app.ErrNoInputs) {
		fmt.Fprintln(stderr, app.Diagnostic(cfg.Language, err))
		return 2
	}
	log.Error().Err(err).Msg("run failed")
	return 1
}

func run(cfg app.Config) error {
	ctx := context.Background()

	a, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	_, err = a.Run(ctx)
	return err
}
