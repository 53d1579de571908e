package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	flag "github.com/spf13/pflag"

	htmlpdf "github.com/porticus-lab/artifact-pdf"
	"github.com/porticus-lab/artifact-pdf/internal/artifact"
	"github.com/porticus-lab/artifact-pdf/internal/config"
	"github.com/porticus-lab/artifact-pdf/internal/generator"
	"github.com/porticus-lab/artifact-pdf/internal/logging"
)

var errUsage = errors.New("usage error")

// run executes one invocation and returns the process exit code.
func run(ctx context.Context, args []string, env *Environment) int {
	flags, err := parseFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(env.Stdout)
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "artifactpdf: %v\n", err)
		printUsage(env.Stderr)
		return ExitUsage
	}

	cfg, err := loadConfig(flags)
	if err != nil {
		fmt.Fprintf(env.Stderr, "artifactpdf: %v\n", err)
		return exitCodeFor(err, cfg != nil && cfg.Strict)
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(env.Stderr, "artifactpdf: %v\n", err)
		return ExitUsage
	}
	if flags.verbose {
		level = logging.LevelDebug
	}
	log := logging.NewConsole(env.Stderr, level)

	switch len(flags.args) {
	case 0:
		printUsage(env.Stdout)
		if cfg.Strict {
			return ExitUsage
		}
		return ExitSuccess
	case 1:
	default:
		fmt.Fprintf(env.Stderr, "artifactpdf: expected one artifact identifier, got %d\n", len(flags.args))
		printUsage(env.Stderr)
		return ExitUsage
	}

	base, err := baseDir(cfg, env)
	if err != nil {
		log.Errorf("%v", err)
		return ExitUsage
	}
	layout, err := artifact.NewLayout(base)
	if err != nil {
		log.Errorf("%v", err)
		return ExitUsage
	}

	pg, err := pageConfig(cfg)
	if err != nil {
		fmt.Fprintf(env.Stderr, "artifactpdf: %v\n", err)
		return ExitUsage
	}
	opts, err := converterOptions(cfg)
	if err != nil {
		fmt.Fprintf(env.Stderr, "artifactpdf: %v\n", err)
		return ExitUsage
	}

	renderer := env.NewRenderer(pg, opts...)
	defer func() {
		if cerr := renderer.Close(); cerr != nil {
			log.Debugf("closing browser: %v", cerr)
		}
	}()

	gen := generator.New(layout, renderer, generator.WithLogger(log))
	out, err := gen.Generate(ctx, flags.args[0])
	if err != nil {
		log.Errorf("%v", err)
		return exitCodeFor(err, cfg.Strict)
	}
	log.Infof("rendered %q (%d bytes)", flags.args[0], out.Size)

	if !flags.quiet {
		fmt.Fprintf(env.Stdout, "PDF created at: %s\n", out.Paths.PDF)
	}
	return ExitSuccess
}

// loadConfig builds the effective configuration: defaults, then the config
// file, then flags that were set explicitly.
func loadConfig(f *cliFlags) (*config.Config, error) {
	cfg := config.Default()
	if f.config != "" {
		loaded, err := config.Load(f.config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if f.changed("base-dir") {
		cfg.BaseDir = f.baseDir
	}
	if f.changed("chrome-path") {
		cfg.Browser.Path = f.chromePath
	}
	if f.changed("no-sandbox") {
		cfg.Browser.NoSandbox = f.noSandbox
	}
	if f.changed("auto-download") {
		cfg.Browser.AutoDownload = f.autoDownload
	}
	if f.changed("timeout") {
		cfg.Timeout = f.timeout
	}
	if f.changed("strict") {
		cfg.Strict = f.strict
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// baseDir returns the configured base directory, or the directory of the
// running executable when none is set.
func baseDir(cfg *config.Config, env *Environment) (string, error) {
	if cfg.BaseDir != "" {
		return filepath.Abs(cfg.BaseDir)
	}
	exe, err := env.Executable()
	if err != nil {
		return "", fmt.Errorf("locating executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

// pageConfig maps the config's page section onto htmlpdf settings.
func pageConfig(cfg *config.Config) (*htmlpdf.PageConfig, error) {
	pg := htmlpdf.DefaultPageConfig()

	if cfg.Page.Size != "" {
		size, ok := htmlpdf.PageSizeByName(cfg.Page.Size)
		if !ok {
			return nil, fmt.Errorf("%w: page size %q", config.ErrInvalidConfig, cfg.Page.Size)
		}
		pg.Size = size
	}

	orientation, err := htmlpdf.ParseOrientation(cfg.Page.Orientation)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrInvalidConfig, err)
	}
	pg.Orientation = orientation

	if cfg.Page.Margin != nil {
		pg.Margin = htmlpdf.UniformMargin(*cfg.Page.Margin)
	}
	if cfg.Page.Scale > 0 {
		pg.Scale = cfg.Page.Scale
	}
	if cfg.Page.PrintBackground != nil {
		pg.PrintBackground = *cfg.Page.PrintBackground
	}
	if cfg.Page.PreferCSSPageSize != nil {
		pg.PreferCSSPageSize = *cfg.Page.PreferCSSPageSize
	}
	if cfg.Page.Outline != nil {
		pg.Outline = *cfg.Page.Outline
	}
	return &pg, nil
}

// converterOptions maps the config's browser section and timeout onto
// htmlpdf converter options.
func converterOptions(cfg *config.Config) ([]htmlpdf.Option, error) {
	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	opts := []htmlpdf.Option{htmlpdf.WithTimeout(timeout)}
	if cfg.Browser.Path != "" {
		opts = append(opts, htmlpdf.WithChromePath(cfg.Browser.Path))
	}
	if cfg.Browser.NoSandbox {
		opts = append(opts, htmlpdf.WithNoSandbox())
	}
	if cfg.Browser.AutoDownload {
		opts = append(opts, htmlpdf.WithAutoDownload())
	}
	return opts, nil
}
