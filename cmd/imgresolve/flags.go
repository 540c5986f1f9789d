package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-imgresolve/internal/config"
)

// Sentinel errors for argument handling.
var (
	ErrUsage          = errors.New("invalid usage")
	ErrNoNames        = errors.New("no asset names given")
	ErrUnknownCommand = errors.New("unknown command")
	ErrInvalidTimeout = errors.New("invalid timeout")
)

// Color modes for --color.
const (
	colorAuto   = "auto"
	colorAlways = "always"
	colorNever  = "never"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// assetFlags holds flags that select and shape the image source.
type assetFlags struct {
	assetPath   string
	dir         string
	baseURL     string
	mode        string
	extensions  []string
	fingerprint bool
	noFallback  bool
	workers     int
	timeout     string
}

// resolveFlags holds all flags for the resolve command.
type resolveFlags struct {
	common commonFlags
	assets assetFlags
	lazy   bool
}

// listFlags holds all flags for the list command.
type listFlags struct {
	common commonFlags
	assets assetFlags
	lazy   bool
	format string
	color  string
	style  string
}

// doctorFlags holds all flags for the doctor command.
type doctorFlags struct {
	common commonFlags
	assets assetFlags
	json   bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show source and timing details")
}

// addAssetFlags adds image source flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.assetPath, "asset-path", "", "custom image directory (default: built-in images)")
	fs.StringVar(&f.dir, "dir", "", "directory under --asset-path holding images")
	fs.StringVar(&f.baseURL, "base-url", "", "URL prefix (default \"./\")")
	fs.StringVar(&f.mode, "mode", "", "development or production")
	fs.StringSliceVar(&f.extensions, "ext", nil, "extension allow-list in priority order")
	fs.BoolVar(&f.fingerprint, "fingerprint", false, "append ?v=<content hash> to URLs")
	fs.BoolVar(&f.noFallback, "no-fallback", false, "do not fall back to built-in images")
	fs.IntVarP(&f.workers, "workers", "w", 0, "concurrent loaders (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "timeout for lazy loading (e.g., 5s, 1m)")
}

// newFlagSet creates a FlagSet that reports errors instead of exiting.
func newFlagSet(name string, usage func(io.Writer), stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() { usage(stderr) }
	return fs
}

// parseArgs parses args and wraps flag errors for exit code mapping.
// flag.ErrHelp is returned unwrapped so callers can print usage.
func parseArgs(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return nil
}

// buildResolveFlagSet registers the resolve command flags on a new FlagSet.
// Shared by parsing and shell completion.
func buildResolveFlagSet(f *resolveFlags, stderr io.Writer) *flag.FlagSet {
	fs := newFlagSet(cmdResolve, printResolveUsage, stderr)
	addCommonFlags(fs, &f.common)
	addAssetFlags(fs, &f.assets)
	fs.BoolVar(&f.lazy, "lazy", false, "resolve through the lazy index")
	return fs
}

// buildListFlagSet registers the list command flags on a new FlagSet.
func buildListFlagSet(f *listFlags, stderr io.Writer) *flag.FlagSet {
	fs := newFlagSet(cmdList, printListUsage, stderr)
	addCommonFlags(fs, &f.common)
	addAssetFlags(fs, &f.assets)
	fs.BoolVar(&f.lazy, "lazy", false, "run every lazy loader instead of the eager index")
	fs.StringVarP(&f.format, "format", "f", "", "output format: text, json, yaml, markdown, html")
	fs.StringVar(&f.color, "color", colorAuto, "highlight json/yaml: auto, always, never")
	fs.Lookup("color").NoOptDefVal = colorAlways
	fs.StringVar(&f.style, "style", "", "highlight style (default \"monokai\")")
	return fs
}

// buildDoctorFlagSet registers the doctor command flags on a new FlagSet.
func buildDoctorFlagSet(f *doctorFlags, stderr io.Writer) *flag.FlagSet {
	fs := newFlagSet(cmdDoctor, printDoctorUsage, stderr)
	addCommonFlags(fs, &f.common)
	addAssetFlags(fs, &f.assets)
	fs.BoolVar(&f.json, "json", false, "output diagnostics as JSON")
	return fs
}

// parseResolveFlags parses resolve command flags and returns the names.
func parseResolveFlags(args []string, stderr io.Writer) (*resolveFlags, *flag.FlagSet, []string, error) {
	f := &resolveFlags{}
	fs := buildResolveFlagSet(f, stderr)
	if err := parseArgs(fs, args); err != nil {
		return nil, nil, nil, err
	}
	return f, fs, fs.Args(), nil
}

// parseListFlags parses list command flags.
func parseListFlags(args []string, stderr io.Writer) (*listFlags, *flag.FlagSet, error) {
	f := &listFlags{}
	fs := buildListFlagSet(f, stderr)
	if err := parseArgs(fs, args); err != nil {
		return nil, nil, err
	}
	if fs.NArg() > 0 {
		return nil, nil, fmt.Errorf("%w: list takes no arguments, got %q", ErrUsage, fs.Arg(0))
	}
	switch f.color {
	case colorAuto, colorAlways, colorNever:
	default:
		return nil, nil, fmt.Errorf("%w: --color must be auto, always or never, got %q", ErrUsage, f.color)
	}
	return f, fs, nil
}

// parseDoctorFlags parses doctor command flags.
func parseDoctorFlags(args []string, stderr io.Writer) (*doctorFlags, *flag.FlagSet, error) {
	f := &doctorFlags{}
	fs := buildDoctorFlagSet(f, stderr)
	if err := parseArgs(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs, nil
}

// mergeFlags applies explicitly set flags over cfg.
// Only flags the user passed are applied, so a flag default never hides
// an env or config value.
func mergeFlags(fs *flag.FlagSet, f *assetFlags, cfg *config.Config) {
	if fs.Changed("asset-path") {
		cfg.Assets.BasePath = f.assetPath
	}
	if fs.Changed("dir") {
		cfg.Assets.Dir = f.dir
	}
	if fs.Changed("base-url") {
		cfg.Assets.BaseURL = f.baseURL
	}
	if fs.Changed("mode") {
		cfg.Mode = f.mode
	}
	if fs.Changed("ext") {
		cfg.Assets.Extensions = f.extensions
	}
	if fs.Changed("fingerprint") {
		cfg.Assets.Fingerprint = f.fingerprint
	}
	if fs.Changed("workers") {
		cfg.Assets.Workers = f.workers
	}
}

// resolveTimeoutWithEnv picks the lazy-load timeout.
// Priority: flag > env > none (0 = no timeout).
func resolveTimeoutWithEnv(flagValue string, envValue time.Duration) (time.Duration, error) {
	if flagValue == "" {
		return envValue, nil
	}
	d, err := time.ParseDuration(flagValue)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidTimeout, flagValue, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %q: must be positive", ErrInvalidTimeout, flagValue)
	}
	return d, nil
}
