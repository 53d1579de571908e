package main

import (
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// cliFlags holds the parsed command line.
type cliFlags struct {
	config       string
	baseDir      string
	chromePath   string
	noSandbox    bool
	autoDownload bool
	timeout      string
	strict       bool
	verbose      bool
	quiet        bool

	fs   *flag.FlagSet
	args []string
}

// changed reports whether the named flag was set explicitly.
func (f *cliFlags) changed(name string) bool {
	return f.fs.Changed(name)
}

func newFlagSet(f *cliFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("artifactpdf", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	fs.StringVarP(&f.config, "config", "c", "", "YAML config file")
	fs.StringVarP(&f.baseDir, "base-dir", "b", "", "directory holding output/ and docs/assets/ (default: executable directory)")
	fs.StringVar(&f.chromePath, "chrome-path", "", "Chrome or Chromium executable")
	fs.BoolVar(&f.noSandbox, "no-sandbox", false, "disable the Chrome sandbox (needed as root in containers)")
	fs.BoolVar(&f.autoDownload, "auto-download", false, "download Chromium when none is installed")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "render timeout, e.g. 30s or 2m (0 disables)")
	fs.BoolVar(&f.strict, "strict", false, "exit non-zero on usage errors and missing files")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log each step")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "do not print the success message")
	return fs
}

// parseFlags parses args (without the program name).
func parseFlags(args []string) (*cliFlags, error) {
	f := &cliFlags{}
	f.fs = newFlagSet(f)
	if err := f.fs.Parse(args); err != nil {
		return f, err
	}
	if f.verbose && f.quiet {
		return f, fmt.Errorf("%w: --verbose and --quiet are mutually exclusive", errUsage)
	}
	f.args = f.fs.Args()
	return f, nil
}

func printUsage(w io.Writer) {
	fs := newFlagSet(&cliFlags{})
	fmt.Fprintf(w, `Usage: artifactpdf [flags] <artifact_id>

Renders <base>/output/<artifact_id>.html to <base>/output/<artifact_id>.pdf,
applying docs/assets/github-markdown.css, style.css and pdf.css in that order.

Flags:
%s  -h, --help                 show this help
`, fs.FlagUsages())
}
