package main

import (
	"errors"

	"github.com/porticus-lab/artifact-pdf/internal/config"
	"github.com/porticus-lab/artifact-pdf/internal/generator"
)

// Exit codes for artifactpdf.
//
// Missing files and a missing identifier exit 0 unless strict mode is on;
// only a rendering failure is always fatal.
const (
	ExitSuccess = 0 // PDF written, or a non-strict usage/missing-file outcome
	ExitRender  = 1 // Rendering engine failure
	ExitUsage   = 2 // Invalid flags or config; usage errors in strict mode
	ExitMissing = 3 // Missing input or stylesheet in strict mode
)

// exitCodeFor returns the exit code for an error from one run.
// It uses errors.Is, so callers must wrap with %w.
func exitCodeFor(err error, strict bool) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, generator.ErrMissingInput) || errors.Is(err, generator.ErrMissingAsset) {
		if strict {
			return ExitMissing
		}
		return ExitSuccess
	}

	if errors.Is(err, errUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrInvalidConfig) {
		return ExitUsage
	}

	return ExitRender
}
