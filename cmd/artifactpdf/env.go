package main

import (
	"io"
	"os"

	htmlpdf "github.com/porticus-lab/artifact-pdf"
	"github.com/porticus-lab/artifact-pdf/internal/generator"
)

// Renderer is a generator.Renderer that owns resources released by Close.
type Renderer interface {
	generator.Renderer
	Close() error
}

// Environment holds injectable dependencies for testability.
type Environment struct {
	Stdout io.Writer
	Stderr io.Writer

	// Executable locates the running binary; its directory is the default base.
	Executable func() (string, error)

	NewRenderer func(pg *htmlpdf.PageConfig, opts ...htmlpdf.Option) Renderer
}

// DefaultEnv returns the production environment backed by headless Chromium.
func DefaultEnv() *Environment {
	return &Environment{
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		Executable: os.Executable,
		NewRenderer: func(pg *htmlpdf.PageConfig, opts ...htmlpdf.Option) Renderer {
			return generator.NewChromeRenderer(pg, opts...)
		},
	}
}
