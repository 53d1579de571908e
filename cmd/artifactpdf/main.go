// artifactpdf renders output/<artifact_id>.html to output/<artifact_id>.pdf
// with the stylesheets in docs/assets.
//
// Usage:
//
//	artifactpdf [flags] <artifact_id>
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], DefaultEnv())
	stop()
	os.Exit(code)
}
