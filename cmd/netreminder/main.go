package main

import (
	"context"
	"os"

	"github.com/hamiltra/net-reminder/internal/infra/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		logger.Fallback().WithError(err).Error("net-reminder failed")
		os.Exit(1)
	}
}
