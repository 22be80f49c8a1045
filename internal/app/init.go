package app

import (
	"context"

	"github.com/JuulLabs-OSS/loogi-http/internal/config"
	"github.com/JuulLabs-OSS/loogi-http/internal/logger"
)

// ExecuteInitCommand writes the default configuration file.
func ExecuteInitCommand(ctx context.Context, configFilename string) {
	if configFilename == "" {
		configFilename = config.DefaultConfigFilename
	}

	if err := config.WriteDefaultConfig(configFilename); err != nil {
		logger.Fatalf(ctx, "Failed to write configuration: %v", err)

		return
	}

	logger.Infof(ctx, "Configuration written to '%s'", configFilename)
}
