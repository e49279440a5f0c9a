// Package logging builds the zap logger shared by the CLI and the TUI.
package logging

import (
	"go.uber.org/zap"

	"github.com/san-kum/phasediag/internal/config"
)

// New creates a logger for cfg. Without a log file it returns a no-op
// logger, since the interactive view owns stdout and stderr.
func New(cfg *config.Config) (*zap.Logger, error) {
	if cfg == nil || cfg.LogFile == "" {
		return zap.NewNop(), nil
	}

	var zcfg zap.Config
	if cfg.Debug {
		zcfg = zap.NewDevelopmentConfig()
	} else {
		zcfg = zap.NewProductionConfig()
	}
	zcfg.OutputPaths = []string{cfg.LogFile}
	zcfg.ErrorOutputPaths = []string{cfg.LogFile}

	logger, err := zcfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.With(zap.String("preset", cfg.Preset)), nil
}
