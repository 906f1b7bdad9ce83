// Package obs wires log/slog logging around xuma's construction-time
// operations (config decode, parse, and registry.Load). It never touches
// the evaluation hot path: Matcher.Evaluate is not, and must never become,
// observable through this package.
package obs

import (
	"log/slog"

	"github.com/mox-nexus/x.uma/pkg/logger"
)

// New builds a *slog.Logger from cfg, delegating to pkg/logger for
// level/format/output handling and file rotation.
func New(cfg logger.Config) *slog.Logger {
	return logger.NewLogger(cfg)
}

// LoadFailure logs a construction-time failure (unknown type URL, invalid
// config, a width/length/depth limit violation) at Error level with the
// request ID and the error text as structured fields.
func LoadFailure(log *slog.Logger, requestID string, err error) {
	log.Error("xuma: construction failed",
		"request_id", requestID,
		"error", err.Error(),
	)
}

// LoadSuccess logs a successful construction at Info level with the
// resulting tree's shape.
func LoadSuccess(log *slog.Logger, requestID string, fieldMatchers, depth int) {
	log.Info("xuma: matcher loaded",
		"request_id", requestID,
		"field_matchers", fieldMatchers,
		"depth", depth,
	)
}

// Reload logs a registry.Manager.Reload outcome, used by cmd/xumactl
// serve.
func Reload(log *slog.Logger, requestID string, path string, err error) {
	if err != nil {
		log.Error("xuma: reload failed", "request_id", requestID, "path", path, "error", err.Error())
		return
	}
	log.Info("xuma: reload succeeded", "request_id", requestID, "path", path)
}
