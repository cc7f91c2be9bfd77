// Package logging configures the structured logger every relaysim
// package writes through, grounded on the teacher's core/util.go
// custom-level slog usage. Two levels beyond the stdlib set are
// registered: LevelBridge for engine and interaction bookkeeping
// (topology warnings, coordinator construction, applied interactions,
// the CLI's run error) and LevelOscillation for per-iteration settling
// detail —
// both are too noisy for Info but too useful to drop entirely.
package logging

import (
	"context"
	"log/slog"
	"os"
)

const (
	LevelOscillation slog.Level = slog.LevelDebug + 1
	LevelBridge      slog.Level = slog.LevelDebug + 2
)

var levelNames = map[slog.Leveler]string{
	LevelOscillation: "OSCILLATION",
	LevelBridge:      "BRIDGE",
}

// envVar names the environment variable that selects the minimum log
// level, parsed by configuredLevel at init time.
const envVar = "RELAYSIM_LOG_LEVEL"

func configuredLevel() slog.Level {
	switch os.Getenv(envVar) {
	case "oscillation":
		return LevelOscillation
	case "bridge":
		return LevelBridge
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func replaceAttr(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.LevelKey {
		level, ok := a.Value.Any().(slog.Level)
		if !ok {
			return a
		}
		if name, ok := levelNames[level]; ok {
			a.Value = slog.StringValue(name)
		}
	}
	return a
}

func init() {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:       configuredLevel(),
		ReplaceAttr: replaceAttr,
	})
	slog.SetDefault(slog.New(handler))
}

// Oscillation logs at LevelOscillation, used by the engine's main loop
// to trace the number of VNETs whose state changed in each iteration
// while debugging a non-settling circuit.
func Oscillation(msg string, args ...any) {
	slog.Log(context.Background(), LevelOscillation, msg, args...)
}

// Bridge logs at LevelBridge, used by the engine (topology warnings,
// unresolved link names, coordinator construction), by package interact
// for each applied interaction, and by the CLI for a run error.
func Bridge(msg string, args ...any) {
	slog.Log(context.Background(), LevelBridge, msg, args...)
}
