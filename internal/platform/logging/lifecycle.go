package logging

import (
	"context"

	"go.uber.org/zap"
)

// Lifecycle phases reported by the extension host.
const (
	PhaseInit     = "init"
	PhasePostInit = "postInit"
	PhaseCreate   = "create"
	PhaseMount    = "mount"
	PhaseClose    = "close"
)

// LogLifecycleEvent records one lifecycle step of an extension. A nil err is
// logged at info level with result "success"; otherwise at error level with
// result "failure".
func LogLifecycleEvent(ctx context.Context, phase, extensionID string, err error, fields ...zap.Field) {
	fields = append([]zap.Field{
		zap.String("lifecycle.phase", phase),
		zap.String("lifecycle.extension", extensionID),
	}, fields...)
	if err != nil {
		LogError(ctx, "extension lifecycle", err, append(fields, zap.String("lifecycle.result", "failure"))...)
		return
	}
	LogInfo(ctx, "extension lifecycle", append(fields, zap.String("lifecycle.result", "success"))...)
}
