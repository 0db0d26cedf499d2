package logger

import (
	"context"

	"go.uber.org/zap"
)

type runInfoKey struct{}

// RunInfo identifies a single sync run in log lines and sentry events
type RunInfo struct {
	RunID    string
	Chain    string
	Contract string
}

// WithRunInfo returns a context whose *Ctx log lines carry the run identity
func WithRunInfo(ctx context.Context, info RunInfo) context.Context {
	return context.WithValue(ctx, runInfoKey{}, info)
}

// GetRunInfo returns the run identity stored in ctx, if any
func GetRunInfo(ctx context.Context) (RunInfo, bool) {
	info, ok := ctx.Value(runInfoKey{}).(RunInfo)
	return info, ok
}

func runFields(ctx context.Context) []zap.Field {
	info, ok := GetRunInfo(ctx)
	if !ok {
		return nil
	}

	fields := []zap.Field{zap.String("run_id", info.RunID)}
	if info.Chain != "" {
		fields = append(fields, zap.String("chain", info.Chain))
	}
	if info.Contract != "" {
		fields = append(fields, zap.String("contract", info.Contract))
	}
	return fields
}
