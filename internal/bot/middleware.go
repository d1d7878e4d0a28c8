package bot

import (
	"context"
	"log/slog"
	"time"
)

// LogDuration logs how long each handler took.
func LogDuration() Middleware {
	return func(ctx context.Context, req *Request, next Next) error {
		start := time.Now()
		err := next(ctx)
		slog.Debug("handled request",
			"kind", req.Kind,
			"key", req.Key,
			"duration", time.Since(start),
			"ok", err == nil,
		)
		return err
	}
}

// GuildOnly skips interaction handlers invoked outside a guild. Events pass
// through unchanged.
func GuildOnly(reply func(i *Interaction) error) Middleware {
	return func(ctx context.Context, req *Request, next Next) error {
		if req.Interaction == nil || req.Interaction.GuildID != "" {
			return next(ctx)
		}
		slog.Debug("skipped interaction outside guild", "kind", req.Kind, "key", req.Key)
		if reply == nil {
			return nil
		}
		return reply(req.Interaction)
	}
}
