package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rpggio/signage/internal/domain/activity"
)

// trafficLoggingMiddleware logs each MCP request and its response at debug
// level. Notifications get no response line.
func trafficLoggingMiddleware(logger *slog.Logger, direction string) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			if logger == nil || !logger.Enabled(ctx, slog.LevelDebug) {
				return next(ctx, method, req)
			}

			base := []slog.Attr{
				slog.String("direction", direction),
				slog.String("method", method),
				slog.String("session_id", sessionIDOf(req)),
				slog.String("actor", activity.ActorFromContext(ctx)),
			}
			logger.LogAttrs(ctx, slog.LevelDebug, "mcp traffic",
				append(base, slog.String("stage", "request"), slog.String("params", encodePayload(paramsOf(req))))...)

			start := time.Now()
			result, err := next(ctx, method, req)
			if strings.HasPrefix(method, "notifications/") {
				return result, err
			}

			attrs := append(base,
				slog.String("stage", "response"),
				slog.String("result", encodePayload(result)),
				slog.Duration("duration", time.Since(start)),
			)
			if err != nil {
				attrs = append(attrs, slog.Any("error", err))
			}
			logger.LogAttrs(ctx, slog.LevelDebug, "mcp traffic", attrs...)
			return result, err
		}
	}
}

// sessionIDOf tolerates requests whose session is not wired yet.
func sessionIDOf(req sdkmcp.Request) (id string) {
	if req == nil {
		return ""
	}
	defer func() {
		if recover() != nil {
			id = ""
		}
	}()
	if s := req.GetSession(); s != nil {
		return s.ID()
	}
	return ""
}

func paramsOf(req sdkmcp.Request) (params any) {
	if req == nil {
		return nil
	}
	defer func() {
		if recover() != nil {
			params = nil
		}
	}()
	return req.GetParams()
}

func encodePayload(payload any) string {
	if payload == nil {
		return "<nil>"
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprintf("%T", payload)
	}
	return string(data)
}
