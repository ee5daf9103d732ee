package middleware

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"
)

// groupScoped and expenseScoped are met by request messages that name the
// group or expense they act on.
type groupScoped interface{ GetGroupID() string }

type expenseScoped interface{ GetExpenseID() string }

// LogLevel maps an RPC outcome to a log level. Codes the caller can correct
// are warnings; everything else is an error.
func LogLevel(code connect.Code) slog.Level {
	switch code {
	case connect.CodeInvalidArgument, connect.CodeNotFound, connect.CodeAlreadyExists,
		connect.CodeUnauthenticated, connect.CodePermissionDenied,
		connect.CodeResourceExhausted, connect.CodeFailedPrecondition, connect.CodeCanceled:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// Logging returns a Connect interceptor that writes one line per RPC to
// logger: service and method, caller, peer host, the group or expense the
// request targets, duration, and the error code on failure.
func Logging(logger *slog.Logger) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			userID := GetUserID(ctx) // empty if pre-auth

			resp, err := next(ctx, req)

			attrs := requestAttrs(req)
			attrs = append(attrs, "user_id", userID, "duration_ms", time.Since(start).Milliseconds())
			if err == nil {
				logger.InfoContext(ctx, "RPC ok", attrs...)
				return resp, nil
			}

			code := connect.CodeOf(err)
			msg := err.Error()
			var connectErr *connect.Error
			if errors.As(err, &connectErr) {
				msg = connectErr.Message()
			}
			attrs = append(attrs, "code", code.String(), "error", msg)
			logger.Log(ctx, LogLevel(code), "RPC error", attrs...)
			return resp, err
		}
	}
}

func requestAttrs(req connect.AnyRequest) []any {
	service, method := splitProcedure(req.Spec().Procedure)
	attrs := []any{"service", service, "method", method, "peer", peerHost(req.Peer().Addr)}
	if m, ok := req.Any().(groupScoped); ok && m.GetGroupID() != "" {
		attrs = append(attrs, "group_id", m.GetGroupID())
	}
	if m, ok := req.Any().(expenseScoped); ok && m.GetExpenseID() != "" {
		attrs = append(attrs, "expense_id", m.GetExpenseID())
	}
	return attrs
}

// splitProcedure turns "/acerto.v1.GroupService/CreateGroup" into
// ("GroupService", "CreateGroup").
func splitProcedure(procedure string) (service, method string) {
	service, method, _ = strings.Cut(strings.TrimPrefix(procedure, "/"), "/")
	if i := strings.LastIndexByte(service, '.'); i >= 0 {
		service = service[i+1:]
	}
	return service, method
}
