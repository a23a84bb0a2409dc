package requestcontext

import (
	"context"
	"strings"

	"github.com/gaze-network/crowdsale/pkg/logger"
	"github.com/gofiber/fiber/v2"
)

// DefaultCallerHeader is the header carrying the account acting on the request.
const DefaultCallerHeader = "X-Caller"

type callerKey struct{}

// WithCaller reads the acting account from the given header (DefaultCallerHeader if empty)
// and attaches it to the request context and its logger.
//
// The header is trusted as-is, authentication must happen in front of the service.
func WithCaller(header string) Option {
	if header == "" {
		header = DefaultCallerHeader
	}
	return func(ctx context.Context, c *fiber.Ctx) (context.Context, error) {
		caller := strings.TrimSpace(c.Get(header))
		if caller == "" {
			return ctx, nil
		}
		ctx = context.WithValue(ctx, callerKey{}, caller)
		ctx = logger.WithContext(ctx, "caller", caller)
		return ctx, nil
	}
}

// GetCaller get caller from context. If not found, return empty string
//
// Warning: Request context should be setup before using this function
func GetCaller(ctx context.Context) string {
	if caller, ok := ctx.Value(callerKey{}).(string); ok {
		return caller
	}
	return ""
}
