package hostmux

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rohanthewiz/hostmux/consts"
)

// RequestInfo is a middleware giving basic request / response stats
func RequestInfo(ctx Context) error {
	start := time.Now()

	defer func() {
		fmt.Printf("%sZ %s %s %q -> %d [%s]\n",
			time.Now().UTC().Format("20060102T150405"),
			ctx.Request().Host(), ctx.Request().Method(), ctx.Request().Path(),
			ctx.Response().Status(), time.Since(start))
	}()

	return ctx.Next()
}

// RequestIDKey is the context data key under which the request ID is stored.
const RequestIDKey = "request_id"

// RequestID is a middleware that tags each request with an ID.
// An incoming X-Request-ID header is honored, otherwise a fresh UUID is
// generated. The ID is stored in the context data and echoed on the response.
func RequestID(ctx Context) error {
	id := ctx.Request().Header(consts.HeaderRequestID)
	if id == "" {
		id = uuid.NewString()
	}

	ctx.Set(RequestIDKey, id)
	ctx.Response().SetHeader(consts.HeaderRequestID, id)

	return ctx.Next()
}

// AccessLog returns a middleware that logs one line per request to the
// given logger. Server errors log at error level, client errors at warn.
func AccessLog(lg *zap.Logger) Handler {
	return func(ctx Context) error {
		start := time.Now()

		err := ctx.Next()

		req := ctx.Request()

		// an escaping error is answered as a 500 once the chain unwinds,
		// so log the status the client will actually see
		status := ctx.Response().Status()
		if err != nil && status < consts.StatusBadRequest {
			status = consts.StatusInternalServerError
		}

		fields := []zap.Field{
			zap.String("host", req.Host()),
			zap.String("method", req.Method()),
			zap.String("path", req.Path()),
			zap.Int("status", status),
			zap.Duration("duration", time.Since(start)),
		}

		if id, ok := ctx.Get(RequestIDKey).(string); ok {
			fields = append(fields, zap.String("request_id", id))
		}

		switch {
		case err != nil:
			lg.Error("request", append(fields, zap.Error(err))...)
		case status >= consts.StatusInternalServerError:
			lg.Error("request", fields...)
		case status >= consts.StatusBadRequest:
			lg.Warn("request", fields...)
		default:
			lg.Info("request", fields...)
		}

		return err
	}
}
