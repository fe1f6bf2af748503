package logger

import (
	"context"
	"io"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RequestIDKey is the key used to store request ID in the gin context
const RequestIDKey = "request_id"

// RequestIDHeader is echoed back on every response.
const RequestIDHeader = "X-Request-ID"

type ctxKey struct{}

// New builds the service logger for env. Production uses JSON with ISO8601
// timestamps; anything else uses the colored development console encoder.
// When sink is non-nil every entry is also written to it as JSON.
func New(env, service string, sink io.Writer) (*zap.Logger, error) {
	var config zap.Config
	if env == "production" {
		config = zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	if sink == nil {
		l, err := config.Build()
		if err != nil {
			return nil, err
		}
		return l.With(zap.String("service", service)), nil
	}

	level := zap.NewAtomicLevelAt(config.Level.Level())

	// Sink entries must stay machine readable, so never use the color encoder there.
	sinkEncoderCfg := config.EncoderConfig
	sinkEncoderCfg.EncodeLevel = zapcore.LowercaseLevelEncoder

	consoleCore := zapcore.NewCore(zapcore.NewConsoleEncoder(config.EncoderConfig), zapcore.AddSync(os.Stdout), level)
	sinkCore := zapcore.NewCore(zapcore.NewJSONEncoder(sinkEncoderCfg), zapcore.AddSync(sink), level)

	l := zap.New(zapcore.NewTee(consoleCore, sinkCore), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	return l.With(zap.String("service", service)), nil
}

// RequestID assigns a request id (reusing an incoming X-Request-ID) and stores it
// on both the gin context and the request context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)
		c.Request = c.Request.WithContext(WithRequestID(c.Request.Context(), requestID))
		c.Next()
	}
}

// WithRequestID returns a context carrying requestID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, requestID)
}

// RequestIDFrom extracts the request id, or "unknown".
func RequestIDFrom(ctx context.Context) string {
	if ginCtx, ok := ctx.(*gin.Context); ok {
		if requestID := ginCtx.GetString(RequestIDKey); requestID != "" {
			return requestID
		}
		ctx = ginCtx.Request.Context()
	}
	if requestID, ok := ctx.Value(ctxKey{}).(string); ok && requestID != "" {
		return requestID
	}
	return "unknown"
}

// For returns l annotated with the request id found in ctx.
func For(ctx context.Context, l *zap.Logger) *zap.Logger {
	return l.With(zap.String("request_id", RequestIDFrom(ctx)))
}
