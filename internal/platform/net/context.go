// Package net holds request scoped context helpers shared by transports
package net

import (
	"context"

	"parliametrics/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// WithRequestID stores id where chi middleware and the logger both find it
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	ctx = context.WithValue(ctx, chimw.RequestIDKey, id)
	return logger.WithRequest(ctx, id)
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string {
	return chimw.GetReqID(ctx)
}
