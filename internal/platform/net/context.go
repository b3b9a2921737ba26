// Package net provides utilities for working with request contexts
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// ctxKey is an unexported key type for context values
type ctxKey string

const keyCameraID ctxKey = "camera_id"

// WithRequest annotates context with common request scoped ids
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID != "" {
		// set chi RequestID so chimw.GetReqID can retrieve it
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	return ctx
}

// WithCamera annotates context with a camera identifier
func WithCamera(ctx context.Context, cameraID string) context.Context {
	if cameraID != "" {
		ctx = context.WithValue(ctx, keyCameraID, cameraID)
	}
	return ctx
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string {
	return chimw.GetReqID(ctx)
}

// CameraID returns the camera id on the context if present
func CameraID(ctx context.Context) string {
	if v, ok := ctx.Value(keyCameraID).(string); ok {
		return v
	}
	return ""
}
