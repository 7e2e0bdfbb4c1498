// Package context carries per-request metadata set by the HTTP middleware.
package context

import "context"

type requestKey struct{}

// Request is the metadata of one API call
type Request struct {
	ID       string
	Method   string
	Route    string
	RemoteIP string
	UserID   string
}

// WithRequest attaches request metadata to ctx
func WithRequest(ctx context.Context, req Request) context.Context {
	return context.WithValue(ctx, requestKey{}, req)
}

// RequestFrom returns the request metadata of ctx, or the zero Request
func RequestFrom(ctx context.Context) Request {
	req, _ := ctx.Value(requestKey{}).(Request)
	return req
}

func GetRequestID(ctx context.Context) string {
	return RequestFrom(ctx).ID
}

func GetRoute(ctx context.Context) string {
	return RequestFrom(ctx).Route
}

// SetUserID records the authenticated subject, reported as completed_by on
// job completions that do not name one.
func SetUserID(ctx context.Context, userID string) context.Context {
	req := RequestFrom(ctx)
	req.UserID = userID
	return WithRequest(ctx, req)
}

func GetUserID(ctx context.Context) string {
	return RequestFrom(ctx).UserID
}
