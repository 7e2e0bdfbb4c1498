package context

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequest(t *testing.T) {
	t.Run("should return empty values without request metadata", func(t *testing.T) {
		ctx := context.Background()
		assert.Equal(t, Request{}, RequestFrom(ctx))
		assert.Empty(t, GetRequestID(ctx))
		assert.Empty(t, GetUserID(ctx))
	})

	t.Run("should keep request metadata when the user id is set", func(t *testing.T) {
		ctx := WithRequest(context.Background(), Request{ID: "req-1", Method: "PUT", Route: "/api/v1/jobs/:jobNumber"})
		ctx = SetUserID(ctx, "dispatcher@example.com")

		assert.Equal(t, Request{
			ID:     "req-1",
			Method: "PUT",
			Route:  "/api/v1/jobs/:jobNumber",
			UserID: "dispatcher@example.com",
		}, RequestFrom(ctx))
		assert.Equal(t, "req-1", GetRequestID(ctx))
		assert.Equal(t, "/api/v1/jobs/:jobNumber", GetRoute(ctx))
	})
}
