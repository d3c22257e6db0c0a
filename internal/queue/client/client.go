package client

import (
	"context"
	"sync"

	"github.com/hibiken/asynq"
)

type ctxKey int

const (
	_ ctxKey = iota
	asynqCtxKey
)

var (
	globalClient *asynq.Client
	globalMu     sync.RWMutex
)

// GetClient returns the asynq client from the context if one was injected
// with WithClient, falling back to the global client set at startup. Returns
// nil when the queue is not configured at all.
func GetClient(ctx context.Context) *asynq.Client {
	c := ctx.Value(asynqCtxKey)
	if c != nil {
		client, ok := c.(*asynq.Client)
		if !ok {
			return nil
		}

		return client
	}

	globalMu.RLock()
	client := globalClient
	globalMu.RUnlock()

	return client
}

// WithClient injects a client into the context, shadowing the global one.
func WithClient(ctx context.Context, client *asynq.Client) context.Context {
	return context.WithValue(ctx, asynqCtxKey, client)
}

// SetClient replaces the global Client, and returns a function to restore
// the original value. It's safe for concurrent use.
func SetClient(client *asynq.Client) func() {
	globalMu.Lock()
	prev := globalClient
	globalClient = client
	globalMu.Unlock()
	return func() { SetClient(prev) }
}
