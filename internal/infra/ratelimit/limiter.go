// Package ratelimit limits how many reports a single client can request.
package ratelimit

import "context"

// Limiter decides whether a request identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Nop allows every request.
type Nop struct{}

// Allow implements Limiter.
func (Nop) Allow(context.Context, string) (bool, error) { return true, nil }
