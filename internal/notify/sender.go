// Package notify delivers form submissions to restaurant staff.
package notify

import (
	"context"
	"errors"
)

var (
	ErrNotConfigured = errors.New("email delivery credentials not configured")
	ErrRejected      = errors.New("email service rejected the message")
)

// Params is the flat set of named string fields handed to a template
type Params map[string]string

// Sender dispatches a message built from params
type Sender interface {
	Send(ctx context.Context, params Params) error
}

// SenderFunc adapts a function to Sender
type SenderFunc func(ctx context.Context, params Params) error

// Send calls f(ctx, params)
func (f SenderFunc) Send(ctx context.Context, params Params) error {
	return f(ctx, params)
}
