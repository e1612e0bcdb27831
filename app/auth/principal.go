// Package auth carries the identity of the current visitor through a request.
package auth

import "context"

// Principal is the visitor a request acts on behalf of. The zero value is an
// anonymous visitor.
type Principal struct {
	Username string
}

// Anonymous is the principal of a visitor without a session.
var Anonymous = Principal{}

// IsAuthenticated reports whether the principal belongs to a logged in user.
func (p Principal) IsAuthenticated() bool {
	return p.Username != ""
}

type contextKey struct{}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

// FromContext returns the principal stored in ctx, or Anonymous.
func FromContext(ctx context.Context) Principal {
	if p, ok := ctx.Value(contextKey{}).(Principal); ok {
		return p
	}
	return Anonymous
}
