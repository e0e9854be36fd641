package auth

import "context"

type ctxKey struct{}

// WithClaims attaches a verified admin session to ctx.
func WithClaims(ctx context.Context, c Claims) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

func ClaimsFromContext(ctx context.Context) (Claims, bool) {
	c, ok := ctx.Value(ctxKey{}).(Claims)
	return c, ok
}

// Subject returns the session subject or "" when the request is anonymous.
func Subject(ctx context.Context) string {
	c, _ := ClaimsFromContext(ctx)
	return c.Subject
}
