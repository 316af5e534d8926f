package httpx

import "context"

// Identity is the authenticated caller attached to a request context by
// the authentication middleware. It lives exactly as long as the request:
// contexts are per-request values, so one request's identity can never
// leak into another's handling, even on a reused connection goroutine.
type Identity struct {
	UserID      int64
	AccountName string
	Role        string
}

type ctxKey struct{}

// ContextWithIdentity returns a child context carrying the identity.
func ContextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// IdentityFromContext returns the request identity, if any. ok is false
// for requests that never passed the authentication middleware.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}
