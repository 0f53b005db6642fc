package auth

import "context"

var _ Checker = (*LoginChecker)(nil)
var _ Checker = (*LoginTestChecker)(nil)
var _ Resolver = (*KeyResolver)(nil)

type Checker interface {
	IsLogged(ctx context.Context, token string) (bool, error)
}

// Resolver authenticates an API key and yields the user it belongs to.
type Resolver interface {
	UserIDForKey(ctx context.Context, apiKey string) (int, error)
}
