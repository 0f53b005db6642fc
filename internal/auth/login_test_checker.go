package auth

import "context"

type LoginTestChecker struct {
	LoggedSessions map[string]bool
}

func NewLoginTestChecker() *LoginTestChecker {
	return &LoginTestChecker{
		map[string]bool{},
	}
}

func (c *LoginTestChecker) IsLogged(_ context.Context, token string) (bool, error) {
	if logged, ok := c.LoggedSessions[token]; !ok {
		return false, nil
	} else {
		return logged, nil
	}
}

// TestKeyResolver is an in-memory Resolver for handler tests.
type TestKeyResolver struct {
	Keys map[string]int
}

func NewTestKeyResolver() *TestKeyResolver {
	return &TestKeyResolver{
		Keys: map[string]int{},
	}
}

func (r *TestKeyResolver) UserIDForKey(_ context.Context, apiKey string) (int, error) {
	userID, ok := r.Keys[apiKey]
	if !ok {
		return 0, ErrUnknownAPIKey
	}
	return userID, nil
}
