package core

import "context"

// IAuthzService authorization capability check consumed before any
// administrative mutation; the core trusts the verdict
type IAuthzService interface {
	Allowed(ctx context.Context, userID string) bool
}
