package authz

import (
	"context"

	"lever/core"
)

type service struct {
	config *core.Config
}

// New config backed authorization service
func New(config *core.Config) core.IAuthzService {
	return &service{config: config}
}

func (s *service) Allowed(ctx context.Context, userID string) bool {
	return s.config.IsAdmin(userID)
}
