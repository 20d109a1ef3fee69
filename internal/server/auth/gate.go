package auth

import (
	"context"

	"github.com/sdpatel1986/ng-dragon-medical/internal/common"
)

// Gate is the single choke point external dispatch logic calls before
// performing a protected operation. Any validation failure collapses to
// common.ErrUnauthorized; the token value is never logged.
type Gate struct {
	tokens *Service
}

func NewGate(tokens *Service) *Gate {
	return &Gate{tokens: tokens}
}

// Authorize returns nil iff the token currently represents a valid session.
func (g *Gate) Authorize(ctx context.Context, token string) error {
	ok, err := g.tokens.Validate(ctx, token)
	if err != nil || !ok {
		return common.ErrUnauthorized
	}
	return nil
}
