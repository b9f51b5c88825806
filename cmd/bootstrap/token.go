package bootstrap

import (
	"rinto/internal/pkg/config"
	"rinto/internal/pkg/token"

	"go.uber.org/fx"
)

var TokenModule = fx.Module("token",
	fx.Provide(
		NewTokenVerifier,
	),
)

func NewTokenVerifier(cfg config.Config) *token.Verifier {
	return token.NewVerifier(cfg.Token.Secret)
}
