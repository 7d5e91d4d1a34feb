package host

import (
	"context"

	"go.uber.org/zap"

	"github.com/khodecamp/keycloak-demo/internal/platform/logging"
	"github.com/khodecamp/keycloak-demo/internal/provider"
)

type session struct {
	ctx   context.Context
	realm string
}

func (s session) Context() context.Context { return s.ctx }
func (s session) Realm() string            { return s.realm }

// sessionFactory opens sessions whose context carries a realm-scoped logger.
type sessionFactory struct{}

func (sessionFactory) Create(ctx context.Context, realm string) provider.Session {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.LoggerFromContext(ctx).With(zap.String("realm", realm))
	return session{ctx: logging.WithLogger(ctx, logger), realm: realm}
}
