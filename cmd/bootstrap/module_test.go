//go:build unit

package bootstrap_test

import (
	"log/slog"
	"testing"

	"bookcars/cmd/bootstrap"
	"bookcars/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
)

// The full object graph must resolve with exactly the providers main supplies.
// A constructor asking for a type nothing provides should fail here, not at
// boot.
func TestModuleGraphResolves(t *testing.T) {
	err := fx.ValidateApp(
		bootstrap.Module,
		fx.Provide(
			func(_ config.Config) *slog.Logger {
				return slog.Default()
			},
			func() *gin.Engine {
				return gin.New()
			},
		),
	)
	require.NoError(t, err)
}
