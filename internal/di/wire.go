//go:build wireinject
// +build wireinject

package di

import (
	"CreditLens/pkg/config"
	"CreditLens/pkg/server"

	"github.com/google/wire"
)

var serviceSet = wire.NewSet(
	// Infrastructure
	ProvideLogger,
	ProvideMetrics,
	ProvideCache,

	// Repositories
	ProvideAssetStore,
	ProvideCatalog,

	// Use cases
	ProvideLoanScoring,
	ProvideBanknote,
	ProvideServices,
)

// InitializeServices wires the use cases without the HTTP layer. Used by the CLI.
func InitializeServices(cfg *config.Config) (*Services, error) {
	wire.Build(serviceSet)
	return &Services{}, nil
}

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		serviceSet,

		// HTTP
		ProvideHandler,
		ProvideLimiter,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
