// Package app ties the storefront services together and manages their
// lifecycle.
package app

import (
	"context"
	"fmt"

	"github.com/roleplay-labs/storefront/internal/app/domain/catalog"
	"github.com/roleplay-labs/storefront/internal/app/economy"
	catalogsvc "github.com/roleplay-labs/storefront/internal/app/services/catalog"
	purchasesvc "github.com/roleplay-labs/storefront/internal/app/services/purchase"
	"github.com/roleplay-labs/storefront/internal/app/system"
	"github.com/roleplay-labs/storefront/pkg/logger"
)

// Application exposes the storefront services behind one wiring point.
type Application struct {
	manager *system.Manager
	log     *logger.Logger

	Catalog   *catalogsvc.Service
	Purchases *purchasesvc.Service
	Economy   *economy.Registry
}

// New builds a fully initialised application. The economy registry may be
// empty at construction; the host framework attaches the provider when it
// finishes loading.
func New(entries []catalog.Entry, registry *economy.Registry, log *logger.Logger) (*Application, error) {
	if log == nil {
		log = logger.NewDefault("app")
	}
	if registry == nil {
		registry = economy.NewRegistry()
	}

	catalogService, err := catalogsvc.New(entries, log.WithField("service", "catalog"))
	if err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}
	purchaseService := purchasesvc.New(catalogService, registry, log.WithField("service", "purchase"))

	manager := system.NewManager()
	for _, name := range []string{"catalog", "purchase"} {
		if err := manager.Register(system.NoopService{ServiceName: name}); err != nil {
			return nil, fmt.Errorf("register %s service: %w", name, err)
		}
	}

	return &Application{
		manager:   manager,
		log:       log,
		Catalog:   catalogService,
		Purchases: purchaseService,
		Economy:   registry,
	}, nil
}

// Attach registers an additional lifecycle-managed service. Call before Start.
func (a *Application) Attach(service system.Service) error {
	return a.manager.Register(service)
}

// Start begins all registered services.
func (a *Application) Start(ctx context.Context) error {
	return a.manager.Start(ctx)
}

// Stop stops all services.
func (a *Application) Stop(ctx context.Context) error {
	return a.manager.Stop(ctx)
}
