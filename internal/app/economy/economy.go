// Package economy declares the boundary to the game framework that owns
// player identity, balances, and inventory. The storefront only issues
// read/debit/grant calls through the Provider interface; it never mutates
// session state directly.
package economy

import (
	"context"
	"errors"
	"sync"

	"github.com/roleplay-labs/storefront/internal/app/domain/catalog"
)

// ErrPlayerNotFound is returned when an identifier does not resolve to a live
// session.
var ErrPlayerNotFound = errors.New("player not online or not found")

// ErrInsufficientBalance is returned by RemoveMoney when a debit would
// overdraw the account.
var ErrInsufficientBalance = errors.New("insufficient account balance")

// Player is a read-only snapshot of a live session, fetched fresh per
// request.
type Player struct {
	Identifier string                     `json:"identifier"`
	Name       string                     `json:"name"`
	Job        string                     `json:"job"`
	JobGrade   string                     `json:"jobGrade"`
	Accounts   map[catalog.Currency]int64 `json:"accounts"`
	Inventory  []InventoryItem            `json:"inventory"`
}

// InventoryItem is one stack in a player's inventory snapshot.
type InventoryItem struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// Provider is the economy backend. Implementations are expected to serialize
// mutations per session; the storefront performs no cross-request locking of
// its own.
type Provider interface {
	// Player resolves an identifier to a live session snapshot.
	Player(ctx context.Context, identifier string) (Player, error)

	// Balance reads the live balance of one account.
	Balance(ctx context.Context, identifier string, currency catalog.Currency) (int64, error)

	// RemoveMoney debits an account by amount.
	RemoveMoney(ctx context.Context, identifier string, currency catalog.Currency, amount int64) error

	// AddInventoryItem grants count units of an inventory item.
	AddInventoryItem(ctx context.Context, identifier, itemID string, count int64) error

	// AddWeapon grants a weapon with the given ammo count.
	AddWeapon(ctx context.Context, identifier, weaponID string, ammo int64) error

	// SetVehicleOwned signals the vehicle-ownership collaborator that the
	// player now owns the model. Fire and forget; the storefront does not
	// verify the outcome.
	SetVehicleOwned(ctx context.Context, identifier, model string) error

	// Notify pushes a user-facing notification to the session.
	Notify(ctx context.Context, identifier, message string) error
}

// Registry holds the provider handle. The host framework attaches the
// provider asynchronously after it finishes loading, so every request path
// checks readiness through the registry instead of touching a bare global.
type Registry struct {
	mu       sync.RWMutex
	provider Provider
}

// NewRegistry creates an empty, not-ready registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Set attaches the provider. Later calls replace the handle.
func (r *Registry) Set(p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.provider = p
}

// Get returns the provider and whether one is attached.
func (r *Registry) Get() (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.provider, r.provider != nil
}

// Ready reports whether a provider is attached.
func (r *Registry) Ready() bool {
	_, ok := r.Get()
	return ok
}
