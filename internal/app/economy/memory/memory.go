// Package memory provides a thread-safe in-memory economy backend. It backs
// the dev deployment mode and the test suites; production deployments attach
// the real game-framework bridge instead.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/roleplay-labs/storefront/internal/app/domain/catalog"
	"github.com/roleplay-labs/storefront/internal/app/economy"
)

// PlayerState is the mutable record behind one seeded player.
type PlayerState struct {
	Identifier string
	Name       string
	Job        string
	JobGrade   string
	Accounts   map[catalog.Currency]int64
	Inventory  map[string]int64
}

// Backend implements economy.Provider over an in-process player table.
type Backend struct {
	mu            sync.RWMutex
	players       map[string]*PlayerState
	weapons       map[string][]string
	ownedVehicles map[string][]string
	notifications map[string][]string
}

var _ economy.Provider = (*Backend)(nil)

// New creates an empty backend.
func New() *Backend {
	return &Backend{
		players:       make(map[string]*PlayerState),
		weapons:       make(map[string][]string),
		ownedVehicles: make(map[string][]string),
		notifications: make(map[string][]string),
	}
}

// AddPlayer seeds a live session. Existing state for the identifier is
// replaced.
func (b *Backend) AddPlayer(p PlayerState) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if p.Accounts == nil {
		p.Accounts = make(map[catalog.Currency]int64)
	}
	if p.Inventory == nil {
		p.Inventory = make(map[string]int64)
	}
	b.players[p.Identifier] = &p
}

// RemovePlayer drops a session, simulating the player going offline.
func (b *Backend) RemovePlayer(identifier string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.players, identifier)
}

func (b *Backend) Player(_ context.Context, identifier string) (economy.Player, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	p, ok := b.players[identifier]
	if !ok {
		return economy.Player{}, economy.ErrPlayerNotFound
	}

	accounts := make(map[catalog.Currency]int64, len(p.Accounts))
	for cur, amount := range p.Accounts {
		accounts[cur] = amount
	}
	inventory := make([]economy.InventoryItem, 0, len(p.Inventory))
	for name, count := range p.Inventory {
		inventory = append(inventory, economy.InventoryItem{Name: name, Count: count})
	}

	return economy.Player{
		Identifier: p.Identifier,
		Name:       p.Name,
		Job:        p.Job,
		JobGrade:   p.JobGrade,
		Accounts:   accounts,
		Inventory:  inventory,
	}, nil
}

func (b *Backend) Balance(_ context.Context, identifier string, currency catalog.Currency) (int64, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	p, ok := b.players[identifier]
	if !ok {
		return 0, economy.ErrPlayerNotFound
	}
	return p.Accounts[currency], nil
}

func (b *Backend) RemoveMoney(_ context.Context, identifier string, currency catalog.Currency, amount int64) error {
	if amount < 0 {
		return fmt.Errorf("debit amount must not be negative: %d", amount)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	p, ok := b.players[identifier]
	if !ok {
		return economy.ErrPlayerNotFound
	}
	if p.Accounts[currency] < amount {
		return economy.ErrInsufficientBalance
	}
	p.Accounts[currency] -= amount
	return nil
}

func (b *Backend) AddInventoryItem(_ context.Context, identifier, itemID string, count int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	p, ok := b.players[identifier]
	if !ok {
		return economy.ErrPlayerNotFound
	}
	p.Inventory[itemID] += count
	return nil
}

func (b *Backend) AddWeapon(_ context.Context, identifier, weaponID string, ammo int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.players[identifier]; !ok {
		return economy.ErrPlayerNotFound
	}
	b.weapons[identifier] = append(b.weapons[identifier], fmt.Sprintf("%s:%d", weaponID, ammo))
	return nil
}

func (b *Backend) SetVehicleOwned(_ context.Context, identifier, model string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Ownership signals are accepted even for sessions that dropped between
	// authorization and commit; the real vehicle system keys on the
	// persistent identifier, not the live session.
	b.ownedVehicles[identifier] = append(b.ownedVehicles[identifier], model)
	return nil
}

func (b *Backend) Notify(_ context.Context, identifier, message string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.players[identifier]; !ok {
		return economy.ErrPlayerNotFound
	}
	b.notifications[identifier] = append(b.notifications[identifier], message)
	return nil
}

// Weapons returns the weapons granted to a player, oldest first.
func (b *Backend) Weapons(identifier string) []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]string(nil), b.weapons[identifier]...)
}

// OwnedVehicles returns the vehicle models signalled as owned by a player.
func (b *Backend) OwnedVehicles(identifier string) []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]string(nil), b.ownedVehicles[identifier]...)
}

// Notifications returns the notifications pushed to a player, oldest first.
func (b *Backend) Notifications(identifier string) []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]string(nil), b.notifications[identifier]...)
}
