package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/roleplay-labs/storefront/internal/app/domain/catalog"
	"github.com/roleplay-labs/storefront/internal/app/economy"
	"github.com/roleplay-labs/storefront/internal/app/economy/memory"
)

const ident = "license:abc123"

func seeded() *memory.Backend {
	backend := memory.New()
	backend.AddPlayer(memory.PlayerState{
		Identifier: ident,
		Name:       "Test Player",
		Job:        "mechanic",
		JobGrade:   "boss",
		Accounts: map[catalog.Currency]int64{
			catalog.CurrencyMoney:      500,
			catalog.CurrencyBlackMoney: 50,
		},
		Inventory: map[string]int64{"bread": 2},
	})
	return backend
}

func TestPlayerSnapshot(t *testing.T) {
	backend := seeded()

	player, err := backend.Player(context.Background(), ident)
	if err != nil {
		t.Fatalf("player: %v", err)
	}
	if player.Name != "Test Player" || player.Job != "mechanic" {
		t.Fatalf("unexpected player: %+v", player)
	}
	if player.Accounts[catalog.CurrencyMoney] != 500 {
		t.Fatalf("unexpected money balance: %d", player.Accounts[catalog.CurrencyMoney])
	}
	if len(player.Inventory) != 1 || player.Inventory[0].Name != "bread" {
		t.Fatalf("unexpected inventory: %+v", player.Inventory)
	}

	// The snapshot is a copy.
	player.Accounts[catalog.CurrencyMoney] = 0
	again, _ := backend.Player(context.Background(), ident)
	if again.Accounts[catalog.CurrencyMoney] != 500 {
		t.Fatal("mutating a snapshot must not change backend state")
	}
}

func TestPlayerNotFound(t *testing.T) {
	backend := memory.New()

	if _, err := backend.Player(context.Background(), "steam:ghost"); !errors.Is(err, economy.ErrPlayerNotFound) {
		t.Fatalf("expected ErrPlayerNotFound, got %v", err)
	}
	if _, err := backend.Balance(context.Background(), "steam:ghost", catalog.CurrencyMoney); !errors.Is(err, economy.ErrPlayerNotFound) {
		t.Fatalf("expected ErrPlayerNotFound, got %v", err)
	}
	if err := backend.AddWeapon(context.Background(), "steam:ghost", "weapon_pistol", 100); !errors.Is(err, economy.ErrPlayerNotFound) {
		t.Fatalf("expected ErrPlayerNotFound, got %v", err)
	}
}

func TestRemoveMoney(t *testing.T) {
	backend := seeded()

	if err := backend.RemoveMoney(context.Background(), ident, catalog.CurrencyMoney, 200); err != nil {
		t.Fatalf("debit: %v", err)
	}
	got, _ := backend.Balance(context.Background(), ident, catalog.CurrencyMoney)
	if got != 300 {
		t.Fatalf("expected balance 300, got %d", got)
	}
}

func TestRemoveMoneyRefusesOverdraw(t *testing.T) {
	backend := seeded()

	err := backend.RemoveMoney(context.Background(), ident, catalog.CurrencyBlackMoney, 60)
	if !errors.Is(err, economy.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}

	got, _ := backend.Balance(context.Background(), ident, catalog.CurrencyBlackMoney)
	if got != 50 {
		t.Fatalf("failed debit must not change the balance, got %d", got)
	}
}

func TestRemoveMoneyRejectsNegativeAmounts(t *testing.T) {
	backend := seeded()

	if err := backend.RemoveMoney(context.Background(), ident, catalog.CurrencyMoney, -10); err == nil {
		t.Fatal("expected a negative debit to be rejected")
	}
}

func TestGrantsAccumulate(t *testing.T) {
	backend := seeded()
	ctx := context.Background()

	if err := backend.AddInventoryItem(ctx, ident, "bread", 3); err != nil {
		t.Fatalf("grant: %v", err)
	}
	player, _ := backend.Player(ctx, ident)
	if player.Inventory[0].Count != 5 {
		t.Fatalf("expected the bread stack to reach 5, got %d", player.Inventory[0].Count)
	}

	if err := backend.AddWeapon(ctx, ident, "weapon_pistol", 100); err != nil {
		t.Fatalf("weapon grant: %v", err)
	}
	if weapons := backend.Weapons(ident); len(weapons) != 1 {
		t.Fatalf("expected 1 weapon, got %v", weapons)
	}

	if err := backend.Notify(ctx, ident, "hello"); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if notes := backend.Notifications(ident); len(notes) != 1 || notes[0] != "hello" {
		t.Fatalf("unexpected notifications: %v", notes)
	}
}

func TestSetVehicleOwnedAcceptsOfflineIdentifier(t *testing.T) {
	backend := memory.New()

	// Vehicle ownership keys on the persistent identifier, so the signal is
	// accepted even without a live session.
	if err := backend.SetVehicleOwned(context.Background(), "steam:offline", "bmx"); err != nil {
		t.Fatalf("vehicle signal: %v", err)
	}
	if vehicles := backend.OwnedVehicles("steam:offline"); len(vehicles) != 1 || vehicles[0] != "bmx" {
		t.Fatalf("unexpected vehicles: %v", vehicles)
	}
}

func TestRemovePlayerDropsSession(t *testing.T) {
	backend := seeded()
	backend.RemovePlayer(ident)

	if _, err := backend.Player(context.Background(), ident); !errors.Is(err, economy.ErrPlayerNotFound) {
		t.Fatalf("expected ErrPlayerNotFound after removal, got %v", err)
	}
}
