package catalog_test

import (
	"errors"
	"testing"

	domain "github.com/roleplay-labs/storefront/internal/app/domain/catalog"
	catalogsvc "github.com/roleplay-labs/storefront/internal/app/services/catalog"
)

func testEntries() []domain.Entry {
	return []domain.Entry{
		{ID: "weapon_pistol", Name: "Pistol", Price: 5000, Currency: domain.CurrencyMoney, Category: domain.CategoryWeapons, Stock: domain.UnlimitedStock, Kind: domain.KindWeapon},
		{ID: "bread", Name: "Bread", Price: 10, Currency: domain.CurrencyMoney, Category: domain.CategoryFood, Stock: domain.UnlimitedStock, Kind: domain.KindItem},
		{ID: "water", Name: "Water", Price: 5, Currency: domain.CurrencyMoney, Category: domain.CategoryFood, Stock: domain.UnlimitedStock, Kind: domain.KindItem},
		{ID: "lockpick", Name: "Lockpick", Price: 150, Currency: domain.CurrencyBlackMoney, Category: domain.CategoryTools, Stock: domain.UnlimitedStock, Kind: domain.KindItem},
		{ID: "bmx", Name: "BMX", Price: 200, Currency: domain.CurrencyMoney, Category: domain.CategoryVehicles, Stock: domain.UnlimitedStock, Kind: domain.KindVehicle, Model: "bmx"},
	}
}

func TestNewRejectsInvalidEntries(t *testing.T) {
	cases := []struct {
		name  string
		entry domain.Entry
	}{
		{"empty id", domain.Entry{ID: " ", Currency: domain.CurrencyMoney, Category: domain.CategoryFood, Kind: domain.KindItem}},
		{"negative price", domain.Entry{ID: "x", Price: -1, Currency: domain.CurrencyMoney, Category: domain.CategoryFood, Kind: domain.KindItem}},
		{"unknown currency", domain.Entry{ID: "x", Currency: "gold", Category: domain.CategoryFood, Kind: domain.KindItem}},
		{"unknown category", domain.Entry{ID: "x", Currency: domain.CurrencyMoney, Category: "misc", Kind: domain.KindItem}},
		{"all as entry category", domain.Entry{ID: "x", Currency: domain.CurrencyMoney, Category: domain.CategoryAll, Kind: domain.KindItem}},
		{"unknown kind", domain.Entry{ID: "x", Currency: domain.CurrencyMoney, Category: domain.CategoryFood, Kind: "pet"}},
		{"vehicle without model", domain.Entry{ID: "x", Currency: domain.CurrencyMoney, Category: domain.CategoryVehicles, Kind: domain.KindVehicle}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := catalogsvc.New([]domain.Entry{tc.entry}, nil); err == nil {
				t.Fatalf("expected construction to fail for %s", tc.name)
			}
		})
	}
}

func TestNewRejectsDuplicateIDs(t *testing.T) {
	entries := testEntries()
	entries = append(entries, entries[1])

	if _, err := catalogsvc.New(entries, nil); err == nil {
		t.Fatal("expected duplicate id to be rejected")
	}
}

func TestListPreservesDeclarationOrder(t *testing.T) {
	svc, err := catalogsvc.New(testEntries(), nil)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	all := svc.List("")
	if len(all) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(all))
	}
	want := []string{"weapon_pistol", "bread", "water", "lockpick", "bmx"}
	for i, id := range want {
		if all[i].ID != id {
			t.Fatalf("entry %d: expected %s, got %s", i, id, all[i].ID)
		}
	}
}

func TestListFiltersByCategory(t *testing.T) {
	svc, err := catalogsvc.New(testEntries(), nil)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	food := svc.List(domain.CategoryFood)
	if len(food) != 2 {
		t.Fatalf("expected 2 food entries, got %d", len(food))
	}
	if food[0].ID != "bread" || food[1].ID != "water" {
		t.Fatalf("unexpected food entries: %v", food)
	}

	if got := svc.List(domain.CategoryAll); len(got) != 5 {
		t.Fatalf("category all should return everything, got %d", len(got))
	}

	if got := svc.List("nonexistent"); len(got) != 0 {
		t.Fatalf("unknown category should return an empty list, got %d entries", len(got))
	}
}

func TestListReturnsACopy(t *testing.T) {
	svc, err := catalogsvc.New(testEntries(), nil)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	first := svc.List("")
	first[0].Price = 1

	second := svc.List("")
	if second[0].Price != 5000 {
		t.Fatal("mutating a List result must not change the catalog")
	}
}

func TestGet(t *testing.T) {
	svc, err := catalogsvc.New(testEntries(), nil)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	entry, err := svc.Get("bread")
	if err != nil {
		t.Fatalf("get bread: %v", err)
	}
	if entry.Price != 10 || entry.Currency != domain.CurrencyMoney {
		t.Fatalf("unexpected entry: %+v", entry)
	}

	if _, err := svc.Get("caviar"); !errors.Is(err, catalogsvc.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCategoriesListsAllFirst(t *testing.T) {
	svc, err := catalogsvc.New(testEntries(), nil)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	cats := svc.Categories()
	if len(cats) != 6 {
		t.Fatalf("expected 6 categories, got %d", len(cats))
	}
	if cats[0] != domain.CategoryAll {
		t.Fatalf("expected %q first, got %q", domain.CategoryAll, cats[0])
	}
}
