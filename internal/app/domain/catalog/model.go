// Package catalog defines the storefront catalog model: purchasable entries
// and the closed enumerations shared with the presentation client.
package catalog

// Currency identifies one of the economy's parallel balances.
type Currency string

const (
	CurrencyMoney      Currency = "money"
	CurrencyBlackMoney Currency = "black_money"
	CurrencyBank       Currency = "bank"
)

// Valid reports whether the currency belongs to the closed set.
func (c Currency) Valid() bool {
	switch c {
	case CurrencyMoney, CurrencyBlackMoney, CurrencyBank:
		return true
	}
	return false
}

// Category identifies a storefront section.
type Category string

const (
	CategoryAll         Category = "all"
	CategoryWeapons     Category = "weapons"
	CategoryFood        Category = "food"
	CategoryElectronics Category = "electronics"
	CategoryTools       Category = "tools"
	CategoryVehicles    Category = "vehicles"
)

// Valid reports whether the category belongs to the closed set. CategoryAll
// is a filter value only and is not valid on an entry.
func (c Category) Valid() bool {
	switch c {
	case CategoryWeapons, CategoryFood, CategoryElectronics, CategoryTools, CategoryVehicles:
		return true
	}
	return false
}

// Categories lists the filter values offered to the client, declaration
// order, with the synthetic "all" first.
func Categories() []Category {
	return []Category{
		CategoryAll,
		CategoryWeapons,
		CategoryFood,
		CategoryElectronics,
		CategoryTools,
		CategoryVehicles,
	}
}

// Kind controls how a successful purchase of an entry is fulfilled.
type Kind string

const (
	KindWeapon  Kind = "weapon"
	KindItem    Kind = "item"
	KindVehicle Kind = "vehicle"
)

// Valid reports whether the kind belongs to the closed set.
func (k Kind) Valid() bool {
	switch k {
	case KindWeapon, KindItem, KindVehicle:
		return true
	}
	return false
}

// UnlimitedStock is the sentinel stock value meaning "never runs out". Stock
// is advisory either way; the purchase flow never decrements it.
const UnlimitedStock int64 = -1

// Entry is one purchasable catalog entry. Entries are immutable after load.
type Entry struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Price       int64    `json:"price" yaml:"price"`
	Currency    Currency `json:"currency" yaml:"currency"`
	Image       string   `json:"image" yaml:"image"`
	Category    Category `json:"category" yaml:"category"`
	Stock       int64    `json:"stock" yaml:"stock"`
	Kind        Kind     `json:"itemType" yaml:"itemType"`
	Model       string   `json:"model,omitempty" yaml:"model,omitempty"`
}
