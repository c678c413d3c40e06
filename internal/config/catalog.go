package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roleplay-labs/storefront/internal/app/domain/catalog"
)

// CatalogFile is the on-disk catalog table, grouped by entry kind the way the
// storefront presents it. Flatten produces the process-wide lookup list.
type CatalogFile struct {
	Weapons  []catalog.Entry `yaml:"weapons"`
	Items    []catalog.Entry `yaml:"items"`
	Vehicles []catalog.Entry `yaml:"vehicles"`
}

// Flatten returns all entries in declaration order: weapons, then items, then
// vehicles.
func (f *CatalogFile) Flatten() []catalog.Entry {
	entries := make([]catalog.Entry, 0, len(f.Weapons)+len(f.Items)+len(f.Vehicles))
	entries = append(entries, f.Weapons...)
	entries = append(entries, f.Items...)
	entries = append(entries, f.Vehicles...)
	return entries
}

// LoadCatalogFromPath reads and parses a catalog table.
func LoadCatalogFromPath(path string) (*CatalogFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	var file CatalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog file: %w", err)
	}
	return &file, nil
}

// LoadCatalogOrDefault loads the catalog from path, falling back to the
// built-in table when the file does not exist. Parse errors are still
// surfaced: a present-but-broken table should fail startup, not be silently
// replaced.
func LoadCatalogOrDefault(path string) (*CatalogFile, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultCatalog(), nil
	}
	return LoadCatalogFromPath(path)
}

// DefaultCatalog returns the built-in catalog table.
func DefaultCatalog() *CatalogFile {
	return &CatalogFile{
		Weapons: []catalog.Entry{
			{
				ID:          "weapon_pistol",
				Name:        "Pistol",
				Description: "Standard 9mm sidearm, fine for self-defense",
				Price:       5000,
				Currency:    catalog.CurrencyMoney,
				Image:       "🔫",
				Category:    catalog.CategoryWeapons,
				Stock:       catalog.UnlimitedStock,
				Kind:        catalog.KindWeapon,
			},
			{
				ID:          "weapon_assaultrifle",
				Name:        "Assault Rifle",
				Description: "Powerful automatic rifle",
				Price:       25000,
				Currency:    catalog.CurrencyBlackMoney,
				Image:       "🔫",
				Category:    catalog.CategoryWeapons,
				Stock:       catalog.UnlimitedStock,
				Kind:        catalog.KindWeapon,
			},
		},
		Items: []catalog.Entry{
			{
				ID:          "bread",
				Name:        "Bread",
				Description: "Restores a little hunger",
				Price:       10,
				Currency:    catalog.CurrencyMoney,
				Image:       "🍞",
				Category:    catalog.CategoryFood,
				Stock:       catalog.UnlimitedStock,
				Kind:        catalog.KindItem,
			},
			{
				ID:          "water",
				Name:        "Water",
				Description: "Restores a little thirst",
				Price:       5,
				Currency:    catalog.CurrencyMoney,
				Image:       "💧",
				Category:    catalog.CategoryFood,
				Stock:       catalog.UnlimitedStock,
				Kind:        catalog.KindItem,
			},
			{
				ID:          "phone",
				Name:        "Phone",
				Description: "Smartphone for staying in touch",
				Price:       500,
				Currency:    catalog.CurrencyMoney,
				Image:       "📱",
				Category:    catalog.CategoryElectronics,
				Stock:       catalog.UnlimitedStock,
				Kind:        catalog.KindItem,
			},
			{
				ID:          "lockpick",
				Name:        "Lockpick",
				Description: "Opens things that are locked",
				Price:       150,
				Currency:    catalog.CurrencyBlackMoney,
				Image:       "🔧",
				Category:    catalog.CategoryTools,
				Stock:       catalog.UnlimitedStock,
				Kind:        catalog.KindItem,
			},
		},
		Vehicles: []catalog.Entry{
			{
				ID:          "bmx",
				Name:        "BMX",
				Description: "Emission-free way to get around",
				Price:       200,
				Currency:    catalog.CurrencyMoney,
				Image:       "🚲",
				Category:    catalog.CategoryVehicles,
				Stock:       catalog.UnlimitedStock,
				Kind:        catalog.KindVehicle,
				Model:       "bmx",
			},
			{
				ID:          "faggio",
				Name:        "Faggio",
				Description: "Budget scooter that gets the job done",
				Price:       2000,
				Currency:    catalog.CurrencyMoney,
				Image:       "🛵",
				Category:    catalog.CategoryVehicles,
				Stock:       catalog.UnlimitedStock,
				Kind:        catalog.KindVehicle,
				Model:       "faggio",
			},
		},
	}
}
