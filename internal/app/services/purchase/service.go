// Package purchase implements the purchase transactor: it validates a cart
// against the catalog, aggregates cost per currency, authorizes every
// currency against live balances, and then commits the debit-and-grant
// sequence through the economy provider.
//
// Authorization is all-or-nothing: every currency is checked before any debit
// is issued. The commit itself is a sequence of provider calls with no
// compensating rollback; a failure after the first debit surfaces as a
// TransactionError and leaves the earlier debits and grants in place.
// Concurrent purchases for the same identity are not serialized here; closing
// that race is the provider's responsibility.
package purchase

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	catalogdom "github.com/roleplay-labs/storefront/internal/app/domain/catalog"
	"github.com/roleplay-labs/storefront/internal/app/domain/purchase"
	"github.com/roleplay-labs/storefront/internal/app/economy"
	"github.com/roleplay-labs/storefront/internal/app/metrics"
	catalogsvc "github.com/roleplay-labs/storefront/internal/app/services/catalog"
	"github.com/roleplay-labs/storefront/pkg/logger"
)

// DefaultWeaponAmmo is the charge count granted with every weapon purchase.
const DefaultWeaponAmmo int64 = 100

// Service executes purchase transactions.
type Service struct {
	catalog *catalogsvc.Service
	economy *economy.Registry
	log     *logger.Logger
}

// New constructs the purchase transactor.
func New(catalog *catalogsvc.Service, registry *economy.Registry, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("purchase")
	}
	return &Service{catalog: catalog, economy: registry, log: log}
}

// Purchase runs the full transaction for one cart and returns a receipt on
// success.
func (s *Service) Purchase(ctx context.Context, identifier string, lines []purchase.CartLine) (purchase.Receipt, error) {
	start := time.Now()
	receipt, err := s.purchase(ctx, identifier, lines)
	metrics.RecordPurchase(outcomeLabel(err), time.Since(start))
	return receipt, err
}

func (s *Service) purchase(ctx context.Context, identifier string, lines []purchase.CartLine) (purchase.Receipt, error) {
	if strings.TrimSpace(identifier) == "" || len(lines) == 0 {
		return purchase.Receipt{}, ErrInvalidRequest
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return purchase.Receipt{}, ErrInvalidRequest
		}
	}

	provider, ok := s.economy.Get()
	if !ok {
		return purchase.Receipt{}, ErrProviderUnavailable
	}

	if _, err := provider.Player(ctx, identifier); err != nil {
		return purchase.Receipt{}, err
	}

	// Pricing: line costs accumulate per currency; currencies keep first-seen
	// order so authorization and debits run deterministically.
	totalCost := make(purchase.CostAggregate)
	currencies := make([]catalogdom.Currency, 0, 2)
	items := make([]purchase.Item, 0, len(lines))

	for _, line := range lines {
		entry, err := s.catalog.Get(line.ID)
		if err != nil {
			return purchase.Receipt{}, &ItemNotFoundError{ID: line.ID}
		}

		// Line costs and the running aggregate must not wrap; a wrapped total
		// would authorize against a tiny amount and grant the full quantity.
		if entry.Price > 0 && line.Quantity > math.MaxInt64/entry.Price {
			return purchase.Receipt{}, ErrInvalidRequest
		}
		cost := entry.Price * line.Quantity
		if _, seen := totalCost[entry.Currency]; !seen {
			currencies = append(currencies, entry.Currency)
		}
		if totalCost[entry.Currency] > math.MaxInt64-cost {
			return purchase.Receipt{}, ErrInvalidRequest
		}
		totalCost[entry.Currency] += cost

		items = append(items, purchase.Item{
			Entry:      entry,
			Quantity:   line.Quantity,
			TotalPrice: cost,
		})
	}

	// Authorization: every currency is verified before any debit.
	for _, currency := range currencies {
		required := totalCost[currency]
		balance, err := provider.Balance(ctx, identifier, currency)
		if err != nil {
			return purchase.Receipt{}, &TransactionError{Stage: "authorization", Err: err}
		}
		if balance < required {
			return purchase.Receipt{}, &InsufficientFundsError{
				Currency:  currency,
				Required:  required,
				Shortfall: required - balance,
			}
		}
	}

	// Commit: debits first, then grants.
	for _, currency := range currencies {
		if err := provider.RemoveMoney(ctx, identifier, currency, totalCost[currency]); err != nil {
			return purchase.Receipt{}, &TransactionError{Stage: "debit", Err: err}
		}
		metrics.RecordDebit(string(currency), totalCost[currency])
	}

	for _, item := range items {
		if err := s.fulfill(ctx, provider, identifier, item); err != nil {
			return purchase.Receipt{}, err
		}
	}

	if err := provider.Notify(ctx, identifier, purchaseNotification(totalCost)); err != nil {
		s.log.WithError(err).WithField("identifier", identifier).Warn("purchase notification failed")
	}

	receipt := purchase.Receipt{
		TransactionID: uuid.NewString(),
		Items:         items,
		TotalCost:     totalCost,
	}
	s.log.WithField("transaction_id", receipt.TransactionID).
		WithField("identifier", identifier).
		WithField("items", len(items)).
		WithField("total", totalCost.Total()).
		Info("purchase committed")
	return receipt, nil
}

// fulfill applies one priced item according to its entry kind.
func (s *Service) fulfill(ctx context.Context, provider economy.Provider, identifier string, item purchase.Item) error {
	switch item.Kind {
	case catalogdom.KindWeapon:
		if err := provider.AddWeapon(ctx, identifier, item.ID, DefaultWeaponAmmo); err != nil {
			return &TransactionError{Stage: "weapon grant", Err: err}
		}
	case catalogdom.KindItem:
		if err := provider.AddInventoryItem(ctx, identifier, item.ID, item.Quantity); err != nil {
			return &TransactionError{Stage: "inventory grant", Err: err}
		}
	case catalogdom.KindVehicle:
		// Ownership handoff to the vehicle system is fire-and-forget.
		if err := provider.SetVehicleOwned(ctx, identifier, item.Model); err != nil {
			s.log.WithError(err).
				WithField("identifier", identifier).
				WithField("model", item.Model).
				Warn("vehicle ownership signal failed")
		}
	default:
		return &TransactionError{Stage: "fulfillment", Err: errors.New("unknown item type " + string(item.Kind))}
	}
	return nil
}

func purchaseNotification(totalCost purchase.CostAggregate) string {
	return "Purchase complete! Total spent: $" + formatAmount(totalCost.Total())
}

// formatAmount inserts thousands separators, matching the client's money
// formatting.
func formatAmount(amount int64) string {
	digits := strconv.FormatInt(amount, 10)
	var out []byte
	for i := 0; i < len(digits); i++ {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, digits[i])
	}
	return string(out)
}

func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrInvalidRequest):
		return "invalid_request"
	case errors.Is(err, ErrProviderUnavailable):
		return "provider_unavailable"
	case errors.Is(err, economy.ErrPlayerNotFound):
		return "player_not_found"
	default:
		var notFound *ItemNotFoundError
		var funds *InsufficientFundsError
		if errors.As(err, &notFound) {
			return "item_not_found"
		}
		if errors.As(err, &funds) {
			return "insufficient_funds"
		}
		return "failed"
	}
}
