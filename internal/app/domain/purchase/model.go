// Package purchase defines the request and result types of the purchase
// transaction flow.
package purchase

import "github.com/roleplay-labs/storefront/internal/app/domain/catalog"

// CartLine is one requested catalog entry with a quantity, as supplied by the
// presentation client. Lines are validated against catalog existence only;
// advisory stock is never checked.
type CartLine struct {
	ID       string `json:"id"`
	Quantity int64  `json:"quantity"`
}

// CostAggregate maps each currency to the total amount a cart requires from
// it. It lives for one request.
type CostAggregate map[catalog.Currency]int64

// Total sums the aggregate across all currencies.
func (c CostAggregate) Total() int64 {
	var total int64
	for _, amount := range c {
		total += amount
	}
	return total
}

// Item is one priced purchase line: the catalog entry plus the requested
// quantity and computed line cost, in cart order.
type Item struct {
	catalog.Entry
	Quantity   int64 `json:"quantity"`
	TotalPrice int64 `json:"totalPrice"`
}

// Receipt is the result of a committed purchase.
type Receipt struct {
	TransactionID string        `json:"transactionId"`
	Items         []Item        `json:"items"`
	TotalCost     CostAggregate `json:"totalCost"`
}
