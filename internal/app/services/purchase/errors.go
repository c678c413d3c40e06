package purchase

import (
	"errors"
	"fmt"

	"github.com/roleplay-labs/storefront/internal/app/domain/catalog"
)

// ErrInvalidRequest is returned for malformed input: empty identifier, empty
// cart, or a non-positive quantity.
var ErrInvalidRequest = errors.New("identifier and a non-empty cart are required")

// ErrProviderUnavailable is returned while no economy provider is attached.
var ErrProviderUnavailable = errors.New("economy provider not loaded")

// ItemNotFoundError rejects a cart referencing an unknown catalog id.
type ItemNotFoundError struct {
	ID string
}

func (e *ItemNotFoundError) Error() string {
	return fmt.Sprintf("item %s does not exist", e.ID)
}

// InsufficientFundsError aborts authorization, naming the short currency and
// how much is missing.
type InsufficientFundsError struct {
	Currency  catalog.Currency
	Required  int64
	Shortfall int64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient %s balance (need $%d, short $%d)", e.Currency, e.Required, e.Shortfall)
}

// TransactionError wraps an unexpected provider failure during commit. By the
// time it is raised, earlier debits or grants may already have been applied;
// no rollback is attempted.
type TransactionError struct {
	Stage string
	Err   error
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("transaction failed during %s: %v", e.Stage, e.Err)
}

func (e *TransactionError) Unwrap() error {
	return e.Err
}
