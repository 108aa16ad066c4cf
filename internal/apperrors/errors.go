package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
var (
	// ErrCoinNotFound indicates that a coin id lookup returned no results.
	ErrCoinNotFound = errors.New("coin not found")

	// ErrNoCoins indicates that the coin list table is empty, so a random
	// price refresh has nothing to pick from.
	ErrNoCoins = errors.New("no coins available")

	// ErrSettingNotFound indicates that a settings key has no stored value.
	ErrSettingNotFound = errors.New("setting not found")
)

// Business logic errors represent validation failures or constraint violations.
var (
	// ErrTooManyRequests indicates a refresh operation was invoked within its
	// cooldown window. This is a local rate limit, not an upstream error.
	ErrTooManyRequests = errors.New("too many requests")

	// ErrFernetKeyNotConfigured indicates that encrypted settings cannot be
	// used because no FERNET_KEY was configured.
	ErrFernetKeyNotConfigured = errors.New("fernet key not configured")

	// ErrMissingAPIKey indicates that an API key value is required but empty.
	ErrMissingAPIKey = errors.New("api key cannot be empty")
)

// Operation failure errors represent system-level failures when retrieving or
// processing data.
var (
	ErrFailedToImportLedger         = errors.New("failed to import ledger")
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")
	ErrFailedToBuildSnapshot        = errors.New("failed to build portfolio snapshot")
	ErrFailedToRefreshCoinList      = errors.New("failed to refresh coin list")
	ErrFailedToRefreshPrices        = errors.New("failed to refresh prices")
	ErrFailedToStoreAPIKey          = errors.New("failed to store api key")
)
