package types

import "fmt"

// Error kinds returned in the machine-readable "kind" field of error
// responses. Clients branch on these, never on the message text.
const (
	KindUnauthenticated     = "unauthenticated"
	KindAccountNotFound     = "account_not_found"
	KindInsufficientCredits = "insufficient_credits"
	KindEmptyCatalogTier    = "empty_catalog_tier"
	KindGrantFailed         = "grant_failed"
	KindStoreFailure        = "store_failure"
	KindNotFound            = "not_found"
)

// CustomError carries an HTTP status code and a stable kind alongside the
// human-readable message.
type CustomError struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [kind: %s]", e.Code, e.Message, e.Kind)
}
