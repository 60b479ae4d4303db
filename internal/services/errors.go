package services

import (
	"net/http"

	"github.com/catnipgames/catpacks/internal/types"
)

// Domain errors for the pack-opening and ledger operations. Handlers map
// these straight onto the wire via their Code and Kind.
var (
	ErrAccountNotFound = &types.CustomError{
		Code:    http.StatusBadRequest,
		Kind:    types.KindAccountNotFound,
		Message: "account not found",
	}
	ErrInsufficientCredits = &types.CustomError{
		Code:    http.StatusBadRequest,
		Kind:    types.KindInsufficientCredits,
		Message: "insufficient credits",
	}
	ErrEmptyCatalogTier = &types.CustomError{
		Code:    http.StatusInternalServerError,
		Kind:    types.KindEmptyCatalogTier,
		Message: "no catalog items for the rolled rarity",
	}
	ErrGrantFailed = &types.CustomError{
		Code:    http.StatusInternalServerError,
		Kind:    types.KindGrantFailed,
		Message: "pack grant failed, credits were not debited",
	}
)
