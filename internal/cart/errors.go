package cart

import pkgerrors "github.com/mediguide/storefront-client/pkg/errors"

// StockExceededDetails reports how many additional units of the product can
// still be purchased.
type StockExceededDetails struct {
	Available int `json:"available"`
}

func stockExceeded(available int, message string) error {
	return pkgerrors.New(pkgerrors.CodeStockExceeded, message).
		WithDetails(StockExceededDetails{Available: available})
}

// StockAvailable extracts the remaining purchasable quantity from a
// stock-exceeded error.
func StockAvailable(err error) (int, bool) {
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStockExceeded {
		return 0, false
	}
	details, ok := typed.Details().(StockExceededDetails)
	if !ok {
		return 0, false
	}
	return details.Available, true
}
