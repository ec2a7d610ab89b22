// Package validate checks that entities are complete enough to persist.
package validate

import (
	"github.com/go-playground/validator/v10"

	"github.com/gsdgroup/billing/internal/models"
)

// validate is safe for concurrent use and caches struct metadata.
var validate = validator.New()

// ValidateAccount reports whether account has both first and last name.
func ValidateAccount(account *models.Account) bool {
	if account == nil {
		return false
	}
	return validate.Struct(account) == nil
}

// ValidateBill reports whether bill has an issue date, a due date and a
// resolved owning account. Charges are optional.
func ValidateBill(bill *models.Bill) bool {
	if bill == nil {
		return false
	}
	return validate.Struct(bill) == nil
}
