package validate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gsdgroup/billing/internal/models"
)

func TestValidateAccount(t *testing.T) {
	tests := []struct {
		name    string
		account *models.Account
		want    bool
	}{
		{"nil", nil, false},
		{"complete", &models.Account{FirstName: "Ada", LastName: "Lovelace"}, true},
		{"missing first name", &models.Account{LastName: "Lovelace"}, false},
		{"missing last name", &models.Account{FirstName: "Ada"}, false},
		{"missing both", &models.Account{}, false},
		{"bills are not inspected", &models.Account{FirstName: "Ada", LastName: "Lovelace", Bills: []*models.Bill{{}}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateAccount(tt.account))
		})
	}
}

func TestValidateBill(t *testing.T) {
	day := time.Date(1998, 12, 31, 0, 0, 0, 0, time.UTC)
	owner := &models.Account{ID: 1, FirstName: "Ada", LastName: "Lovelace"}

	tests := []struct {
		name string
		bill *models.Bill
		want bool
	}{
		{"nil", nil, false},
		{"complete without charges", &models.Bill{IssueDate: day, DueDate: day, Account: owner}, true},
		{"complete with charges", &models.Bill{IssueDate: day, DueDate: day, Account: owner, Charges: []*models.BillCharge{{ChargeType: "Energy"}}}, true},
		{"missing issue date", &models.Bill{DueDate: day, Account: owner}, false},
		{"missing due date", &models.Bill{IssueDate: day, Account: owner}, false},
		{"missing account", &models.Bill{IssueDate: day, DueDate: day, AccountID: 1}, false},
		{"only account set", &models.Bill{Account: owner}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateBill(tt.bill))
		})
	}
}
