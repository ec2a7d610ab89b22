package models

// Account is the aggregate root of the billing domain.
type Account struct {
	// ID is assigned by storage on creation. Zero means not yet persisted.
	ID int64

	FirstName string `validate:"required"`
	LastName  string `validate:"required"`

	// Bills are owned by the account and removed with it.
	Bills []*Bill `validate:"-"`
}

// AddBill appends bill to the account and points its back-reference at a.
func (a *Account) AddBill(bill *Bill) {
	a.Bills = append(a.Bills, bill)
	bill.Account = a
	bill.AccountID = a.ID
}

// RemoveBill detaches bill from the account. It reports whether the bill was owned by a.
func (a *Account) RemoveBill(bill *Bill) bool {
	for i, b := range a.Bills {
		if b == bill {
			a.Bills = append(a.Bills[:i], a.Bills[i+1:]...)
			bill.Account = nil
			bill.AccountID = 0
			return true
		}
	}
	return false
}

// Link repairs every back-reference in the graph rooted at a.
func (a *Account) Link() {
	for _, bill := range a.Bills {
		bill.Account = a
		bill.AccountID = a.ID
		bill.Link()
	}
}
