package dto

// SimpleAccountDTO is the account shape accepted on creation. It carries no bills.
type SimpleAccountDTO struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// AccountDTO is the full account graph.
type AccountDTO struct {
	ID        int64      `json:"id"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Bills     []*BillDTO `json:"bills"`
}

// BillDTO is a bill with its charges. AccountID names the owner.
type BillDTO struct {
	ID          int64            `json:"id"`
	IssueDate   Timestamp        `json:"issueDate"`
	DueDate     Timestamp        `json:"dueDate"`
	AccountID   int64            `json:"accountId"`
	Account     *AccountDTO      `json:"-"`
	BillCharges []*BillChargeDTO `json:"billCharges"`
}

// BillChargeDTO is a single charge. A null tax means no tax.
type BillChargeDTO struct {
	ID         int64      `json:"id"`
	ChargeType string     `json:"chargeType"`
	Amount     Amount     `json:"amount"`
	Tax        NullAmount `json:"tax"`
	Bill       *BillDTO   `json:"-"`
}

// MonthlyAmountDTO is one row of the monthly totals report.
type MonthlyAmountDTO struct {
	Amount    Amount `json:"amount"`
	MonthName string `json:"monthName"`
}

// Message is the envelope of every response that is not an entity.
type Message struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

// StatusOK is the status code carried by success envelopes.
const StatusOK = 200

// NewMessage returns a success envelope.
func NewMessage(msg string) Message {
	return Message{Message: msg, StatusCode: StatusOK}
}
