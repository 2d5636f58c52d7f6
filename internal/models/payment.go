package models

// Payment methods accepted by the backend.
const (
	MethodStripe       = "stripe"
	MethodCard         = "card"
	MethodBankTransfer = "bank_transfer"
)

// Payment statuses.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
)

// PaymentCreate is the deposit payload for /api/payments/create.
type PaymentCreate struct {
	Amount   float64                `json:"amount" validate:"required,gt=0"`
	Method   string                 `json:"method" validate:"required,oneof=stripe card bank_transfer"`
	Currency string                 `json:"currency,omitempty"`
	Details  map[string]interface{} `json:"payment_details,omitempty"`
}

// PaymentCreated is the backend's response to a deposit request.
type PaymentCreated struct {
	PaymentID   string                 `json:"payment_id"`
	Status      string                 `json:"status"`
	PaymentData map[string]interface{} `json:"payment_data,omitempty"`
	Reference   string                 `json:"reference,omitempty"`
}

// Payment is one entry of the payment history. Withdrawals carry a
// negative amount.
type Payment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id,omitempty"`
	Amount    float64   `json:"amount"`
	Currency  string    `json:"currency"`
	Method    string    `json:"method"`
	Status    string    `json:"status"`
	Reference string    `json:"reference,omitempty"`
	CreatedAt Timestamp `json:"created_at"`
	UpdatedAt Timestamp `json:"updated_at"`
}

// IsWithdrawal reports whether the payment moved funds out of the account.
func (p Payment) IsWithdrawal() bool {
	return p.Amount < 0
}

// WithdrawRequest is the payload for /api/payments/withdraw.
type WithdrawRequest struct {
	Amount      float64                `json:"amount" validate:"required,gt=0"`
	Method      string                 `json:"method" validate:"required,oneof=bank_transfer card"`
	BankDetails map[string]interface{} `json:"bank_details,omitempty"`
	Reason      string                 `json:"reason,omitempty"`
}

// WithdrawCreated is the backend's response to a withdrawal request.
type WithdrawCreated struct {
	WithdrawalID string `json:"withdrawal_id"`
	Status       string `json:"status"`
	Reference    string `json:"reference,omitempty"`
	Message      string `json:"message,omitempty"`
}

// PaymentVerification is the status check for a single payment.
type PaymentVerification struct {
	PaymentID string  `json:"payment_id"`
	Status    string  `json:"status"`
	Amount    float64 `json:"amount"`
	Method    string  `json:"method"`
	Reference string  `json:"reference,omitempty"`
}
