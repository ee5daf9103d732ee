package api

import "time"

type Expense struct {
	ID           string    `json:"id"`
	GroupID      string    `json:"groupId"`
	Title        string    `json:"title"`
	Amount       string    `json:"amount"`
	Buyer        string    `json:"buyer"`
	Payer        string    `json:"payer"`
	Split        string    `json:"split"`
	Participants []string  `json:"participants"`
	PerHead      string    `json:"perHead"`
	Category     string    `json:"category,omitempty"`
	Subcategory  string    `json:"subcategory,omitempty"`
	PixKey       string    `json:"pixKey,omitempty"`
	Location     string    `json:"location,omitempty"`
	DateISO      string    `json:"dateISO"`
	ProofURL     string    `json:"proofUrl,omitempty"`
	Paid         bool      `json:"paid"`
	CreatedAt    time.Time `json:"createdAt"`
}

type ListExpensesRequest struct {
	GroupID string `json:"groupId"`
}

type ListExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}

type CreateExpenseRequest struct {
	GroupID string `json:"groupId"`
	Title   string `json:"title"`

	// Amount accepts "12.50" or "12,50".
	Amount string `json:"amount"`

	Buyer        string   `json:"buyer"`
	Payer        string   `json:"payer"`
	Split        string   `json:"split,omitempty"`
	Participants []string `json:"participants,omitempty"`
	Category     string   `json:"category,omitempty"`
	Subcategory  string   `json:"subcategory,omitempty"`
	PixKey       string   `json:"pixKey,omitempty"`
	Location     string   `json:"location,omitempty"`
	DateISO      string   `json:"dateISO,omitempty"`
	ProofURL     string   `json:"proofUrl,omitempty"`
	Paid         bool     `json:"paid,omitempty"`
}

type CreateExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type DeleteExpenseRequest struct {
	ExpenseID string `json:"expenseId"`
}

type DeleteExpenseResponse struct{}

type MarkPaidRequest struct {
	ExpenseID string `json:"expenseId"`
}

type MarkPaidResponse struct {
	Expense *Expense `json:"expense"`
}

type UpdateProofRequest struct {
	ExpenseID string `json:"expenseId"`
	ProofURL  string `json:"proofUrl"`
}

type UpdateProofResponse struct {
	Expense *Expense `json:"expense"`
}

// UploadProofRequest stores a receipt file. Data is base64 in JSON.
type UploadProofRequest struct {
	ExpenseID   string `json:"expenseId"`
	ContentType string `json:"contentType,omitempty"`
	Data        []byte `json:"data"`
}

type UploadProofResponse struct {
	Expense *Expense `json:"expense"`
}

type PreviewSplitRequest struct {
	Amount       string   `json:"amount"`
	Participants []string `json:"participants"`
}

type Share struct {
	Participant string `json:"participant"`
	Amount      string `json:"amount"`
}

type PreviewSplitResponse struct {
	PerHead string  `json:"perHead"`
	Total   string  `json:"total"`
	Shares  []Share `json:"shares"`
}

type GetBalancesRequest struct {
	GroupID string `json:"groupId"`
}

// Balance is one member's position across unpaid expenses. Net is
// positive when the member is owed money.
type Balance struct {
	Member string `json:"member"`
	Net    string `json:"net"`
	Owes   string `json:"owes"`
	IsOwed string `json:"isOwed"`
}

type Debt struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount string `json:"amount"`
}

type GetBalancesResponse struct {
	Balances []Balance `json:"balances"`
	Debts    []Debt    `json:"debts"`
}

type ListCategoriesRequest struct{}

type Category struct {
	Name          string   `json:"name"`
	Subcategories []string `json:"subcategories"`
}

type ListCategoriesResponse struct {
	Categories []Category `json:"categories"`
}
