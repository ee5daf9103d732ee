package models

import "time"

// EventKind tags what happened in a log entry.
type EventKind string

const (
	EventGroupCreated      EventKind = "group_created"
	EventGroupUpdated      EventKind = "group_updated"
	EventInviteCreated     EventKind = "invite_created"
	EventExpenseCreated    EventKind = "expense_created"
	EventPaymentConfirmed  EventKind = "payment_confirmed"
	EventExpenseMarkedPaid EventKind = "expense_marked_paid"
	EventProofAttached     EventKind = "proof_attached"
	EventExpenseRemoved    EventKind = "expense_removed"

	// EventUnclassified is used for entries whose prose matches no known
	// template, such as entries written before events were tagged.
	EventUnclassified EventKind = "unclassified"
)

// EventPayload holds the structured fields of an event. Which fields are set
// depends on the kind.
type EventPayload struct {
	GroupName    string    `json:"groupName,omitempty"`
	ExpenseID    string    `json:"expenseId,omitempty"`
	Title        string    `json:"title,omitempty"`
	Buyer        string    `json:"buyer,omitempty"`
	Payer        string    `json:"payer,omitempty"`
	Category     string    `json:"category,omitempty"`
	Subcategory  string    `json:"subcategory,omitempty"`
	Location     string    `json:"location,omitempty"`
	Amount       string    `json:"amount,omitempty"`
	Paid         bool      `json:"paid,omitempty"`
	Split        SplitMode `json:"split,omitempty"`
	Participants int       `json:"participants,omitempty"`
	Actor        string    `json:"actor,omitempty"`
}

// LogEntry is one line of a group's activity feed. Entries are append-only
// and read newest first by insertion order.
type LogEntry struct {
	ID      string `json:"id"`
	GroupID string `json:"groupId"`

	Kind    EventKind    `json:"kind"`
	Payload EventPayload `json:"payload"`

	// Message is the human-readable rendering of the event.
	Message string `json:"message"`

	CreatedAt time.Time `json:"createdAt"`
}
