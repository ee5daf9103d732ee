// Package activity builds, renders and classifies group activity events.
//
// Services record tagged events (kind + structured payload). The prose
// message is rendered from the event when the entry is written and kept for
// display. Classify recovers structure from prose alone for entries that
// were stored without a kind; it only understands the templates below, so
// any change to their wording must be mirrored in classify.go.
package activity

import (
	"fmt"
	"strings"

	"github.com/acerto/acerto/internal/calculator"
	"github.com/acerto/acerto/internal/models"
)

// Event is a tagged activity event.
type Event struct {
	Kind    models.EventKind
	Payload models.EventPayload
}

func GroupCreated(name string) Event {
	return Event{Kind: models.EventGroupCreated, Payload: models.EventPayload{GroupName: name}}
}

func GroupUpdated(name string) Event {
	return Event{Kind: models.EventGroupUpdated, Payload: models.EventPayload{GroupName: name}}
}

func InviteCreated() Event {
	return Event{Kind: models.EventInviteCreated}
}

// ExpenseCreated describes a newly logged purchase.
func ExpenseCreated(e *models.Expense) Event {
	return Event{
		Kind: models.EventExpenseCreated,
		Payload: models.EventPayload{
			ExpenseID:    e.ID,
			Title:        e.Title,
			Buyer:        e.Buyer,
			Payer:        e.Payer,
			Category:     e.Category,
			Subcategory:  e.Subcategory,
			Location:     e.Location,
			Amount:       e.Amount.StringFixed(2),
			Paid:         e.Paid,
			Split:        e.Split,
			Participants: len(e.Participants),
		},
	}
}

func PaymentConfirmed(e *models.Expense) Event {
	return Event{
		Kind:    models.EventPaymentConfirmed,
		Payload: models.EventPayload{ExpenseID: e.ID, Title: e.Title},
	}
}

func MarkedPaid(e *models.Expense, actor string) Event {
	return Event{
		Kind:    models.EventExpenseMarkedPaid,
		Payload: models.EventPayload{ExpenseID: e.ID, Title: e.Title, Actor: actor},
	}
}

func ProofAttached(e *models.Expense, actor string) Event {
	return Event{
		Kind:    models.EventProofAttached,
		Payload: models.EventPayload{ExpenseID: e.ID, Title: e.Title, Actor: actor},
	}
}

func ExpenseRemoved(e *models.Expense) Event {
	return Event{
		Kind:    models.EventExpenseRemoved,
		Payload: models.EventPayload{ExpenseID: e.ID, Title: e.Title},
	}
}

// Message renders the event as the feed's Portuguese prose.
func (ev Event) Message() string {
	p := ev.Payload
	switch ev.Kind {
	case models.EventGroupCreated:
		return fmt.Sprintf("Grupo criado: %s.", p.GroupName)
	case models.EventGroupUpdated:
		return fmt.Sprintf("Grupo atualizado: %s.", p.GroupName)
	case models.EventInviteCreated:
		return "Convite gerado."
	case models.EventExpenseCreated:
		return purchaseMessage(p)
	case models.EventPaymentConfirmed:
		return fmt.Sprintf("Pagamento confirmado para \"%s\".", p.Title)
	case models.EventExpenseMarkedPaid:
		return fmt.Sprintf("%s marcou como pago: %s.", p.Actor, p.Title)
	case models.EventProofAttached:
		return fmt.Sprintf("%s anexou comprovante PIX para \"%s\" (pagamento confirmado).", p.Actor, p.Title)
	case models.EventExpenseRemoved:
		return fmt.Sprintf("Despesa removida: %s.", p.Title)
	default:
		return ""
	}
}

// purchaseMessage renders:
//
//	{buyer} comprou "{title}"[ [cat/sub]][ no {location}] por R$ {amount} {status} para {payer}{split}.
func purchaseMessage(p models.EventPayload) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s comprou \"%s\"", p.Buyer, p.Title)
	if p.Category != "" {
		b.WriteString(" [" + p.Category)
		if p.Subcategory != "" {
			b.WriteString("/" + p.Subcategory)
		}
		b.WriteString("]")
	}
	if p.Location != "" {
		b.WriteString(" no " + p.Location)
	}
	b.WriteString(" por R$ " + p.Amount)
	if p.Paid {
		b.WriteString(" (pago)")
	} else {
		b.WriteString(" — pendente")
	}
	b.WriteString(" para " + p.Payer)
	if p.Split == models.SplitEqualSelected {
		fmt.Fprintf(&b, " entre %d participante(s)", p.Participants)
	} else {
		b.WriteString(" entre todos")
	}
	b.WriteString(".")
	return b.String()
}

// amountLabel formats a payload amount as BRL, keeping the raw text if it
// does not parse.
func amountLabel(raw string) string {
	if d, ok := calculator.ParseAmount(raw); ok {
		return calculator.FormatBRL(d)
	}
	return "R$ " + raw
}
