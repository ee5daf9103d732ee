package activity

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/acerto/acerto/internal/models"
)

// Icon names the glyph the feed shows next to an entry.
type Icon string

const (
	IconInfo      Icon = "info"
	IconWallet    Icon = "wallet"
	IconCheck     Icon = "check"
	IconPaperclip Icon = "paperclip"
	IconTrash     Icon = "trash"
	IconLink      Icon = "link"
	IconShield    Icon = "shield"
	IconPencil    Icon = "pencil"
)

// Display is a log entry ready for the feed.
type Display struct {
	ID      string
	Kind    models.EventKind
	Icon    Icon
	Title   string
	Chips   []string
	Avatar  string
	When    string
	Message string
}

// Render builds the display form of entry. Tagged entries render from their
// payload; untagged ones go through Classify first.
func Render(entry *models.LogEntry, now time.Time) Display {
	ev := Event{Kind: entry.Kind, Payload: entry.Payload}
	if ev.Kind == "" || ev.Kind == models.EventUnclassified {
		ev = Classify(entry.Message)
	}

	d := Display{
		ID:      entry.ID,
		Kind:    ev.Kind,
		Icon:    IconInfo,
		Title:   entry.Message,
		Avatar:  "LG",
		When:    RelativeTime(now, entry.CreatedAt),
		Message: entry.Message,
	}

	p := ev.Payload
	switch ev.Kind {
	case models.EventExpenseCreated:
		d.Icon = IconWallet
		d.Title = "Compra: " + p.Title
		d.Chips = append(d.Chips, "Valor "+amountLabel(p.Amount))
		if p.Category != "" {
			tag := p.Category
			if p.Subcategory != "" {
				tag += "/" + p.Subcategory
			}
			d.Chips = append(d.Chips, tag)
		}
		if p.Location != "" {
			d.Chips = append(d.Chips, "📍 "+p.Location)
		}
		d.Chips = append(d.Chips, "Comprou "+p.Buyer, "Para "+p.Payer)
		d.Avatar = Initials(p.Buyer)
	case models.EventPaymentConfirmed:
		d.Icon = IconCheck
		d.Title = "Pagamento confirmado: " + p.Title
		d.Chips = []string{"PIX"}
		d.Avatar = "OK"
	case models.EventExpenseMarkedPaid:
		d.Icon = IconCheck
		d.Title = "Pagamento confirmado: " + p.Title
		d.Chips = []string{"Por " + p.Actor}
		d.Avatar = Initials(p.Actor)
	case models.EventProofAttached:
		d.Icon = IconPaperclip
		d.Title = "Comprovante anexado: " + p.Title
		d.Chips = []string{"PIX", "Por " + p.Actor}
		d.Avatar = Initials(p.Actor)
	case models.EventExpenseRemoved:
		d.Icon = IconTrash
		d.Title = "Despesa removida: " + p.Title
		d.Avatar = "RM"
	case models.EventInviteCreated:
		d.Icon = IconLink
		d.Title = "Convite gerado"
		d.Avatar = "IN"
	case models.EventGroupCreated:
		d.Icon = IconShield
		d.Title = "Grupo criado"
		d.Avatar = "GP"
	case models.EventGroupUpdated:
		d.Icon = IconPencil
		d.Title = "Grupo atualizado"
		d.Avatar = "GP"
	}

	return d
}

// Initials returns the first two characters of the e-mail's local part,
// upper-cased ("ana@x.com" → "AN").
func Initials(email string) string {
	local, _, _ := strings.Cut(email, "@")
	if utf8.RuneCountInString(local) > 2 {
		local = string([]rune(local)[:2])
	}
	return strings.ToUpper(local)
}
