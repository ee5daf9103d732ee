package activity

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/acerto/acerto/internal/models"
)

var (
	purchasePattern = regexp.MustCompile(`^(?P<buyer>\S+) comprou "(?P<title>[^"]+)"` +
		`(?: \[(?P<category>[^\]/]+)(?:/(?P<subcategory>[^\]]+))?\])?` +
		`(?: no (?P<location>.+?))?` +
		` por R\$ (?P<amount>[0-9.,]+) (?P<status>\(pago\)|— pendente)` +
		` para (?P<payer>\S+) entre (?:todos|(?P<count>\d+) participante\(s\))\.$`)

	paymentPattern    = regexp.MustCompile(`^Pagamento confirmado para "(?P<title>[^"]+)"\.$`)
	markedPaidPattern = regexp.MustCompile(`^(?P<actor>\S+) marcou como pago: (?P<title>.+)\.$`)
	proofPattern      = regexp.MustCompile(`^(?P<actor>\S+) anexou comprovante PIX para "(?P<title>[^"]+)" \(pagamento confirmado\)\.$`)
	removedPattern    = regexp.MustCompile(`^Despesa removida: (?P<title>.+)\.$`)
	groupNamePattern  = regexp.MustCompile(`^Grupo (?:criado|atualizado): (?P<name>.+)\.$`)
)

// Classify recovers a tagged event from a stored message. Messages that
// match none of the known templates come back as EventUnclassified with an
// empty payload; callers display the raw text.
func Classify(message string) Event {
	if m := match(purchasePattern, message); m != nil {
		ev := Event{
			Kind: models.EventExpenseCreated,
			Payload: models.EventPayload{
				Buyer:       m["buyer"],
				Title:       m["title"],
				Category:    m["category"],
				Subcategory: m["subcategory"],
				Location:    m["location"],
				Amount:      m["amount"],
				Paid:        m["status"] == "(pago)",
				Payer:       m["payer"],
				Split:       models.SplitEqualAll,
			},
		}
		if c := m["count"]; c != "" {
			ev.Payload.Split = models.SplitEqualSelected
			ev.Payload.Participants, _ = strconv.Atoi(c)
		}
		return ev
	}
	if m := match(paymentPattern, message); m != nil {
		return Event{Kind: models.EventPaymentConfirmed, Payload: models.EventPayload{Title: m["title"]}}
	}
	if m := match(proofPattern, message); m != nil {
		return Event{Kind: models.EventProofAttached, Payload: models.EventPayload{Title: m["title"], Actor: m["actor"]}}
	}
	if m := match(markedPaidPattern, message); m != nil {
		return Event{Kind: models.EventExpenseMarkedPaid, Payload: models.EventPayload{Title: m["title"], Actor: m["actor"]}}
	}
	if m := match(removedPattern, message); m != nil {
		return Event{Kind: models.EventExpenseRemoved, Payload: models.EventPayload{Title: m["title"]}}
	}

	// The remaining shapes are recognised by substring, like the feed always
	// did; the group name is recovered when the message is well-formed.
	switch {
	case strings.Contains(message, "Convite gerado"):
		return InviteCreated()
	case strings.Contains(message, "Grupo criado"):
		return GroupCreated(groupName(message))
	case strings.Contains(message, "Grupo atualizado"):
		return GroupUpdated(groupName(message))
	}

	return Event{Kind: models.EventUnclassified}
}

func groupName(message string) string {
	if m := match(groupNamePattern, message); m != nil {
		return m["name"]
	}
	return ""
}

// match returns the named groups of re in s, or nil if it does not match.
func match(re *regexp.Regexp, s string) map[string]string {
	sub := re.FindStringSubmatch(s)
	if sub == nil {
		return nil
	}
	out := make(map[string]string, len(sub))
	for i, name := range re.SubexpNames() {
		if name != "" {
			out[name] = sub[i]
		}
	}
	return out
}
