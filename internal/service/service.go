// Package service implements the acerto.v1 Connect handlers on top of the
// core services. Handlers resolve the caller from the request context,
// enforce group ownership and translate domain errors into Connect codes.
package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/acerto/acerto/internal/activity"
	"github.com/acerto/acerto/internal/apperr"
	"github.com/acerto/acerto/internal/auth"
	"github.com/acerto/acerto/internal/calculator"
	"github.com/acerto/acerto/internal/middleware"
	"github.com/acerto/acerto/internal/models"
	"github.com/acerto/acerto/pkg/api"
	"github.com/acerto/acerto/pkg/api/apiconnect"
)

// PublicProcedures can be called without a session token.
var PublicProcedures = []string{
	apiconnect.AuthServiceSignupProcedure,
	apiconnect.AuthServiceLoginProcedure,
	apiconnect.InviteServiceResolveInviteProcedure,
	apiconnect.ExpenseServicePreviewSplitProcedure,
	apiconnect.ExpenseServiceListCategoriesProcedure,
}

// caller returns the authenticated user ID set by the auth interceptor.
func caller(ctx context.Context) (string, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return userID, nil
}

// codeFor maps an error kind to its Connect code.
func codeFor(err error) connect.Code {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		return connect.CodeInvalidArgument
	case apperr.KindConflict:
		return connect.CodeAlreadyExists
	case apperr.KindNotFound:
		return connect.CodeNotFound
	case apperr.KindUnauthorized:
		return connect.CodeUnauthenticated
	default:
		return connect.CodeInternal
	}
}

// fail logs err and converts it for the wire. Domain errors are warnings;
// anything else is an internal failure.
func fail(logger *slog.Logger, op string, err error, attrs ...any) error {
	code := codeFor(err)
	attrs = append(attrs, "code", code.String(), "error", err)
	level := middleware.LogLevel(code)
	msg := op + " rejected"
	if level >= slog.LevelError {
		msg = op + " failed"
	}
	logger.Log(context.Background(), level, msg, attrs...)
	return connect.NewError(code, err)
}

func toUser(u *models.User) *api.User {
	return &api.User{ID: u.ID, Name: u.Name, Email: u.Email}
}

func toMembers(ms []models.Member) []api.Member {
	out := make([]api.Member, len(ms))
	for i, m := range ms {
		out[i] = api.Member{Email: m.Email, Invited: m.Invited}
	}
	return out
}

func fromMembers(ms []api.Member) []models.Member {
	if ms == nil {
		return nil
	}
	out := make([]models.Member, len(ms))
	for i, m := range ms {
		out[i] = models.Member{Email: m.Email, Invited: m.Invited}
	}
	return out
}

// patchMembers keeps "not sent" (nil) apart from "sent empty", which must
// reach the core as a non-nil slice so it fails validation.
func patchMembers(ms *[]api.Member) []models.Member {
	if ms == nil {
		return nil
	}
	out := make([]models.Member, 0, len(*ms))
	for _, m := range *ms {
		out = append(out, models.Member{Email: m.Email, Invited: m.Invited})
	}
	return out
}

func toInvite(inv *models.Invite, link string) *api.Invite {
	return &api.Invite{
		ID:        inv.ID,
		GroupID:   inv.GroupID,
		Token:     inv.Token,
		Link:      link,
		CreatedAt: inv.CreatedAt,
		ExpiresAt: inv.ExpiresAt,
	}
}

func toExpense(e *models.Expense) *api.Expense {
	perHead := calculator.Preview(e.Amount, e.Participants).PerHead
	return &api.Expense{
		ID:           e.ID,
		GroupID:      e.GroupID,
		Title:        e.Title,
		Amount:       e.Amount.StringFixed(2),
		Buyer:        e.Buyer,
		Payer:        e.Payer,
		Split:        string(e.Split),
		Participants: e.Participants,
		PerHead:      perHead.StringFixed(2),
		Category:     e.Category,
		Subcategory:  e.Subcategory,
		PixKey:       e.PixKey,
		Location:     e.Location,
		DateISO:      e.DateISO,
		ProofURL:     e.ProofURL,
		Paid:         e.Paid,
		CreatedAt:    e.CreatedAt,
	}
}

func toActivity(d activity.Display, entry *models.LogEntry) *api.ActivityEntry {
	return &api.ActivityEntry{
		ID:        d.ID,
		Kind:      string(d.Kind),
		Icon:      string(d.Icon),
		Title:     d.Title,
		Chips:     d.Chips,
		Avatar:    d.Avatar,
		When:      d.When,
		Message:   d.Message,
		CreatedAt: entry.CreatedAt,
	}
}
