package models

import "time"

// Group represents a set of people who share expenses.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string `json:"id"`

	// Name is unique per owner, compared case-insensitively.
	Name string `json:"name"`

	Description string `json:"description,omitempty"`

	// OwnerID is the user who created and administers the group.
	// Only the owner may update, delete or invite.
	OwnerID string `json:"ownerId"`

	// Members is the set of participants, unique by lower-cased e-mail.
	Members []Member `json:"members"`

	// EventAt is the optional date of the outing the group was made for.
	EventAt *time.Time `json:"eventAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Member is one e-mail entry of a group.
type Member struct {
	Email string `json:"email"`

	// Invited marks members that were added through an invite link.
	Invited bool `json:"invited,omitempty"`
}

// MemberEmails returns the e-mails of g's members in stored order.
func (g *Group) MemberEmails() []string {
	out := make([]string, len(g.Members))
	for i, m := range g.Members {
		out[i] = m.Email
	}
	return out
}

// HasMember reports whether email is one of g's members. email must already
// be canonical (trimmed, lower-case).
func (g *Group) HasMember(email string) bool {
	for _, m := range g.Members {
		if m.Email == email {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so stores never hand out shared slices.
func (g *Group) Clone() *Group {
	c := *g
	c.Members = append([]Member(nil), g.Members...)
	if g.EventAt != nil {
		t := *g.EventAt
		c.EventAt = &t
	}
	return &c
}

// Invite is a shareable join token for a group. Invites are never mutated.
type Invite struct {
	ID        string     `json:"id"`
	GroupID   string     `json:"groupId"`
	Token     string     `json:"token"`
	CreatedAt time.Time  `json:"createdAt"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// Expired reports whether the invite is past its expiry at now.
func (i *Invite) Expired(now time.Time) bool {
	return i.ExpiresAt != nil && !now.Before(*i.ExpiresAt)
}
