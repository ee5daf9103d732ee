package api

import "time"

type Invite struct {
	ID        string     `json:"id"`
	GroupID   string     `json:"groupId"`
	Token     string     `json:"token"`
	Link      string     `json:"link"`
	CreatedAt time.Time  `json:"createdAt"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

type CreateInviteRequest struct {
	GroupID string `json:"groupId"`
}

type CreateInviteResponse struct {
	Invite *Invite `json:"invite"`
}

type ListInvitesRequest struct {
	GroupID string `json:"groupId"`
}

type ListInvitesResponse struct {
	Invites []*Invite `json:"invites"`
}

type ResolveInviteRequest struct {
	Token string `json:"token"`
}

// ResolveInviteResponse describes the group an invite leads to. It is
// served without authentication, so only public fields are included.
type ResolveInviteResponse struct {
	GroupID      string     `json:"groupId"`
	GroupName    string     `json:"groupName"`
	Description  string     `json:"description,omitempty"`
	MembersCount int        `json:"membersCount"`
	EventAt      *time.Time `json:"eventAt,omitempty"`
	ExpiresAt    *time.Time `json:"expiresAt,omitempty"`
}
