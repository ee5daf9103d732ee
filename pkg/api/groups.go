package api

import "time"

type Member struct {
	Email   string `json:"email"`
	Invited bool   `json:"invited,omitempty"`
}

type Group struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	OwnerID     string     `json:"ownerId"`
	Members     []Member   `json:"members"`
	EventAt     *time.Time `json:"eventAt,omitempty"`

	// Countdown describes the time left until EventAt, e.g.
	// "falta 1d 2h 3m 4s". Empty when there is no event date.
	Countdown string `json:"countdown,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ListGroupsRequest struct {
	// Search filters by a case-insensitive substring of the name.
	Search string `json:"search,omitempty"`
}

type ListGroupsResponse struct {
	Groups []*Group `json:"groups"`
}

type GetGroupRequest struct {
	GroupID string `json:"groupId"`
}

type GetGroupResponse struct {
	Group *Group `json:"group"`
}

// CreateGroupRequest creates a group. Members and MemberEmails are merged;
// MemberEmails is free text separated by commas, semicolons or new lines.
type CreateGroupRequest struct {
	Name         string     `json:"name"`
	Description  string     `json:"description,omitempty"`
	Members      []Member   `json:"members,omitempty"`
	MemberEmails string     `json:"memberEmails,omitempty"`
	EventAt      *time.Time `json:"eventAt,omitempty"`
}

type CreateGroupResponse struct {
	Group *Group `json:"group"`
}

// UpdateGroupRequest changes only the fields that are set. A nil Members
// keeps the current list; a non-nil one replaces it, even when empty.
type UpdateGroupRequest struct {
	GroupID      string     `json:"groupId"`
	Name         *string    `json:"name,omitempty"`
	Description  *string    `json:"description,omitempty"`
	Members      *[]Member  `json:"members,omitempty"`
	EventAt      *time.Time `json:"eventAt,omitempty"`
	ClearEventAt bool       `json:"clearEventAt,omitempty"`
}

type UpdateGroupResponse struct {
	Group *Group `json:"group"`
}

type DeleteGroupRequest struct {
	GroupID string `json:"groupId"`
}

type DeleteGroupResponse struct{}
