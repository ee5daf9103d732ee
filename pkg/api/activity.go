package api

import "time"

type ListActivityRequest struct {
	GroupID string `json:"groupId"`
}

// ActivityEntry is a log entry prepared for the feed.
type ActivityEntry struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Icon      string    `json:"icon"`
	Title     string    `json:"title"`
	Chips     []string  `json:"chips,omitempty"`
	Avatar    string    `json:"avatar,omitempty"`
	When      string    `json:"when"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

type ListActivityResponse struct {
	Entries []*ActivityEntry `json:"entries"`
}
