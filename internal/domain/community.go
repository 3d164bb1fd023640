package domain

// Community is a community-like entity (community, core group, chapter)
// fetched from the platform API. The gateway never owns these: a result set
// lives only as long as one location query, and is re-fetched — not merged —
// whenever the owning location selection changes.
type Community struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	Status string `json:"status"`
	Type   string `json:"type"`
}
