// Package favorites lets authenticated users bookmark sectors.
package favorites

// Favorite is one bookmarked sector with its category metadata.
type Favorite struct {
	CID         int64  `json:"cid"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CollectTime string `json:"collectTime"`
}

// AddRequest bookmarks a sector by its category id.
type AddRequest struct {
	CID int64 `json:"cid" validate:"required,gt=0"`
}

// ListResponse lists a user's bookmarks.
type ListResponse struct {
	Total     int        `json:"total"`
	Favorites []Favorite `json:"favorites"`
}
