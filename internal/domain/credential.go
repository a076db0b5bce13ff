package domain

import "time"

// FacebookPage is a page the user connected for publishing, together with the
// page-scoped access token obtained during the OAuth handshake.
type FacebookPage struct {
	PageID      string
	UserID      string
	Name        string
	AccessToken string
	IsConnected bool
	CreatedAt   time.Time
}

type InstagramAccount struct {
	AccountID       string
	UserID          string
	Username        string
	PageAccessToken string
	IsConnected     bool
	CreatedAt       time.Time
}

type LinkedInAccount struct {
	AccountID   string
	UserID      string
	FirstName   string
	LastName    string
	AccessToken string
	IsConnected bool
	CreatedAt   time.Time
}
