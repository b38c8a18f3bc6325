package authfront

import (
	"encoding/json"
	"time"
)

// User is the server-owned account record. The client never mutates it
// directly, only through the profile and password operations.
type User struct {
	ID          int64      `json:"userId,omitempty"`
	Email       string     `json:"email,omitempty"`
	Nickname    string     `json:"nickname,omitempty"`
	Name        string     `json:"name,omitempty"`
	PhoneNumber string     `json:"phoneNumber,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// Envelope is the response wrapper every backend endpoint uses:
// {status, message?, data?}.
type Envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// TokenGrant is the payload of a successful login or refresh exchange.
type TokenGrant struct {
	AccessToken string `json:"accessToken"`
	UserInfo    *User  `json:"userInfo"`
}
