package models

type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	CreatedAt string `json:"created_at,omitempty"`
}

// DemoUserID is the identity attached to requests when demo mode
// resolves an unauthenticated caller.
const DemoUserID int64 = 1
