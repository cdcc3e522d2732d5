package model

import "time"

// WhitelistEntry exempts an IP from rate limiting and vote cooldowns
// while Expiry is in the future. One entry per IP; latest insert wins.
type WhitelistEntry struct {
	ID        int64     `json:"id"`
	IPAddress string    `json:"ip_address"`
	Reason    string    `json:"reason"`
	Expiry    time.Time `json:"expiry"`
	CreatedAt time.Time `json:"created_at"`
}

// AdminLog is an append-only audit record of a back-office action.
type AdminLog struct {
	ID            int64     `json:"id"`
	AdminUsername string    `json:"admin_username"`
	Action        string    `json:"action"`
	Details       string    `json:"details,omitempty"`
	IPAddress     string    `json:"ip_address"`
	Timestamp     time.Time `json:"timestamp"`
	Location      string    `json:"location,omitempty"`
}

// LoginRequest is the admin login request body.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
