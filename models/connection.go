package models

import "time"

type ConnectionStatus string

const (
	ConnectionPending  ConnectionStatus = "pending"
	ConnectionAccepted ConnectionStatus = "accepted"
	ConnectionRejected ConnectionStatus = "rejected"
)

// Connection links the local profile to another gamer. There is at most one
// per target UserID.
type Connection struct {
	ID        string           `json:"id"`
	UserID    string           `json:"userId"`
	Gamertag  string           `json:"gamertag"`
	Avatar    string           `json:"avatar"`
	Status    ConnectionStatus `json:"status"`
	Games     []string         `json:"games"`
	Level     int              `json:"level"`
	CreatedAt time.Time        `json:"createdAt"`
}
