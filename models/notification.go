package models

import "time"

const (
	ChannelEmail = "email"

	StatusSent   = "sent"
	StatusFailed = "failed"

	TypeOrderAdmin    = "order_admin"
	TypeOrderCustomer = "order_customer"
)

// NotificationLog records one email dispatch attempt outcome.
type NotificationLog struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID   string    `json:"order_id" gorm:"index"`
	Recipient string    `json:"recipient"`
	Type      string    `json:"type"`
	Channel   string    `json:"channel"`
	Status    string    `json:"status"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}
