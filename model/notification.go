package model

import "gorm.io/gorm"

type NotificationType string

const (
	NotificationNewMessage   NotificationType = "new_message"
	NotificationProposal     NotificationType = "exchange_proposal"
	NotificationStatusUpdate NotificationType = "exchange_status_update"
	NotificationGeneral      NotificationType = "general"
)

type Notification struct {
	gorm.Model
	UserID  uint             `gorm:"not null;index" json:"user_id"`
	Message string           `gorm:"not null" json:"message"`
	Type    NotificationType `gorm:"not null" json:"type"`
	Link    *string          `json:"link"`
	Read    bool             `gorm:"not null;default:false" json:"read"`
}
