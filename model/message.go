package model

import "gorm.io/gorm"

type Message struct {
	gorm.Model
	SenderID         uint     `gorm:"not null;index" json:"sender_id"`
	RecipientID      uint     `gorm:"not null;index" json:"recipient_id"`
	Sender           User     `gorm:"foreignKey:SenderID" json:"-"`
	Recipient        User     `gorm:"foreignKey:RecipientID" json:"-"`
	Content          string   `gorm:"not null" json:"content"`
	RelatedOfferID   *uint    `json:"related_offer_id"`
	RelatedRequestID *uint    `json:"related_request_id"`
	RelatedOffer     *Offer   `gorm:"foreignKey:RelatedOfferID" json:"-"`
	RelatedRequest   *Request `gorm:"foreignKey:RelatedRequestID" json:"-"`
	Read             bool     `gorm:"not null;default:false" json:"read"`
}
