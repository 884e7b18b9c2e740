package model

import "gorm.io/gorm"

type ExchangeStatus string

const (
	ExchangePending   ExchangeStatus = "pending"
	ExchangeAccepted  ExchangeStatus = "accepted"
	ExchangeRejected  ExchangeStatus = "rejected"
	ExchangeCompleted ExchangeStatus = "completed"
	ExchangeCancelled ExchangeStatus = "cancelled"
)

// IsTerminal reports whether no further transition leaves s.
// Rejected is not terminal: it can still be completed or cancelled.
func (s ExchangeStatus) IsTerminal() bool {
	return s == ExchangeCompleted || s == ExchangeCancelled
}

const MaxProposedTerms = 1000

type Exchange struct {
	gorm.Model
	ProposerID          uint           `gorm:"not null;index" json:"proposer_id"`
	AccepterID          uint           `gorm:"not null;index" json:"accepter_id"`
	Proposer            User           `gorm:"foreignKey:ProposerID" json:"-"`
	Accepter            User           `gorm:"foreignKey:AccepterID" json:"-"`
	OfferedSkillRefID   *uint          `json:"offered_skill_ref_id"`
	RequestedSkillRefID *uint          `json:"requested_skill_ref_id"`
	OfferedSkillRef     *Offer         `gorm:"foreignKey:OfferedSkillRefID" json:"-"`
	RequestedSkillRef   *Request       `gorm:"foreignKey:RequestedSkillRefID" json:"-"`
	ProposedTerms       string         `gorm:"not null;size:1000" json:"proposed_terms"`
	Status              ExchangeStatus `gorm:"not null;default:pending;index" json:"status"`
}

// Counterparty returns the participant that is not userID.
func (e Exchange) Counterparty(userID uint) uint {
	if e.ProposerID == userID {
		return e.AccepterID
	}
	return e.ProposerID
}

func (e Exchange) HasParticipant(userID uint) bool {
	return e.ProposerID == userID || e.AccepterID == userID
}
