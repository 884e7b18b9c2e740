package model

import "gorm.io/gorm"

var Categories = []string{
	"Academics",
	"Arts & Crafts",
	"Home Services",
	"Tech & IT",
	"Language",
	"Health & Wellness",
	"Other",
}

const (
	OfferActive    = "active"
	OfferPaused    = "paused"
	OfferCompleted = "completed"

	RequestOpen      = "open"
	RequestMatched   = "matched"
	RequestCompleted = "completed"
)

// Listing holds the fields offers and requests share.
type Listing struct {
	gorm.Model
	UserID      uint     `gorm:"not null;index" json:"user_id"`
	User        User     `gorm:"foreignKey:UserID" json:"-"`
	Title       string   `gorm:"not null" json:"title"`
	Description string   `gorm:"not null;size:1000" json:"description"`
	Category    string   `gorm:"not null" json:"category"`
	Skills      []string `gorm:"serializer:json" json:"skills"`
	Location    string   `gorm:"not null" json:"location"`
	Status      string   `gorm:"not null;index" json:"status"`
}

type Offer struct {
	Listing
}

type Request struct {
	Listing
}

// Listable is satisfied by *Offer and *Request so both kinds flow through
// the same store and service code.
type Listable[T any] interface {
	*T
	Base() *Listing
	Noun() string
	OpenStatus() string
	Statuses() []string
}

func (o *Offer) Base() *Listing     { return &o.Listing }
func (o *Offer) Noun() string       { return "offer" }
func (o *Offer) OpenStatus() string { return OfferActive }
func (o *Offer) Statuses() []string { return []string{OfferActive, OfferPaused, OfferCompleted} }

func (r *Request) Base() *Listing     { return &r.Listing }
func (r *Request) Noun() string       { return "request" }
func (r *Request) OpenStatus() string { return RequestOpen }
func (r *Request) Statuses() []string {
	return []string{RequestOpen, RequestMatched, RequestCompleted}
}
