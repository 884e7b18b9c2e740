package controller

import (
	"time"

	"skillswap-service/model"

	"github.com/samber/lo"
)

type ListingRef struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type MessageView struct {
	ID             uint              `json:"id"`
	Created        time.Time         `json:"created"`
	Sender         model.Participant `json:"sender"`
	Recipient      model.Participant `json:"recipient"`
	Content        string            `json:"content"`
	RelatedOffer   *ListingRef       `json:"related_offer"`
	RelatedRequest *ListingRef       `json:"related_request"`
	Read           bool              `json:"read"`
}

type ExchangeView struct {
	ID             uint                 `json:"id"`
	Created        time.Time            `json:"created"`
	Updated        time.Time            `json:"updated"`
	Proposer       model.Participant    `json:"proposer"`
	Accepter       model.Participant    `json:"accepter"`
	OfferedSkill   *ListingRef          `json:"offered_skill"`
	RequestedSkill *ListingRef          `json:"requested_skill"`
	ProposedTerms  string               `json:"proposed_terms"`
	Status         model.ExchangeStatus `json:"status"`
}

type ListingView struct {
	ID          uint              `json:"id"`
	Created     time.Time         `json:"created"`
	Owner       model.Participant `json:"owner"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Category    string            `json:"category"`
	Skills      []string          `json:"skills"`
	Location    string            `json:"location"`
	Status      string            `json:"status"`
}

type UserView struct {
	ID             uint      `json:"id"`
	Created        time.Time `json:"created"`
	Name           string    `json:"name"`
	Email          string    `json:"email,omitempty"`
	ProfilePicture string    `json:"profile_picture"`
	AboutMe        string    `json:"about_me"`
	SkillsOffered  []string  `json:"skills_offered"`
	SkillsNeeded   []string  `json:"skills_needed"`
	Location       string    `json:"location"`
	Rating         float64   `json:"rating"`
	NumReviews     int       `json:"num_reviews"`
	Role           string    `json:"role,omitempty"`
	Otp            *bool     `json:"otp,omitempty"`
}

// participant falls back to the bare id when the relation was not loaded.
func participant(user model.User, id uint) model.Participant {
	p := user.Participant()
	p.ID = id
	return p
}

func listingRef(id *uint, listing *model.Listing) *ListingRef {
	if id == nil {
		return nil
	}
	ref := &ListingRef{ID: *id}
	if listing != nil {
		ref.Title = listing.Title
		ref.Description = listing.Description
	}
	return ref
}

func offerListing(o *model.Offer) *model.Listing {
	if o == nil {
		return nil
	}
	return &o.Listing
}

func requestListing(r *model.Request) *model.Listing {
	if r == nil {
		return nil
	}
	return &r.Listing
}

func messageView(m model.Message) MessageView {
	return MessageView{
		ID:             m.ID,
		Created:        m.CreatedAt,
		Sender:         participant(m.Sender, m.SenderID),
		Recipient:      participant(m.Recipient, m.RecipientID),
		Content:        m.Content,
		RelatedOffer:   listingRef(m.RelatedOfferID, offerListing(m.RelatedOffer)),
		RelatedRequest: listingRef(m.RelatedRequestID, requestListing(m.RelatedRequest)),
		Read:           m.Read,
	}
}

func messageViews(messages []model.Message) []MessageView {
	return lo.Map(messages, func(m model.Message, _ int) MessageView { return messageView(m) })
}

func exchangeView(e model.Exchange) ExchangeView {
	return ExchangeView{
		ID:             e.ID,
		Created:        e.CreatedAt,
		Updated:        e.UpdatedAt,
		Proposer:       participant(e.Proposer, e.ProposerID),
		Accepter:       participant(e.Accepter, e.AccepterID),
		OfferedSkill:   listingRef(e.OfferedSkillRefID, offerListing(e.OfferedSkillRef)),
		RequestedSkill: listingRef(e.RequestedSkillRefID, requestListing(e.RequestedSkillRef)),
		ProposedTerms:  e.ProposedTerms,
		Status:         e.Status,
	}
}

func listingView(l *model.Listing) ListingView {
	return ListingView{
		ID:          l.ID,
		Created:     l.CreatedAt,
		Owner:       participant(l.User, l.UserID),
		Title:       l.Title,
		Description: l.Description,
		Category:    l.Category,
		Skills:      l.Skills,
		Location:    l.Location,
		Status:      l.Status,
	}
}

// userView renders a profile. Private views add the account fields only the
// owner sees.
func userView(u *model.User, private bool) UserView {
	view := UserView{
		ID:             u.ID,
		Created:        u.CreatedAt,
		Name:           u.Name,
		ProfilePicture: u.ProfilePicture,
		AboutMe:        u.AboutMe,
		SkillsOffered:  lo.Ternary(u.SkillsOffered == nil, []string{}, u.SkillsOffered),
		SkillsNeeded:   lo.Ternary(u.SkillsNeeded == nil, []string{}, u.SkillsNeeded),
		Location:       u.Location,
		Rating:         u.Rating,
		NumReviews:     u.NumReviews,
	}
	if private {
		view.Email = u.Email
		view.Role = u.Role
		view.Otp = lo.ToPtr(u.OtpEnabled)
	}
	return view
}

type NotificationView struct {
	ID      uint                   `json:"id"`
	Created time.Time              `json:"created"`
	Message string                 `json:"message"`
	Type    model.NotificationType `json:"type"`
	Link    *string                `json:"link"`
	Read    bool                   `json:"read"`
}

// NewNotificationView is the shape notifications take over REST and socket.io.
func NewNotificationView(n *model.Notification) NotificationView {
	return NotificationView{
		ID:      n.ID,
		Created: n.CreatedAt,
		Message: n.Message,
		Type:    n.Type,
		Link:    n.Link,
		Read:    n.Read,
	}
}

func NotificationViews(notifications []model.Notification) []NotificationView {
	return lo.Map(notifications, func(n model.Notification, _ int) NotificationView {
		return NewNotificationView(&n)
	})
}
