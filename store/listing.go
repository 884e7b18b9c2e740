package store

import (
	"context"

	"skillswap-service/model"

	"gorm.io/gorm"
)

// ListingStore persists offers or requests, selected by T.
type ListingStore[T any, P model.Listable[T]] struct {
	db *gorm.DB
}

func NewListingStore[T any, P model.Listable[T]](db *gorm.DB) *ListingStore[T, P] {
	return &ListingStore[T, P]{db: db}
}

func (s *ListingStore[T, P]) Find(ctx context.Context, id uint) (P, error) {
	item := P(new(T))
	if err := s.db.WithContext(ctx).Preload("User").First(item, id).Error; err != nil {
		return nil, translate(err)
	}
	return item, nil
}

// ListOpen returns the listings still open for exchange, newest first.
func (s *ListingStore[T, P]) ListOpen(ctx context.Context) ([]T, error) {
	items := []T{}
	open := P(new(T)).OpenStatus()
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("status = ?", open).
		Order("created_at desc, id desc").
		Find(&items).Error
	return items, err
}

func (s *ListingStore[T, P]) Create(ctx context.Context, item P) error {
	return omitAssociations(s.db.WithContext(ctx)).Create(item).Error
}

func (s *ListingStore[T, P]) Save(ctx context.Context, item P) error {
	return omitAssociations(s.db.WithContext(ctx)).Save(item).Error
}

func (s *ListingStore[T, P]) Delete(ctx context.Context, item P) error {
	return s.db.WithContext(ctx).Delete(item).Error
}

type (
	OfferStore   = ListingStore[model.Offer, *model.Offer]
	RequestStore = ListingStore[model.Request, *model.Request]
)

// Listings answers the ownership lookups exchange proposals need.
type Listings struct {
	Offers   *OfferStore
	Requests *RequestStore
}

func NewListings(db *gorm.DB) *Listings {
	return &Listings{
		Offers:   NewListingStore[model.Offer](db),
		Requests: NewListingStore[model.Request](db),
	}
}

func (l *Listings) FindOffer(ctx context.Context, id uint) (*model.Offer, error) {
	return l.Offers.Find(ctx, id)
}

func (l *Listings) FindRequest(ctx context.Context, id uint) (*model.Request, error) {
	return l.Requests.Find(ctx, id)
}
