package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"skillswap-service/model"

	"github.com/samber/lo"
)

type ListingRepository[T any, P model.Listable[T]] interface {
	Find(ctx context.Context, id uint) (P, error)
	ListOpen(ctx context.Context) ([]T, error)
	Create(ctx context.Context, item P) error
	Save(ctx context.Context, item P) error
	Delete(ctx context.Context, item P) error
}

type ListingInput struct {
	Title       string   `validate:"required"`
	Description string   `validate:"required,max=1000"`
	Category    string   `validate:"required,category"`
	Skills      []string `validate:"required,min=1,dive,required"`
	Location    string   `validate:"required"`
}

// ListingPatch carries the fields an owner may change. Nil or empty values
// leave a field untouched.
type ListingPatch struct {
	Title       *string
	Description *string
	Category    *string
	Skills      []string
	Location    *string
	Status      *string
}

// ListingService manages offers or requests, selected by T.
type ListingService[T any, P model.Listable[T]] struct {
	repo ListingRepository[T, P]
}

func NewListingService[T any, P model.Listable[T]](repo ListingRepository[T, P]) *ListingService[T, P] {
	return &ListingService[T, P]{repo: repo}
}

type (
	OfferService   = ListingService[model.Offer, *model.Offer]
	RequestService = ListingService[model.Request, *model.Request]
)

func noun[T any, P model.Listable[T]]() string {
	return P(new(T)).Noun()
}

func (s *ListingService[T, P]) Create(ctx context.Context, ownerID uint, in ListingInput) (P, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Location = strings.TrimSpace(in.Location)
	if err := validate.Struct(in); err != nil {
		return nil, listingValidationError(err, noun[T, P]())
	}

	item := P(new(T))
	listing := item.Base()
	listing.UserID = ownerID
	listing.Title = in.Title
	listing.Description = in.Description
	listing.Category = in.Category
	listing.Skills = in.Skills
	listing.Location = in.Location
	listing.Status = item.OpenStatus()

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create %s: %w", noun[T, P](), err)
	}
	return item, nil
}

// Open lists the listings still available for exchange, newest first.
func (s *ListingService[T, P]) Open(ctx context.Context) ([]T, error) {
	items, err := s.repo.ListOpen(ctx)
	if err != nil {
		return nil, fmt.Errorf("list %ss: %w", noun[T, P](), err)
	}
	return items, nil
}

func (s *ListingService[T, P]) Get(ctx context.Context, id uint) (P, error) {
	item, err := s.repo.Find(ctx, id)
	if err != nil {
		return nil, lookupError(err, capitalize(noun[T, P]())+" not found")
	}
	return item, nil
}

func (s *ListingService[T, P]) Update(ctx context.Context, ownerID, id uint, patch ListingPatch) (P, error) {
	item, err := s.owned(ctx, ownerID, id, "update")
	if err != nil {
		return nil, err
	}

	listing := item.Base()
	if given(patch.Category) && !lo.Contains(model.Categories, *patch.Category) {
		return nil, invalidCategory()
	}
	if given(patch.Status) && !lo.Contains(item.Statuses(), *patch.Status) {
		return nil, newError(KindValidation, "Invalid status. Must be one of: %s", strings.Join(item.Statuses(), ", "))
	}
	if patch.Description != nil && utf8.RuneCountInString(*patch.Description) > 1000 {
		return nil, newError(KindValidation, "Description cannot be more than 1000 characters")
	}

	assignGiven(&listing.Title, patch.Title)
	assignGiven(&listing.Description, patch.Description)
	assignGiven(&listing.Category, patch.Category)
	assignGiven(&listing.Location, patch.Location)
	assignGiven(&listing.Status, patch.Status)
	if len(patch.Skills) > 0 {
		listing.Skills = patch.Skills
	}

	if err := s.repo.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("update %s: %w", noun[T, P](), err)
	}
	return item, nil
}

func (s *ListingService[T, P]) Delete(ctx context.Context, ownerID, id uint) error {
	item, err := s.owned(ctx, ownerID, id, "delete")
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, item); err != nil {
		return fmt.Errorf("delete %s: %w", noun[T, P](), err)
	}
	return nil
}

func (s *ListingService[T, P]) owned(ctx context.Context, ownerID, id uint, action string) (P, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.Base().UserID != ownerID {
		return nil, newError(KindUnauthorized, "Not authorized to %s this %s", action, noun[T, P]())
	}
	return item, nil
}

func listingValidationError(err error, noun string) error {
	if failedTag(err, "Category") == "category" {
		return invalidCategory()
	}
	if failedTag(err, "Description") == "max" {
		return newError(KindValidation, "Description cannot be more than 1000 characters")
	}
	return newError(KindValidation, "Please fill all required fields for the %s", noun)
}

func invalidCategory() error {
	return newError(KindValidation, "Invalid category. Must be one of: %s", strings.Join(model.Categories, ", "))
}

func assign(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func given(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}

func assignGiven(dst *string, src *string) {
	if given(src) {
		*dst = *src
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
