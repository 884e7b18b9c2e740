package service_test

import (
	"context"
	"strings"
	"testing"

	"skillswap-service/model"
	"skillswap-service/service"
	"skillswap-service/store"
	"skillswap-service/store/testutil"

	"github.com/stretchr/testify/require"
)

func TestListingService(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	owner := testutil.CreateUser(t, e.db, "owner")
	other := testutil.CreateUser(t, e.db, "other")
	offers := service.NewListingService[model.Offer, *model.Offer](store.NewListingStore[model.Offer](e.db))
	requests := service.NewListingService[model.Request, *model.Request](store.NewListingStore[model.Request](e.db))

	valid := service.ListingInput{
		Title:       "Conversational Spanish",
		Description: "Weekly calls",
		Category:    "Language",
		Skills:      []string{"Spanish"},
		Location:    "Pune",
	}

	t.Run("should create open listings of each kind", func(t *testing.T) {
		req := require.New(t)

		offer, err := offers.Create(ctx, owner.ID, valid)
		req.NoError(err)
		req.Equal(model.OfferActive, offer.Status)
		req.Equal(owner.ID, offer.UserID)

		request, err := requests.Create(ctx, owner.ID, valid)
		req.NoError(err)
		req.Equal(model.RequestOpen, request.Status)

		open, err := offers.Open(ctx)
		req.NoError(err)
		req.Len(open, 1)
		req.Equal("owner", open[0].User.Name)
	})

	t.Run("should validate input", func(t *testing.T) {
		req := require.New(t)

		missing := valid
		missing.Skills = nil
		_, err := offers.Create(ctx, owner.ID, missing)
		req.ErrorIs(err, service.ErrValidation)
		req.EqualError(err, "Please fill all required fields for the offer")

		badCategory := valid
		badCategory.Category = "Cooking"
		_, err = requests.Create(ctx, owner.ID, badCategory)
		req.ErrorIs(err, service.ErrValidation)
		req.Contains(err.Error(), "Invalid category")
	})

	t.Run("should let only the owner update or delete", func(t *testing.T) {
		req := require.New(t)
		offer, err := offers.Create(ctx, owner.ID, valid)
		req.NoError(err)

		_, err = offers.Update(ctx, other.ID, offer.ID, service.ListingPatch{Title: ptr("Mine now")})
		req.ErrorIs(err, service.ErrUnauthorized)
		req.ErrorIs(offers.Delete(ctx, other.ID, offer.ID), service.ErrUnauthorized)

		_, err = offers.Update(ctx, owner.ID, offer.ID, service.ListingPatch{Status: ptr("matched")})
		req.ErrorIs(err, service.ErrValidation)

		updated, err := offers.Update(ctx, owner.ID, offer.ID, service.ListingPatch{
			Title:  ptr("Spanish and Catalan"),
			Status: ptr(model.OfferPaused),
		})
		req.NoError(err)
		req.Equal("Spanish and Catalan", updated.Title)
		req.Equal("Weekly calls", updated.Description)

		multibyte := strings.Repeat("é", 600)
		withAccents := valid
		withAccents.Description = multibyte
		accented, err := offers.Create(ctx, owner.ID, withAccents)
		req.NoError(err)
		resubmitted, err := offers.Update(ctx, owner.ID, accented.ID, service.ListingPatch{Description: ptr(multibyte)})
		req.NoError(err, "description length counts characters, not bytes")
		req.Equal(multibyte, resubmitted.Description)
		_, err = offers.Update(ctx, owner.ID, accented.ID, service.ListingPatch{Description: ptr(strings.Repeat("é", 1001))})
		req.ErrorIs(err, service.ErrValidation)

		reloaded, err := offers.Get(ctx, offer.ID)
		req.NoError(err)
		req.Equal(model.OfferPaused, reloaded.Status)

		req.NoError(offers.Delete(ctx, owner.ID, offer.ID))
		_, err = offers.Get(ctx, offer.ID)
		req.ErrorIs(err, service.ErrNotFound)
		req.EqualError(err, "Offer not found")
	})
}
