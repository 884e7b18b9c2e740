package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSkillRefFrom(t *testing.T) {
	offer, request, zero := uint(4), uint(9), uint(0)

	tests := []struct {
		name        string
		offerID     *uint
		requestID   *uint
		wantZero    bool
		wantOffer   bool
		wantRequest bool
	}{
		{name: "neither", wantZero: true},
		{name: "zero ids count as absent", offerID: &zero, requestID: &zero, wantZero: true},
		{name: "offer only", offerID: &offer, wantOffer: true},
		{name: "request only", requestID: &request, wantRequest: true},
		{name: "both", offerID: &offer, requestID: &request, wantOffer: true, wantRequest: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			ref := SkillRefFrom(tt.offerID, tt.requestID)

			req.Equal(tt.wantZero, ref.IsZero())
			id, ok := ref.OfferID()
			req.Equal(tt.wantOffer, ok)
			if ok {
				req.Equal(offer, id)
			}
			id, ok = ref.RequestID()
			req.Equal(tt.wantRequest, ok)
			if ok {
				req.Equal(request, id)
			}
		})
	}
}
