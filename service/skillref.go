package service

import "skillswap-service/model"

type skillRefKind uint8

const (
	skillRefNone skillRefKind = iota
	skillRefOffer
	skillRefRequest
	skillRefBoth
)

// SkillRef names the listings an exchange proposal is about. It is either
// OfferBacked, RequestBacked or Both; the zero value references nothing and
// is rejected by CreateProposal.
type SkillRef struct {
	kind      skillRefKind
	offerID   uint
	requestID uint
}

// OfferBacked references an offer owned by the proposer.
func OfferBacked(offerID uint) SkillRef {
	return SkillRef{kind: skillRefOffer, offerID: offerID}
}

// RequestBacked references a request owned by the accepter.
func RequestBacked(requestID uint) SkillRef {
	return SkillRef{kind: skillRefRequest, requestID: requestID}
}

func Both(offerID, requestID uint) SkillRef {
	return SkillRef{kind: skillRefBoth, offerID: offerID, requestID: requestID}
}

// SkillRefFrom builds a SkillRef from optional ids, as they arrive over the
// wire. Zero ids count as absent.
func SkillRefFrom(offerID, requestID *uint) SkillRef {
	hasOffer := offerID != nil && *offerID != 0
	hasRequest := requestID != nil && *requestID != 0
	switch {
	case hasOffer && hasRequest:
		return Both(*offerID, *requestID)
	case hasOffer:
		return OfferBacked(*offerID)
	case hasRequest:
		return RequestBacked(*requestID)
	default:
		return SkillRef{}
	}
}

func (r SkillRef) IsZero() bool { return r.kind == skillRefNone }

func (r SkillRef) OfferID() (uint, bool) {
	return r.offerID, r.kind == skillRefOffer || r.kind == skillRefBoth
}

func (r SkillRef) RequestID() (uint, bool) {
	return r.requestID, r.kind == skillRefRequest || r.kind == skillRefBoth
}

func (r SkillRef) apply(exchange *model.Exchange) {
	if id, ok := r.OfferID(); ok {
		exchange.OfferedSkillRefID = &id
	}
	if id, ok := r.RequestID(); ok {
		exchange.RequestedSkillRefID = &id
	}
}

// SkillRefOf reads the reference back from a stored exchange.
func SkillRefOf(exchange *model.Exchange) SkillRef {
	return SkillRefFrom(exchange.OfferedSkillRefID, exchange.RequestedSkillRefID)
}
