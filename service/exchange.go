package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"skillswap-service/model"
	"skillswap-service/store"
)

type ExchangeService struct {
	users     UserDirectory
	listings  ListingDirectory
	exchanges ExchangeRepository
	fanout    *Fanout
}

func NewExchangeService(users UserDirectory, listings ListingDirectory, exchanges ExchangeRepository, fanout *Fanout) *ExchangeService {
	return &ExchangeService{users: users, listings: listings, exchanges: exchanges, fanout: fanout}
}

type ProposalInput struct {
	AccepterID    uint
	Skills        SkillRef
	ProposedTerms string
}

// CreateProposal records a pending exchange from proposerID to the accepter.
// A referenced offer must belong to the proposer and a referenced request to
// the accepter. The proposal is also appended to the pair's conversation.
func (s *ExchangeService) CreateProposal(ctx context.Context, proposerID uint, in ProposalInput) (*model.Exchange, error) {
	terms := strings.TrimSpace(in.ProposedTerms)
	if in.AccepterID == 0 || terms == "" {
		return nil, newError(KindValidation, "Accepter and proposed terms are required")
	}
	if in.Skills.IsZero() {
		return nil, newError(KindValidation, "Either an offered skill or a requested skill reference is required for the proposal")
	}
	if utf8.RuneCountInString(terms) > model.MaxProposedTerms {
		return nil, newError(KindValidation, "Proposed terms cannot be more than %d characters", model.MaxProposedTerms)
	}

	if _, err := s.users.FindUser(ctx, in.AccepterID); err != nil {
		return nil, lookupError(err, "Accepter user not found")
	}
	if proposerID == in.AccepterID {
		return nil, newError(KindSelfReference, "Cannot propose an exchange to yourself.")
	}
	if err := s.checkSkills(ctx, proposerID, in.AccepterID, in.Skills); err != nil {
		return nil, err
	}
	proposer, err := s.users.FindUser(ctx, proposerID)
	if err != nil {
		return nil, lookupError(err, "Proposer user not found")
	}

	exchange := &model.Exchange{
		ProposerID:    proposerID,
		AccepterID:    in.AccepterID,
		ProposedTerms: terms,
		Status:        model.ExchangePending,
	}
	in.Skills.apply(exchange)
	if err := s.exchanges.Create(ctx, exchange); err != nil {
		return nil, fmt.Errorf("create exchange: %w", err)
	}

	_ = s.fanout.ProposalCreated(ctx, proposer, exchange)
	return exchange, nil
}

func (s *ExchangeService) checkSkills(ctx context.Context, proposerID, accepterID uint, skills SkillRef) error {
	if id, ok := skills.OfferID(); ok {
		offer, err := s.listings.FindOffer(ctx, id)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("find offer: %w", err)
		}
		if offer == nil || offer.UserID != proposerID {
			return newError(KindInvalidReference, "Invalid or unauthorized offered skill reference.")
		}
	}
	if id, ok := skills.RequestID(); ok {
		request, err := s.listings.FindRequest(ctx, id)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("find request: %w", err)
		}
		if request == nil || request.UserID != accepterID {
			return newError(KindInvalidReference, "Invalid or unauthorized requested skill reference.")
		}
	}
	return nil
}

// UpdateStatus moves an exchange to status on behalf of userID and notifies
// the other participant. Concurrent updates are not serialized: the last
// write wins.
func (s *ExchangeService) UpdateStatus(ctx context.Context, exchangeID, userID uint, status string) (*model.Exchange, error) {
	next, err := parseTargetStatus(status)
	if err != nil {
		return nil, err
	}

	exchange, err := s.exchanges.Find(ctx, exchangeID)
	if err != nil {
		return nil, lookupError(err, "Exchange not found")
	}
	if err := authorizeTransition(exchange, userID, next); err != nil {
		return nil, err
	}
	actor, err := s.users.FindUser(ctx, userID)
	if err != nil {
		return nil, lookupError(err, "User not found")
	}

	exchange.Status = next
	if err := s.exchanges.Save(ctx, exchange); err != nil {
		return nil, fmt.Errorf("save exchange: %w", err)
	}

	_ = s.fanout.StatusUpdated(ctx, actor, exchange)
	return exchange, nil
}

// Exchanges lists the exchanges userID takes part in, newest first.
func (s *ExchangeService) Exchanges(ctx context.Context, userID uint) ([]model.Exchange, error) {
	exchanges, err := s.exchanges.ListFor(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list exchanges: %w", err)
	}
	return exchanges, nil
}
