package store

import (
	"context"

	"skillswap-service/model"

	"gorm.io/gorm"
)

type ExchangeStore struct {
	db *gorm.DB
}

func NewExchangeStore(db *gorm.DB) *ExchangeStore {
	return &ExchangeStore{db: db}
}

func (s *ExchangeStore) Create(ctx context.Context, exchange *model.Exchange) error {
	return omitAssociations(s.db.WithContext(ctx)).Create(exchange).Error
}

func (s *ExchangeStore) Find(ctx context.Context, id uint) (*model.Exchange, error) {
	exchange := new(model.Exchange)
	if err := s.db.WithContext(ctx).First(exchange, id).Error; err != nil {
		return nil, translate(err)
	}
	return exchange, nil
}

// Save writes the whole row back. There is no version check: the last
// writer wins.
func (s *ExchangeStore) Save(ctx context.Context, exchange *model.Exchange) error {
	return omitAssociations(s.db.WithContext(ctx)).Save(exchange).Error
}

// ListFor returns the exchanges userID takes part in, newest first.
func (s *ExchangeStore) ListFor(ctx context.Context, userID uint) ([]model.Exchange, error) {
	exchanges := []model.Exchange{}
	err := s.db.WithContext(ctx).
		Preload("Proposer").
		Preload("Accepter").
		Preload("OfferedSkillRef").
		Preload("RequestedSkillRef").
		Where("proposer_id = ? OR accepter_id = ?", userID, userID).
		Order("created_at desc, id desc").
		Find(&exchanges).Error
	return exchanges, err
}
