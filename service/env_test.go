package service_test

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"skillswap-service/model"
	"skillswap-service/service"
	"skillswap-service/store"
	"skillswap-service/store/testutil"

	"gorm.io/gorm"
)

// recordingSink stores notifications like the real sink and remembers every
// call it received.
type recordingSink struct {
	inner *store.NotificationStore

	mu    sync.Mutex
	calls []model.Notification
}

func (s *recordingSink) Create(ctx context.Context, userID uint, message string, kind model.NotificationType, link *string) (*model.Notification, error) {
	notification, err := s.inner.Create(ctx, userID, message, kind, link)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.calls = append(s.calls, *notification)
	s.mu.Unlock()
	return notification, nil
}

func (s *recordingSink) received() []model.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Notification(nil), s.calls...)
}

type env struct {
	db            *gorm.DB
	users         *store.UserStore
	listings      *store.Listings
	messages      *store.MessageStore
	exchanges     *store.ExchangeStore
	notifications *store.NotificationStore
	sink          *recordingSink
	fanout        *service.Fanout
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := testutil.NewTestDB(t)
	e := &env{
		db:            db,
		users:         store.NewUserStore(db),
		listings:      store.NewListings(db),
		messages:      store.NewMessageStore(db),
		exchanges:     store.NewExchangeStore(db),
		notifications: store.NewNotificationStore(db),
	}
	e.sink = &recordingSink{inner: e.notifications}
	e.fanout = service.NewFanout(e.sink, e.messages, nil)
	return e
}

func (e *env) messageService() *service.MessageService {
	return service.NewMessageService(e.users, e.messages, e.fanout)
}

func (e *env) exchangeService() *service.ExchangeService {
	return service.NewExchangeService(e.users, e.listings, e.exchanges, e.fanout)
}

// seedExchange stores an exchange in status without going through the
// state machine.
func (e *env) seedExchange(t *testing.T, proposer, accepter *model.User, status model.ExchangeStatus) *model.Exchange {
	t.Helper()
	offer := testutil.CreateOffer(t, e.db, proposer.ID, "Spanish")
	exchange := &model.Exchange{
		ProposerID:        proposer.ID,
		AccepterID:        accepter.ID,
		OfferedSkillRefID: &offer.ID,
		ProposedTerms:     "Swap Spanish for guitar",
		Status:            status,
	}
	if err := e.exchanges.Create(context.Background(), exchange); err != nil {
		t.Fatalf("seeding exchange: %v", err)
	}
	return exchange
}

func ptr[T any](v T) *T { return &v }

func uintString(v uint) string { return strconv.FormatUint(uint64(v), 10) }
