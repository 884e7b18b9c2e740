// Package testutil provides in-memory databases and fixtures for tests.
package testutil

import (
	"context"
	"testing"

	"skillswap-service/database"
	"skillswap-service/model"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// NewTestDB opens an in-memory sqlite database with all tables migrated.
// It is closed when the test completes.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), database.GormConfig())
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrapping test db: %v", err)
	}
	// every pooled connection would otherwise get its own empty database
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrating test db: %v", err)
	}

	t.Cleanup(func() {
		if err := sqlDB.Close(); err != nil {
			t.Errorf("closing test db: %v", err)
		}
	})
	return db
}

// CreateUser inserts a user with the given display name.
func CreateUser(t *testing.T, db *gorm.DB, name string) *model.User {
	t.Helper()

	user := &model.User{
		Name:           name,
		Email:          name + "@skillswap.test",
		Password:       "hash",
		ProfilePicture: model.DefaultProfilePicture,
		Location:       "Delhi",
		Role:           "user",
	}
	if err := db.WithContext(context.Background()).Create(user).Error; err != nil {
		t.Fatalf("creating user %s: %v", name, err)
	}
	return user
}

// CreateOffer inserts an active offer owned by ownerID.
func CreateOffer(t *testing.T, db *gorm.DB, ownerID uint, title string) *model.Offer {
	t.Helper()

	offer := &model.Offer{Listing: listing(ownerID, title, model.OfferActive)}
	if err := db.Omit("User").Create(offer).Error; err != nil {
		t.Fatalf("creating offer %s: %v", title, err)
	}
	return offer
}

// CreateRequest inserts an open request owned by ownerID.
func CreateRequest(t *testing.T, db *gorm.DB, ownerID uint, title string) *model.Request {
	t.Helper()

	request := &model.Request{Listing: listing(ownerID, title, model.RequestOpen)}
	if err := db.Omit("User").Create(request).Error; err != nil {
		t.Fatalf("creating request %s: %v", title, err)
	}
	return request
}

func listing(ownerID uint, title, status string) model.Listing {
	return model.Listing{
		UserID:      ownerID,
		Title:       title,
		Description: title + " sessions",
		Category:    "Language",
		Skills:      []string{title},
		Location:    "Delhi",
		Status:      status,
	}
}
