// Package testutil provides fixtures shared by package tests.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"doc-assistant-be/internal/model"
	"doc-assistant-be/pkg/database"
)

var dbSeq atomic.Int64

// NewDB opens a private in-memory SQLite database with every table migrated.
// The database is closed when the test ends.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", name, dbSeq.Add(1))

	db, err := database.NewGormDBFromDSN(dsn, database.WithLogLevel(logger.Silent))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// Fixtures inserts rows directly through gorm models.
type Fixtures struct {
	t  testing.TB
	db *gorm.DB
}

func NewFixtures(t testing.TB, db *gorm.DB) *Fixtures {
	return &Fixtures{t: t, db: db}
}

func (f *Fixtures) User(email string) *model.User {
	f.t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(f.t, err)
	h := string(hash)
	u := &model.User{Email: email, PasswordHash: &h, FullName: email}
	require.NoError(f.t, f.db.WithContext(context.Background()).Create(u).Error)
	return u
}

func (f *Fixtures) Organization(name string) *model.Organization {
	f.t.Helper()
	o := &model.Organization{Name: name}
	require.NoError(f.t, f.db.Create(o).Error)
	return o
}

func (f *Fixtures) Membership(userId, organizationId uint, role string) *model.Membership {
	f.t.Helper()
	m := &model.Membership{UserId: userId, OrganizationId: organizationId, Role: role}
	require.NoError(f.t, f.db.Create(m).Error)
	return m
}

func (f *Fixtures) Document(organizationId uint, createdBy *uint, title, content string) *model.Document {
	f.t.Helper()
	d := &model.Document{OrganizationId: organizationId, CreatedById: createdBy, Title: title, Content: content}
	require.NoError(f.t, f.db.Create(d).Error)
	return d
}

func (f *Fixtures) SetActiveOrganization(userId uint, organizationId *uint) {
	f.t.Helper()
	require.NoError(f.t, f.db.Model(&model.User{}).Where("id = ?", userId).Update("active_organization_id", organizationId).Error)
}

// CountConversations returns the number of stored conversation entries.
func (f *Fixtures) CountConversations() int64 {
	f.t.Helper()
	var n int64
	require.NoError(f.t, f.db.Model(&model.Conversation{}).Count(&n).Error)
	return n
}
