package implementation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"doc-assistant-be/internal/model"
	"doc-assistant-be/internal/testutil"
)

type cascadeFixture struct {
	org     *model.Organization
	admin   *model.User
	member  *model.User
	doc     *model.Document
	entries []*model.Conversation
}

func newCascadeFixture(t *testing.T, db *gorm.DB) cascadeFixture {
	t.Helper()
	f := testutil.NewFixtures(t, db)

	org := f.Organization("Acme")
	admin := f.User("admin@acme.test")
	member := f.User("member@acme.test")
	f.Membership(admin.Id, org.Id, "ADMIN")
	f.Membership(member.Id, org.Id, "MEMBER")
	doc := f.Document(org.Id, &admin.Id, "Handbook", "Deadline is Friday.")

	entries := []*model.Conversation{
		{DocumentId: doc.Id, UserId: admin.Id, Question: "q1", Answer: "a1"},
		{DocumentId: doc.Id, UserId: member.Id, Question: "q2", Answer: "a2"},
	}
	for _, e := range entries {
		require.NoError(t, db.Create(e).Error)
	}
	return cascadeFixture{org: org, admin: admin, member: member, doc: doc, entries: entries}
}

func countRows(t *testing.T, db *gorm.DB, m interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(m).Where(query, args...).Count(&n).Error)
	return n
}

func TestCascade_OrganizationDeleteRemovesDocumentsAndMemberships(t *testing.T) {
	db := testutil.NewDB(t)
	fx := newCascadeFixture(t, db)

	require.NoError(t, db.Delete(&model.Organization{}, fx.org.Id).Error)

	assert.Zero(t, countRows(t, db, &model.Document{}, "organization_id = ?", fx.org.Id))
	assert.Zero(t, countRows(t, db, &model.Membership{}, "organization_id = ?", fx.org.Id))
	assert.Zero(t, countRows(t, db, &model.Conversation{}, "document_id = ?", fx.doc.Id))
	assert.Equal(t, int64(2), countRows(t, db, &model.User{}, "1 = 1"))
}

func TestCascade_DocumentDeleteRemovesConversations(t *testing.T) {
	db := testutil.NewDB(t)
	fx := newCascadeFixture(t, db)

	require.NoError(t, db.Delete(&model.Document{}, fx.doc.Id).Error)

	assert.Zero(t, countRows(t, db, &model.Conversation{}, "document_id = ?", fx.doc.Id))
	assert.Equal(t, int64(2), countRows(t, db, &model.Membership{}, "organization_id = ?", fx.org.Id))
}

func TestCascade_UserDeleteRemovesConversationsAndMemberships(t *testing.T) {
	db := testutil.NewDB(t)
	fx := newCascadeFixture(t, db)

	require.NoError(t, db.Delete(&model.User{}, fx.member.Id).Error)

	assert.Zero(t, countRows(t, db, &model.Conversation{}, "user_id = ?", fx.member.Id))
	assert.Zero(t, countRows(t, db, &model.Membership{}, "user_id = ?", fx.member.Id))
	assert.Equal(t, int64(1), countRows(t, db, &model.Conversation{}, "user_id = ?", fx.admin.Id))
	assert.Equal(t, int64(1), countRows(t, db, &model.Document{}, "id = ?", fx.doc.Id))
}

func TestCascade_CreatorDeleteKeepsDocumentWithoutCreator(t *testing.T) {
	db := testutil.NewDB(t)
	fx := newCascadeFixture(t, db)

	require.NoError(t, db.Delete(&model.User{}, fx.admin.Id).Error)

	var doc model.Document
	require.NoError(t, db.First(&doc, fx.doc.Id).Error)
	assert.Nil(t, doc.CreatedById)
	assert.Equal(t, "Handbook", doc.Title)
	assert.Equal(t, int64(1), countRows(t, db, &model.Conversation{}, "document_id = ?", fx.doc.Id))
}
