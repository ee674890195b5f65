package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"doc-assistant-be/internal/dto"
	"doc-assistant-be/internal/entity"
	"doc-assistant-be/internal/model"
	"doc-assistant-be/internal/pkg/logger"
	"doc-assistant-be/internal/repository/unitofwork"
	"doc-assistant-be/internal/testutil"
	"doc-assistant-be/pkg/events"
	"doc-assistant-be/pkg/tenant/access"
)

func TestCreateOrganization_CreatorBecomesActiveAdmin(t *testing.T) {
	h := newHarness(t)
	user := h.fixtures.User("founder@acme.test")

	org, err := h.orgs.Create(context.Background(), user.Id, &dto.CreateOrganizationRequest{Name: " Acme "})

	require.NoError(t, err)
	assert.Equal(t, "Acme", org.Name)

	var membership model.Membership
	require.NoError(t, h.db.Where("user_id = ? AND organization_id = ?", user.Id, org.Id).First(&membership).Error)
	assert.Equal(t, "ADMIN", membership.Role)

	var stored model.User
	require.NoError(t, h.db.First(&stored, user.Id).Error)
	require.NotNil(t, stored.ActiveOrganizationId)
	assert.Equal(t, org.Id, *stored.ActiveOrganizationId)
	assert.Equal(t, []string{events.TypeOrganizationCreated}, h.events.Types())
}

func TestCreateOrganization_DuplicateNameConflicts(t *testing.T) {
	h := newHarness(t)
	h.fixtures.Organization("Acme")
	user := h.fixtures.User("founder@acme.test")

	_, err := h.orgs.Create(context.Background(), user.Id, &dto.CreateOrganizationRequest{Name: "Acme"})

	assert.ErrorIs(t, err, ErrConflict)
	var n int64
	require.NoError(t, h.db.Model(&model.Membership{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestListOrganizations_OnlyMembershipsOrderedByName(t *testing.T) {
	h := newHarness(t)
	user := h.fixtures.User("member@acme.test")
	zeta := h.fixtures.Organization("Zeta")
	alpha := h.fixtures.Organization("Alpha")
	h.fixtures.Organization("Hidden")
	h.fixtures.Membership(user.Id, zeta.Id, "MEMBER")
	h.fixtures.Membership(user.Id, alpha.Id, "ADMIN")

	orgs, err := h.orgs.List(context.Background(), user.Id)

	require.NoError(t, err)
	require.Len(t, orgs, 2)
	assert.Equal(t, "Alpha", orgs[0].Name)
	assert.Equal(t, "Zeta", orgs[1].Name)
}

func TestSetActive_NonMemberLeavesStateUnchanged(t *testing.T) {
	h := newHarness(t)
	user := h.fixtures.User("member@acme.test")
	own := h.fixtures.Organization("Own")
	foreign := h.fixtures.Organization("Foreign")
	h.fixtures.Membership(user.Id, own.Id, "MEMBER")
	h.fixtures.SetActiveOrganization(user.Id, &own.Id)

	_, err := h.orgs.SetActive(context.Background(), user.Id, foreign.Id)

	assert.ErrorIs(t, err, access.ErrNotAMember)
	var stored model.User
	require.NoError(t, h.db.First(&stored, user.Id).Error)
	require.NotNil(t, stored.ActiveOrganizationId)
	assert.Equal(t, own.Id, *stored.ActiveOrganizationId)
}

func TestSetActive_Member(t *testing.T) {
	h := newHarness(t)
	user := h.fixtures.User("member@acme.test")
	org := h.fixtures.Organization("Acme")
	h.fixtures.Membership(user.Id, org.Id, "MEMBER")

	active, err := h.orgs.SetActive(context.Background(), user.Id, org.Id)

	require.NoError(t, err)
	assert.Equal(t, "Acme", active.Name)
	var stored model.User
	require.NoError(t, h.db.First(&stored, user.Id).Error)
	require.NotNil(t, stored.ActiveOrganizationId)
	assert.Equal(t, org.Id, *stored.ActiveOrganizationId)
}

func TestInvite_AdminAddsThenUpdatesRole(t *testing.T) {
	h := newHarness(t)
	org := h.fixtures.Organization("Acme")
	admin := h.fixtures.User("admin@acme.test")
	invitee := h.fixtures.User("new@acme.test")
	h.fixtures.Membership(admin.Id, org.Id, "ADMIN")

	first, err := h.orgs.Invite(context.Background(), admin.Id, &dto.InviteMemberRequest{
		OrganizationId: org.Id,
		UserEmail:      "new@acme.test",
		Role:           "MEMBER",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.MembershipRoleMember, first.Role)
	assert.Equal(t, invitee.Id, first.User.Id)

	second, err := h.orgs.Invite(context.Background(), admin.Id, &dto.InviteMemberRequest{
		OrganizationId: org.Id,
		UserEmail:      "new@acme.test",
		Role:           "ADMIN",
	})
	require.NoError(t, err)
	assert.Equal(t, first.Id, second.Id)
	assert.Equal(t, entity.MembershipRoleAdmin, second.Role)

	var n int64
	require.NoError(t, h.db.Model(&model.Membership{}).Where("user_id = ?", invitee.Id).Count(&n).Error)
	assert.Equal(t, int64(1), n)

	require.Len(t, h.queue.payloads, 2)
	var msg dto.MemberInvitedMessage
	require.NoError(t, json.Unmarshal(h.queue.payloads[0], &msg))
	assert.True(t, msg.Created)
	assert.Equal(t, "Acme", msg.OrganizationName)
	require.NoError(t, json.Unmarshal(h.queue.payloads[1], &msg))
	assert.False(t, msg.Created)
	assert.Equal(t, []string{events.TypeMemberInvited, events.TypeMemberInvited}, h.events.Types())
}

func TestInvite_MemberCannotInvite(t *testing.T) {
	h := newHarness(t)
	org := h.fixtures.Organization("Acme")
	member := h.fixtures.User("member@acme.test")
	h.fixtures.User("new@acme.test")
	h.fixtures.Membership(member.Id, org.Id, "MEMBER")

	_, err := h.orgs.Invite(context.Background(), member.Id, &dto.InviteMemberRequest{
		OrganizationId: org.Id,
		UserEmail:      "new@acme.test",
		Role:           "MEMBER",
	})

	assert.ErrorIs(t, err, access.ErrInsufficientRole)
	assert.Empty(t, h.queue.payloads)
}

func TestInvite_UnknownEmail(t *testing.T) {
	h := newHarness(t)
	org := h.fixtures.Organization("Acme")
	admin := h.fixtures.User("admin@acme.test")
	h.fixtures.Membership(admin.Id, org.Id, "ADMIN")

	_, err := h.orgs.Invite(context.Background(), admin.Id, &dto.InviteMemberRequest{
		OrganizationId: org.Id,
		UserEmail:      "ghost@acme.test",
		Role:           "MEMBER",
	})

	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Equal(t, "User with email ghost@acme.test does not exist.", err.Error())
}

func TestInvite_InvalidRole(t *testing.T) {
	h := newHarness(t)
	org := h.fixtures.Organization("Acme")
	admin := h.fixtures.User("admin@acme.test")
	h.fixtures.User("new@acme.test")
	h.fixtures.Membership(admin.Id, org.Id, "ADMIN")

	_, err := h.orgs.Invite(context.Background(), admin.Id, &dto.InviteMemberRequest{
		OrganizationId: org.Id,
		UserEmail:      "new@acme.test",
		Role:           "OWNER",
	})

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "Invalid role: OWNER. Must be one of: ADMIN, MEMBER.", ve.Message)
}

func TestInvite_MalformedEmailIsInvalid(t *testing.T) {
	h := newHarness(t)
	org := h.fixtures.Organization("Acme")
	admin := h.fixtures.User("admin@acme.test")
	h.fixtures.Membership(admin.Id, org.Id, "ADMIN")

	_, err := h.orgs.Invite(context.Background(), admin.Id, &dto.InviteMemberRequest{
		OrganizationId: org.Id,
		UserEmail:      "not-an-email",
		Role:           "MEMBER",
	})

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "user_email must be a valid email address.", ve.Message)
	assert.NotErrorIs(t, err, ErrUserNotFound)
	assert.Empty(t, h.queue.payloads)
}

func TestInvite_EmailIsNormalized(t *testing.T) {
	h := newHarness(t)
	org := h.fixtures.Organization("Acme")
	admin := h.fixtures.User("admin@acme.test")
	invitee := h.fixtures.User("new@acme.test")
	h.fixtures.Membership(admin.Id, org.Id, "ADMIN")

	m, err := h.orgs.Invite(context.Background(), admin.Id, &dto.InviteMemberRequest{
		OrganizationId: org.Id,
		UserEmail:      "  New@Acme.TEST ",
	})

	require.NoError(t, err)
	assert.Equal(t, invitee.Id, m.UserId)
	assert.Equal(t, entity.MembershipRoleMember, m.Role)
}

func TestInvite_EncodeFailureIsLogged(t *testing.T) {
	encodeInvitation = func(v interface{}) ([]byte, error) {
		return nil, errors.New("encoder broken")
	}
	t.Cleanup(func() { encodeInvitation = json.Marshal })

	db := testutil.NewDB(t)
	f := testutil.NewFixtures(t, db)
	core, logs := observer.New(zapcore.DebugLevel)
	queue := &recordingQueue{}
	orgs := NewOrganizationService(
		unitofwork.NewRepositoryFactory(db),
		access.NewEvaluator(),
		queue,
		events.NopPublisher{},
		logger.NewFromZap(zap.New(core)),
	)

	org := f.Organization("Acme")
	admin := f.User("admin@acme.test")
	f.User("new@acme.test")
	f.Membership(admin.Id, org.Id, "ADMIN")

	_, err := orgs.Invite(context.Background(), admin.Id, &dto.InviteMemberRequest{
		OrganizationId: org.Id,
		UserEmail:      "new@acme.test",
	})
	require.NoError(t, err)

	assert.Empty(t, queue.payloads)
	failed := logs.FilterMessage("Failed to encode invitation mail").All()
	require.Len(t, failed, 1)
	assert.Equal(t, zapcore.ErrorLevel, failed[0].Level)
}
