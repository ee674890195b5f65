package access

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doc-assistant-be/internal/entity"
	"doc-assistant-be/internal/model"
	"doc-assistant-be/internal/repository/specification"
	"doc-assistant-be/internal/repository/unitofwork"
	"doc-assistant-be/internal/testutil"
)

type fixture struct {
	uow    unitofwork.UnitOfWork
	f      *testutil.Fixtures
	org    *model.Organization
	admin  *entity.User
	member *entity.User
	out    *entity.User
}

func setup(t *testing.T) *fixture {
	db := testutil.NewDB(t)
	f := testutil.NewFixtures(t, db)

	org := f.Organization("Acme")
	admin := f.User("admin@acme.test")
	member := f.User("member@acme.test")
	outsider := f.User("outsider@acme.test")
	f.Membership(admin.Id, org.Id, "ADMIN")
	f.Membership(member.Id, org.Id, "MEMBER")

	return &fixture{
		uow:    unitofwork.NewRepositoryFactory(db).NewUnitOfWork(context.Background()),
		f:      f,
		org:    org,
		admin:  &entity.User{Id: admin.Id, Email: admin.Email},
		member: &entity.User{Id: member.Id, Email: member.Email},
		out:    &entity.User{Id: outsider.Id, Email: outsider.Email},
	}
}

func TestRequireMember(t *testing.T) {
	fx := setup(t)
	ctx := context.Background()
	e := NewEvaluator()

	for _, u := range []*entity.User{fx.admin, fx.member} {
		m, err := e.RequireMember(ctx, fx.uow, u, fx.org.Id)
		require.NoError(t, err)
		assert.Equal(t, u.Id, m.UserId)
	}

	_, err := e.RequireMember(ctx, fx.uow, fx.out, fx.org.Id)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotAMember))
	assert.Equal(t, `User is not a member of organization "Acme". Access denied.`, err.Error())
}

func TestRequireAdmin(t *testing.T) {
	fx := setup(t)
	ctx := context.Background()
	e := NewEvaluator()

	_, err := e.RequireAdmin(ctx, fx.uow, fx.admin, fx.org.Id)
	require.NoError(t, err)

	_, err = e.RequireAdmin(ctx, fx.uow, fx.member, fx.org.Id)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInsufficientRole))
	assert.Contains(t, err.Error(), "Current role: MEMBER.")

	_, err = e.RequireAdmin(ctx, fx.uow, fx.out, fx.org.Id)
	assert.True(t, errors.Is(err, ErrNotAMember))
}

func TestRequireMember_MissingOrganizationUsesFallbackName(t *testing.T) {
	fx := setup(t)

	_, err := NewEvaluator().RequireMember(context.Background(), fx.uow, fx.member, 4242)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"Organization 4242"`)
}

func TestIsMemberAndRoleOf(t *testing.T) {
	fx := setup(t)
	ctx := context.Background()
	e := NewEvaluator()

	ok, err := e.IsMember(ctx, fx.uow, fx.member, fx.org.Id)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = e.IsMember(ctx, fx.uow, fx.out, fx.org.Id)
	require.NoError(t, err)
	assert.False(t, ok)

	role, ok, err := e.RoleOf(ctx, fx.uow, fx.admin, fx.org.Id)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, entity.MembershipRoleAdmin, role)

	_, ok, err = e.RoleOf(ctx, fx.uow, fx.out, fx.org.Id)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestActiveOrganization(t *testing.T) {
	fx := setup(t)
	ctx := context.Background()
	e := NewEvaluator()

	_, err := e.ActiveOrganization(ctx, fx.uow, fx.member)
	assert.True(t, errors.Is(err, ErrNoActiveOrganization))

	orgId := fx.org.Id
	fx.member.ActiveOrganizationId = &orgId
	got, err := e.ActiveOrganization(ctx, fx.uow, fx.member)
	require.NoError(t, err)
	assert.Equal(t, fx.org.Id, got)

	// Active id pointing at an organization the user no longer belongs to.
	fx.out.ActiveOrganizationId = &orgId
	_, err = e.ActiveOrganization(ctx, fx.uow, fx.out)
	assert.True(t, errors.Is(err, ErrNotAMember))
}

func TestSetActiveOrganization(t *testing.T) {
	fx := setup(t)
	ctx := context.Background()
	e := NewEvaluator()

	require.NoError(t, fx.uow.Begin(ctx))
	require.NoError(t, e.SetActiveOrganization(ctx, fx.uow, fx.member, fx.org.Id))
	require.NoError(t, fx.uow.Commit())

	require.NotNil(t, fx.member.ActiveOrganizationId)
	assert.Equal(t, fx.org.Id, *fx.member.ActiveOrganizationId)

	stored, err := fx.uow.UserRepository().FindOne(ctx, specByID(fx.member.Id))
	require.NoError(t, err)
	require.NotNil(t, stored.ActiveOrganizationId)
	assert.Equal(t, fx.org.Id, *stored.ActiveOrganizationId)

	err = e.SetActiveOrganization(ctx, fx.uow, fx.out, fx.org.Id)
	assert.True(t, errors.Is(err, ErrNotAMember))
	stored, err = fx.uow.UserRepository().FindOne(ctx, specByID(fx.out.Id))
	require.NoError(t, err)
	assert.Nil(t, stored.ActiveOrganizationId)
}

func specByID(id uint) specification.ByID {
	return specification.ByID{ID: id}
}
