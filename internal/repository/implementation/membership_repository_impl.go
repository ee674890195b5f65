package implementation

import (
	"context"
	"errors"
	"fmt"

	"doc-assistant-be/internal/entity"
	"doc-assistant-be/internal/mapper"
	"doc-assistant-be/internal/model"
	"doc-assistant-be/internal/repository/contract"
	"doc-assistant-be/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MembershipRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.OrganizationMapper
}

func NewMembershipRepository(db *gorm.DB) contract.MembershipRepository {
	return &MembershipRepositoryImpl{
		db:     db,
		mapper: mapper.NewOrganizationMapper(),
	}
}

func (r *MembershipRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *MembershipRepositoryImpl) Upsert(ctx context.Context, membership *entity.Membership) (bool, error) {
	if !membership.Role.Valid() {
		return false, fmt.Errorf("invalid role: %s", membership.Role)
	}

	existing, err := r.findPair(ctx, membership.UserId, membership.OrganizationId)
	if err != nil {
		return false, err
	}

	// Single statement so a concurrent insert for the same pair never aborts
	// the surrounding transaction on Postgres.
	m := r.mapper.MembershipToModel(membership)
	m.Id = 0
	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "organization_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"role"}),
	}).Create(m).Error
	if err != nil {
		return false, translateError(err)
	}

	stored, err := r.findPair(ctx, membership.UserId, membership.OrganizationId)
	if err != nil {
		return false, err
	}
	if stored == nil {
		return false, fmt.Errorf("membership for user %d in organization %d missing after upsert", membership.UserId, membership.OrganizationId)
	}
	*membership = *r.mapper.MembershipToEntity(stored)
	return existing == nil, nil
}

func (r *MembershipRepositoryImpl) findPair(ctx context.Context, userId, organizationId uint) (*model.Membership, error) {
	var m model.Membership
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND organization_id = ?", userId, organizationId).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *MembershipRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Membership, error) {
	var m model.Membership
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.MembershipToEntity(&m), nil
}

func (r *MembershipRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Membership, error) {
	var models []*model.Membership
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.MembershipsToEntities(models), nil
}

func (r *MembershipRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Membership{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
