package mysql

import (
	"context"

	"github.com/kasmoni/payment-service/internal/entities"
)

func (m *mysqlConnector) CreateGroup(ctx context.Context, g *entities.Group) error {
	db, cancel := m.session(ctx)
	defer cancel()

	return mapError(db.Create(g).Error)
}

func (m *mysqlConnector) CreateMember(ctx context.Context, mem *entities.Member) error {
	db, cancel := m.session(ctx)
	defer cancel()

	return mapError(db.Create(mem).Error)
}

func (m *mysqlConnector) GetGroupsByIDs(ctx context.Context, ids []uint) ([]entities.Group, error) {
	groups := make([]entities.Group, 0)
	if len(ids) == 0 {
		return groups, nil
	}

	db, cancel := m.session(ctx)
	defer cancel()

	if err := db.Where("id IN ?", ids).Order("id").Find(&groups).Error; err != nil {
		return nil, mapError(err)
	}
	return groups, nil
}

func (m *mysqlConnector) GetMembersByIDs(ctx context.Context, ids []uint) ([]entities.Member, error) {
	members := make([]entities.Member, 0)
	if len(ids) == 0 {
		return members, nil
	}

	db, cancel := m.session(ctx)
	defer cancel()

	if err := db.Where("id IN ?", ids).Order("id").Find(&members).Error; err != nil {
		return nil, mapError(err)
	}
	return members, nil
}
