package inmemory

import (
	"context"
	"sort"

	"github.com/kasmoni/payment-service/internal/entities"
	"github.com/kasmoni/payment-service/internal/repository/database"
)

func (m *inmemoryProvider) CreateGroup(ctx context.Context, g *entities.Group) error {
	return m.write(func(d *dataset) error {
		if _, exists := d.groups[g.ID]; g.ID != 0 && exists {
			return database.ErrDuplicateKey
		}
		g.ID = nextID(&d.seq.group, g.ID)
		d.groups[g.ID] = *g
		return nil
	})
}

func (m *inmemoryProvider) CreateMember(ctx context.Context, mem *entities.Member) error {
	return m.write(func(d *dataset) error {
		if _, exists := d.members[mem.ID]; mem.ID != 0 && exists {
			return database.ErrDuplicateKey
		}
		mem.ID = nextID(&d.seq.member, mem.ID)
		d.members[mem.ID] = *mem
		return nil
	})
}

func (m *inmemoryProvider) GetGroupsByIDs(ctx context.Context, ids []uint) ([]entities.Group, error) {
	result := make([]entities.Group, 0, len(ids))
	m.read(func(d *dataset) {
		for _, id := range uniqueIDs(ids) {
			if g, ok := d.groups[id]; ok {
				result = append(result, g)
			}
		}
	})
	return result, nil
}

func (m *inmemoryProvider) GetMembersByIDs(ctx context.Context, ids []uint) ([]entities.Member, error) {
	result := make([]entities.Member, 0, len(ids))
	m.read(func(d *dataset) {
		for _, id := range uniqueIDs(ids) {
			if mem, ok := d.members[id]; ok {
				result = append(result, mem)
			}
		}
	})
	return result, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	result := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}
