package inmemory

import (
	"context"
	"sort"

	"github.com/kasmoni/payment-service/internal/entities"
	"github.com/kasmoni/payment-service/internal/repository/database"
)

func (m *inmemoryProvider) CreateArchivedPayment(ctx context.Context, a *entities.ArchivedPayment) error {
	return m.write(func(d *dataset) error {
		if _, exists := d.archive[a.ID]; a.ID != 0 && exists {
			return database.ErrDuplicateKey
		}
		if a.ArchivedAt.IsZero() {
			a.ArchivedAt = m.now()
		}

		a.ID = nextID(&d.seq.archive, a.ID)
		d.archive[a.ID] = *a
		return nil
	})
}

func (m *inmemoryProvider) GetArchivedPaymentByID(ctx context.Context, id uint) (*entities.ArchivedPayment, error) {
	var (
		found entities.ArchivedPayment
		ok    bool
	)
	m.read(func(d *dataset) {
		found, ok = d.archive[id]
	})

	if !ok {
		return nil, database.ErrRecordNotFound
	}
	return &found, nil
}

func (m *inmemoryProvider) ListArchivedPayments(ctx context.Context) ([]entities.ArchivedPayment, error) {
	result := make([]entities.ArchivedPayment, 0)
	m.read(func(d *dataset) {
		for _, a := range d.archive {
			result = append(result, a)
		}
	})

	sort.Slice(result, func(i, j int) bool {
		if !result[i].ArchivedAt.Equal(result[j].ArchivedAt) {
			return result[i].ArchivedAt.After(result[j].ArchivedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (m *inmemoryProvider) DeleteArchivedPayment(ctx context.Context, id uint) (int64, error) {
	var affected int64
	err := m.write(func(d *dataset) error {
		if _, ok := d.archive[id]; ok {
			delete(d.archive, id)
			affected = 1
		}
		return nil
	})
	return affected, err
}
