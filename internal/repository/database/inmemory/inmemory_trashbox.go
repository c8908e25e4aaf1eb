package inmemory

import (
	"context"
	"sort"

	"github.com/kasmoni/payment-service/internal/entities"
	"github.com/kasmoni/payment-service/internal/repository/database"
)

func (m *inmemoryProvider) CreateTrashedPayment(ctx context.Context, t *entities.TrashedPayment) error {
	return m.write(func(d *dataset) error {
		if _, exists := d.trash[t.ID]; t.ID != 0 && exists {
			return database.ErrDuplicateKey
		}
		if t.DeletedAt.IsZero() {
			t.DeletedAt = m.now()
		}

		t.ID = nextID(&d.seq.trash, t.ID)
		d.trash[t.ID] = *t
		return nil
	})
}

func (m *inmemoryProvider) GetTrashedPaymentByID(ctx context.Context, id uint) (*entities.TrashedPayment, error) {
	var (
		found entities.TrashedPayment
		ok    bool
	)
	m.read(func(d *dataset) {
		found, ok = d.trash[id]
	})

	if !ok {
		return nil, database.ErrRecordNotFound
	}
	return &found, nil
}

func (m *inmemoryProvider) ListTrashedPayments(ctx context.Context) ([]entities.TrashedPayment, error) {
	result := make([]entities.TrashedPayment, 0)
	m.read(func(d *dataset) {
		for _, t := range d.trash {
			result = append(result, t)
		}
	})

	sort.Slice(result, func(i, j int) bool {
		if !result[i].DeletedAt.Equal(result[j].DeletedAt) {
			return result[i].DeletedAt.After(result[j].DeletedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (m *inmemoryProvider) DeleteTrashedPayment(ctx context.Context, id uint) (int64, error) {
	var affected int64
	err := m.write(func(d *dataset) error {
		if _, ok := d.trash[id]; ok {
			delete(d.trash, id)
			affected = 1
		}
		return nil
	})
	return affected, err
}
