package inmemory

import (
	"context"
	"errors"
	"sort"

	"github.com/kasmoni/payment-service/internal/entities"
	"github.com/kasmoni/payment-service/internal/repository/database"
)

func (m *inmemoryProvider) CreatePayment(ctx context.Context, p *entities.Payment) error {
	return m.write(func(d *dataset) error {
		if _, exists := d.payments[p.ID]; p.ID != 0 && exists {
			return database.ErrDuplicateKey
		}

		now := m.now()
		if p.CreatedAt.IsZero() {
			p.CreatedAt = now
		}
		if p.UpdatedAt.IsZero() {
			p.UpdatedAt = now
		}

		p.ID = nextID(&d.seq.payment, p.ID)
		d.payments[p.ID] = *p
		return nil
	})
}

func (m *inmemoryProvider) UpdatePayment(ctx context.Context, p *entities.Payment) error {
	if p.ID == 0 {
		return errors.New("update needs an existing payment")
	}

	return m.write(func(d *dataset) error {
		cur, ok := d.payments[p.ID]
		if !ok {
			return database.ErrRecordNotFound
		}

		p.CreatedAt = cur.CreatedAt
		p.UpdatedAt = m.now()
		d.payments[p.ID] = *p
		return nil
	})
}

func (m *inmemoryProvider) GetPaymentByID(ctx context.Context, id uint) (*entities.Payment, error) {
	var (
		found entities.Payment
		ok    bool
	)
	m.read(func(d *dataset) {
		found, ok = d.payments[id]
	})

	if !ok {
		return nil, database.ErrRecordNotFound
	}
	return &found, nil
}

func (m *inmemoryProvider) FindPayments(ctx context.Context, query entities.PaymentQuery) ([]entities.Payment, error) {
	result := make([]entities.Payment, 0)
	m.read(func(d *dataset) {
		for _, p := range d.payments {
			if query.GroupID != 0 && p.GroupID != query.GroupID {
				continue
			}
			if query.MemberID != 0 && p.MemberID != query.MemberID {
				continue
			}
			if query.Slot != "" && p.Slot != query.Slot {
				continue
			}
			result = append(result, p)
		}
	})

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (m *inmemoryProvider) DeletePayment(ctx context.Context, id uint) (int64, error) {
	var affected int64
	err := m.write(func(d *dataset) error {
		if _, ok := d.payments[id]; ok {
			delete(d.payments, id)
			affected = 1
		}
		return nil
	})
	return affected, err
}
