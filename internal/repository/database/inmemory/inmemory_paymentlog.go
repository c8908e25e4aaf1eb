package inmemory

import (
	"context"
	"errors"
	"sort"

	"github.com/kasmoni/payment-service/internal/entities"
)

func (m *inmemoryProvider) CreatePaymentLog(ctx context.Context, l *entities.PaymentLog) error {
	if l.ID != 0 {
		return errors.New("create needs a new payment log entry")
	}

	return m.write(func(d *dataset) error {
		if l.CreatedAt.IsZero() {
			l.CreatedAt = m.now()
		}
		l.ID = nextID(&d.seq.log, 0)
		d.logs[l.ID] = *l
		return nil
	})
}

func matchesRef(ref *uint, wanted uint) bool {
	return wanted == 0 || (ref != nil && *ref == wanted)
}

func (m *inmemoryProvider) FindPaymentLogs(ctx context.Context, query entities.PaymentLogQuery) ([]entities.PaymentLog, error) {
	result := make([]entities.PaymentLog, 0)
	m.read(func(d *dataset) {
		for _, l := range d.logs {
			if !matchesRef(l.PaymentID, query.PaymentID) ||
				!matchesRef(l.GroupID, query.GroupID) ||
				!matchesRef(l.MemberID, query.MemberID) {
				continue
			}
			if query.Action != "" && l.Action != query.Action {
				continue
			}
			result = append(result, l)
		}
	})

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID > result[j].ID
	})
	return result, nil
}
