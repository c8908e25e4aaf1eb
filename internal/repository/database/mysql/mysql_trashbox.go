package mysql

import (
	"context"

	"github.com/kasmoni/payment-service/internal/entities"
)

func (m *mysqlConnector) CreateTrashedPayment(ctx context.Context, t *entities.TrashedPayment) error {
	db, cancel := m.session(ctx)
	defer cancel()

	return mapError(db.Create(t).Error)
}

func (m *mysqlConnector) GetTrashedPaymentByID(ctx context.Context, id uint) (*entities.TrashedPayment, error) {
	db, cancel := m.session(ctx)
	defer cancel()

	var t entities.TrashedPayment
	if err := m.locking(db).First(&t, id).Error; err != nil {
		return nil, mapError(err)
	}

	return &t, nil
}

func (m *mysqlConnector) ListTrashedPayments(ctx context.Context) ([]entities.TrashedPayment, error) {
	db, cancel := m.session(ctx)
	defer cancel()

	trash := make([]entities.TrashedPayment, 0)
	if err := db.Order("deleted_at desc, id desc").Find(&trash).Error; err != nil {
		return nil, mapError(err)
	}

	return trash, nil
}

// DeleteTrashedPayment removes the row for good. This is the only hard delete of payment data.
func (m *mysqlConnector) DeleteTrashedPayment(ctx context.Context, id uint) (int64, error) {
	db, cancel := m.session(ctx)
	defer cancel()

	res := db.Delete(&entities.TrashedPayment{}, id)
	return res.RowsAffected, mapError(res.Error)
}
