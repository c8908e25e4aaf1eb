package mysql

import (
	"context"

	"github.com/kasmoni/payment-service/internal/entities"
)

func (m *mysqlConnector) CreateArchivedPayment(ctx context.Context, a *entities.ArchivedPayment) error {
	db, cancel := m.session(ctx)
	defer cancel()

	return mapError(db.Create(a).Error)
}

func (m *mysqlConnector) GetArchivedPaymentByID(ctx context.Context, id uint) (*entities.ArchivedPayment, error) {
	db, cancel := m.session(ctx)
	defer cancel()

	var a entities.ArchivedPayment
	if err := m.locking(db).First(&a, id).Error; err != nil {
		return nil, mapError(err)
	}

	return &a, nil
}

func (m *mysqlConnector) ListArchivedPayments(ctx context.Context) ([]entities.ArchivedPayment, error) {
	db, cancel := m.session(ctx)
	defer cancel()

	archive := make([]entities.ArchivedPayment, 0)
	if err := db.Order("archived_at desc, id desc").Find(&archive).Error; err != nil {
		return nil, mapError(err)
	}

	return archive, nil
}

func (m *mysqlConnector) DeleteArchivedPayment(ctx context.Context, id uint) (int64, error) {
	db, cancel := m.session(ctx)
	defer cancel()

	res := db.Delete(&entities.ArchivedPayment{}, id)
	return res.RowsAffected, mapError(res.Error)
}
