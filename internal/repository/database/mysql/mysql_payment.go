package mysql

import (
	"context"
	"errors"

	"github.com/kasmoni/payment-service/internal/entities"
)

func (m *mysqlConnector) CreatePayment(ctx context.Context, p *entities.Payment) error {
	db, cancel := m.session(ctx)
	defer cancel()

	return mapError(db.Create(p).Error)
}

func (m *mysqlConnector) UpdatePayment(ctx context.Context, p *entities.Payment) error {
	if p.ID == 0 {
		return errors.New("update needs an existing payment")
	}

	db, cancel := m.session(ctx)
	defer cancel()

	res := db.Model(p).
		Select("*").
		Omit("id", "created_at").
		Updates(p)

	return mapError(res.Error)
}

func (m *mysqlConnector) GetPaymentByID(ctx context.Context, id uint) (*entities.Payment, error) {
	db, cancel := m.session(ctx)
	defer cancel()

	var p entities.Payment
	if err := m.locking(db).First(&p, id).Error; err != nil {
		return nil, mapError(err)
	}

	return &p, nil
}

func (m *mysqlConnector) FindPayments(ctx context.Context, query entities.PaymentQuery) ([]entities.Payment, error) {
	db, cancel := m.session(ctx)
	defer cancel()

	if query.GroupID != 0 {
		db = db.Where("group_id = ?", query.GroupID)
	}
	if query.MemberID != 0 {
		db = db.Where("member_id = ?", query.MemberID)
	}
	if query.Slot != "" {
		db = db.Where("slot = ?", query.Slot)
	}

	payments := make([]entities.Payment, 0)
	if err := db.Order("id").Find(&payments).Error; err != nil {
		return nil, mapError(err)
	}

	return payments, nil
}

func (m *mysqlConnector) DeletePayment(ctx context.Context, id uint) (int64, error) {
	db, cancel := m.session(ctx)
	defer cancel()

	res := db.Delete(&entities.Payment{}, id)
	return res.RowsAffected, mapError(res.Error)
}
