package mysql

import (
	"context"
	"errors"

	"github.com/kasmoni/payment-service/internal/entities"
)

func (m *mysqlConnector) CreatePaymentLog(ctx context.Context, l *entities.PaymentLog) error {
	if l.ID != 0 {
		return errors.New("create needs a new payment log entry")
	}

	db, cancel := m.session(ctx)
	defer cancel()

	return mapError(db.Create(l).Error)
}

func (m *mysqlConnector) FindPaymentLogs(ctx context.Context, query entities.PaymentLogQuery) ([]entities.PaymentLog, error) {
	db, cancel := m.session(ctx)
	defer cancel()

	if query.PaymentID != 0 {
		db = db.Where("payment_id = ?", query.PaymentID)
	}
	if query.GroupID != 0 {
		db = db.Where("group_id = ?", query.GroupID)
	}
	if query.MemberID != 0 {
		db = db.Where("member_id = ?", query.MemberID)
	}
	if query.Action != "" {
		db = db.Where("action = ?", query.Action)
	}

	logs := make([]entities.PaymentLog, 0)
	if err := db.Order("id desc").Find(&logs).Error; err != nil {
		return nil, mapError(err)
	}

	return logs, nil
}
