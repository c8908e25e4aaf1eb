package database

import (
	"context"
	"errors"

	"github.com/kasmoni/payment-service/internal/entities"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateKey   = errors.New("duplicate key")
)

type Repository interface {
	Migrate() error

	// Transaction runs fn as one unit of work. Everything done through tx is committed
	// together, or discarded if fn returns an error.
	//
	// Single row reads through tx lock the row until the unit of work ends.
	// fn must only use tx, never the repository Transaction was called on.
	Transaction(ctx context.Context, fn func(tx Repository) error) error

	PaymentCRUD
	ArchiveCRUD
	TrashboxCRUD
	PaymentLogCRUD
	GroupMemberCRUD
}

type PaymentCRUD interface {
	// CreatePayment assigns a new id unless p.ID is already set.
	CreatePayment(ctx context.Context, p *entities.Payment) error
	UpdatePayment(ctx context.Context, p *entities.Payment) error
	GetPaymentByID(ctx context.Context, id uint) (*entities.Payment, error)
	FindPayments(ctx context.Context, query entities.PaymentQuery) ([]entities.Payment, error)
	// DeletePayment returns the number of rows removed.
	DeletePayment(ctx context.Context, id uint) (int64, error)
}

type ArchiveCRUD interface {
	CreateArchivedPayment(ctx context.Context, a *entities.ArchivedPayment) error
	GetArchivedPaymentByID(ctx context.Context, id uint) (*entities.ArchivedPayment, error)
	// ListArchivedPayments returns the newest archive rows first.
	ListArchivedPayments(ctx context.Context) ([]entities.ArchivedPayment, error)
	DeleteArchivedPayment(ctx context.Context, id uint) (int64, error)
}

type TrashboxCRUD interface {
	CreateTrashedPayment(ctx context.Context, t *entities.TrashedPayment) error
	GetTrashedPaymentByID(ctx context.Context, id uint) (*entities.TrashedPayment, error)
	ListTrashedPayments(ctx context.Context) ([]entities.TrashedPayment, error)
	DeleteTrashedPayment(ctx context.Context, id uint) (int64, error)
}

// PaymentLogCRUD has no update or delete, the audit log is append only.
type PaymentLogCRUD interface {
	CreatePaymentLog(ctx context.Context, l *entities.PaymentLog) error
	FindPaymentLogs(ctx context.Context, query entities.PaymentLogQuery) ([]entities.PaymentLog, error)
}

type GroupMemberCRUD interface {
	CreateGroup(ctx context.Context, g *entities.Group) error
	CreateMember(ctx context.Context, m *entities.Member) error
	GetGroupsByIDs(ctx context.Context, ids []uint) ([]entities.Group, error)
	GetMembersByIDs(ctx context.Context, ids []uint) ([]entities.Member, error)
}
