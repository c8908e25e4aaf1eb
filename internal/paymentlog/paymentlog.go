// Package paymentlog writes the audit trail of the payment lifecycle.
//
// Every successful mutation of a payment produces exactly one entry. The entry is written
// through the unit of work of the mutation, so either both persist or neither does.
package paymentlog

import (
	"context"
	"time"

	"github.com/kasmoni/payment-service/internal/entities"
)

// Actor is the caller responsible for a change.
type Actor struct {
	UserID    string
	Username  string
	IPAddress string
	UserAgent string
}

// Writer is the part of the repository the audit log needs. Pass the transaction the
// mutation runs in.
type Writer interface {
	CreatePaymentLog(ctx context.Context, l *entities.PaymentLog) error
}

type Logger struct {
	now func() time.Time
}

func New() *Logger {
	return &Logger{now: time.Now}
}

// NewWithClock is New with a fixed time source, for tests.
func NewWithClock(now func() time.Time) *Logger {
	return &Logger{now: now}
}

// Log appends the entry describing ev. An error here must abort the mutation.
func (l *Logger) Log(ctx context.Context, w Writer, actor Actor, ev Event) (*entities.PaymentLog, error) {
	entry := &entities.PaymentLog{
		Action:              ev.Action(),
		PerformedByUserID:   actor.UserID,
		PerformedByUsername: actor.Username,
		IPAddress:           actor.IPAddress,
		UserAgent:           actor.UserAgent,
		CreatedAt:           l.now(),
	}
	ev.fill(entry)

	if err := w.CreatePaymentLog(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}
