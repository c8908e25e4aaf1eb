package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentType string

const (
	PaymentTypeCash         PaymentType = "cash"
	PaymentTypeBankTransfer PaymentType = "bank_transfer"
)

func (p PaymentType) IsValid() bool {
	switch p {
	case PaymentTypeCash, PaymentTypeBankTransfer:
		return true
	}

	return false
}

type PaymentStatus string

const (
	PaymentStatusNotPaid  PaymentStatus = "not_paid"
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusReceived PaymentStatus = "received"
	PaymentStatusSettled  PaymentStatus = "settled"
)

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusNotPaid, PaymentStatusPending, PaymentStatusReceived, PaymentStatusSettled:
		return true
	}

	return false
}

// PaymentFields are the values that travel with a payment through the active,
// archive and trashbox tables.
type PaymentFields struct {
	GroupID        uint            `gorm:"index:idx_group_member_slot,priority:1;NOT NULL"`
	MemberID       uint            `gorm:"index:idx_group_member_slot,priority:2;NOT NULL"`
	Amount         decimal.Decimal `gorm:"type:decimal(12,2);NOT NULL"`
	PaymentDate    time.Time       `gorm:"type:date;NOT NULL"`
	PaymentMonth   string          `gorm:"type:varchar(7) CHARACTER SET utf8mb4 COLLATE utf8mb4_general_ci;NOT NULL"`
	Slot           string          `gorm:"index:idx_group_member_slot,priority:3;type:varchar(7) CHARACTER SET utf8mb4 COLLATE utf8mb4_general_ci;NOT NULL"`
	PaymentType    PaymentType     `gorm:"type:enum('cash', 'bank_transfer');NOT NULL"`
	SenderBank     string          `gorm:"type:varchar(120) CHARACTER SET utf8mb4 COLLATE utf8mb4_general_ci"`
	ReceiverBank   string          `gorm:"type:varchar(120) CHARACTER SET utf8mb4 COLLATE utf8mb4_general_ci"`
	Status         PaymentStatus   `gorm:"type:enum('not_paid', 'pending', 'received', 'settled');NOT NULL"`
	ProofOfPayment string          `gorm:"type:text CHARACTER SET utf8mb4 COLLATE utf8mb4_general_ci"`
}

// Payment is an active payment.
//
// Hard deleted when it moves to the archive or the trashbox, so no soft delete column here.
type Payment struct {
	ID            uint `gorm:"primarykey"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	PaymentFields `gorm:"embedded"`
}

type PaymentQuery struct {
	GroupID  uint
	MemberID uint
	Slot     string
}

// ToArchivedPayment copies the payment into a new archive row. Archive metadata is left to the caller.
func (p *Payment) ToArchivedPayment() ArchivedPayment {
	return ArchivedPayment{
		OriginalID:       p.ID,
		PaymentFields:    p.PaymentFields,
		PaymentCreatedAt: p.CreatedAt,
		PaymentUpdatedAt: p.UpdatedAt,
	}
}

func (p *Payment) ToTrashedPayment() TrashedPayment {
	return TrashedPayment{
		OriginalID:       p.ID,
		PaymentFields:    p.PaymentFields,
		PaymentCreatedAt: p.CreatedAt,
		PaymentUpdatedAt: p.UpdatedAt,
		Origin:           TrashOriginActive,
	}
}
