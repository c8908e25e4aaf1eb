package entities

import "time"

// ArchivedPayment is a payment taken out of active circulation for retention.
//
// A row here implies that no active payment with OriginalID exists.
type ArchivedPayment struct {
	ID                 uint `gorm:"primarykey"`
	OriginalID         uint `gorm:"index;NOT NULL"`
	PaymentFields      `gorm:"embedded"`
	PaymentCreatedAt   time.Time
	PaymentUpdatedAt   time.Time
	ArchivedAt         time.Time `gorm:"index;NOT NULL"`
	ArchivedByUserID   string    `gorm:"type:varchar(80) CHARACTER SET utf8mb4 COLLATE utf8mb4_general_ci"`
	ArchivedByUsername string    `gorm:"type:varchar(255) CHARACTER SET utf8mb4 COLLATE utf8mb4_general_ci"`
	ArchiveReason      string    `gorm:"type:text CHARACTER SET utf8mb4 COLLATE utf8mb4_general_ci"`
}

// ToPayment reinstates the archived values under the original payment id.
func (a *ArchivedPayment) ToPayment() Payment {
	return Payment{
		ID:            a.OriginalID,
		CreatedAt:     a.PaymentCreatedAt,
		PaymentFields: a.PaymentFields,
	}
}

func (a *ArchivedPayment) ToTrashedPayment() TrashedPayment {
	return TrashedPayment{
		OriginalID:       a.OriginalID,
		PaymentFields:    a.PaymentFields,
		PaymentCreatedAt: a.PaymentCreatedAt,
		PaymentUpdatedAt: a.PaymentUpdatedAt,
		Origin:           TrashOriginArchive,
	}
}
