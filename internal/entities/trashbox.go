package entities

import "time"

type TrashOrigin string

const (
	TrashOriginActive  TrashOrigin = "active"
	TrashOriginArchive TrashOrigin = "archive"
)

// TrashedPayment is a payment marked for deletion. It can still be restored until
// it is permanently deleted.
type TrashedPayment struct {
	ID                uint `gorm:"primarykey"`
	OriginalID        uint `gorm:"index;NOT NULL"`
	PaymentFields     `gorm:"embedded"`
	PaymentCreatedAt  time.Time
	PaymentUpdatedAt  time.Time
	Origin            TrashOrigin `gorm:"type:enum('active', 'archive');NOT NULL"`
	DeletedAt         time.Time   `gorm:"index;NOT NULL"`
	DeletedByUserID   string      `gorm:"type:varchar(80) CHARACTER SET utf8mb4 COLLATE utf8mb4_general_ci"`
	DeletedByUsername string      `gorm:"type:varchar(255) CHARACTER SET utf8mb4 COLLATE utf8mb4_general_ci"`
	DeletionReason    string      `gorm:"type:text CHARACTER SET utf8mb4 COLLATE utf8mb4_general_ci"`
}

// ToPayment reinstates the trashed values under the original payment id.
func (t *TrashedPayment) ToPayment() Payment {
	return Payment{
		ID:            t.OriginalID,
		CreatedAt:     t.PaymentCreatedAt,
		PaymentFields: t.PaymentFields,
	}
}
