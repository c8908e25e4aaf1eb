package entities

import (
	"time"

	"gorm.io/datatypes"
)

type PaymentLogAction string

const (
	PaymentLogActionCreated            PaymentLogAction = "created"
	PaymentLogActionBulkCreated        PaymentLogAction = "bulk_created"
	PaymentLogActionUpdated            PaymentLogAction = "updated"
	PaymentLogActionStatusChanged      PaymentLogAction = "status_changed"
	PaymentLogActionArchived           PaymentLogAction = "archived"
	PaymentLogActionDeleted            PaymentLogAction = "deleted"
	PaymentLogActionRestored           PaymentLogAction = "restored"
	PaymentLogActionPermanentlyDeleted PaymentLogAction = "permanently_deleted"
)

func (a PaymentLogAction) IsValid() bool {
	switch a {
	case PaymentLogActionCreated, PaymentLogActionBulkCreated, PaymentLogActionUpdated,
		PaymentLogActionStatusChanged, PaymentLogActionArchived, PaymentLogActionDeleted,
		PaymentLogActionRestored, PaymentLogActionPermanentlyDeleted:
		return true
	}

	return false
}

// PaymentLog holds who did what to which payment and when.
//
// This table is append only. The payment, group and member ids are plain values
// without foreign keys, the entry has to survive the payment it refers to.
type PaymentLog struct {
	ID                  uint             `gorm:"primarykey"`
	Action              PaymentLogAction `gorm:"index;type:varchar(32) CHARACTER SET utf8mb4 COLLATE utf8mb4_general_ci;NOT NULL"`
	PaymentID           *uint            `gorm:"index"`
	GroupID             *uint            `gorm:"index"`
	MemberID            *uint            `gorm:"index"`
	OldStatus           PaymentStatus    `gorm:"type:varchar(16) CHARACTER SET utf8mb4 COLLATE utf8mb4_general_ci"`
	NewStatus           PaymentStatus    `gorm:"type:varchar(16) CHARACTER SET utf8mb4 COLLATE utf8mb4_general_ci"`
	OldValues           datatypes.JSONMap
	NewValues           datatypes.JSONMap
	BulkPaymentCount    int
	PerformedByUserID   string    `gorm:"type:varchar(80) CHARACTER SET utf8mb4 COLLATE utf8mb4_general_ci"`
	PerformedByUsername string    `gorm:"type:varchar(255) CHARACTER SET utf8mb4 COLLATE utf8mb4_general_ci"`
	IPAddress           string    `gorm:"type:varchar(64) CHARACTER SET utf8mb4 COLLATE utf8mb4_general_ci"`
	UserAgent           string    `gorm:"type:text CHARACTER SET utf8mb4 COLLATE utf8mb4_general_ci"`
	Details             string    `gorm:"type:text CHARACTER SET utf8mb4 COLLATE utf8mb4_general_ci"`
	CreatedAt           time.Time `gorm:"index"`
}

type PaymentLogQuery struct {
	PaymentID uint
	GroupID   uint
	MemberID  uint
	Action    PaymentLogAction
}
