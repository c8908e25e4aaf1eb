package paymentlog

import (
	"fmt"

	"gorm.io/datatypes"

	"github.com/kasmoni/payment-service/internal/entities"
)

const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
)

// Event is one of the audited lifecycle changes below.
type Event interface {
	Action() entities.PaymentLogAction
	fill(entry *entities.PaymentLog)
}

var (
	_ Event = Created{}
	_ Event = BulkCreated{}
	_ Event = Updated{}
	_ Event = StatusChanged{}
	_ Event = Archived{}
	_ Event = Trashed{}
	_ Event = Restored{}
	_ Event = PermanentlyDeleted{}
)

type Created struct {
	Payment entities.Payment
}

func (Created) Action() entities.PaymentLogAction {
	return entities.PaymentLogActionCreated
}

func (e Created) fill(entry *entities.PaymentLog) {
	refer(entry, e.Payment.ID, e.Payment.PaymentFields)
	entry.NewStatus = e.Payment.Status
	entry.NewValues = Snapshot(e.Payment.PaymentFields)
}

// BulkCreated is written once for all payments inserted by a bulk create.
type BulkCreated struct {
	Payments []entities.Payment
}

func (BulkCreated) Action() entities.PaymentLogAction {
	return entities.PaymentLogActionBulkCreated
}

func (e BulkCreated) fill(entry *entities.PaymentLog) {
	ids := make([]uint, 0, len(e.Payments))
	for _, p := range e.Payments {
		ids = append(ids, p.ID)
	}

	if len(e.Payments) > 0 {
		groupID := e.Payments[0].GroupID
		sameGroup := true
		for _, p := range e.Payments[1:] {
			if p.GroupID != groupID {
				sameGroup = false
				break
			}
		}
		if sameGroup {
			entry.GroupID = ref(groupID)
		}
	}

	entry.BulkPaymentCount = len(e.Payments)
	entry.NewValues = datatypes.JSONMap{"payment_ids": ids}
	entry.Details = fmt.Sprintf("Bulk created %d payments", len(e.Payments))
}

// Updated carries only the fields that changed, keyed by their json name.
type Updated struct {
	Payment entities.Payment
	Old     map[string]interface{}
	New     map[string]interface{}
}

func (Updated) Action() entities.PaymentLogAction {
	return entities.PaymentLogActionUpdated
}

func (e Updated) fill(entry *entities.PaymentLog) {
	refer(entry, e.Payment.ID, e.Payment.PaymentFields)
	entry.OldValues = datatypes.JSONMap(e.Old)
	entry.NewValues = datatypes.JSONMap(e.New)
}

type StatusChanged struct {
	Payment entities.Payment
	Old     entities.PaymentStatus
	New     entities.PaymentStatus
}

func (StatusChanged) Action() entities.PaymentLogAction {
	return entities.PaymentLogActionStatusChanged
}

func (e StatusChanged) fill(entry *entities.PaymentLog) {
	refer(entry, e.Payment.ID, e.Payment.PaymentFields)
	entry.OldStatus = e.Old
	entry.NewStatus = e.New
	entry.Details = fmt.Sprintf("Status changed from %s to %s", e.Old, e.New)
}

type Archived struct {
	Archive entities.ArchivedPayment
}

func (Archived) Action() entities.PaymentLogAction {
	return entities.PaymentLogActionArchived
}

func (e Archived) fill(entry *entities.PaymentLog) {
	refer(entry, e.Archive.OriginalID, e.Archive.PaymentFields)
	entry.OldStatus = e.Archive.Status
	entry.OldValues = Snapshot(e.Archive.PaymentFields)
	entry.Details = withReason(fmt.Sprintf("Archived (archive ID: %d)", e.Archive.ID), e.Archive.ArchiveReason)
}

// Trashed is logged as deleted. Note says where the payment came from.
type Trashed struct {
	Trash entities.TrashedPayment
	Note  string
}

func (Trashed) Action() entities.PaymentLogAction {
	return entities.PaymentLogActionDeleted
}

func (e Trashed) fill(entry *entities.PaymentLog) {
	refer(entry, e.Trash.OriginalID, e.Trash.PaymentFields)
	entry.OldStatus = e.Trash.Status
	entry.OldValues = Snapshot(e.Trash.PaymentFields)
	entry.Details = withReason(e.Note, e.Trash.DeletionReason)
}

type Restored struct {
	Payment entities.Payment
	Note    string
}

func (Restored) Action() entities.PaymentLogAction {
	return entities.PaymentLogActionRestored
}

func (e Restored) fill(entry *entities.PaymentLog) {
	refer(entry, e.Payment.ID, e.Payment.PaymentFields)
	entry.NewStatus = e.Payment.Status
	entry.NewValues = Snapshot(e.Payment.PaymentFields)
	entry.Details = e.Note
}

type PermanentlyDeleted struct {
	Trash entities.TrashedPayment
}

func (PermanentlyDeleted) Action() entities.PaymentLogAction {
	return entities.PaymentLogActionPermanentlyDeleted
}

func (e PermanentlyDeleted) fill(entry *entities.PaymentLog) {
	refer(entry, e.Trash.OriginalID, e.Trash.PaymentFields)
	entry.OldStatus = e.Trash.Status
	entry.OldValues = Snapshot(e.Trash.PaymentFields)
	entry.Details = fmt.Sprintf("Permanently deleted from trashbox (trash ID: %d)", e.Trash.ID)
}

// Snapshot renders the payment values the way they appear in the audit log.
func Snapshot(f entities.PaymentFields) datatypes.JSONMap {
	return datatypes.JSONMap{
		"group_id":         f.GroupID,
		"member_id":        f.MemberID,
		"amount":           f.Amount.StringFixed(2),
		"payment_date":     f.PaymentDate.Format(DateLayout),
		"payment_month":    f.PaymentMonth,
		"slot":             f.Slot,
		"payment_type":     string(f.PaymentType),
		"sender_bank":      f.SenderBank,
		"receiver_bank":    f.ReceiverBank,
		"status":           string(f.Status),
		"proof_of_payment": f.ProofOfPayment,
	}
}

func refer(entry *entities.PaymentLog, paymentID uint, f entities.PaymentFields) {
	entry.PaymentID = ref(paymentID)
	entry.GroupID = ref(f.GroupID)
	entry.MemberID = ref(f.MemberID)
}

func ref(id uint) *uint {
	if id == 0 {
		return nil
	}
	return &id
}

func withReason(note, reason string) string {
	if reason == "" {
		return note
	}
	return fmt.Sprintf("%s: %s", note, reason)
}
