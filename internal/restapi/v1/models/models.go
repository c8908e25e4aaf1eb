// Package v1models holds the json representation of payments shared by the v1 endpoints.
package v1models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kasmoni/payment-service/internal/entities"
	"github.com/kasmoni/payment-service/internal/interaction"
	"github.com/kasmoni/payment-service/internal/paymentlog"
)

// Amount accepts a json number or a string, the web frontend sends both.
type Amount string

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("amount must be a number: %w", err)
	}
	*a = Amount(n.String())
	return nil
}

type GroupDto struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type MemberDto struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type PaymentFieldsDto struct {
	GroupID        uint                   `json:"group_id"`
	MemberID       uint                   `json:"member_id"`
	Amount         json.Number            `json:"amount"`
	PaymentDate    string                 `json:"payment_date"`
	PaymentMonth   string                 `json:"payment_month"`
	Slot           string                 `json:"slot"`
	PaymentType    entities.PaymentType   `json:"payment_type"`
	SenderBank     string                 `json:"sender_bank,omitempty"`
	ReceiverBank   string                 `json:"receiver_bank,omitempty"`
	Status         entities.PaymentStatus `json:"status"`
	ProofOfPayment string                 `json:"proof_of_payment,omitempty"`
	Group          *GroupDto              `json:"group,omitempty"`
	Member         *MemberDto             `json:"member,omitempty"`
}

type PaymentDto struct {
	ID uint `json:"id"`
	PaymentFieldsDto
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ArchivedPaymentDto struct {
	ID         uint `json:"id"`
	OriginalID uint `json:"original_id"`
	PaymentFieldsDto
	ArchivedAt         time.Time `json:"archived_at"`
	ArchivedByUserID   string    `json:"archived_by_user_id"`
	ArchivedByUsername string    `json:"archived_by_username"`
	ArchiveReason      string    `json:"archive_reason"`
}

type TrashedPaymentDto struct {
	ID         uint `json:"id"`
	OriginalID uint `json:"original_id"`
	PaymentFieldsDto
	Origin            entities.TrashOrigin `json:"origin"`
	DeletedAt         time.Time            `json:"deleted_at"`
	DeletedByUserID   string               `json:"deleted_by_user_id"`
	DeletedByUsername string               `json:"deleted_by_username"`
	DeletionReason    string               `json:"deletion_reason"`
}

type PaymentLogDto struct {
	ID                  uint                      `json:"id"`
	Action              entities.PaymentLogAction `json:"action"`
	PaymentID           *uint                     `json:"payment_id"`
	GroupID             *uint                     `json:"group_id"`
	MemberID            *uint                     `json:"member_id"`
	OldStatus           entities.PaymentStatus    `json:"old_status,omitempty"`
	NewStatus           entities.PaymentStatus    `json:"new_status,omitempty"`
	OldValues           map[string]interface{}    `json:"old_values,omitempty"`
	NewValues           map[string]interface{}    `json:"new_values,omitempty"`
	BulkPaymentCount    int                       `json:"bulk_payment_count,omitempty"`
	PerformedByUserID   string                    `json:"performed_by_user_id"`
	PerformedByUsername string                    `json:"performed_by_username"`
	IPAddress           string                    `json:"ip_address,omitempty"`
	UserAgent           string                    `json:"user_agent,omitempty"`
	Details             string                    `json:"details,omitempty"`
	CreatedAt           time.Time                 `json:"created_at"`
}

// BulkErrorDto is one failed id of a bulk request.
type BulkErrorDto struct {
	ID    uint   `json:"id"`
	Error string `json:"error"`
}

func BulkErrorsFrom(errs []interaction.BulkItemError) []BulkErrorDto {
	result := make([]BulkErrorDto, 0, len(errs))
	for _, e := range errs {
		result = append(result, BulkErrorDto{ID: e.ID, Error: e.Error})
	}
	return result
}

func fieldsFrom(f entities.PaymentFields, refs *interaction.References) PaymentFieldsDto {
	dto := PaymentFieldsDto{
		GroupID:        f.GroupID,
		MemberID:       f.MemberID,
		Amount:         json.Number(f.Amount.StringFixed(2)),
		PaymentDate:    f.PaymentDate.Format(paymentlog.DateLayout),
		PaymentMonth:   f.PaymentMonth,
		Slot:           f.Slot,
		PaymentType:    f.PaymentType,
		SenderBank:     f.SenderBank,
		ReceiverBank:   f.ReceiverBank,
		Status:         f.Status,
		ProofOfPayment: f.ProofOfPayment,
	}

	if refs != nil {
		if g, ok := refs.Groups[f.GroupID]; ok {
			dto.Group = &GroupDto{ID: g.ID, Name: g.Name}
		}
		if m, ok := refs.Members[f.MemberID]; ok {
			dto.Member = &MemberDto{ID: m.ID, FirstName: m.FirstName, LastName: m.LastName}
		}
	}

	return dto
}

// PaymentFrom maps a payment, refs may be nil.
func PaymentFrom(p entities.Payment, refs *interaction.References) PaymentDto {
	return PaymentDto{
		ID:               p.ID,
		PaymentFieldsDto: fieldsFrom(p.PaymentFields, refs),
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func ArchivedPaymentFrom(a entities.ArchivedPayment, refs *interaction.References) ArchivedPaymentDto {
	return ArchivedPaymentDto{
		ID:                 a.ID,
		OriginalID:         a.OriginalID,
		PaymentFieldsDto:   fieldsFrom(a.PaymentFields, refs),
		ArchivedAt:         a.ArchivedAt,
		ArchivedByUserID:   a.ArchivedByUserID,
		ArchivedByUsername: a.ArchivedByUsername,
		ArchiveReason:      a.ArchiveReason,
	}
}

func TrashedPaymentFrom(t entities.TrashedPayment, refs *interaction.References) TrashedPaymentDto {
	return TrashedPaymentDto{
		ID:                t.ID,
		OriginalID:        t.OriginalID,
		PaymentFieldsDto:  fieldsFrom(t.PaymentFields, refs),
		Origin:            t.Origin,
		DeletedAt:         t.DeletedAt,
		DeletedByUserID:   t.DeletedByUserID,
		DeletedByUsername: t.DeletedByUsername,
		DeletionReason:    t.DeletionReason,
	}
}

func PaymentLogFrom(l entities.PaymentLog) PaymentLogDto {
	return PaymentLogDto{
		ID:                  l.ID,
		Action:              l.Action,
		PaymentID:           l.PaymentID,
		GroupID:             l.GroupID,
		MemberID:            l.MemberID,
		OldStatus:           l.OldStatus,
		NewStatus:           l.NewStatus,
		OldValues:           l.OldValues,
		NewValues:           l.NewValues,
		BulkPaymentCount:    l.BulkPaymentCount,
		PerformedByUserID:   l.PerformedByUserID,
		PerformedByUsername: l.PerformedByUsername,
		IPAddress:           l.IPAddress,
		UserAgent:           l.UserAgent,
		Details:             l.Details,
		CreatedAt:           l.CreatedAt,
	}
}

// ReferencedIDs collects the group and member ids of fields, for resolving them in one go.
func ReferencedIDs(fields []entities.PaymentFields) (groupIDs []uint, memberIDs []uint) {
	groupIDs = make([]uint, 0, len(fields))
	memberIDs = make([]uint, 0, len(fields))
	for _, f := range fields {
		groupIDs = append(groupIDs, f.GroupID)
		memberIDs = append(memberIDs, f.MemberID)
	}
	return groupIDs, memberIDs
}
