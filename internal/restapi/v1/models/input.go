package v1models

import (
	"github.com/kasmoni/payment-service/internal/entities"
	"github.com/kasmoni/payment-service/internal/interaction"
)

type PaymentInputDto struct {
	GroupID        uint                   `json:"group_id"`
	MemberID       uint                   `json:"member_id"`
	Amount         Amount                 `json:"amount"`
	PaymentDate    string                 `json:"payment_date"`
	PaymentMonth   string                 `json:"payment_month"`
	Slot           string                 `json:"slot"`
	PaymentType    entities.PaymentType   `json:"payment_type"`
	SenderBank     string                 `json:"sender_bank"`
	ReceiverBank   string                 `json:"receiver_bank"`
	Status         entities.PaymentStatus `json:"status"`
	ProofOfPayment string                 `json:"proof_of_payment"`
}

func (d PaymentInputDto) ToInput() interaction.PaymentInput {
	return interaction.PaymentInput{
		GroupID:        d.GroupID,
		MemberID:       d.MemberID,
		Amount:         string(d.Amount),
		PaymentDate:    d.PaymentDate,
		PaymentMonth:   d.PaymentMonth,
		Slot:           d.Slot,
		PaymentType:    d.PaymentType,
		SenderBank:     d.SenderBank,
		ReceiverBank:   d.ReceiverBank,
		Status:         d.Status,
		ProofOfPayment: d.ProofOfPayment,
	}
}

// PaymentPatchDto leaves absent fields untouched.
type PaymentPatchDto struct {
	Amount         *Amount               `json:"amount"`
	PaymentDate    *string               `json:"payment_date"`
	PaymentMonth   *string               `json:"payment_month"`
	Slot           *string               `json:"slot"`
	PaymentType    *entities.PaymentType `json:"payment_type"`
	SenderBank     *string               `json:"sender_bank"`
	ReceiverBank   *string               `json:"receiver_bank"`
	ProofOfPayment *string               `json:"proof_of_payment"`
}

func (d PaymentPatchDto) ToPatch() interaction.PaymentPatch {
	patch := interaction.PaymentPatch{
		PaymentDate:    d.PaymentDate,
		PaymentMonth:   d.PaymentMonth,
		Slot:           d.Slot,
		PaymentType:    d.PaymentType,
		SenderBank:     d.SenderBank,
		ReceiverBank:   d.ReceiverBank,
		ProofOfPayment: d.ProofOfPayment,
	}
	if d.Amount != nil {
		amount := string(*d.Amount)
		patch.Amount = &amount
	}
	return patch
}
