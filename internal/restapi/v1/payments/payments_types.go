package v1payments

import (
	"net/http"

	"github.com/kasmoni/payment-service/internal/entities"
	"github.com/kasmoni/payment-service/internal/restapi/common"
	v1models "github.com/kasmoni/payment-service/internal/restapi/v1/models"
)

type BulkCreateRequest struct {
	Payments []v1models.PaymentInputDto `json:"payments"`
}

type BulkCreateErrorDto struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

type BulkCreateResponse struct {
	Created    int                  `json:"created"`
	PaymentIDs []uint               `json:"paymentIds"`
	Errors     []BulkCreateErrorDto `json:"errors"`
}

type PaymentIDRequestDto struct {
	ID uint
}

type UpdatePaymentRequestDto struct {
	ID    uint
	Patch v1models.PaymentPatchDto
}

type ChangeStatusRequestDto struct {
	ID     uint                   `json:"-"`
	Status entities.PaymentStatus `json:"status"`
}

type ArchivePaymentRequestDto struct {
	ID            uint   `json:"-"`
	ArchiveReason string `json:"archive_reason"`
}

type ArchiveResponse struct {
	Archived  int  `json:"archived"`
	ArchiveID uint `json:"archiveId"`
}

type TrashPaymentRequestDto struct {
	ID             uint   `json:"-"`
	DeletionReason string `json:"deletion_reason"`
}

type TrashResponse struct {
	Moved   int  `json:"moved"`
	TrashID uint `json:"trashId"`
}

type GroupPaymentsRequestDto struct {
	GroupID uint
}

func CreatePaymentRequest(r *http.Request) (*v1models.PaymentInputDto, error) {
	var dto v1models.PaymentInputDto
	if err := common.DecodeBody(r, &dto, false); err != nil {
		return nil, err
	}
	return &dto, nil
}

func BulkCreatePaymentsRequest(r *http.Request) (*BulkCreateRequest, error) {
	var dto BulkCreateRequest
	if err := common.DecodeBody(r, &dto, false); err != nil {
		return nil, err
	}
	return &dto, nil
}

func PaymentIDRequest(r *http.Request) (*PaymentIDRequestDto, error) {
	id, err := common.ParseIDParam(r, "id")
	if err != nil {
		return nil, err
	}
	return &PaymentIDRequestDto{ID: id}, nil
}

func UpdatePaymentRequest(r *http.Request) (*UpdatePaymentRequestDto, error) {
	id, err := common.ParseIDParam(r, "id")
	if err != nil {
		return nil, err
	}

	dto := &UpdatePaymentRequestDto{ID: id}
	if err := common.DecodeBody(r, &dto.Patch, false); err != nil {
		return nil, err
	}
	return dto, nil
}

func ChangeStatusRequest(r *http.Request) (*ChangeStatusRequestDto, error) {
	id, err := common.ParseIDParam(r, "id")
	if err != nil {
		return nil, err
	}

	dto := &ChangeStatusRequestDto{}
	if err := common.DecodeBody(r, dto, false); err != nil {
		return nil, err
	}
	dto.ID = id
	return dto, nil
}

func ArchivePaymentRequest(r *http.Request) (*ArchivePaymentRequestDto, error) {
	id, err := common.ParseIDParam(r, "id")
	if err != nil {
		return nil, err
	}

	dto := &ArchivePaymentRequestDto{}
	if err := common.DecodeBody(r, dto, true); err != nil {
		return nil, err
	}
	dto.ID = id
	return dto, nil
}

func TrashPaymentRequest(r *http.Request) (*TrashPaymentRequestDto, error) {
	id, err := common.ParseIDParam(r, "id")
	if err != nil {
		return nil, err
	}

	dto := &TrashPaymentRequestDto{}
	if err := common.DecodeBody(r, dto, true); err != nil {
		return nil, err
	}
	dto.ID = id
	return dto, nil
}

func GroupPaymentsRequest(r *http.Request) (*GroupPaymentsRequestDto, error) {
	id, err := common.ParseIDParam(r, "group_id")
	if err != nil {
		return nil, err
	}
	return &GroupPaymentsRequestDto{GroupID: id}, nil
}
