package v1archive

import (
	"net/http"

	"github.com/kasmoni/payment-service/internal/restapi/common"
	v1models "github.com/kasmoni/payment-service/internal/restapi/v1/models"
)

type ListRequestDto struct{}

type ArchiveIDRequestDto struct {
	ID uint
}

type MoveToTrashboxRequestDto struct {
	ID             uint   `json:"-"`
	DeletionReason string `json:"deletion_reason"`
}

type BulkRequestDto struct {
	ArchiveIDs     []uint `json:"archiveIds"`
	DeletionReason string `json:"deletion_reason"`
}

type RestoreResponse struct {
	Restored     int  `json:"restored"`
	NewPaymentID uint `json:"newPaymentId"`
}

type MoveResponse struct {
	Moved int `json:"moved"`
}

type BulkRestoreResponse struct {
	Restored      int                     `json:"restored"`
	NewPaymentIDs []uint                  `json:"newPaymentIds"`
	Errors        []v1models.BulkErrorDto `json:"errors"`
}

type BulkMoveResponse struct {
	Moved  int                     `json:"moved"`
	Errors []v1models.BulkErrorDto `json:"errors"`
}

func ListRequest(r *http.Request) (*ListRequestDto, error) {
	return &ListRequestDto{}, nil
}

func ArchiveIDRequest(r *http.Request) (*ArchiveIDRequestDto, error) {
	id, err := common.ParseIDParam(r, "id")
	if err != nil {
		return nil, err
	}
	return &ArchiveIDRequestDto{ID: id}, nil
}

func MoveToTrashboxRequest(r *http.Request) (*MoveToTrashboxRequestDto, error) {
	id, err := common.ParseIDParam(r, "id")
	if err != nil {
		return nil, err
	}

	dto := &MoveToTrashboxRequestDto{}
	if err := common.DecodeBody(r, dto, true); err != nil {
		return nil, err
	}
	dto.ID = id
	return dto, nil
}

// BulkRequest leaves the id checks to the interactor, a missing body means no ids.
func BulkRequest(r *http.Request) (*BulkRequestDto, error) {
	dto := &BulkRequestDto{}
	if err := common.DecodeBody(r, dto, true); err != nil {
		return nil, err
	}
	return dto, nil
}
