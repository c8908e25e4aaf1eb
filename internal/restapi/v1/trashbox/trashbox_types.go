package v1trashbox

import (
	"net/http"

	"github.com/kasmoni/payment-service/internal/restapi/common"
	v1models "github.com/kasmoni/payment-service/internal/restapi/v1/models"
)

type ListRequestDto struct{}

type TrashIDRequestDto struct {
	ID uint
}

// BulkRequestDto carries trashbox ids, the field name is kept for existing clients.
type BulkRequestDto struct {
	PaymentIDs []uint `json:"paymentIds"`
}

type RestoreResponse struct {
	Restored  int  `json:"restored"`
	PaymentID uint `json:"paymentId"`
}

type DeleteResponse struct {
	Deleted int `json:"deleted"`
}

type BulkRestoreResponse struct {
	Restored int                     `json:"restored"`
	Errors   []v1models.BulkErrorDto `json:"errors"`
}

type BulkDeleteResponse struct {
	Deleted int                     `json:"deleted"`
	Errors  []v1models.BulkErrorDto `json:"errors"`
}

func ListRequest(r *http.Request) (*ListRequestDto, error) {
	return &ListRequestDto{}, nil
}

func TrashIDRequest(r *http.Request) (*TrashIDRequestDto, error) {
	id, err := common.ParseIDParam(r, "id")
	if err != nil {
		return nil, err
	}
	return &TrashIDRequestDto{ID: id}, nil
}

func BulkRequest(r *http.Request) (*BulkRequestDto, error) {
	dto := &BulkRequestDto{}
	if err := common.DecodeBody(r, dto, true); err != nil {
		return nil, err
	}
	return dto, nil
}
