package v1trashbox

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kasmoni/payment-service/internal/entities"
	"github.com/kasmoni/payment-service/internal/interaction"
	"github.com/kasmoni/payment-service/internal/logging"
	"github.com/kasmoni/payment-service/internal/restapi/common"
	v1models "github.com/kasmoni/payment-service/internal/restapi/v1/models"
)

type Handler struct {
	interactor interaction.Interactor
}

func Create(router chi.Router, i interaction.Interactor) {
	h := &Handler{interactor: i}

	router.Get("/trashbox/list",
		common.CreateHandler(h.ListEndpoint, ListRequest, common.ResponseWithStatus[[]v1models.TrashedPaymentDto](http.StatusOK)))
	router.Post("/trashbox/bulk-restore",
		common.CreateHandler(h.BulkRestoreEndpoint, BulkRequest, common.ResponseWithStatus[BulkRestoreResponse](http.StatusOK)))
	router.Delete("/trashbox/bulk-permanent",
		common.CreateHandler(h.BulkPermanentEndpoint, BulkRequest, common.ResponseWithStatus[BulkDeleteResponse](http.StatusOK)))
	router.Post("/trashbox/{id}/restore",
		common.CreateHandler(h.RestoreEndpoint, TrashIDRequest, common.ResponseWithStatus[RestoreResponse](http.StatusOK)))
	router.Delete("/trashbox/{id}/permanent",
		common.CreateHandler(h.PermanentEndpoint, TrashIDRequest, common.ResponseWithStatus[DeleteResponse](http.StatusOK)))
}

func (h *Handler) ListEndpoint(ctx context.Context, _ *ListRequestDto, logger logging.Logger) (*[]v1models.TrashedPaymentDto, error) {
	trashed, err := h.interactor.ListTrashbox(ctx)
	if err != nil {
		return nil, err
	}

	fields := make([]entities.PaymentFields, 0, len(trashed))
	for _, t := range trashed {
		fields = append(fields, t.PaymentFields)
	}
	refs := v1models.Resolve(ctx, h.interactor, fields...)

	result := make([]v1models.TrashedPaymentDto, 0, len(trashed))
	for _, t := range trashed {
		result = append(result, v1models.TrashedPaymentFrom(t, refs))
	}
	return &result, nil
}

func (h *Handler) RestoreEndpoint(ctx context.Context, req *TrashIDRequestDto, logger logging.Logger) (*RestoreResponse, error) {
	p, err := h.interactor.RestoreFromTrashbox(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	logger.Info("restored trashbox entry %d as payment %d", req.ID, p.ID)
	return &RestoreResponse{Restored: 1, PaymentID: p.ID}, nil
}

func (h *Handler) PermanentEndpoint(ctx context.Context, req *TrashIDRequestDto, logger logging.Logger) (*DeleteResponse, error) {
	if err := h.interactor.PermanentlyDelete(ctx, req.ID); err != nil {
		return nil, err
	}

	logger.Info("permanently deleted trashbox entry %d", req.ID)
	return &DeleteResponse{Deleted: 1}, nil
}

func (h *Handler) BulkRestoreEndpoint(ctx context.Context, req *BulkRequestDto, logger logging.Logger) (*BulkRestoreResponse, error) {
	result, err := h.interactor.BulkRestoreFromTrashbox(ctx, req.PaymentIDs)
	if err != nil {
		return nil, err
	}

	logger.Info("bulk restored %d of %d trashbox entries", result.Succeeded, len(req.PaymentIDs))
	return &BulkRestoreResponse{
		Restored: result.Succeeded,
		Errors:   v1models.BulkErrorsFrom(result.Errors),
	}, nil
}

func (h *Handler) BulkPermanentEndpoint(ctx context.Context, req *BulkRequestDto, logger logging.Logger) (*BulkDeleteResponse, error) {
	result, err := h.interactor.BulkPermanentlyDelete(ctx, req.PaymentIDs)
	if err != nil {
		return nil, err
	}

	logger.Info("bulk deleted %d of %d trashbox entries", result.Succeeded, len(req.PaymentIDs))
	return &BulkDeleteResponse{
		Deleted: result.Succeeded,
		Errors:  v1models.BulkErrorsFrom(result.Errors),
	}, nil
}
