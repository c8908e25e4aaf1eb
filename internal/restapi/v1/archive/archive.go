package v1archive

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

	router.Get("/archive/list",
		common.CreateHandler(h.ListEndpoint, ListRequest, common.ResponseWithStatus[[]v1models.ArchivedPaymentDto](http.StatusOK)))
	router.Post("/archive/bulk-restore",
		common.CreateHandler(h.BulkRestoreEndpoint, BulkRequest, common.ResponseWithStatus[BulkRestoreResponse](http.StatusOK)))
	router.Post("/archive/bulk-move-to-trashbox",
		common.CreateHandler(h.BulkMoveToTrashboxEndpoint, BulkRequest, common.ResponseWithStatus[BulkMoveResponse](http.StatusOK)))
	router.Post("/archive/{id}/restore",
		common.CreateHandler(h.RestoreEndpoint, ArchiveIDRequest, common.ResponseWithStatus[RestoreResponse](http.StatusOK)))
	router.Post("/archive/{id}/move-to-trashbox",
		common.CreateHandler(h.MoveToTrashboxEndpoint, MoveToTrashboxRequest, common.ResponseWithStatus[MoveResponse](http.StatusOK)))
}

func (h *Handler) ListEndpoint(ctx context.Context, _ *ListRequestDto, logger logging.Logger) (*[]v1models.ArchivedPaymentDto, error) {
	archived, err := h.interactor.ListArchive(ctx)
	if err != nil {
		return nil, err
	}

	fields := make([]entities.PaymentFields, 0, len(archived))
	for _, a := range archived {
		fields = append(fields, a.PaymentFields)
	}
	refs := v1models.Resolve(ctx, h.interactor, fields...)

	result := make([]v1models.ArchivedPaymentDto, 0, len(archived))
	for _, a := range archived {
		result = append(result, v1models.ArchivedPaymentFrom(a, refs))
	}
	return &result, nil
}

func (h *Handler) RestoreEndpoint(ctx context.Context, req *ArchiveIDRequestDto, logger logging.Logger) (*RestoreResponse, error) {
	p, err := h.interactor.RestoreFromArchive(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	logger.Info("restored archive entry %d as payment %d", req.ID, p.ID)
	return &RestoreResponse{Restored: 1, NewPaymentID: p.ID}, nil
}

func (h *Handler) MoveToTrashboxEndpoint(ctx context.Context, req *MoveToTrashboxRequestDto, logger logging.Logger) (*MoveResponse, error) {
	trashed, err := h.interactor.MoveArchiveToTrashbox(ctx, req.ID, req.DeletionReason)
	if err != nil {
		return nil, err
	}

	logger.Info("moved archive entry %d to trashbox entry %d", req.ID, trashed.ID)
	return &MoveResponse{Moved: 1}, nil
}

func (h *Handler) BulkRestoreEndpoint(ctx context.Context, req *BulkRequestDto, logger logging.Logger) (*BulkRestoreResponse, error) {
	result, err := h.interactor.BulkRestoreFromArchive(ctx, req.ArchiveIDs)
	if err != nil {
		return nil, err
	}

	logger.Info("bulk restored %d of %d archive entries", result.Succeeded, len(req.ArchiveIDs))
	return &BulkRestoreResponse{
		Restored:      result.Succeeded,
		NewPaymentIDs: result.IDs,
		Errors:        v1models.BulkErrorsFrom(result.Errors),
	}, nil
}

func (h *Handler) BulkMoveToTrashboxEndpoint(ctx context.Context, req *BulkRequestDto, logger logging.Logger) (*BulkMoveResponse, error) {
	result, err := h.interactor.BulkMoveArchiveToTrashbox(ctx, req.ArchiveIDs, req.DeletionReason)
	if err != nil {
		return nil, err
	}

	logger.Info("bulk moved %d of %d archive entries to the trashbox", result.Succeeded, len(req.ArchiveIDs))
	return &BulkMoveResponse{
		Moved:  result.Succeeded,
		Errors: v1models.BulkErrorsFrom(result.Errors),
	}, nil
}
