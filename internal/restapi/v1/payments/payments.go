package v1payments

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

	router.Post("/payments",
		common.CreateHandler(h.CreatePaymentEndpoint, CreatePaymentRequest, common.ResponseWithStatus[v1models.PaymentDto](http.StatusCreated)))
	router.Post("/payments/bulk",
		common.CreateHandler(h.BulkCreatePaymentsEndpoint, BulkCreatePaymentsRequest, common.ResponseWithStatus[BulkCreateResponse](http.StatusCreated)))
	router.Get("/payments/{id}",
		common.CreateHandler(h.GetPaymentEndpoint, PaymentIDRequest, common.ResponseWithStatus[v1models.PaymentDto](http.StatusOK)))
	router.Put("/payments/{id}",
		common.CreateHandler(h.UpdatePaymentEndpoint, UpdatePaymentRequest, common.ResponseWithStatus[v1models.PaymentDto](http.StatusOK)))
	router.Put("/payments/{id}/status",
		common.CreateHandler(h.ChangeStatusEndpoint, ChangeStatusRequest, common.ResponseWithStatus[v1models.PaymentDto](http.StatusOK)))
	router.Post("/payments/{id}/archive",
		common.CreateHandler(h.ArchivePaymentEndpoint, ArchivePaymentRequest, common.ResponseWithStatus[ArchiveResponse](http.StatusOK)))
	router.Delete("/payments/{id}",
		common.CreateHandler(h.TrashPaymentEndpoint, TrashPaymentRequest, common.ResponseWithStatus[TrashResponse](http.StatusOK)))
	router.Get("/groups/{group_id}/payments",
		common.CreateHandler(h.ListGroupPaymentsEndpoint, GroupPaymentsRequest, common.ResponseWithStatus[[]v1models.PaymentDto](http.StatusOK)))
}

func (h *Handler) paymentDto(ctx context.Context, p *entities.Payment) *v1models.PaymentDto {
	dto := v1models.PaymentFrom(*p, v1models.Resolve(ctx, h.interactor, p.PaymentFields))
	return &dto
}

func (h *Handler) CreatePaymentEndpoint(ctx context.Context, req *v1models.PaymentInputDto, logger logging.Logger) (*v1models.PaymentDto, error) {
	p, err := h.interactor.CreatePayment(ctx, req.ToInput())
	if err != nil {
		return nil, err
	}

	logger.Info("created payment %d for member %d in group %d", p.ID, p.MemberID, p.GroupID)
	return h.paymentDto(ctx, p), nil
}

func (h *Handler) BulkCreatePaymentsEndpoint(ctx context.Context, req *BulkCreateRequest, logger logging.Logger) (*BulkCreateResponse, error) {
	inputs := make([]interaction.PaymentInput, 0, len(req.Payments))
	for _, p := range req.Payments {
		inputs = append(inputs, p.ToInput())
	}

	result, err := h.interactor.BulkCreatePayments(ctx, inputs)
	if err != nil {
		return nil, err
	}

	logger.Info("bulk created %d of %d payments", result.Created, len(inputs))

	errs := make([]BulkCreateErrorDto, 0, len(result.Errors))
	for _, e := range result.Errors {
		errs = append(errs, BulkCreateErrorDto{Index: e.Index, Error: e.Error})
	}
	return &BulkCreateResponse{
		Created:    result.Created,
		PaymentIDs: result.PaymentIDs,
		Errors:     errs,
	}, nil
}

func (h *Handler) GetPaymentEndpoint(ctx context.Context, req *PaymentIDRequestDto, logger logging.Logger) (*v1models.PaymentDto, error) {
	p, err := h.interactor.GetPayment(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	return h.paymentDto(ctx, p), nil
}

func (h *Handler) UpdatePaymentEndpoint(ctx context.Context, req *UpdatePaymentRequestDto, logger logging.Logger) (*v1models.PaymentDto, error) {
	p, err := h.interactor.UpdatePayment(ctx, req.ID, req.Patch.ToPatch())
	if err != nil {
		return nil, err
	}

	return h.paymentDto(ctx, p), nil
}

func (h *Handler) ChangeStatusEndpoint(ctx context.Context, req *ChangeStatusRequestDto, logger logging.Logger) (*v1models.PaymentDto, error) {
	p, err := h.interactor.ChangePaymentStatus(ctx, req.ID, req.Status)
	if err != nil {
		return nil, err
	}

	logger.Info("payment %d is now %s", p.ID, p.Status)
	return h.paymentDto(ctx, p), nil
}

func (h *Handler) ArchivePaymentEndpoint(ctx context.Context, req *ArchivePaymentRequestDto, logger logging.Logger) (*ArchiveResponse, error) {
	archived, err := h.interactor.ArchivePayment(ctx, req.ID, req.ArchiveReason)
	if err != nil {
		return nil, err
	}

	logger.Info("archived payment %d as archive entry %d", req.ID, archived.ID)
	return &ArchiveResponse{Archived: 1, ArchiveID: archived.ID}, nil
}

func (h *Handler) TrashPaymentEndpoint(ctx context.Context, req *TrashPaymentRequestDto, logger logging.Logger) (*TrashResponse, error) {
	trashed, err := h.interactor.TrashPayment(ctx, req.ID, req.DeletionReason)
	if err != nil {
		return nil, err
	}

	logger.Info("moved payment %d to trashbox entry %d", req.ID, trashed.ID)
	return &TrashResponse{Moved: 1, TrashID: trashed.ID}, nil
}

func (h *Handler) ListGroupPaymentsEndpoint(ctx context.Context, req *GroupPaymentsRequestDto, logger logging.Logger) (*[]v1models.PaymentDto, error) {
	payments, err := h.interactor.ListGroupPayments(ctx, req.GroupID)
	if err != nil {
		return nil, err
	}

	fields := make([]entities.PaymentFields, 0, len(payments))
	for _, p := range payments {
		fields = append(fields, p.PaymentFields)
	}
	refs := v1models.Resolve(ctx, h.interactor, fields...)

	result := make([]v1models.PaymentDto, 0, len(payments))
	for _, p := range payments {
		result = append(result, v1models.PaymentFrom(p, refs))
	}
	return &result, nil
}
