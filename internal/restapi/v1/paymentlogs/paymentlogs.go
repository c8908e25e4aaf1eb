package v1paymentlogs

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

	router.Get("/payments/{id}/logs",
		common.CreateHandler(h.ListEndpoint, PaymentLogsRequest, common.ResponseWithStatus[[]v1models.PaymentLogDto](http.StatusOK)))
	router.Get("/payment-logs",
		common.CreateHandler(h.ListEndpoint, QueryRequest, common.ResponseWithStatus[[]v1models.PaymentLogDto](http.StatusOK)))
}

func (h *Handler) ListEndpoint(ctx context.Context, req *entities.PaymentLogQuery, logger logging.Logger) (*[]v1models.PaymentLogDto, error) {
	entries, err := h.interactor.ListPaymentLogs(ctx, *req)
	if err != nil {
		return nil, err
	}

	result := make([]v1models.PaymentLogDto, 0, len(entries))
	for _, e := range entries {
		result = append(result, v1models.PaymentLogFrom(e))
	}
	return &result, nil
}

// PaymentLogsRequest reads the history of one payment. It also works for payments
// that are archived, trashed or gone, the log keeps the original id.
func PaymentLogsRequest(r *http.Request) (*entities.PaymentLogQuery, error) {
	id, err := common.ParseIDParam(r, "id")
	if err != nil {
		return nil, err
	}
	return &entities.PaymentLogQuery{PaymentID: id}, nil
}

func QueryRequest(r *http.Request) (*entities.PaymentLogQuery, error) {
	query := &entities.PaymentLogQuery{
		Action: entities.PaymentLogAction(r.URL.Query().Get("action")),
	}

	var err error
	if query.PaymentID, err = common.ParseIDQuery(r, "payment_id"); err != nil {
		return nil, err
	}
	if query.GroupID, err = common.ParseIDQuery(r, "group_id"); err != nil {
		return nil, err
	}
	if query.MemberID, err = common.ParseIDQuery(r, "member_id"); err != nil {
		return nil, err
	}
	return query, nil
}
