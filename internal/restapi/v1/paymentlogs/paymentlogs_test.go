package v1paymentlogs

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kasmoni/payment-service/internal/entities"
	"github.com/kasmoni/payment-service/internal/restapi/resttest"
	v1models "github.com/kasmoni/payment-service/internal/restapi/v1/models"
)

func TestPaymentHistoryEndpoint(t *testing.T) {
	env := resttest.Setup(t, Create)
	p := env.CreatePayment(t, 1, "2025-03")
	_, err := env.Interactor.ChangePaymentStatus(resttest.APICtx(), p.ID, entities.PaymentStatusReceived)
	require.NoError(t, err)
	_, err = env.Interactor.ArchivePayment(resttest.APICtx(), p.ID, "")
	require.NoError(t, err)

	status, res := env.Call(t, http.MethodGet, fmt.Sprintf("/payments/%d/logs", p.ID), "", true)
	require.Equal(t, http.StatusOK, status, res.Error)

	entries := resttest.Decode[[]v1models.PaymentLogDto](t, res)
	require.Len(t, entries, 3)
	require.Equal(t, entities.PaymentLogActionArchived, entries[0].Action)
	require.Equal(t, entities.PaymentLogActionStatusChanged, entries[1].Action)
	require.Equal(t, entities.PaymentStatusNotPaid, entries[1].OldStatus)
	require.Equal(t, entities.PaymentStatusReceived, entries[1].NewStatus)
	require.Equal(t, entities.PaymentLogActionCreated, entries[2].Action)
	require.Equal(t, "api", entries[2].PerformedByUserID)
	require.NotNil(t, entries[2].NewValues)
}

func TestQueryEndpoint(t *testing.T) {
	env := resttest.Setup(t, Create)
	env.CreatePayment(t, 1, "2025-03")
	second := env.CreatePayment(t, 2, "2025-03")
	_, err := env.Interactor.TrashPayment(resttest.APICtx(), second.ID, "wrong member")
	require.NoError(t, err)

	tests := []struct {
		name           string
		query          string
		expectedStatus int
		expectedCount  int
	}{
		{name: "Should list everything without filters", query: "", expectedStatus: http.StatusOK, expectedCount: 3},
		{name: "Should filter by member", query: "?member_id=2", expectedStatus: http.StatusOK, expectedCount: 2},
		{name: "Should filter by group", query: "?group_id=3", expectedStatus: http.StatusOK, expectedCount: 3},
		{name: "Should filter by action", query: "?action=deleted", expectedStatus: http.StatusOK, expectedCount: 1},
		{name: "Should combine filters", query: "?member_id=1&action=deleted", expectedStatus: http.StatusOK, expectedCount: 0},
		{name: "Should reject unknown actions", query: "?action=exploded", expectedStatus: http.StatusBadRequest},
		{name: "Should reject malformed ids", query: "?payment_id=-1", expectedStatus: http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, res := env.Call(t, http.MethodGet, "/payment-logs"+tc.query, "", true)
			require.Equal(t, tc.expectedStatus, status, res.Error)
			if status == http.StatusOK {
				require.Len(t, resttest.Decode[[]v1models.PaymentLogDto](t, res), tc.expectedCount)
			}
		})
	}
}
