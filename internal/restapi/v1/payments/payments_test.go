package v1payments

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kasmoni/payment-service/internal/entities"
	"github.com/kasmoni/payment-service/internal/restapi/resttest"
	v1models "github.com/kasmoni/payment-service/internal/restapi/v1/models"
)

func createPayment(t *testing.T, env *resttest.Env, memberID uint, slot string) v1models.PaymentDto {
	t.Helper()

	status, res := env.Call(t, http.MethodPost, "/payments", paymentBody(memberID, slot), true)
	require.Equal(t, http.StatusCreated, status, res.Error)
	return resttest.Decode[v1models.PaymentDto](t, res)
}

func TestCreatePaymentEndpoint(t *testing.T) {
	env := setupServer(t)
	require.NoError(t, env.Repo.CreateGroup(resttest.APICtx(), &entities.Group{ID: 3, Name: "Family Tanda"}))
	require.NoError(t, env.Repo.CreateMember(resttest.APICtx(), &entities.Member{ID: 11, FirstName: "Rosa", LastName: "Diaz"}))

	tests := []struct {
		name           string
		body           string
		authenticated  bool
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "Should reject unauthenticated callers",
			body:           paymentBody(11, "2025-03"),
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Token is missing",
		},
		{
			name:           "Should reject a missing body",
			authenticated:  true,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "request body is missing",
		},
		{
			name:           "Should reject malformed json",
			body:           `{"group_id": `,
			authenticated:  true,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Should reject invalid payments",
			body:           `{"group_id": 3, "member_id": 11, "amount": -5, "payment_date": "2025-03-05", "payment_month": "2025-03", "slot": "2025-03", "payment_type": "cash"}`,
			authenticated:  true,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "amount: must be greater than 0",
		},
		{
			name:           "Should create a payment",
			body:           paymentBody(11, "2025-03"),
			authenticated:  true,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Should answer a taken slot with bad request",
			body:           paymentBody(11, "2025-03"),
			authenticated:  true,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "member 11 already has payment 1 for slot 2025-03 in group 3",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, res := env.Call(t, http.MethodPost, "/payments", tc.body, tc.authenticated)
			require.Equal(t, tc.expectedStatus, status)

			if tc.expectedStatus != http.StatusCreated {
				require.False(t, res.Success)
				if tc.expectedError != "" {
					require.Equal(t, tc.expectedError, res.Error)
				}
				return
			}

			require.True(t, res.Success)
			dto := resttest.Decode[v1models.PaymentDto](t, res)
			require.Equal(t, uint(1), dto.ID)
			require.Equal(t, "500.00", dto.Amount.String())
			require.Equal(t, entities.PaymentStatusNotPaid, dto.Status)
			require.NotNil(t, dto.Group)
			require.Equal(t, "Family Tanda", dto.Group.Name)
			require.NotNil(t, dto.Member)
			require.Equal(t, "Rosa", dto.Member.FirstName)
		})
	}

	require.Equal(t, []uint{3}, env.Groups.Recording())
}

func TestBulkCreatePaymentsEndpoint(t *testing.T) {
	env := setupServer(t)

	body := fmt.Sprintf(`{"payments": [%s, {"group_id": 3}, %s]}`, paymentBody(1, "2025-03"), paymentBody(2, "2025-03"))
	status, res := env.Call(t, http.MethodPost, "/payments/bulk", body, true)
	require.Equal(t, http.StatusCreated, status, res.Error)

	result := resttest.Decode[BulkCreateResponse](t, res)
	require.Equal(t, 2, result.Created)
	require.Equal(t, []uint{1, 2}, result.PaymentIDs)
	require.Len(t, result.Errors, 1)
	require.Equal(t, 1, result.Errors[0].Index)

	status, res = env.Call(t, http.MethodPost, "/payments/bulk", `{"payments": []}`, true)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "payments must be a non-empty array", res.Error)
}

func TestGetAndUpdatePaymentEndpoints(t *testing.T) {
	env := setupServer(t)
	created := createPayment(t, env, 1, "2025-03")
	path := fmt.Sprintf("/payments/%d", created.ID)

	status, res := env.Call(t, http.MethodGet, path, "", true)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, created.ID, resttest.Decode[v1models.PaymentDto](t, res).ID)

	status, res = env.Call(t, http.MethodGet, "/payments/99", "", true)
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, "payment 99 not found", res.Error)

	status, res = env.Call(t, http.MethodGet, "/payments/abc", "", true)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, `id: "abc" is not a valid id`, res.Error)

	status, res = env.Call(t, http.MethodPut, path, `{"amount": "750.5", "proof_of_payment": "receipt-17.pdf"}`, true)
	require.Equal(t, http.StatusOK, status, res.Error)
	updated := resttest.Decode[v1models.PaymentDto](t, res)
	require.Equal(t, "750.50", updated.Amount.String())
	require.Equal(t, "receipt-17.pdf", updated.ProofOfPayment)
	require.Equal(t, "2025-03", updated.Slot)
}

func TestChangeStatusEndpoint(t *testing.T) {
	env := setupServer(t)
	created := createPayment(t, env, 1, "2025-03")
	path := fmt.Sprintf("/payments/%d/status", created.ID)

	status, res := env.Call(t, http.MethodPut, path, `{"status": "received"}`, true)
	require.Equal(t, http.StatusOK, status, res.Error)
	require.Equal(t, entities.PaymentStatusReceived, resttest.Decode[v1models.PaymentDto](t, res).Status)

	status, res = env.Call(t, http.MethodPut, path, `{"status": "received"}`, true)
	require.Equal(t, http.StatusBadRequest, status)
	require.Contains(t, res.Error, "already has status received")

	status, _ = env.Call(t, http.MethodPut, path, `{"status": "lost"}`, true)
	require.Equal(t, http.StatusBadRequest, status)
}

func TestArchiveAndTrashPaymentEndpoints(t *testing.T) {
	env := setupServer(t)
	first := createPayment(t, env, 1, "2025-03")
	second := createPayment(t, env, 2, "2025-03")

	status, res := env.Call(t, http.MethodPost, fmt.Sprintf("/payments/%d/archive", first.ID), `{"archive_reason": "round closed"}`, true)
	require.Equal(t, http.StatusOK, status, res.Error)
	archived := resttest.Decode[ArchiveResponse](t, res)
	require.Equal(t, 1, archived.Archived)
	require.NotZero(t, archived.ArchiveID)

	a, err := env.Repo.GetArchivedPaymentByID(resttest.APICtx(), archived.ArchiveID)
	require.NoError(t, err)
	require.Equal(t, "round closed", a.ArchiveReason)
	require.Equal(t, first.ID, a.OriginalID)

	// no body at all is fine, the reason is optional
	status, res = env.Call(t, http.MethodDelete, fmt.Sprintf("/payments/%d", second.ID), "", true)
	require.Equal(t, http.StatusOK, status, res.Error)
	trashed := resttest.Decode[TrashResponse](t, res)
	require.Equal(t, 1, trashed.Moved)
	require.NotZero(t, trashed.TrashID)

	status, _ = env.Call(t, http.MethodGet, fmt.Sprintf("/payments/%d", second.ID), "", true)
	require.Equal(t, http.StatusNotFound, status)

	status, _ = env.Call(t, http.MethodPost, fmt.Sprintf("/payments/%d/archive", second.ID), "", true)
	require.Equal(t, http.StatusNotFound, status)
}

func TestListGroupPaymentsEndpoint(t *testing.T) {
	env := setupServer(t)
	createPayment(t, env, 1, "2025-03")
	createPayment(t, env, 2, "2025-03")

	status, res := env.Call(t, http.MethodGet, "/groups/3/payments", "", true)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, resttest.Decode[[]v1models.PaymentDto](t, res), 2)

	status, res = env.Call(t, http.MethodGet, "/groups/4/payments", "", true)
	require.Equal(t, http.StatusOK, status)
	require.Empty(t, resttest.Decode[[]v1models.PaymentDto](t, res))
}
