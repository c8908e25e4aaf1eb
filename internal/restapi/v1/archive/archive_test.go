package v1archive

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kasmoni/payment-service/internal/entities"
	"github.com/kasmoni/payment-service/internal/repository/database"
	"github.com/kasmoni/payment-service/internal/repository/database/inmemory"
	"github.com/kasmoni/payment-service/internal/restapi/resttest"
	v1models "github.com/kasmoni/payment-service/internal/restapi/v1/models"
)

func setupArchive(t *testing.T, memberIDs ...uint) (*resttest.Env, []entities.ArchivedPayment) {
	t.Helper()

	env := resttest.Setup(t, Create)
	archived := make([]entities.ArchivedPayment, 0, len(memberIDs))
	for _, m := range memberIDs {
		p := env.CreatePayment(t, m, "2025-03")
		a, err := env.Interactor.ArchivePayment(resttest.APICtx(), p.ID, "round closed")
		require.NoError(t, err)
		archived = append(archived, *a)
	}
	return env, archived
}

func TestListEndpoint(t *testing.T) {
	env, archived := setupArchive(t, 1, 2)
	require.NoError(t, env.Repo.CreateMember(resttest.APICtx(), &entities.Member{ID: 2, FirstName: "Lupe", LastName: "Vega"}))

	status, res := env.Call(t, http.MethodGet, "/archive/list", "", true)
	require.Equal(t, http.StatusOK, status)

	list := resttest.Decode[[]v1models.ArchivedPaymentDto](t, res)
	require.Len(t, list, 2)
	// newest first
	require.Equal(t, archived[1].ID, list[0].ID)
	require.Equal(t, "round closed", list[0].ArchiveReason)
	require.NotNil(t, list[0].Member)
	require.Equal(t, "Lupe", list[0].Member.FirstName)
	require.Nil(t, list[1].Member)

	status, res = env.Call(t, http.MethodGet, "/archive/list", "", false)
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "auth.unauthorized", res.Message)
}

func TestRestoreEndpoint(t *testing.T) {
	env, archived := setupArchive(t, 1)
	path := fmt.Sprintf("/archive/%d/restore", archived[0].ID)

	status, res := env.Call(t, http.MethodPost, path, "", true)
	require.Equal(t, http.StatusOK, status, res.Error)
	restored := resttest.Decode[RestoreResponse](t, res)
	require.Equal(t, 1, restored.Restored)
	require.Equal(t, archived[0].OriginalID, restored.NewPaymentID)

	status, res = env.Call(t, http.MethodPost, path, "", true)
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, fmt.Sprintf("archived payment %d not found", archived[0].ID), res.Error)
}

func TestRestoreEndpointIDTaken(t *testing.T) {
	env, archived := setupArchive(t, 1)

	// a payment reusing the original id makes the restore impossible
	blocker := &entities.Payment{ID: archived[0].OriginalID, PaymentFields: archived[0].PaymentFields}
	require.NoError(t, env.Repo.CreatePayment(resttest.APICtx(), blocker))

	status, res := env.Call(t, http.MethodPost, fmt.Sprintf("/archive/%d/restore", archived[0].ID), "", true)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "A payment with this ID already exists. Cannot restore.", res.Error)

	_, err := env.Repo.GetArchivedPaymentByID(resttest.APICtx(), archived[0].ID)
	require.NoError(t, err, "archive entry must survive a failed restore")
}

func TestMoveToTrashboxEndpoint(t *testing.T) {
	env, archived := setupArchive(t, 1, 2)

	status, res := env.Call(t, http.MethodPost, fmt.Sprintf("/archive/%d/move-to-trashbox", archived[0].ID), `{"deletion_reason": "duplicate"}`, true)
	require.Equal(t, http.StatusOK, status, res.Error)
	require.Equal(t, 1, resttest.Decode[MoveResponse](t, res).Moved)

	status, res = env.Call(t, http.MethodPost, fmt.Sprintf("/archive/%d/move-to-trashbox", archived[1].ID), "", true)
	require.Equal(t, http.StatusOK, status, res.Error)

	trash, err := env.Interactor.ListTrashbox(resttest.APICtx())
	require.NoError(t, err)
	require.Len(t, trash, 2)

	reasons := map[uint]string{}
	for _, tp := range trash {
		reasons[tp.OriginalID] = tp.DeletionReason
		require.Equal(t, entities.TrashOriginArchive, tp.Origin)
	}
	require.Equal(t, "duplicate", reasons[archived[0].OriginalID])
	require.Equal(t, "round closed", reasons[archived[1].OriginalID])

	status, _ = env.Call(t, http.MethodPost, "/archive/999/move-to-trashbox", "", true)
	require.Equal(t, http.StatusNotFound, status)
}

func TestBulkRestoreEndpoint(t *testing.T) {
	env, archived := setupArchive(t, 1, 2)

	tests := []struct {
		name             string
		body             string
		expectedStatus   int
		expectedRestored int
		expectedErrors   int
	}{
		{
			name:           "Should reject a missing id list",
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Should reject an empty id list",
			body:           `{"archiveIds": []}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Should answer not found when no id exists",
			body:           `{"archiveIds": [900, 901]}`,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:             "Should restore the existing ids and report the others",
			body:             fmt.Sprintf(`{"archiveIds": [%d, 900, %d]}`, archived[0].ID, archived[1].ID),
			expectedStatus:   http.StatusOK,
			expectedRestored: 2,
			expectedErrors:   1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, res := env.Call(t, http.MethodPost, "/archive/bulk-restore", tc.body, true)
			require.Equal(t, tc.expectedStatus, status, res.Error)
			if status != http.StatusOK {
				require.False(t, res.Success)
				return
			}

			result := resttest.Decode[BulkRestoreResponse](t, res)
			require.Equal(t, tc.expectedRestored, result.Restored)
			require.ElementsMatch(t, []uint{archived[0].OriginalID, archived[1].OriginalID}, result.NewPaymentIDs)
			require.Len(t, result.Errors, tc.expectedErrors)
			require.Equal(t, uint(900), result.Errors[0].ID)
			require.Equal(t, "archived payment 900 not found", result.Errors[0].Error)
		})
	}
}

func TestBulkMoveToTrashboxEndpoint(t *testing.T) {
	env, archived := setupArchive(t, 1, 2)

	body := fmt.Sprintf(`{"archiveIds": [%d, %d], "deletion_reason": "season over"}`, archived[0].ID, archived[1].ID)
	status, res := env.Call(t, http.MethodPost, "/archive/bulk-move-to-trashbox", body, true)
	require.Equal(t, http.StatusOK, status, res.Error)

	result := resttest.Decode[BulkMoveResponse](t, res)
	require.Equal(t, 2, result.Moved)
	require.Empty(t, result.Errors)

	list, err := env.Interactor.ListArchive(resttest.APICtx())
	require.NoError(t, err)
	require.Empty(t, list)

	status, _ = env.Call(t, http.MethodPost, "/archive/bulk-move-to-trashbox", body, true)
	require.Equal(t, http.StatusNotFound, status)
}

func TestRestoreEndpointRollsBackWhenAuditFails(t *testing.T) {
	repo := resttest.NewAuditFailure(inmemory.NewInMemoryProvider())
	env := resttest.SetupWithRepository(t, repo, Create)

	p := env.CreatePayment(t, 7, "2025-03")
	a, err := env.Interactor.ArchivePayment(resttest.APICtx(), p.ID, "round closed")
	require.NoError(t, err)
	env.Groups.Reset()
	repo.Arm()

	status, res := env.Call(t, http.MethodPost, fmt.Sprintf("/archive/%d/restore", a.ID), "", true)
	require.Equal(t, http.StatusInternalServerError, status)
	require.False(t, res.Success)
	require.Equal(t, "transaction failed, rolled back: audit disk full", res.Error)
	require.Equal(t, "http.error.internal", res.Message)

	_, err = env.Repo.GetPaymentByID(resttest.APICtx(), p.ID)
	require.True(t, errors.Is(err, database.ErrRecordNotFound))

	still, err := env.Repo.GetArchivedPaymentByID(resttest.APICtx(), a.ID)
	require.NoError(t, err)
	require.Equal(t, p.ID, still.OriginalID)

	logs, err := env.Repo.FindPaymentLogs(resttest.APICtx(), entities.PaymentLogQuery{PaymentID: p.ID})
	require.NoError(t, err)
	require.Len(t, logs, 2)
	require.Empty(t, env.Groups.Recording())
}
