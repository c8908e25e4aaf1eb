package interaction

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/kasmoni/payment-service/internal/apierrors"
	"github.com/kasmoni/payment-service/internal/entities"
)

func strPtr(s string) *string {
	return &s
}

func TestCreatePayment(t *testing.T) {
	bankTransfer := validInput(7, "2025-04")
	bankTransfer.PaymentType = entities.PaymentTypeBankTransfer

	tests := []struct {
		name        string
		ctx         context.Context
		input       PaymentInput
		expectedErr string
		check       func(t *testing.T, err error)
	}{
		{
			name:  "valid cash payment",
			ctx:   adminCtx(),
			input: validInput(7, "2025-03"),
		},
		{
			name:  "api token may create payments",
			ctx:   apiCtx(),
			input: validInput(8, "2025-03"),
		},
		{
			name:        "every missing field is reported",
			ctx:         adminCtx(),
			input:       PaymentInput{},
			expectedErr: "amount: is required; group_id: is required; member_id: is required; payment_date: is required; payment_month: is required; payment_type: must be one of cash, bank_transfer; slot: is required",
			check: func(t *testing.T, err error) {
				require.True(t, apierrors.IsBadRequestError(err))
			},
		},
		{
			name: "amount must be positive",
			ctx:  adminCtx(),
			input: func() PaymentInput {
				in := validInput(7, "2025-03")
				in.Amount = "0.001"
				return in
			}(),
			expectedErr: "amount: must be greater than 0",
		},
		{
			name: "malformed dates are rejected",
			ctx:  adminCtx(),
			input: func() PaymentInput {
				in := validInput(7, "2025-3")
				in.PaymentDate = "05.03.2025"
				return in
			}(),
			expectedErr: "payment_date: 05.03.2025 is not a date of the form YYYY-MM-DD; slot: 2025-3 is not a month of the form YYYY-MM",
		},
		{
			name:        "bank transfers need both banks",
			ctx:         adminCtx(),
			input:       bankTransfer,
			expectedErr: "receiver_bank: is required for bank transfers; sender_bank: is required for bank transfers",
		},
		{
			name:  "members may not create payments",
			ctx:   memberCtx(),
			input: validInput(7, "2025-03"),
			check: func(t *testing.T, err error) {
				require.True(t, apierrors.IsForbiddenError(err))
			},
		},
		{
			name:  "anonymous callers are rejected",
			ctx:   context.Background(),
			input: validInput(7, "2025-03"),
			check: func(t *testing.T, err error) {
				require.True(t, apierrors.IsUnauthorizedError(err))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			p, err := f.sut.CreatePayment(tt.ctx, tt.input)
			if tt.expectedErr == "" && tt.check == nil {
				require.NoError(t, err)
				require.NotZero(t, p.ID)
				require.Equal(t, entities.PaymentStatusNotPaid, p.Status)
				require.Equal(t, 1, f.countLogs(t, entities.PaymentLogActionCreated))
				require.Equal(t, []uint{3}, f.groups.Recording())
				return
			}

			require.Error(t, err)
			require.Nil(t, p)
			if tt.expectedErr != "" {
				require.Equal(t, tt.expectedErr, apierrors.AsAPIStatus(err).Status().Details)
			}
			if tt.check != nil {
				tt.check(t, err)
			}
			require.Empty(t, f.logs(t))
			require.Empty(t, f.groups.Recording())
		})
	}
}

func TestCreatePaymentRoundsAmountAndWritesSnapshot(t *testing.T) {
	f := newFixture(t)

	in := validInput(7, "2025-03")
	in.Amount = "150.456"
	in.PaymentType = entities.PaymentTypeBankTransfer
	in.SenderBank = "Hakrinbank"
	in.ReceiverBank = "DSB"
	in.Status = entities.PaymentStatusPending

	p, err := f.sut.CreatePayment(adminCtx(), in)
	require.NoError(t, err)
	require.True(t, decimal.RequireFromString("150.46").Equal(p.Amount))

	entries := f.logs(t)
	require.Len(t, entries, 1)
	entry := entries[0]
	require.Equal(t, entities.PaymentLogActionCreated, entry.Action)
	require.Equal(t, p.ID, *entry.PaymentID)
	require.Equal(t, entities.PaymentStatusPending, entry.NewStatus)
	require.Equal(t, "150.46", entry.NewValues["amount"])
	require.Equal(t, "2025-03-05", entry.NewValues["payment_date"])
	require.Equal(t, "1", entry.PerformedByUserID)
	require.Equal(t, "Ana Admin", entry.PerformedByUsername)
	require.Equal(t, "192.0.2.10", entry.IPAddress)
	require.Equal(t, "test-agent", entry.UserAgent)
}

func TestCreatePaymentSlotTaken(t *testing.T) {
	f := newFixture(t)
	first := f.createPayment(t, 7, "2025-03")

	_, err := f.sut.CreatePayment(adminCtx(), validInput(7, "2025-03"))
	require.True(t, apierrors.IsConflictError(err))
	require.Contains(t, err.Error(), "already has payment")

	// other member, other slot are fine
	f.createPayment(t, 8, "2025-03")
	f.createPayment(t, 7, "2025-04")

	payments, err := f.sut.ListGroupPayments(memberCtx(), first.GroupID)
	require.NoError(t, err)
	require.Len(t, payments, 3)
}

func TestBulkCreatePayments(t *testing.T) {
	f := newFixture(t)
	f.createPayment(t, 9, "2025-05")

	invalid := validInput(7, "2025-03")
	invalid.Amount = "-5"

	otherGroup := validInput(12, "2025-03")
	otherGroup.GroupID = 4

	res, err := f.sut.BulkCreatePayments(adminCtx(), []PaymentInput{
		validInput(7, "2025-03"),
		invalid,
		validInput(8, "2025-03"),
		validInput(7, "2025-03"),
		validInput(9, "2025-05"),
		otherGroup,
	})
	require.NoError(t, err)
	require.Equal(t, 3, res.Created)
	require.Len(t, res.PaymentIDs, 3)

	require.Len(t, res.Errors, 3)
	require.Equal(t, 1, res.Errors[0].Index)
	require.Equal(t, "amount: must be greater than 0", res.Errors[0].Error)
	require.Equal(t, 3, res.Errors[1].Index)
	require.Contains(t, res.Errors[1].Error, "payments[0] of this request")
	require.Equal(t, 4, res.Errors[2].Index)
	require.Contains(t, res.Errors[2].Error, "already has payment")

	require.Equal(t, 1, f.countLogs(t, entities.PaymentLogActionBulkCreated))
	bulkEntry := f.logs(t)[0]
	require.Equal(t, 3, bulkEntry.BulkPaymentCount)
	require.Nil(t, bulkEntry.GroupID)

	require.ElementsMatch(t, []uint{3, 3, 4}, f.groups.Recording())
}

func TestBulkCreatePaymentsNothingValid(t *testing.T) {
	f := newFixture(t)

	_, err := f.sut.BulkCreatePayments(adminCtx(), nil)
	require.True(t, apierrors.IsBadRequestError(err))

	_, err = f.sut.BulkCreatePayments(adminCtx(), []PaymentInput{{}, validInput(0, "2025-01")})
	require.True(t, apierrors.IsBadRequestError(err))
	details := apierrors.AsAPIStatus(err).Status().Details
	require.Contains(t, details, "no valid payments in request")
	require.Contains(t, details, "payments[0]: amount: is required")
	require.Contains(t, details, "payments[1]: member_id: is required")

	require.Empty(t, f.logs(t))
}

func TestUpdatePayment(t *testing.T) {
	f := newFixture(t)
	p := f.createPayment(t, 7, "2025-03")
	f.createPayment(t, 8, "2025-04")

	t.Run("changed fields are logged", func(t *testing.T) {
		updated, err := f.sut.UpdatePayment(adminCtx(), p.ID, PaymentPatch{
			Amount:         strPtr("550.5"),
			PaymentMonth:   strPtr("2025-03"),
			ProofOfPayment: strPtr("receipt-17.pdf"),
		})
		require.NoError(t, err)
		require.True(t, decimal.RequireFromString("550.50").Equal(updated.Amount))
		require.Equal(t, "receipt-17.pdf", updated.ProofOfPayment)

		entries := f.logs(t)
		require.Equal(t, entities.PaymentLogActionUpdated, entries[0].Action)
		require.Equal(t, "500.00", entries[0].OldValues["amount"])
		require.Equal(t, "550.50", entries[0].NewValues["amount"])
		require.Equal(t, "receipt-17.pdf", entries[0].NewValues["proof_of_payment"])
		require.NotContains(t, entries[0].NewValues, "payment_month")
	})

	t.Run("a patch without changes logs nothing", func(t *testing.T) {
		before := len(f.logs(t))
		_, err := f.sut.UpdatePayment(adminCtx(), p.ID, PaymentPatch{Amount: strPtr("550.50")})
		require.NoError(t, err)
		require.Len(t, f.logs(t), before)
	})

	t.Run("switching to bank transfer needs the banks", func(t *testing.T) {
		bank := entities.PaymentTypeBankTransfer
		_, err := f.sut.UpdatePayment(adminCtx(), p.ID, PaymentPatch{PaymentType: &bank, SenderBank: strPtr("DSB")})
		require.True(t, apierrors.IsBadRequestError(err))
		require.Equal(t, "receiver_bank: is required for bank transfers", apierrors.AsAPIStatus(err).Status().Details)
	})

	t.Run("slots are held per member", func(t *testing.T) {
		_, err := f.sut.UpdatePayment(adminCtx(), p.ID, PaymentPatch{Slot: strPtr("2025-04")})
		require.NoError(t, err)

		other, err := f.repo.FindPayments(context.Background(), entities.PaymentQuery{MemberID: 8})
		require.NoError(t, err)
		require.Len(t, other, 1)

		_, err = f.sut.UpdatePayment(adminCtx(), other[0].ID, PaymentPatch{Slot: strPtr("2025-04"), Amount: strPtr("1")})
		require.NoError(t, err, "member 8 does not share the slot with member 7")
	})

	t.Run("unknown payment", func(t *testing.T) {
		_, err := f.sut.UpdatePayment(adminCtx(), 999, PaymentPatch{Amount: strPtr("1")})
		require.True(t, apierrors.IsNotFoundError(err))
	})
}

func TestUpdatePaymentSlotConflict(t *testing.T) {
	f := newFixture(t)
	f.createPayment(t, 7, "2025-03")
	p := f.createPayment(t, 7, "2025-04")

	_, err := f.sut.UpdatePayment(adminCtx(), p.ID, PaymentPatch{Slot: strPtr("2025-03")})
	require.True(t, apierrors.IsConflictError(err))

	cur, err := f.sut.GetPayment(adminCtx(), p.ID)
	require.NoError(t, err)
	require.Equal(t, "2025-04", cur.Slot)
}

func TestChangePaymentStatus(t *testing.T) {
	f := newFixture(t)
	p := f.createPayment(t, 7, "2025-03")

	updated, err := f.sut.ChangePaymentStatus(adminCtx(), p.ID, entities.PaymentStatusReceived)
	require.NoError(t, err)
	require.Equal(t, entities.PaymentStatusReceived, updated.Status)

	entry := f.logs(t)[0]
	require.Equal(t, entities.PaymentLogActionStatusChanged, entry.Action)
	require.Equal(t, entities.PaymentStatusNotPaid, entry.OldStatus)
	require.Equal(t, entities.PaymentStatusReceived, entry.NewStatus)

	_, err = f.sut.ChangePaymentStatus(adminCtx(), p.ID, entities.PaymentStatusReceived)
	require.True(t, apierrors.IsBadRequestError(err))

	_, err = f.sut.ChangePaymentStatus(adminCtx(), p.ID, "lost")
	require.True(t, apierrors.IsBadRequestError(err))

	_, err = f.sut.ChangePaymentStatus(adminCtx(), 999, entities.PaymentStatusSettled)
	require.True(t, apierrors.IsNotFoundError(err))

	require.Equal(t, 1, f.countLogs(t, entities.PaymentLogActionStatusChanged))
}

func TestArchivePayment(t *testing.T) {
	f := newFixture(t)
	p := f.createPayment(t, 7, "2025-03")

	a := f.archive(t, p.ID, "duplicate")
	require.Equal(t, p.ID, a.OriginalID)
	require.Equal(t, "duplicate", a.ArchiveReason)
	require.Equal(t, "1", a.ArchivedByUserID)
	require.False(t, a.ArchivedAt.IsZero())

	_, err := f.sut.GetPayment(adminCtx(), p.ID)
	require.True(t, apierrors.IsNotFoundError(err))
	require.Equal(t, 1, f.locations(t, p.ID))

	entry := f.logs(t)[0]
	require.Equal(t, entities.PaymentLogActionArchived, entry.Action)
	require.Equal(t, "Archived (archive ID: 1): duplicate", entry.Details)

	_, err = f.sut.ArchivePayment(adminCtx(), p.ID, "again")
	require.True(t, apierrors.IsNotFoundError(err))
}

func TestTrashPayment(t *testing.T) {
	f := newFixture(t)
	p := f.createPayment(t, 7, "2025-03")

	tr := f.trash(t, p.ID)
	require.Equal(t, p.ID, tr.OriginalID)
	require.Equal(t, entities.TrashOriginActive, tr.Origin)
	require.Equal(t, "wrong member", tr.DeletionReason)
	require.Equal(t, 1, f.locations(t, p.ID))

	entry := f.logs(t)[0]
	require.Equal(t, entities.PaymentLogActionDeleted, entry.Action)
	require.Equal(t, "Moved to trashbox (trash ID: 1): wrong member", entry.Details)

	_, err := f.sut.TrashPayment(memberCtx(), p.ID, "")
	require.True(t, apierrors.IsForbiddenError(err))
}

func TestWebhookFailureDoesNotFailTheMutation(t *testing.T) {
	f := newFixture(t)
	f.groups.SimulateError(errors.New("group service down"))

	p, err := f.sut.CreatePayment(adminCtx(), validInput(7, "2025-03"))
	require.NoError(t, err)
	require.NotZero(t, p.ID)
	require.Equal(t, 1, f.countLogs(t, entities.PaymentLogActionCreated))
}
