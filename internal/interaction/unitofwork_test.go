package interaction

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kasmoni/payment-service/internal/apierrors"
	"github.com/kasmoni/payment-service/internal/entities"
	"github.com/kasmoni/payment-service/internal/logging"
	"github.com/kasmoni/payment-service/internal/paymentlog"
	"github.com/kasmoni/payment-service/internal/repository/database"
	"github.com/kasmoni/payment-service/internal/repository/database/inmemory"
	"github.com/kasmoni/payment-service/internal/repository/downstreams/groupservice"
)

var errAuditDown = errors.New("audit disk full")

const msgAuditRolledBack = "transaction failed, rolled back: audit disk full"

// auditFailingRepo fails every audit write made inside a unit of work once armed.
type auditFailingRepo struct {
	database.Repository
	armed *bool
}

func (r auditFailingRepo) Transaction(ctx context.Context, fn func(tx database.Repository) error) error {
	return r.Repository.Transaction(ctx, func(tx database.Repository) error {
		return fn(auditFailingRepo{Repository: tx, armed: r.armed})
	})
}

func (r auditFailingRepo) CreatePaymentLog(ctx context.Context, l *entities.PaymentLog) error {
	if *r.armed {
		return errAuditDown
	}
	return r.Repository.CreatePaymentLog(ctx, l)
}

func newAuditFailingFixture(t *testing.T) (*fixture, func()) {
	t.Helper()

	repo := inmemory.NewInMemoryProvider()
	groups := groupservice.CreateMock()
	armed := false

	i, err := NewServiceInteractor(auditFailingRepo{Repository: repo, armed: &armed}, groups, paymentlog.New(), testAdminRole, logging.NewNoopLogger())
	require.NoError(t, err)

	f := &fixture{
		sut:    i.(*serviceInteractor),
		repo:   repo,
		groups: groups,
	}
	return f, func() { armed = true }
}

type storeState struct {
	Active   []entities.Payment
	Archived []uint
	Trashed  []uint
	Logs     int
}

func (f *fixture) state(t *testing.T) storeState {
	t.Helper()
	ctx := context.Background()

	active, err := f.repo.FindPayments(ctx, entities.PaymentQuery{})
	require.NoError(t, err)
	sort.Slice(active, func(i, j int) bool { return active[i].ID < active[j].ID })

	archived, err := f.repo.ListArchivedPayments(ctx)
	require.NoError(t, err)
	trashed, err := f.repo.ListTrashedPayments(ctx)
	require.NoError(t, err)

	s := storeState{Active: active, Logs: len(f.logs(t))}
	for _, a := range archived {
		s.Archived = append(s.Archived, a.ID)
	}
	for _, tr := range trashed {
		s.Trashed = append(s.Trashed, tr.ID)
	}
	return s
}

func TestFailedAuditWriteRollsBackTheMove(t *testing.T) {
	newAmount := "750"
	newSlot := "2025-09"

	tests := []struct {
		name string
		run  func(f *fixture, active, archived, trashed uint) error
	}{
		{
			name: "Should keep everything when creating fails",
			run: func(f *fixture, active, archived, trashed uint) error {
				_, err := f.sut.CreatePayment(adminCtx(), validInput(9, "2025-05"))
				return err
			},
		},
		{
			name: "Should keep the old values when updating fails",
			run: func(f *fixture, active, archived, trashed uint) error {
				_, err := f.sut.UpdatePayment(adminCtx(), active, PaymentPatch{Amount: &newAmount, Slot: &newSlot})
				return err
			},
		},
		{
			name: "Should keep the old status when changing it fails",
			run: func(f *fixture, active, archived, trashed uint) error {
				_, err := f.sut.ChangePaymentStatus(adminCtx(), active, entities.PaymentStatusSettled)
				return err
			},
		},
		{
			name: "Should keep the payment active when archiving fails",
			run: func(f *fixture, active, archived, trashed uint) error {
				_, err := f.sut.ArchivePayment(adminCtx(), active, "duplicate")
				return err
			},
		},
		{
			name: "Should keep the payment active when trashing fails",
			run: func(f *fixture, active, archived, trashed uint) error {
				_, err := f.sut.TrashPayment(adminCtx(), active, "wrong member")
				return err
			},
		},
		{
			name: "Should keep the archive row when restoring it fails",
			run: func(f *fixture, active, archived, trashed uint) error {
				_, err := f.sut.RestoreFromArchive(adminCtx(), archived)
				return err
			},
		},
		{
			name: "Should keep the archive row when moving it to the trashbox fails",
			run: func(f *fixture, active, archived, trashed uint) error {
				_, err := f.sut.MoveArchiveToTrashbox(adminCtx(), archived, "")
				return err
			},
		},
		{
			name: "Should keep the trashbox row when restoring it fails",
			run: func(f *fixture, active, archived, trashed uint) error {
				_, err := f.sut.RestoreFromTrashbox(adminCtx(), trashed)
				return err
			},
		},
		{
			name: "Should keep the trashbox row when deleting it fails",
			run: func(f *fixture, active, archived, trashed uint) error {
				return f.sut.PermanentlyDelete(adminCtx(), trashed)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, arm := newAuditFailingFixture(t)
			active := f.createPayment(t, 7, "2025-03")
			archived := f.archive(t, f.createPayment(t, 8, "2025-03").ID, "duplicate")
			trashed := f.trash(t, f.createPayment(t, 9, "2025-03").ID)

			before := f.state(t)
			f.groups.Reset()
			arm()

			err := tt.run(f, active.ID, archived.ID, trashed.ID)

			require.EqualError(t, err, msgAuditRolledBack)
			require.True(t, errors.Is(err, errAuditDown))
			require.Nil(t, apierrors.AsAPIStatus(err))
			require.Equal(t, before, f.state(t))
			require.Empty(t, f.groups.Recording())
		})
	}
}

func TestFailedAuditWriteIsReportedPerBulkItem(t *testing.T) {
	f, arm := newAuditFailingFixture(t)
	first := f.trash(t, f.createPayment(t, 7, "2025-03").ID)
	second := f.trash(t, f.createPayment(t, 8, "2025-03").ID)

	before := f.state(t)
	arm()

	result, err := f.sut.BulkRestoreFromTrashbox(adminCtx(), []uint{first.ID, second.ID})
	require.NoError(t, err)
	require.Equal(t, 0, result.Succeeded)
	require.Equal(t, []BulkItemError{
		{ID: first.ID, Error: msgAuditRolledBack},
		{ID: second.ID, Error: msgAuditRolledBack},
	}, result.Errors)
	require.Equal(t, before, f.state(t))
}
