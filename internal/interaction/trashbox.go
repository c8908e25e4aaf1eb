package interaction

import (
	"context"
	"fmt"

	"github.com/kasmoni/payment-service/internal/apierrors"
	"github.com/kasmoni/payment-service/internal/entities"
	"github.com/kasmoni/payment-service/internal/paymentlog"
	"github.com/kasmoni/payment-service/internal/repository/database"
)

func (s *serviceInteractor) ListTrashbox(ctx context.Context) ([]entities.TrashedPayment, error) {
	if err := s.mayRead(ctx); err != nil {
		return nil, err
	}

	return s.store.ListTrashedPayments(ctx)
}

// RestoreFromTrashbox puts the payment back under its original id. The trashbox row stays
// when that id has been taken in the meantime.
func (s *serviceInteractor) RestoreFromTrashbox(ctx context.Context, trashID uint) (*entities.Payment, error) {
	actor, err := s.mayMutate(ctx)
	if err != nil {
		return nil, err
	}

	p, err := s.restoreFromTrashbox(ctx, actor, trashID)
	if err != nil {
		return nil, err
	}

	s.notifyGroups(ctx, p.GroupID)
	return p, nil
}

// PermanentlyDelete removes the trashbox row. Only the audit trail remembers the payment afterwards.
func (s *serviceInteractor) PermanentlyDelete(ctx context.Context, trashID uint) error {
	actor, err := s.mayMutate(ctx)
	if err != nil {
		return err
	}

	t, err := s.permanentlyDelete(ctx, actor, trashID)
	if err != nil {
		return err
	}

	s.notifyGroups(ctx, t.GroupID)
	return nil
}

func (s *serviceInteractor) BulkRestoreFromTrashbox(ctx context.Context, trashIDs []uint) (*BulkResult, error) {
	actor, err := s.mayMutate(ctx)
	if err != nil {
		return nil, err
	}

	if err := checkBulkIDs(trashIDs, "paymentIds"); err != nil {
		return nil, err
	}

	result := newBulkResult()
	groups := make([]uint, 0, len(trashIDs))
	for _, id := range uniqueIDs(trashIDs) {
		p, err := s.restoreFromTrashbox(ctx, actor, id)
		if err != nil {
			result.fail(id, err)
			continue
		}
		result.Succeeded++
		result.IDs = append(result.IDs, p.ID)
		groups = append(groups, p.GroupID)
	}

	s.notifyGroups(ctx, groups...)
	return result, nil
}

// BulkPermanentlyDelete skips ids that are already gone, they do not count as failure.
func (s *serviceInteractor) BulkPermanentlyDelete(ctx context.Context, trashIDs []uint) (*BulkResult, error) {
	actor, err := s.mayMutate(ctx)
	if err != nil {
		return nil, err
	}

	if err := checkBulkIDs(trashIDs, "paymentIds"); err != nil {
		return nil, err
	}

	result := newBulkResult()
	groups := make([]uint, 0, len(trashIDs))
	for _, id := range uniqueIDs(trashIDs) {
		t, err := s.permanentlyDelete(ctx, actor, id)
		if err != nil {
			if !apierrors.IsNotFoundError(err) {
				result.fail(id, err)
			}
			continue
		}
		result.Succeeded++
		result.IDs = append(result.IDs, id)
		groups = append(groups, t.GroupID)
	}

	s.notifyGroups(ctx, groups...)
	return result, nil
}

func (s *serviceInteractor) restoreFromTrashbox(ctx context.Context, actor paymentlog.Actor, trashID uint) (*entities.Payment, error) {
	var restored entities.Payment
	err := s.unitOfWork(ctx, func(tx database.Repository) error {
		trashed, err := tx.GetTrashedPaymentByID(ctx, trashID)
		if err != nil {
			return notFound(err, "payment %d not found in trashbox", trashID)
		}

		restored = trashed.ToPayment()
		warnIfSlotTaken(ctx, tx, restored.PaymentFields, restored.ID)
		if err := reinstate(ctx, tx, &restored); err != nil {
			return err
		}

		affected, err := tx.DeleteTrashedPayment(ctx, trashID)
		if err := requireRemoved(affected, err, "payment %d not found in trashbox", trashID); err != nil {
			return err
		}

		_, err = s.auditLog.Log(ctx, tx, actor, paymentlog.Restored{
			Payment: restored,
			Note:    fmt.Sprintf("Restored from trashbox (trash ID: %d)", trashID),
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	return &restored, nil
}

func (s *serviceInteractor) permanentlyDelete(ctx context.Context, actor paymentlog.Actor, trashID uint) (*entities.TrashedPayment, error) {
	var deleted *entities.TrashedPayment
	err := s.unitOfWork(ctx, func(tx database.Repository) error {
		trashed, err := tx.GetTrashedPaymentByID(ctx, trashID)
		if err != nil {
			return notFound(err, "payment %d not found in trashbox", trashID)
		}

		affected, err := tx.DeleteTrashedPayment(ctx, trashID)
		if err := requireRemoved(affected, err, "payment %d not found in trashbox", trashID); err != nil {
			return err
		}
		deleted = trashed

		_, err = s.auditLog.Log(ctx, tx, actor, paymentlog.PermanentlyDeleted{Trash: *trashed})
		return err
	})
	if err != nil {
		return nil, err
	}

	return deleted, nil
}
