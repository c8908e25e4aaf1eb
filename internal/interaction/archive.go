package interaction

import (
	"context"
	"fmt"
	"strings"

	"github.com/kasmoni/payment-service/internal/apierrors"
	"github.com/kasmoni/payment-service/internal/entities"
	"github.com/kasmoni/payment-service/internal/paymentlog"
	"github.com/kasmoni/payment-service/internal/repository/database"
)

func (s *serviceInteractor) ListArchive(ctx context.Context) ([]entities.ArchivedPayment, error) {
	if err := s.mayRead(ctx); err != nil {
		return nil, err
	}

	return s.store.ListArchivedPayments(ctx)
}

func (s *serviceInteractor) RestoreFromArchive(ctx context.Context, archiveID uint) (*entities.Payment, error) {
	actor, err := s.mayMutate(ctx)
	if err != nil {
		return nil, err
	}

	p, err := s.restoreFromArchive(ctx, actor, archiveID)
	if err != nil {
		return nil, err
	}

	s.notifyGroups(ctx, p.GroupID)
	return p, nil
}

func (s *serviceInteractor) MoveArchiveToTrashbox(ctx context.Context, archiveID uint, reason string) (*entities.TrashedPayment, error) {
	actor, err := s.mayMutate(ctx)
	if err != nil {
		return nil, err
	}

	t, err := s.moveArchiveToTrashbox(ctx, actor, archiveID, reason)
	if err != nil {
		return nil, err
	}

	s.notifyGroups(ctx, t.GroupID)
	return t, nil
}

// BulkRestoreFromArchive restores every archive row on its own. Only if none of the ids
// exists the whole request counts as not found.
func (s *serviceInteractor) BulkRestoreFromArchive(ctx context.Context, archiveIDs []uint) (*BulkResult, error) {
	actor, err := s.mayMutate(ctx)
	if err != nil {
		return nil, err
	}

	if err := checkBulkIDs(archiveIDs, "archiveIds"); err != nil {
		return nil, err
	}

	result := newBulkResult()
	groups := make([]uint, 0, len(archiveIDs))
	for _, id := range uniqueIDs(archiveIDs) {
		p, err := s.restoreFromArchive(ctx, actor, id)
		if err != nil {
			result.fail(id, err)
			continue
		}
		result.Succeeded++
		result.IDs = append(result.IDs, p.ID)
		groups = append(groups, p.GroupID)
	}

	s.notifyGroups(ctx, groups...)
	if err := result.noneFound("none of the archive ids %v were found", archiveIDs); err != nil {
		return nil, err
	}
	return result, nil
}

// BulkMoveArchiveToTrashbox moves every archive row on its own, see BulkRestoreFromArchive.
func (s *serviceInteractor) BulkMoveArchiveToTrashbox(ctx context.Context, archiveIDs []uint, reason string) (*BulkResult, error) {
	actor, err := s.mayMutate(ctx)
	if err != nil {
		return nil, err
	}

	if err := checkBulkIDs(archiveIDs, "archiveIds"); err != nil {
		return nil, err
	}

	result := newBulkResult()
	groups := make([]uint, 0, len(archiveIDs))
	for _, id := range uniqueIDs(archiveIDs) {
		t, err := s.moveArchiveToTrashbox(ctx, actor, id, reason)
		if err != nil {
			result.fail(id, err)
			continue
		}
		result.Succeeded++
		result.IDs = append(result.IDs, t.ID)
		groups = append(groups, t.GroupID)
	}

	s.notifyGroups(ctx, groups...)
	if err := result.noneFound("none of the archive ids %v were found", archiveIDs); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *serviceInteractor) restoreFromArchive(ctx context.Context, actor paymentlog.Actor, archiveID uint) (*entities.Payment, error) {
	var restored entities.Payment
	err := s.unitOfWork(ctx, func(tx database.Repository) error {
		archived, err := tx.GetArchivedPaymentByID(ctx, archiveID)
		if err != nil {
			return notFound(err, "archived payment %d not found", archiveID)
		}

		restored = archived.ToPayment()
		warnIfSlotTaken(ctx, tx, restored.PaymentFields, restored.ID)
		if err := reinstate(ctx, tx, &restored); err != nil {
			return err
		}

		affected, err := tx.DeleteArchivedPayment(ctx, archiveID)
		if err := requireRemoved(affected, err, "archived payment %d not found", archiveID); err != nil {
			return err
		}

		_, err = s.auditLog.Log(ctx, tx, actor, paymentlog.Restored{
			Payment: restored,
			Note:    fmt.Sprintf("Restored from archive (original archive ID: %d)", archiveID),
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	return &restored, nil
}

func (s *serviceInteractor) moveArchiveToTrashbox(ctx context.Context, actor paymentlog.Actor, archiveID uint, reason string) (*entities.TrashedPayment, error) {
	var trashed entities.TrashedPayment
	err := s.unitOfWork(ctx, func(tx database.Repository) error {
		archived, err := tx.GetArchivedPaymentByID(ctx, archiveID)
		if err != nil {
			return notFound(err, "archived payment %d not found", archiveID)
		}

		deletionReason := strings.TrimSpace(reason)
		if deletionReason == "" {
			deletionReason = archived.ArchiveReason
		}

		trashed = archived.ToTrashedPayment()
		s.stampDeletion(&trashed, actor.UserID, actor.Username, deletionReason)
		if err := tx.CreateTrashedPayment(ctx, &trashed); err != nil {
			return err
		}

		affected, err := tx.DeleteArchivedPayment(ctx, archiveID)
		if err := requireRemoved(affected, err, "archived payment %d not found", archiveID); err != nil {
			return err
		}

		_, err = s.auditLog.Log(ctx, tx, actor, paymentlog.Trashed{
			Trash: trashed,
			Note:  fmt.Sprintf("Moved from archive to trashbox (archive ID: %d, trash ID: %d)", archiveID, trashed.ID),
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	return &trashed, nil
}

func newBulkResult() *BulkResult {
	return &BulkResult{
		IDs:    make([]uint, 0),
		Errors: make([]BulkItemError, 0),
	}
}

func (r *BulkResult) fail(id uint, err error) {
	r.Errors = append(r.Errors, BulkItemError{ID: id, Error: errorText(err), notFound: apierrors.IsNotFoundError(err)})
}

// noneFound reports not found when nothing succeeded and every failure was a missing id.
func (r *BulkResult) noneFound(format string, v ...interface{}) error {
	if r.Succeeded > 0 || len(r.Errors) == 0 {
		return nil
	}
	for _, e := range r.Errors {
		if !e.notFound {
			return nil
		}
	}
	return apierrors.NewNotFound(fmt.Sprintf(format, v...))
}
