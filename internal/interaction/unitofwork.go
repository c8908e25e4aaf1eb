package interaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/kasmoni/payment-service/internal/apierrors"
	"github.com/kasmoni/payment-service/internal/entities"
	"github.com/kasmoni/payment-service/internal/logging"
	"github.com/kasmoni/payment-service/internal/repository/database"
)

const msgRestoreConflict = "A payment with this ID already exists. Cannot restore."

// unitOfWork runs fn in a transaction. Errors that are not api errors are reported as failed
// transactions, the caller gets to see the underlying message.
func (s *serviceInteractor) unitOfWork(ctx context.Context, fn func(tx database.Repository) error) error {
	err := s.store.Transaction(ctx, fn)
	if err == nil || apierrors.AsAPIStatus(err) != nil {
		return err
	}

	logging.LoggerFromContext(ctx).Error("transaction rolled back. [error]: %v", err)
	return fmt.Errorf("transaction failed, rolled back: %w", err)
}

// notFound maps the repository sentinel, other errors pass unchanged.
func notFound(err error, format string, v ...interface{}) error {
	if errors.Is(err, database.ErrRecordNotFound) {
		return apierrors.NewNotFound(fmt.Sprintf(format, v...))
	}
	return err
}

// requireRemoved treats a delete that did not hit a row as lost race, the other request won.
func requireRemoved(affected int64, err error, format string, v ...interface{}) error {
	if err != nil {
		return err
	}
	if affected == 0 {
		return apierrors.NewNotFound(fmt.Sprintf(format, v...))
	}
	return nil
}

// reinstate inserts p under its original id, which must be free.
func reinstate(ctx context.Context, tx database.Repository, p *entities.Payment) error {
	if _, err := tx.GetPaymentByID(ctx, p.ID); err == nil {
		return apierrors.NewConflict(msgRestoreConflict)
	} else if !errors.Is(err, database.ErrRecordNotFound) {
		return err
	}

	if err := tx.CreatePayment(ctx, p); err != nil {
		if errors.Is(err, database.ErrDuplicateKey) {
			return apierrors.NewConflict(msgRestoreConflict)
		}
		return err
	}
	return nil
}

// checkSlotFree fails when another active payment already holds the slot of the member in the group.
func checkSlotFree(ctx context.Context, tx database.Repository, f entities.PaymentFields, self uint) error {
	taken, err := tx.FindPayments(ctx, entities.PaymentQuery{GroupID: f.GroupID, MemberID: f.MemberID, Slot: f.Slot})
	if err != nil {
		return err
	}

	for _, p := range taken {
		if p.ID != self {
			return apierrors.NewConflict(fmt.Sprintf("member %d already has payment %d for slot %s in group %d", f.MemberID, p.ID, f.Slot, f.GroupID))
		}
	}
	return nil
}

// warnIfSlotTaken is used by restores, which are allowed to double book a slot.
func warnIfSlotTaken(ctx context.Context, tx database.Repository, f entities.PaymentFields, self uint) {
	if err := checkSlotFree(ctx, tx, f, self); err != nil && apierrors.IsConflictError(err) {
		logging.LoggerFromContext(ctx).Warn("restoring payment %d although %v", self, err)
	}
}

// notifyGroups tells the group service about changed payments. Failures are logged only,
// the change is already committed.
func (s *serviceInteractor) notifyGroups(ctx context.Context, groupIDs ...uint) {
	logger := logging.LoggerFromContext(ctx)
	seen := make(map[uint]struct{}, len(groupIDs))
	for _, id := range groupIDs {
		if _, ok := seen[id]; ok || id == 0 {
			continue
		}
		seen[id] = struct{}{}

		if err := s.groupClient.PaymentsChanged(ctx, id); err != nil {
			logger.Error("error when calling the group service webhook for group %d. [error]: %v", id, err)
		}
	}
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	result := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}

func checkBulkIDs(ids []uint, name string) error {
	if len(ids) == 0 {
		return apierrors.NewBadRequest(fmt.Sprintf("%s must be a non-empty array", name))
	}
	for _, id := range ids {
		if id == 0 {
			return apierrors.NewBadRequest(fmt.Sprintf("%s must only contain positive ids", name))
		}
	}
	return nil
}

func errorText(err error) string {
	if status := apierrors.AsAPIStatus(err); status != nil && status.Status().Details != "" {
		return status.Status().Details
	}
	return err.Error()
}
