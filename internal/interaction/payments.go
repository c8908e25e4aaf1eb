package interaction

import (
	"context"
	"fmt"

	"github.com/kasmoni/payment-service/internal/apierrors"
	"github.com/kasmoni/payment-service/internal/entities"
	"github.com/kasmoni/payment-service/internal/logging"
	"github.com/kasmoni/payment-service/internal/paymentlog"
	"github.com/kasmoni/payment-service/internal/repository/database"
)

func (s *serviceInteractor) CreatePayment(ctx context.Context, in PaymentInput) (*entities.Payment, error) {
	actor, err := s.mayMutate(ctx)
	if err != nil {
		return nil, err
	}

	fields, err := in.toFields()
	if err != nil {
		return nil, err
	}

	payment := &entities.Payment{PaymentFields: fields}
	err = s.unitOfWork(ctx, func(tx database.Repository) error {
		if err := checkSlotFree(ctx, tx, fields, 0); err != nil {
			return err
		}

		if err := tx.CreatePayment(ctx, payment); err != nil {
			return err
		}

		_, err := s.auditLog.Log(ctx, tx, actor, paymentlog.Created{Payment: *payment})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.notifyGroups(ctx, payment.GroupID)
	return payment, nil
}

// BulkCreatePayments inserts the valid payments in one unit of work and reports the others by index.
func (s *serviceInteractor) BulkCreatePayments(ctx context.Context, in []PaymentInput) (*BulkCreateResult, error) {
	actor, err := s.mayMutate(ctx)
	if err != nil {
		return nil, err
	}

	if len(in) == 0 {
		return nil, apierrors.NewBadRequest("payments must be a non-empty array")
	}

	result := &BulkCreateResult{
		PaymentIDs: make([]uint, 0, len(in)),
		Errors:     make([]BulkCreateItemError, 0),
	}

	type candidate struct {
		index  int
		fields entities.PaymentFields
	}
	candidates := make([]candidate, 0, len(in))
	for i, item := range in {
		fields, err := item.toFields()
		if err != nil {
			result.Errors = append(result.Errors, BulkCreateItemError{Index: i, Error: errorText(err)})
			continue
		}
		candidates = append(candidates, candidate{index: i, fields: fields})
	}

	var (
		created    []entities.Payment
		slotErrors []BulkCreateItemError
	)
	err = s.unitOfWork(ctx, func(tx database.Repository) error {
		created = make([]entities.Payment, 0, len(candidates))
		slotErrors = make([]BulkCreateItemError, 0)
		inBatch := make(map[string]int)

		for _, c := range candidates {
			key := fmt.Sprintf("%d/%d/%s", c.fields.GroupID, c.fields.MemberID, c.fields.Slot)
			if first, ok := inBatch[key]; ok {
				slotErrors = append(slotErrors, BulkCreateItemError{
					Index: c.index,
					Error: fmt.Sprintf("slot %s of member %d is already used by payments[%d] of this request", c.fields.Slot, c.fields.MemberID, first),
				})
				continue
			}
			if err := checkSlotFree(ctx, tx, c.fields, 0); err != nil {
				if !apierrors.IsConflictError(err) {
					return err
				}
				slotErrors = append(slotErrors, BulkCreateItemError{Index: c.index, Error: errorText(err)})
				continue
			}
			inBatch[key] = c.index

			p := entities.Payment{PaymentFields: c.fields}
			if err := tx.CreatePayment(ctx, &p); err != nil {
				return err
			}
			created = append(created, p)
		}

		if len(created) == 0 {
			return nil
		}

		_, err := s.auditLog.Log(ctx, tx, actor, paymentlog.BulkCreated{Payments: created})
		return err
	})
	if err != nil {
		return nil, err
	}

	result.Errors = mergeCreateErrors(result.Errors, slotErrors)
	if len(created) == 0 {
		return nil, apierrors.NewBadRequest(describeCreateErrors(result.Errors))
	}

	groups := make([]uint, 0, len(created))
	for _, p := range created {
		result.PaymentIDs = append(result.PaymentIDs, p.ID)
		groups = append(groups, p.GroupID)
	}
	result.Created = len(created)

	s.notifyGroups(ctx, groups...)
	return result, nil
}

func mergeCreateErrors(validation, slots []BulkCreateItemError) []BulkCreateItemError {
	merged := make([]BulkCreateItemError, 0, len(validation)+len(slots))
	i, j := 0, 0
	for i < len(validation) || j < len(slots) {
		if j >= len(slots) || (i < len(validation) && validation[i].Index < slots[j].Index) {
			merged = append(merged, validation[i])
			i++
		} else {
			merged = append(merged, slots[j])
			j++
		}
	}
	return merged
}

func describeCreateErrors(errs []BulkCreateItemError) string {
	details := "no valid payments in request"
	for _, e := range errs {
		details += fmt.Sprintf("; payments[%d]: %s", e.Index, e.Error)
	}
	return details
}

func (s *serviceInteractor) GetPayment(ctx context.Context, id uint) (*entities.Payment, error) {
	if err := s.mayRead(ctx); err != nil {
		return nil, err
	}

	p, err := s.store.GetPaymentByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "payment %d not found", id)
	}
	return p, nil
}

func (s *serviceInteractor) ListGroupPayments(ctx context.Context, groupID uint) ([]entities.Payment, error) {
	if err := s.mayRead(ctx); err != nil {
		return nil, err
	}

	return s.store.FindPayments(ctx, entities.PaymentQuery{GroupID: groupID})
}

func (s *serviceInteractor) UpdatePayment(ctx context.Context, id uint, patch PaymentPatch) (*entities.Payment, error) {
	actor, err := s.mayMutate(ctx)
	if err != nil {
		return nil, err
	}

	var (
		payment *entities.Payment
		changed bool
	)
	err = s.unitOfWork(ctx, func(tx database.Repository) error {
		cur, err := tx.GetPaymentByID(ctx, id)
		if err != nil {
			return notFound(err, "payment %d not found", id)
		}

		next, oldValues, newValues, err := patch.apply(cur.PaymentFields)
		if err != nil {
			return err
		}

		payment = cur
		if len(newValues) == 0 {
			return nil
		}

		if _, moved := newValues["slot"]; moved {
			if err := checkSlotFree(ctx, tx, next, id); err != nil {
				return err
			}
		}

		payment.PaymentFields = next
		if err := tx.UpdatePayment(ctx, payment); err != nil {
			return notFound(err, "payment %d not found", id)
		}
		changed = true

		_, err = s.auditLog.Log(ctx, tx, actor, paymentlog.Updated{Payment: *payment, Old: oldValues, New: newValues})
		return err
	})
	if err != nil {
		return nil, err
	}

	if changed {
		s.notifyGroups(ctx, payment.GroupID)
	} else {
		logging.LoggerFromContext(ctx).Debug("update of payment %d changed nothing", id)
	}
	return payment, nil
}

func (s *serviceInteractor) ChangePaymentStatus(ctx context.Context, id uint, status entities.PaymentStatus) (*entities.Payment, error) {
	actor, err := s.mayMutate(ctx)
	if err != nil {
		return nil, err
	}

	if !status.IsValid() {
		return nil, apierrors.NewBadRequest(fmt.Sprintf("status: invalid status %s", status))
	}

	var payment *entities.Payment
	err = s.unitOfWork(ctx, func(tx database.Repository) error {
		cur, err := tx.GetPaymentByID(ctx, id)
		if err != nil {
			return notFound(err, "payment %d not found", id)
		}

		old := cur.Status
		if old == status {
			return apierrors.NewBadRequest(fmt.Sprintf("status: payment %d already has status %s", id, status))
		}

		cur.Status = status
		if err := tx.UpdatePayment(ctx, cur); err != nil {
			return notFound(err, "payment %d not found", id)
		}
		payment = cur

		_, err = s.auditLog.Log(ctx, tx, actor, paymentlog.StatusChanged{Payment: *cur, Old: old, New: status})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.notifyGroups(ctx, payment.GroupID)
	return payment, nil
}

// ArchivePayment moves an active payment into the archive.
func (s *serviceInteractor) ArchivePayment(ctx context.Context, id uint, reason string) (*entities.ArchivedPayment, error) {
	actor, err := s.mayMutate(ctx)
	if err != nil {
		return nil, err
	}

	var archived entities.ArchivedPayment
	err = s.unitOfWork(ctx, func(tx database.Repository) error {
		cur, err := tx.GetPaymentByID(ctx, id)
		if err != nil {
			return notFound(err, "payment %d not found", id)
		}

		archived = cur.ToArchivedPayment()
		archived.ArchivedAt = s.now()
		archived.ArchivedByUserID = actor.UserID
		archived.ArchivedByUsername = actor.Username
		archived.ArchiveReason = reason
		if err := tx.CreateArchivedPayment(ctx, &archived); err != nil {
			return err
		}

		affected, err := tx.DeletePayment(ctx, id)
		if err := requireRemoved(affected, err, "payment %d not found", id); err != nil {
			return err
		}

		_, err = s.auditLog.Log(ctx, tx, actor, paymentlog.Archived{Archive: archived})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.notifyGroups(ctx, archived.GroupID)
	return &archived, nil
}

// TrashPayment moves an active payment straight into the trashbox.
func (s *serviceInteractor) TrashPayment(ctx context.Context, id uint, reason string) (*entities.TrashedPayment, error) {
	actor, err := s.mayMutate(ctx)
	if err != nil {
		return nil, err
	}

	var trashed entities.TrashedPayment
	err = s.unitOfWork(ctx, func(tx database.Repository) error {
		cur, err := tx.GetPaymentByID(ctx, id)
		if err != nil {
			return notFound(err, "payment %d not found", id)
		}

		trashed = cur.ToTrashedPayment()
		s.stampDeletion(&trashed, actor.UserID, actor.Username, reason)
		if err := tx.CreateTrashedPayment(ctx, &trashed); err != nil {
			return err
		}

		affected, err := tx.DeletePayment(ctx, id)
		if err := requireRemoved(affected, err, "payment %d not found", id); err != nil {
			return err
		}

		_, err = s.auditLog.Log(ctx, tx, actor, paymentlog.Trashed{
			Trash: trashed,
			Note:  fmt.Sprintf("Moved to trashbox (trash ID: %d)", trashed.ID),
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.notifyGroups(ctx, trashed.GroupID)
	return &trashed, nil
}

func (s *serviceInteractor) stampDeletion(t *entities.TrashedPayment, userID, username, reason string) {
	t.DeletedAt = s.now()
	t.DeletedByUserID = userID
	t.DeletedByUsername = username
	t.DeletionReason = reason
}
