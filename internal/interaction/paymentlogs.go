package interaction

import (
	"context"
	"fmt"

	"github.com/kasmoni/payment-service/internal/apierrors"
	"github.com/kasmoni/payment-service/internal/entities"
)

// ListPaymentLogs returns the newest entries first.
func (s *serviceInteractor) ListPaymentLogs(ctx context.Context, query entities.PaymentLogQuery) ([]entities.PaymentLog, error) {
	if err := s.mayRead(ctx); err != nil {
		return nil, err
	}

	if query.Action != "" && !query.Action.IsValid() {
		return nil, apierrors.NewBadRequest(fmt.Sprintf("action: unknown action %s", query.Action))
	}

	return s.store.FindPaymentLogs(ctx, query)
}

// ResolveReferences looks up groups and members for display. Unknown ids are left out.
func (s *serviceInteractor) ResolveReferences(ctx context.Context, groupIDs []uint, memberIDs []uint) (*References, error) {
	if err := s.mayRead(ctx); err != nil {
		return nil, err
	}

	groups, err := s.store.GetGroupsByIDs(ctx, uniqueIDs(groupIDs))
	if err != nil {
		return nil, err
	}

	members, err := s.store.GetMembersByIDs(ctx, uniqueIDs(memberIDs))
	if err != nil {
		return nil, err
	}

	refs := &References{
		Groups:  make(map[uint]entities.Group, len(groups)),
		Members: make(map[uint]entities.Member, len(members)),
	}
	for _, g := range groups {
		refs.Groups[g.ID] = g
	}
	for _, m := range members {
		refs.Members[m.ID] = m
	}
	return refs, nil
}
