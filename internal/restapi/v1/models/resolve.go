package v1models

import (
	"context"

	"github.com/kasmoni/payment-service/internal/entities"
	"github.com/kasmoni/payment-service/internal/interaction"
	"github.com/kasmoni/payment-service/internal/logging"
)

// Resolve looks up the groups and members of fields. Lists are still served without names
// if the lookup fails, so errors are only logged.
func Resolve(ctx context.Context, i interaction.Interactor, fields ...entities.PaymentFields) *interaction.References {
	if len(fields) == 0 {
		return nil
	}

	groupIDs, memberIDs := ReferencedIDs(fields)
	refs, err := i.ResolveReferences(ctx, groupIDs, memberIDs)
	if err != nil {
		logging.LoggerFromContext(ctx).Warn("could not resolve groups and members of %d payments. [error]: %v", len(fields), err)
		return nil
	}
	return refs
}
