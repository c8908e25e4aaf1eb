package groupservice

import (
	"context"
)

type GroupService interface {
	// PaymentsChanged webhook to tell the group service that payments of a group changed,
	// so it can recalculate the rotation and slot overview.
	PaymentsChanged(ctx context.Context, groupID uint) error
}
