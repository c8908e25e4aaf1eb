package interaction

import (
	"context"
	"errors"
	"time"

	"github.com/kasmoni/payment-service/internal/entities"
	"github.com/kasmoni/payment-service/internal/logging"
	"github.com/kasmoni/payment-service/internal/paymentlog"
	"github.com/kasmoni/payment-service/internal/repository/database"
	"github.com/kasmoni/payment-service/internal/repository/downstreams/groupservice"
)

var _ Interactor = (*serviceInteractor)(nil)

// Interactor moves payments between the active, archive and trashbox stores.
//
// Every mutation is one unit of work together with its audit entry.
type Interactor interface {
	CreatePayment(ctx context.Context, in PaymentInput) (*entities.Payment, error)
	BulkCreatePayments(ctx context.Context, in []PaymentInput) (*BulkCreateResult, error)
	GetPayment(ctx context.Context, id uint) (*entities.Payment, error)
	ListGroupPayments(ctx context.Context, groupID uint) ([]entities.Payment, error)
	UpdatePayment(ctx context.Context, id uint, patch PaymentPatch) (*entities.Payment, error)
	ChangePaymentStatus(ctx context.Context, id uint, status entities.PaymentStatus) (*entities.Payment, error)
	ArchivePayment(ctx context.Context, id uint, reason string) (*entities.ArchivedPayment, error)
	TrashPayment(ctx context.Context, id uint, reason string) (*entities.TrashedPayment, error)

	ListArchive(ctx context.Context) ([]entities.ArchivedPayment, error)
	RestoreFromArchive(ctx context.Context, archiveID uint) (*entities.Payment, error)
	MoveArchiveToTrashbox(ctx context.Context, archiveID uint, reason string) (*entities.TrashedPayment, error)
	BulkRestoreFromArchive(ctx context.Context, archiveIDs []uint) (*BulkResult, error)
	BulkMoveArchiveToTrashbox(ctx context.Context, archiveIDs []uint, reason string) (*BulkResult, error)

	ListTrashbox(ctx context.Context) ([]entities.TrashedPayment, error)
	RestoreFromTrashbox(ctx context.Context, trashID uint) (*entities.Payment, error)
	PermanentlyDelete(ctx context.Context, trashID uint) error
	BulkRestoreFromTrashbox(ctx context.Context, trashIDs []uint) (*BulkResult, error)
	BulkPermanentlyDelete(ctx context.Context, trashIDs []uint) (*BulkResult, error)

	ListPaymentLogs(ctx context.Context, query entities.PaymentLogQuery) ([]entities.PaymentLog, error)
	ResolveReferences(ctx context.Context, groupIDs []uint, memberIDs []uint) (*References, error)
}

// BulkItemError reports why one id of a bulk request was not processed.
type BulkItemError struct {
	ID    uint
	Error string

	notFound bool
}

type BulkResult struct {
	// Succeeded counts the ids that were processed.
	Succeeded int
	// IDs holds the resulting ids where the operation creates rows, e.g. restored payment ids.
	IDs    []uint
	Errors []BulkItemError
}

// BulkCreateItemError refers to the position of the rejected payment in the request.
type BulkCreateItemError struct {
	Index int
	Error string
}

type BulkCreateResult struct {
	Created    int
	PaymentIDs []uint
	Errors     []BulkCreateItemError
}

// References holds the groups and members a list of payments refers to, by id.
type References struct {
	Groups  map[uint]entities.Group
	Members map[uint]entities.Member
}

type serviceInteractor struct {
	logger      logging.Logger
	store       database.Repository
	groupClient groupservice.GroupService
	auditLog    *paymentlog.Logger
	adminRole   string
	now         func() time.Time
}

func NewServiceInteractor(r database.Repository,
	groupClient groupservice.GroupService,
	auditLog *paymentlog.Logger,
	adminRole string,
	logger logging.Logger,
) (Interactor, error) {
	if r == nil {
		return nil, errors.New("repository must not be nil")
	}

	if groupClient == nil {
		return nil, errors.New("no group service client provided")
	}

	if auditLog == nil {
		return nil, errors.New("no audit logger provided")
	}

	if logger == nil {
		logger = logging.NewNoopLogger()
	}

	return &serviceInteractor{
		logger:      logger,
		store:       r,
		groupClient: groupClient,
		auditLog:    auditLog,
		adminRole:   adminRole,
		now:         time.Now,
	}, nil
}
