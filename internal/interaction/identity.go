package interaction

import (
	"context"

	"github.com/kasmoni/payment-service/internal/apierrors"
	"github.com/kasmoni/payment-service/internal/paymentlog"
	"github.com/kasmoni/payment-service/internal/restapi/common"
)

// apiActor is recorded as the performer of changes made with the fixed api token.
const apiActor = "api"

type IdentityManager struct {
	subject        string
	name           string
	roles          []string
	isAdmin        bool
	isAPITokenCall bool
}

func (i *IdentityManager) IsAdmin() bool {
	return i.isAdmin
}

func (i *IdentityManager) IsAPITokenCall() bool {
	return i.isAPITokenCall
}

// IsAuthenticated is true for api token calls and for tokens carrying a subject.
func (i *IdentityManager) IsAuthenticated() bool {
	return i.isAPITokenCall || i.subject != ""
}

func (i *IdentityManager) Subject() string {
	return i.subject
}

func (i *IdentityManager) Name() string {
	return i.name
}

func NewIdentityManager(ctx context.Context, adminRole string) *IdentityManager {
	manager := &IdentityManager{}
	if _, ok := ctx.Value(common.CtxKeyAPIKey{}).(string); ok {
		manager.isAPITokenCall = true
		return manager
	}

	if _, ok := ctx.Value(common.CtxKeyToken{}).(string); ok {
		if claims, ok := ctx.Value(common.CtxKeyClaims{}).(*common.AllClaims); ok {
			manager.subject = claims.Subject
			manager.name = claims.Global.Name
			manager.roles = claims.Global.Roles

			for _, role := range claims.Global.Roles {
				if adminRole != "" && role == adminRole {
					manager.isAdmin = true
					break
				}
			}
		}
	}

	return manager
}

// Actor describes the caller for the audit log.
func (i *IdentityManager) Actor(ctx context.Context) paymentlog.Actor {
	actor := paymentlog.Actor{
		UserID:    i.subject,
		Username:  i.name,
		IPAddress: common.GetClientIP(ctx),
		UserAgent: common.GetUserAgent(ctx),
	}

	if i.isAPITokenCall {
		actor.UserID = apiActor
		actor.Username = apiActor
	}
	if actor.Username == "" {
		actor.Username = actor.UserID
	}

	return actor
}

// mayMutate checks the caller against the rule that only admins and api token calls change payments.
func (s *serviceInteractor) mayMutate(ctx context.Context) (paymentlog.Actor, error) {
	mgr := NewIdentityManager(ctx, s.adminRole)
	if !mgr.IsAuthenticated() {
		return paymentlog.Actor{}, apierrors.NewUnauthorized("unable to determine the caller")
	}

	if !mgr.IsAdmin() && !mgr.IsAPITokenCall() {
		return paymentlog.Actor{}, apierrors.NewForbidden("only admins may change payments")
	}

	return mgr.Actor(ctx), nil
}

func (s *serviceInteractor) mayRead(ctx context.Context) error {
	if !NewIdentityManager(ctx, s.adminRole).IsAuthenticated() {
		return apierrors.NewUnauthorized("unable to determine the caller")
	}
	return nil
}
