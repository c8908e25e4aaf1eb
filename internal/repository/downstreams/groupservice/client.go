package groupservice

import (
	"context"
	"fmt"
	"net/http"

	aulogging "github.com/StephanHCB/go-autumn-logging"
	aurestclientapi "github.com/StephanHCB/go-autumn-restclient/api"

	"github.com/kasmoni/payment-service/internal/repository/downstreams"
)

type Impl struct {
	client  aurestclientapi.Client
	baseUrl string
}

// New returns the webhook client, or a mock that only records calls if no base url is configured.
func New(groupServiceBaseUrl string, fixedApiToken string) (GroupService, error) {
	if groupServiceBaseUrl == "" {
		aulogging.Logger.NoCtx().Warn().Printf("service.group_service not configured. Payment changes will not be announced to the group service (not useful for production!)")
		return newMock(), nil
	}

	client, err := downstreams.ClientWith(
		downstreams.ApiTokenRequestManipulator(fixedApiToken),
		"group-service-webhook-breaker",
	)
	if err != nil {
		return nil, err
	}

	return &Impl{
		client:  client,
		baseUrl: groupServiceBaseUrl,
	}, nil
}

func (i *Impl) PaymentsChanged(ctx context.Context, groupID uint) error {
	url := fmt.Sprintf("%s/api/rest/v1/groups/%d/payments-changed", i.baseUrl, groupID)
	response := aurestclientapi.ParsedResponse{}
	err := i.client.Perform(ctx, http.MethodPost, url, nil, &response)
	return downstreams.ErrByStatus(err, response.Status)
}
