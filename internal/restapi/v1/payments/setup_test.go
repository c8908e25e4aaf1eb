package v1payments

import (
	"fmt"
	"testing"

	"github.com/kasmoni/payment-service/internal/restapi/resttest"
)

func setupServer(t *testing.T) *resttest.Env {
	return resttest.Setup(t, Create)
}

func paymentBody(memberID uint, slot string) string {
	return fmt.Sprintf(`{"group_id": 3, "member_id": %d, "amount": 500, "payment_date": "2025-03-05",`+
		` "payment_month": "2025-03", "slot": "%s", "payment_type": "cash"}`, memberID, slot)
}
