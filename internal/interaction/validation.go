package interaction

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kasmoni/payment-service/internal/apierrors"
	"github.com/kasmoni/payment-service/internal/entities"
	"github.com/kasmoni/payment-service/internal/paymentlog"
)

// PaymentInput is a payment as submitted by the caller, not yet validated.
type PaymentInput struct {
	GroupID        uint
	MemberID       uint
	Amount         string
	PaymentDate    string
	PaymentMonth   string
	Slot           string
	PaymentType    entities.PaymentType
	SenderBank     string
	ReceiverBank   string
	Status         entities.PaymentStatus
	ProofOfPayment string
}

// PaymentPatch changes the fields that are set. Group, member and status are not editable here.
type PaymentPatch struct {
	Amount         *string
	PaymentDate    *string
	PaymentMonth   *string
	Slot           *string
	PaymentType    *entities.PaymentType
	SenderBank     *string
	ReceiverBank   *string
	ProofOfPayment *string
}

func (in PaymentInput) toFields() (entities.PaymentFields, error) {
	errs := url.Values{}
	f := entities.PaymentFields{
		GroupID:        in.GroupID,
		MemberID:       in.MemberID,
		PaymentMonth:   strings.TrimSpace(in.PaymentMonth),
		Slot:           strings.TrimSpace(in.Slot),
		PaymentType:    in.PaymentType,
		SenderBank:     strings.TrimSpace(in.SenderBank),
		ReceiverBank:   strings.TrimSpace(in.ReceiverBank),
		Status:         in.Status,
		ProofOfPayment: in.ProofOfPayment,
	}

	if f.GroupID == 0 {
		errs.Add("group_id", "is required")
	}
	if f.MemberID == 0 {
		errs.Add("member_id", "is required")
	}

	f.Amount = parseAmount(errs, in.Amount)
	f.PaymentDate = parseDate(errs, "payment_date", in.PaymentDate)
	checkMonth(errs, "payment_month", f.PaymentMonth)
	checkMonth(errs, "slot", f.Slot)

	if !f.PaymentType.IsValid() {
		errs.Add("payment_type", fmt.Sprintf("must be one of %s, %s", entities.PaymentTypeCash, entities.PaymentTypeBankTransfer))
	}

	if f.Status == "" {
		f.Status = entities.PaymentStatusNotPaid
	}
	if !f.Status.IsValid() {
		errs.Add("status", fmt.Sprintf("invalid status %s", f.Status))
	}

	checkBanks(errs, f)

	return f, validationError(errs)
}

// apply validates the patch against cur and returns the patched fields together with
// the old and new values of the fields that actually changed.
func (p PaymentPatch) apply(cur entities.PaymentFields) (entities.PaymentFields, map[string]interface{}, map[string]interface{}, error) {
	errs := url.Values{}
	next := cur
	oldValues := map[string]interface{}{}
	newValues := map[string]interface{}{}

	if p.Amount != nil {
		amount := parseAmount(errs, *p.Amount)
		if !amount.Equal(cur.Amount) {
			next.Amount = amount
			oldValues["amount"] = cur.Amount.StringFixed(2)
			newValues["amount"] = amount.StringFixed(2)
		}
	}

	if p.PaymentDate != nil {
		date := parseDate(errs, "payment_date", *p.PaymentDate)
		if !date.IsZero() && !date.Equal(cur.PaymentDate) {
			next.PaymentDate = date
			oldValues["payment_date"] = cur.PaymentDate.Format(paymentlog.DateLayout)
			newValues["payment_date"] = date.Format(paymentlog.DateLayout)
		}
	}

	patchString := func(key string, value *string, target *string, check func(errs url.Values, key, value string)) {
		if value == nil {
			return
		}
		v := strings.TrimSpace(*value)
		if check != nil {
			check(errs, key, v)
		}
		if v != *target {
			oldValues[key] = *target
			newValues[key] = v
			*target = v
		}
	}

	patchString("payment_month", p.PaymentMonth, &next.PaymentMonth, checkMonth)
	patchString("slot", p.Slot, &next.Slot, checkMonth)
	patchString("sender_bank", p.SenderBank, &next.SenderBank, nil)
	patchString("receiver_bank", p.ReceiverBank, &next.ReceiverBank, nil)

	if p.ProofOfPayment != nil && *p.ProofOfPayment != cur.ProofOfPayment {
		next.ProofOfPayment = *p.ProofOfPayment
		oldValues["proof_of_payment"] = cur.ProofOfPayment
		newValues["proof_of_payment"] = next.ProofOfPayment
	}

	if p.PaymentType != nil {
		if !p.PaymentType.IsValid() {
			errs.Add("payment_type", fmt.Sprintf("must be one of %s, %s", entities.PaymentTypeCash, entities.PaymentTypeBankTransfer))
		} else if *p.PaymentType != cur.PaymentType {
			next.PaymentType = *p.PaymentType
			oldValues["payment_type"] = string(cur.PaymentType)
			newValues["payment_type"] = string(next.PaymentType)
		}
	}

	checkBanks(errs, next)

	if err := validationError(errs); err != nil {
		return cur, nil, nil, err
	}

	return next, oldValues, newValues, nil
}

func parseAmount(errs url.Values, value string) decimal.Decimal {
	value = strings.TrimSpace(value)
	if value == "" {
		errs.Add("amount", "is required")
		return decimal.Zero
	}

	amount, err := decimal.NewFromString(value)
	if err != nil {
		errs.Add("amount", fmt.Sprintf("%s is not a number", value))
		return decimal.Zero
	}

	amount = amount.Round(2)
	if !amount.IsPositive() {
		errs.Add("amount", "must be greater than 0")
	}
	return amount
}

func parseDate(errs url.Values, key, value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		errs.Add(key, "is required")
		return time.Time{}
	}

	date, err := time.Parse(paymentlog.DateLayout, value)
	if err != nil {
		errs.Add(key, fmt.Sprintf("%s is not a date of the form YYYY-MM-DD", value))
		return time.Time{}
	}
	return date
}

func checkMonth(errs url.Values, key, value string) {
	if value == "" {
		errs.Add(key, "is required")
		return
	}

	if _, err := time.Parse(paymentlog.MonthLayout, value); err != nil {
		errs.Add(key, fmt.Sprintf("%s is not a month of the form YYYY-MM", value))
	}
}

func checkBanks(errs url.Values, f entities.PaymentFields) {
	if f.PaymentType != entities.PaymentTypeBankTransfer {
		return
	}
	if f.SenderBank == "" {
		errs.Add("sender_bank", "is required for bank transfers")
	}
	if f.ReceiverBank == "" {
		errs.Add("receiver_bank", "is required for bank transfers")
	}
}

// validationError turns the collected violations into a single bad request, sorted by field.
func validationError(errs url.Values) error {
	if len(errs) == 0 {
		return nil
	}

	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		for _, v := range errs[k] {
			parts = append(parts, fmt.Sprintf("%s: %s", k, v))
		}
	}

	return apierrors.NewBadRequest(strings.Join(parts, "; "))
}
