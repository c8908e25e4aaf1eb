package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kasmoni/payment-service/internal/apierrors"
)

// ParseIDParam reads a positive numeric id from the url path.
func ParseIDParam(r *http.Request, name string) (uint, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, apierrors.NewBadRequest(fmt.Sprintf("%s: %q is not a valid id", name, raw))
	}
	return uint(id), nil
}

// ParseIDQuery reads an optional positive numeric id from the query string, 0 if absent.
func ParseIDQuery(r *http.Request, name string) (uint, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}

	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, apierrors.NewBadRequest(fmt.Sprintf("%s: %q is not a valid id", name, raw))
	}
	return uint(id), nil
}

// DecodeBody parses the json body into v. An empty body is accepted when optional is set,
// v keeps its zero values then.
func DecodeBody(r *http.Request, v interface{}, optional bool) error {
	if r.Body == nil {
		if optional {
			return nil
		}
		return apierrors.NewBadRequest("request body is missing")
	}

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			if optional {
				return nil
			}
			return apierrors.NewBadRequest("request body is missing")
		}
		return apierrors.NewBadRequest(fmt.Sprintf("request body could not be parsed: %v", err))
	}

	return nil
}
