// Package atlan implements the Anti-Corruption Layer between the Atlan
// catalog API and the catalog domain types. Search DSL construction lives in
// the search subpackage and entity payload translation in the entity
// subpackage. Shared error mapping and the client itself live here.
package atlan

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jsamuelsen11/smus-domain-sync/internal/domain"
)

// maxErrorBodySize limits how much of an error response body we read.
const maxErrorBodySize = 1 << 20 // 1 MB

// errorResponse is the catalog's error body.
type errorResponse struct {
	ErrorCode    string `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
	// Some endpoints report field-level failures as a list of causes.
	Causes []errorCause `json:"causes"`
}

type errorCause struct {
	ErrorMessage string `json:"errorMessage"`
	Attribute    string `json:"attributeName"`
}

// TranslateHTTPError maps an HTTP error response to a domain error. The
// catalog's errorMessage (prefixed with errorCode when present) is used as
// context. 400 responses that name failing attributes become a
// *domain.ValidationError.
func TranslateHTTPError(resp *http.Response) error {
	er := parseErrorResponse(resp)

	detail := er.ErrorMessage
	if detail == "" {
		detail = http.StatusText(resp.StatusCode)
	}
	if er.ErrorCode != "" {
		detail = er.ErrorCode + ": " + detail
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s: %w", detail, domain.ErrNotFound)

	case resp.StatusCode == http.StatusBadRequest:
		if fields := causeFields(er.Causes); len(fields) > 0 {
			return &domain.ValidationError{Fields: fields}
		}
		return fmt.Errorf("%s: %w", detail, domain.ErrValidation)

	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%s: %w", detail, domain.ErrForbidden)

	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("%s: %w", detail, domain.ErrUnavailable)

	default:
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, detail)
	}
}

// parseErrorResponse reads a JSON error body. Returns an empty
// errorResponse if the body is absent or not JSON.
func parseErrorResponse(resp *http.Response) errorResponse {
	if resp.Body == nil {
		return errorResponse{}
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.Contains(ct, "json") {
		return errorResponse{}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	if err != nil || len(body) == 0 {
		return errorResponse{}
	}

	var er errorResponse
	if err := json.Unmarshal(body, &er); err != nil {
		return errorResponse{}
	}
	return er
}

func causeFields(causes []errorCause) map[string]string {
	fields := make(map[string]string, len(causes))
	for _, c := range causes {
		if c.Attribute == "" {
			continue
		}
		fields[c.Attribute] = c.ErrorMessage
	}
	return fields
}
