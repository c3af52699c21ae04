package atlan

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/jsamuelsen11/smus-domain-sync/internal/domain"
)

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestTranslateHTTPError_StatusMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		statusCode int
		wantErr    error
	}{
		{name: "404 maps to ErrNotFound", statusCode: http.StatusNotFound, wantErr: domain.ErrNotFound},
		{name: "400 maps to ErrValidation", statusCode: http.StatusBadRequest, wantErr: domain.ErrValidation},
		{name: "401 maps to ErrForbidden", statusCode: http.StatusUnauthorized, wantErr: domain.ErrForbidden},
		{name: "403 maps to ErrForbidden", statusCode: http.StatusForbidden, wantErr: domain.ErrForbidden},
		{name: "429 maps to ErrUnavailable", statusCode: http.StatusTooManyRequests, wantErr: domain.ErrUnavailable},
		{name: "500 maps to ErrUnavailable", statusCode: http.StatusInternalServerError, wantErr: domain.ErrUnavailable},
		{name: "503 maps to ErrUnavailable", statusCode: http.StatusServiceUnavailable, wantErr: domain.ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resp := &http.Response{StatusCode: tt.statusCode, Header: http.Header{}, Body: http.NoBody}

			got := TranslateHTTPError(resp)
			if !errors.Is(got, tt.wantErr) {
				t.Errorf("TranslateHTTPError() = %v, want errors.Is %v", got, tt.wantErr)
			}
		})
	}
}

func TestTranslateHTTPError_UnexpectedStatus(t *testing.T) {
	t.Parallel()

	resp := &http.Response{StatusCode: http.StatusConflict, Header: http.Header{}, Body: http.NoBody}

	got := TranslateHTTPError(resp)
	if got == nil || !strings.Contains(got.Error(), "unexpected status 409") {
		t.Errorf("TranslateHTTPError() = %v, want unexpected status 409", got)
	}
}

func TestTranslateHTTPError_UsesCatalogMessage(t *testing.T) {
	t.Parallel()

	resp := jsonResponse(http.StatusForbidden,
		`{"errorCode":"ATLAS-403-00-001","errorMessage":"user is not authorized to perform update"}`)

	got := TranslateHTTPError(resp)
	if !errors.Is(got, domain.ErrForbidden) {
		t.Fatalf("TranslateHTTPError() = %v, want ErrForbidden", got)
	}
	for _, want := range []string{"ATLAS-403-00-001", "not authorized"} {
		if !strings.Contains(got.Error(), want) {
			t.Errorf("error = %q, want it to contain %q", got.Error(), want)
		}
	}
}

func TestTranslateHTTPError_ValidationCauses(t *testing.T) {
	t.Parallel()

	resp := jsonResponse(http.StatusBadRequest, `{
		"errorCode": "ATLAS-400-00-08C",
		"errorMessage": "invalid attributes",
		"causes": [{"attributeName": "domainGUIDs", "errorMessage": "unknown domain"}]
	}`)

	got := TranslateHTTPError(resp)

	var verr *domain.ValidationError
	if !errors.As(got, &verr) {
		t.Fatalf("TranslateHTTPError() = %v, want *domain.ValidationError", got)
	}
	if verr.Fields["domainGUIDs"] != "unknown domain" {
		t.Errorf("Fields = %v, want domainGUIDs entry", verr.Fields)
	}
	if !errors.Is(got, domain.ErrValidation) {
		t.Error("ValidationError does not unwrap to ErrValidation")
	}
}

func TestTranslateHTTPError_NonJSONBodyIgnored(t *testing.T) {
	t.Parallel()

	resp := &http.Response{
		StatusCode: http.StatusBadGateway,
		Header:     http.Header{"Content-Type": []string{"text/html"}},
		Body:       io.NopCloser(strings.NewReader("<html>bad gateway</html>")),
	}

	got := TranslateHTTPError(resp)
	if !errors.Is(got, domain.ErrUnavailable) {
		t.Fatalf("TranslateHTTPError() = %v, want ErrUnavailable", got)
	}
	if strings.Contains(got.Error(), "<html>") {
		t.Errorf("error = %q, want HTML body left out", got.Error())
	}
}
