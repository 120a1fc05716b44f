package responses_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/tradehub-io/tradehub-backend/api/responses"
	pkgerrors "github.com/tradehub-io/tradehub-backend/pkg/errors"
	"github.com/tradehub-io/tradehub-backend/pkg/types"
)

func TestWriteSuccessWrapsDataEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	responses.WriteSuccess(rec, map[string]string{"hello": "world"})

	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected json content type, got %q", ct)
	}

	var envelope types.SuccessEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	data, ok := envelope.Data.(map[string]any)
	if !ok || data["hello"] != "world" {
		t.Fatalf("unexpected data payload: %#v", envelope.Data)
	}
}

func TestWriteErrorMapsCodeToStatus(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "not found passes message through",
			err:        pkgerrors.New(pkgerrors.CodeNotFound, "order not found"),
			wantStatus: 404,
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "empty cart is unprocessable",
			err:        pkgerrors.New(pkgerrors.CodeEmptyCart, "cart is empty"),
			wantStatus: 422,
			wantCode:   "EMPTY_CART",
		},
		{
			name:       "state conflict is unprocessable",
			err:        pkgerrors.New(pkgerrors.CodeStateConflict, "order already shipped"),
			wantStatus: 422,
			wantCode:   "STATE_CONFLICT",
		},
		{
			name:       "untyped error becomes internal",
			err:        context.DeadlineExceeded,
			wantStatus: 500,
			wantCode:   "INTERNAL_ERROR",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			responses.WriteError(context.Background(), nil, rec, tc.err)

			if rec.Code != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, rec.Code)
			}
			var envelope types.ErrorEnvelope
			if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
				t.Fatalf("decode envelope: %v", err)
			}
			if envelope.Error.Code != tc.wantCode {
				t.Fatalf("expected code %s, got %s", tc.wantCode, envelope.Error.Code)
			}
		})
	}
}

func TestWriteErrorHidesInternalMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	responses.WriteError(context.Background(), nil, rec, pkgerrors.New(pkgerrors.CodeInternal, "db password is hunter2"))

	var envelope types.ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.Error.Message != "internal server error" {
		t.Fatalf("internal message leaked: %q", envelope.Error.Message)
	}
}
