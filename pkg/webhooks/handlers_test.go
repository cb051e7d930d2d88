// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/ory/hydra/v2/oauth2"
	"go.uber.org/mock/gomock"

	"github.com/velocityonboard/onboard-service/internal/types"
)

func TestAPI_Registration(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		authorization  string
		setupMocks     func(*MockServiceInterface, *MockLoggerInterface, *MockSecurityLoggerInterface)
		expectedStatus int
	}{
		{
			name:          "nested traits",
			body:          `{"id":"identity-123","traits":{"email":"user@example.com"}}`,
			authorization: "Bearer hook-key",
			setupMocks: func(mockSvc *MockServiceInterface, mockLogger *MockLoggerInterface, _ *MockSecurityLoggerInterface) {
				mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any())
				mockSvc.EXPECT().HandleRegistration(gomock.Any(), "identity-123", "user@example.com").Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:          "flat email",
			body:          `{"id":"identity-123","email":"user@example.com"}`,
			authorization: "Bearer hook-key",
			setupMocks: func(mockSvc *MockServiceInterface, mockLogger *MockLoggerInterface, _ *MockSecurityLoggerInterface) {
				mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any())
				mockSvc.EXPECT().HandleRegistration(gomock.Any(), "identity-123", "user@example.com").Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:          "invalid body",
			body:          `not-json`,
			authorization: "Bearer hook-key",
			setupMocks: func(_ *MockServiceInterface, mockLogger *MockLoggerInterface, _ *MockSecurityLoggerInterface) {
				mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any())
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:          "missing fields",
			body:          `{"id":"identity-123"}`,
			authorization: "Bearer hook-key",
			setupMocks: func(mockSvc *MockServiceInterface, mockLogger *MockLoggerInterface, _ *MockSecurityLoggerInterface) {
				mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any())
				mockSvc.EXPECT().HandleRegistration(gomock.Any(), "identity-123", "").Return(types.NewValidationError("identity id and email are required"))
				mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any())
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:          "wrong key",
			body:          `{"id":"identity-123","email":"user@example.com"}`,
			authorization: "Bearer nope",
			setupMocks: func(_ *MockServiceInterface, mockLogger *MockLoggerInterface, mockSecurity *MockSecurityLoggerInterface) {
				mockLogger.EXPECT().Security().Return(mockSecurity)
				mockSecurity.EXPECT().AuthzFailure("webhook", "/webhooks/registration")
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := NewMockServiceInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)
			mockSecurity := NewMockSecurityLoggerInterface(ctrl)
			tt.setupMocks(mockService, mockLogger, mockSecurity)

			mux := chi.NewMux()
			NewAPI(mockService, "hook-key", mockLogger).RegisterEndpoints(mux)

			req := httptest.NewRequest(http.MethodPost, "/webhooks/registration", bytes.NewBufferString(tt.body))
			req.Header.Set("Authorization", tt.authorization)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestAPI_TokenHook(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		setupMocks     func(*MockServiceInterface, *MockLoggerInterface)
		expectedStatus int
		validateResp   func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name: "success",
			requestBody: &oauth2.TokenHookRequest{
				Session: oauth2.NewSession("user-123"),
			},
			setupMocks: func(mockSvc *MockServiceInterface, _ *MockLoggerInterface) {
				response := new(TokenHookResponse)
				response.Session.IDToken = Claims{"agencies": []string{"agency-1"}, "console": "agency"}
				response.Session.AccessToken = response.Session.IDToken
				mockSvc.EXPECT().HandleTokenHook(gomock.Any(), gomock.Any()).Return(response, nil)
			},
			expectedStatus: http.StatusOK,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var result TokenHookResponse
				if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if result.Session.IDToken["agencies"] == nil || result.Session.AccessToken["console"] != "agency" {
					t.Errorf("unexpected claims %v", result.Session)
				}
			},
		},
		{
			name:        "invalid request body",
			requestBody: "not-json",
			setupMocks: func(_ *MockServiceInterface, mockLogger *MockLoggerInterface) {
				mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any())
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "service error",
			requestBody: &oauth2.TokenHookRequest{
				Session: oauth2.NewSession("user-123"),
			},
			setupMocks: func(mockSvc *MockServiceInterface, mockLogger *MockLoggerInterface) {
				mockSvc.EXPECT().HandleTokenHook(gomock.Any(), gomock.Any()).Return(nil, errors.New("service error"))
				mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any())
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := NewMockServiceInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)
			tt.setupMocks(mockService, mockLogger)

			mux := chi.NewMux()
			NewAPI(mockService, "", mockLogger).RegisterEndpoints(mux)

			body, err := json.Marshal(tt.requestBody)
			if err != nil {
				t.Fatalf("failed to marshal request: %v", err)
			}

			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/webhooks/token", bytes.NewReader(body)))

			if w.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.validateResp != nil {
				tt.validateResp(t, w)
			}
		})
	}
}
