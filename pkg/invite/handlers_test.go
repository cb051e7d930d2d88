// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package invite

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	httptypes "github.com/velocityonboard/onboard-service/internal/http/types"
	"github.com/velocityonboard/onboard-service/internal/logging"
	"github.com/velocityonboard/onboard-service/internal/types"
	"github.com/velocityonboard/onboard-service/pkg/authentication"
)

func withPrincipal(p *types.Principal) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p != nil {
				r = r.WithContext(authentication.WithPrincipal(r.Context(), *p))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func TestAPI_Endpoints(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		caller         *types.Principal
		setupMocks     func(*MockServiceInterface)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "create invite",
			method: http.MethodPost,
			path:   "/agencies/agency-1/invites",
			body:   `{"role":"agent","max_uses":3,"days":2}`,
			caller: &owner,
			setupMocks: func(m *MockServiceInterface) {
				m.EXPECT().Create(gomock.Any(), owner, "agency-1", types.RoleAgent, 3, 2).
					Return(&types.Invite{ID: "invite-1", Code: "AB3KZ9", Role: types.RoleAgent}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"code":"AB3KZ9"`,
		},
		{
			name:           "create invite with bad role",
			method:         http.MethodPost,
			path:           "/agencies/agency-1/invites",
			body:           `{"role":"boss"}`,
			caller:         &owner,
			setupMocks:     func(m *MockServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "role must be one of",
		},
		{
			name:   "create invite not authorized",
			method: http.MethodPost,
			path:   "/agencies/agency-1/invites",
			body:   `{"role":"manager"}`,
			caller: &manager,
			setupMocks: func(m *MockServiceInterface) {
				m.EXPECT().Create(gomock.Any(), manager, "agency-1", types.RoleManager, 0, 0).Return(nil, types.ErrNotAuthorized)
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `"message":"not authorized"`,
		},
		{
			name:   "list invites",
			method: http.MethodGet,
			path:   "/agencies/agency-1/invites",
			caller: &owner,
			setupMocks: func(m *MockServiceInterface) {
				m.EXPECT().List(gomock.Any(), owner, "agency-1").Return([]*types.Invite{{ID: "invite-1"}}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"id":"invite-1"`,
		},
		{
			name:   "disable invite",
			method: http.MethodPost,
			path:   "/invites/invite-1/disable",
			caller: &owner,
			setupMocks: func(m *MockServiceInterface) {
				m.EXPECT().Disable(gomock.Any(), owner, "invite-1").Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "invite disabled",
		},
		{
			name:   "redeem invite",
			method: http.MethodPost,
			path:   "/invites/redeem",
			body:   `{"code":"ab3kz9"}`,
			caller: &manager,
			setupMocks: func(m *MockServiceInterface) {
				m.EXPECT().Redeem(gomock.Any(), manager, "ab3kz9", types.Role("")).
					Return(&types.Redemption{AgencyID: "agency-1", Role: types.RoleAgent, Created: true}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"role":"agent"`,
		},
		{
			name:   "redeem exhausted invite",
			method: http.MethodPost,
			path:   "/invites/redeem",
			body:   `{"code":"AB3KZ9"}`,
			caller: &manager,
			setupMocks: func(m *MockServiceInterface) {
				m.EXPECT().Redeem(gomock.Any(), manager, "AB3KZ9", types.Role("")).Return(nil, types.ErrInviteExhausted)
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   types.ErrInviteExhausted.Message,
		},
		{
			name:           "redeem without code",
			method:         http.MethodPost,
			path:           "/invites/redeem",
			body:           `{}`,
			caller:         &manager,
			setupMocks:     func(m *MockServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "code is required",
		},
		{
			name:           "unauthenticated",
			method:         http.MethodPost,
			path:           "/invites/redeem",
			body:           `{"code":"AB3KZ9"}`,
			setupMocks:     func(m *MockServiceInterface) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   authentication.LoginRedirect,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := NewMockServiceInterface(ctrl)
			tt.setupMocks(mockService)

			mux := chi.NewMux()
			mux.Use(withPrincipal(tt.caller))
			NewAPI(mockService, logging.NewNoopLogger()).RegisterEndpoints(mux)

			req := httptest.NewRequest(tt.method, tt.path, bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
			if !strings.Contains(w.Body.String(), tt.expectedBody) {
				t.Errorf("expected body to contain %q, got %s", tt.expectedBody, w.Body.String())
			}

			if w.Code >= http.StatusBadRequest {
				var resp httptypes.ErrorResponse
				if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
					t.Fatalf("failed to decode error response: %v", err)
				}
				if resp.Status != w.Code {
					t.Errorf("expected status %d in body, got %d", w.Code, resp.Status)
				}
			}
		})
	}
}
