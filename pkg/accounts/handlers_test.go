// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package accounts

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"github.com/velocityonboard/onboard-service/internal/logging"
	"github.com/velocityonboard/onboard-service/internal/types"
	"github.com/velocityonboard/onboard-service/pkg/authentication"
)

func TestAPI_Endpoints(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		authenticated  bool
		setupMocks     func(*MockServiceInterface)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "agent signup",
			method: http.MethodPost,
			path:   "/auth/agent/signup",
			body:   `{"email":"agent@acme.io","password":"correct-horse","code":"AB3KZ9"}`,
			setupMocks: func(m *MockServiceInterface) {
				m.EXPECT().AgentSignup(gomock.Any(), &SignupInput{Email: "agent@acme.io", Password: "correct-horse", Code: "AB3KZ9"}).
					Return(&Result{Status: StatusOK, Console: types.ConsoleAgent, Redirect: "/agent"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"redirect":"/agent"`,
		},
		{
			name:   "agency signup awaiting confirmation",
			method: http.MethodPost,
			path:   "/auth/agency/signup",
			body:   `{"email":"boss@acme.io","password":"correct-horse","code":"OWNER2"}`,
			setupMocks: func(m *MockServiceInterface) {
				m.EXPECT().AgencySignup(gomock.Any(), gomock.Any()).
					Return(&Result{Status: StatusConfirmationRequired, Message: ConfirmationMessage}, nil)
			},
			expectedStatus: http.StatusAccepted,
			expectedBody:   ConfirmationMessage,
		},
		{
			name:           "signup without code",
			method:         http.MethodPost,
			path:           "/auth/agent/signup",
			body:           `{"email":"agent@acme.io","password":"correct-horse"}`,
			setupMocks:     func(*MockServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "code is required",
		},
		{
			name:   "signup with spent code",
			method: http.MethodPost,
			path:   "/auth/agent/signup",
			body:   `{"email":"agent@acme.io","password":"correct-horse","code":"AB3KZ9"}`,
			setupMocks: func(m *MockServiceInterface) {
				m.EXPECT().AgentSignup(gomock.Any(), gomock.Any()).Return(nil, types.ErrInviteExhausted)
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   types.ErrInviteExhausted.Message,
		},
		{
			name:   "agency login",
			method: http.MethodPost,
			path:   "/auth/agency/login",
			body:   `{"email":"boss@acme.io","password":"pw"}`,
			setupMocks: func(m *MockServiceInterface) {
				m.EXPECT().AgencyLogin(gomock.Any(), &LoginInput{Email: "boss@acme.io", Password: "pw"}).
					Return(&Result{Status: StatusOK, Console: types.ConsoleAgency, Redirect: "/agency"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"console":"agency"`,
		},
		{
			name:   "agent login with wrong password",
			method: http.MethodPost,
			path:   "/auth/agent/login",
			body:   `{"email":"agent@acme.io","password":"nope"}`,
			setupMocks: func(m *MockServiceInterface) {
				m.EXPECT().AgentLogin(gomock.Any(), gomock.Any()).Return(nil, types.NewAuthError("invalid email or password", nil))
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "invalid email or password",
		},
		{
			name:          "session",
			method:        http.MethodGet,
			path:          "/auth/session",
			authenticated: true,
			setupMocks: func(m *MockServiceInterface) {
				m.EXPECT().Session(gomock.Any(), agent).Return(&Result{Status: StatusOK, Principal: &agent, Console: types.ConsoleAgent})
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"email":"agent@acme.io"`,
		},
		{
			name:           "session unauthenticated",
			method:         http.MethodGet,
			path:           "/auth/session",
			setupMocks:     func(*MockServiceInterface) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   authentication.LoginRedirect,
		},
		{
			name:          "set password passes the session token",
			method:        http.MethodPost,
			path:          "/auth/password",
			body:          `{"password":"12345678","confirm":"12345678"}`,
			authenticated: true,
			setupMocks: func(m *MockServiceInterface) {
				m.EXPECT().SetPassword(gomock.Any(), agent, "ory_st_9", &PasswordInput{Password: "12345678", Confirm: "12345678"}).
					Return(&Result{Status: StatusOK, Console: types.ConsoleAgency, Redirect: "/agency"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"redirect":"/agency"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := NewMockServiceInterface(ctrl)
			tt.setupMocks(mockService)

			api := NewAPI(mockService, logging.NewNoopLogger())

			mux := chi.NewMux()
			api.RegisterPublicEndpoints(mux)
			mux.Group(func(r chi.Router) {
				r.Use(func(next http.Handler) http.Handler {
					return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
						if tt.authenticated {
							ctx := authentication.WithPrincipal(r.Context(), agent)
							r = r.WithContext(authentication.WithBearerToken(ctx, "ory_st_9"))
						}
						next.ServeHTTP(w, r)
					})
				})
				api.RegisterEndpoints(r)
			})

			req := httptest.NewRequest(tt.method, tt.path, bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
			if !strings.Contains(w.Body.String(), tt.expectedBody) {
				t.Errorf("expected body to contain %q, got %s", tt.expectedBody, w.Body.String())
			}
		})
	}
}
