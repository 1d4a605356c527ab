package test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"mplsconnect/internal/models"
	"mplsconnect/internal/service"
)

func TestSignUpHandler_Success(t *testing.T) {
	mockAuth := new(MockAuthService)
	handler := createTestHandler(mockAuth)

	mockAuth.On("SignUp", mock.Anything, service.SignUpRequest{
		Email:    "sarah@example.com",
		Password: "password123",
		Name:     "Sarah Mitchell",
		Location: "Uptown",
	}).Return(service.AuthResult{
		User:         &models.User{ID: "user-123", UID: "acct-123", Name: "Sarah Mitchell"},
		AccessToken:  "access-token-123",
		RefreshToken: "refresh-token-123",
	})

	body, _ := json.Marshal(map[string]interface{}{
		"email":    "sarah@example.com",
		"password": "password123",
		"name":     "Sarah Mitchell",
		"location": "Uptown",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	handler.SignUp(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)

	var response map[string]interface{}
	err := json.Unmarshal(rr.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "access-token-123", response["accessToken"])
	assert.Equal(t, "refresh-token-123", response["refreshToken"])

	userData, ok := response["user"].(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, "Sarah Mitchell", userData["name"])

	mockAuth.AssertExpectations(t)
}

func TestSignUpHandler_InvalidBody(t *testing.T) {
	handler := createTestHandler(new(MockAuthService))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", strings.NewReader("{not json"))
	rr := httptest.NewRecorder()

	handler.SignUp(rr, req)

	assertJSONError(t, rr, http.StatusBadRequest, "Invalid request body")
}

func TestSignUpHandler_MissingFields(t *testing.T) {
	handler := createTestHandler(new(MockAuthService))

	body, _ := json.Marshal(map[string]interface{}{
		"email":    "sarah@example.com",
		"password": "short", // under the minimum length
	})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()

	handler.SignUp(rr, req)

	assertJSONError(t, rr, http.StatusBadRequest, "Invalid sign-up data")
}

func TestSignUpHandler_ServiceError(t *testing.T) {
	mockAuth := new(MockAuthService)
	handler := createTestHandler(mockAuth)

	mockAuth.On("SignUp", mock.Anything, mock.Anything).
		Return(service.AuthResult{Error: "An account with this email already exists"})

	body, _ := json.Marshal(map[string]interface{}{
		"email":    "sarah@example.com",
		"password": "password123",
		"name":     "Sarah Mitchell",
		"location": "Uptown",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()

	handler.SignUp(rr, req)

	assertJSONError(t, rr, http.StatusBadRequest, "An account with this email already exists")
	mockAuth.AssertExpectations(t)
}

func TestSignInHandler_Success(t *testing.T) {
	mockAuth := new(MockAuthService)
	handler := createTestHandler(mockAuth)

	mockAuth.On("SignIn", mock.Anything, "sarah@example.com", "password123").
		Return(service.AuthResult{
			User:         &models.User{ID: "user-123", Name: "Sarah Mitchell"},
			AccessToken:  "access-token-123",
			RefreshToken: "refresh-token-123",
		})

	body, _ := json.Marshal(map[string]string{
		"email":    "sarah@example.com",
		"password": "password123",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signin", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()

	handler.SignIn(rr, req)

	assertJSONSuccess(t, rr, http.StatusOK)
	mockAuth.AssertExpectations(t)
}

func TestSignInHandler_WrongPassword(t *testing.T) {
	mockAuth := new(MockAuthService)
	handler := createTestHandler(mockAuth)

	mockAuth.On("SignIn", mock.Anything, "sarah@example.com", "wrong").
		Return(service.AuthResult{Error: "Incorrect password"})

	body, _ := json.Marshal(map[string]string{
		"email":    "sarah@example.com",
		"password": "wrong",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signin", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()

	handler.SignIn(rr, req)

	assertJSONError(t, rr, http.StatusUnauthorized, "Incorrect password")
	mockAuth.AssertExpectations(t)
}

func TestSignInHandler_MissingCredentials(t *testing.T) {
	handler := createTestHandler(new(MockAuthService))

	body, _ := json.Marshal(map[string]string{"email": "sarah@example.com"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signin", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()

	handler.SignIn(rr, req)

	assertJSONError(t, rr, http.StatusBadRequest, "Email and password are required")
}

func TestRefreshTokenHandler_Success(t *testing.T) {
	mockAuth := new(MockAuthService)
	handler := createTestHandler(mockAuth)

	mockAuth.On("RefreshTokens", mock.Anything, "refresh-token-123").
		Return(service.AuthResult{
			User:         &models.User{ID: "user-123"},
			AccessToken:  "new-access-token",
			RefreshToken: "new-refresh-token",
		})

	body, _ := json.Marshal(map[string]string{"refreshToken": "refresh-token-123"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh-token", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()

	handler.RefreshToken(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var response map[string]interface{}
	err := json.Unmarshal(rr.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "new-access-token", response["accessToken"])

	mockAuth.AssertExpectations(t)
}

func TestRefreshTokenHandler_Invalid(t *testing.T) {
	mockAuth := new(MockAuthService)
	handler := createTestHandler(mockAuth)

	mockAuth.On("RefreshTokens", mock.Anything, "stale").
		Return(service.AuthResult{Error: "Invalid or expired refresh token"})

	body, _ := json.Marshal(map[string]string{"refreshToken": "stale"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh-token", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()

	handler.RefreshToken(rr, req)

	assertJSONError(t, rr, http.StatusUnauthorized, "Invalid or expired refresh token")
	mockAuth.AssertExpectations(t)
}

func TestSignOutHandler_Success(t *testing.T) {
	mockAuth := new(MockAuthService)
	handler := createTestHandler(mockAuth)

	mockAuth.On("SignOut", mock.Anything, "refresh-token-123").
		Return(service.SignOutResult{})

	body, _ := json.Marshal(map[string]string{"refreshToken": "refresh-token-123"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signout", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()

	handler.SignOut(rr, req)

	assertJSONSuccess(t, rr, http.StatusOK)
	mockAuth.AssertExpectations(t)
}
