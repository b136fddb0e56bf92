//go:build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"wanderlog/auth-service/internal/app/auth/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	// BaseURL - адрес запущенного auth-service
	// Для E2E тестов сервис должен быть запущен через docker-compose
	BaseURL = "http://localhost:8081"
)

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// TestFullAuthenticationFlow тестирует полный цикл аутентификации:
// 1. Регистрация нового пользователя
// 2. Логин
// 3. Получение информации о себе
// 4. Повторная регистрация с тем же email
func TestFullAuthenticationFlow(t *testing.T) {
	client := &http.Client{Timeout: 10 * time.Second}

	// Уникальный email для теста
	email := fmt.Sprintf("e2e-test-%d@example.com", time.Now().UnixNano())
	password := "securepassword123"
	username := "e2e-traveler"

	// ==================== Step 1: Register ====================
	t.Log("Step 1: Registering new user")

	registerReq := entity.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	}
	registerBody, _ := json.Marshal(registerReq)

	resp, err := client.Post(
		BaseURL+"/api/v1/auth/register",
		"application/json",
		bytes.NewBuffer(registerBody),
	)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode, "Registration should succeed")

	var registerEnv envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&registerEnv))
	assert.Equal(t, "success", registerEnv.Status)

	var registerResponse entity.AuthResponse
	require.NoError(t, json.Unmarshal(registerEnv.Data, &registerResponse))

	assert.Equal(t, email, registerResponse.User.Email)
	assert.Equal(t, username, registerResponse.User.Username)
	assert.Equal(t, entity.RoleUser, registerResponse.User.Role)
	assert.NotEmpty(t, registerResponse.Tokens.AccessToken)

	// ==================== Step 2: Login ====================
	t.Log("Step 2: Logging in")

	loginReq := entity.LoginRequest{
		Email:    email,
		Password: password,
	}
	loginBody, _ := json.Marshal(loginReq)

	resp, err = client.Post(
		BaseURL+"/api/v1/auth/login",
		"application/json",
		bytes.NewBuffer(loginBody),
	)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode, "Login should succeed")

	var loginEnv envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&loginEnv))

	var loginResponse entity.AuthResponse
	require.NoError(t, json.Unmarshal(loginEnv.Data, &loginResponse))
	accessToken := loginResponse.Tokens.AccessToken
	require.NotEmpty(t, accessToken)

	// ==================== Step 3: Get Me ====================
	t.Log("Step 3: Fetching own profile")

	req, _ := http.NewRequest(http.MethodGet, BaseURL+"/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err = client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var meEnv envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&meEnv))

	var me entity.User
	require.NoError(t, json.Unmarshal(meEnv.Data, &me))
	assert.Equal(t, email, me.Email)

	// ==================== Step 4: Duplicate Registration ====================
	t.Log("Step 4: Registering the same email again")

	resp, err = client.Post(
		BaseURL+"/api/v1/auth/register",
		"application/json",
		bytes.NewBuffer(registerBody),
	)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode, "Duplicate email should be rejected")
}

// TestLoginWithWrongPassword проверяет что неверный пароль отклоняется
func TestLoginWithWrongPassword(t *testing.T) {
	client := &http.Client{Timeout: 10 * time.Second}

	email := fmt.Sprintf("e2e-wrongpass-%d@example.com", time.Now().UnixNano())

	registerBody, _ := json.Marshal(entity.RegisterRequest{
		Username: "wrongpass",
		Email:    email,
		Password: "correctpassword",
	})
	resp, err := client.Post(BaseURL+"/api/v1/auth/register", "application/json", bytes.NewBuffer(registerBody))
	require.NoError(t, err)
	resp.Body.Close()

	loginBody, _ := json.Marshal(entity.LoginRequest{
		Email:    email,
		Password: "wrongpassword",
	})
	resp, err = client.Post(BaseURL+"/api/v1/auth/login", "application/json", bytes.NewBuffer(loginBody))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
