package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterRejectsDuplicates(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	payload, _ := json.Marshal(map[string]string{"username": "alice@example.com", "password": "password123"})

	resp, err := app.Client.Post(app.Server.URL+"/api/auth/register", "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = app.Client.Post(app.Server.URL+"/api/auth/register", "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	app.registerAndLogin(t, "alice@example.com")

	payload, _ := json.Marshal(map[string]string{"username": "alice@example.com", "password": "wrongpassword"})
	resp, err := app.Client.Post(app.Server.URL+"/api/auth/login", "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestPasswordRecoveryFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	app.registerAndLogin(t, "alice@example.com")

	payload, _ := json.Marshal(map[string]string{"username": "alice@example.com"})
	resp, err := app.Client.Post(app.Server.URL+"/api/auth/recover", "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// SMTP is not configured in tests, so pull the token from the store.
	var token string
	require.NoError(t, app.DB.QueryRow("SELECT token FROM recovery_tokens LIMIT 1").Scan(&token))

	reset, _ := json.Marshal(map[string]string{
		"username": "alice@example.com",
		"token":    token,
		"password": "freshpassword1",
	})
	resp, err = app.Client.Post(app.Server.URL+"/api/auth/reset", "application/json", bytes.NewReader(reset))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Old password no longer works, the new one does.
	oldLogin, _ := json.Marshal(map[string]string{"username": "alice@example.com", "password": "password123"})
	resp, err = app.Client.Post(app.Server.URL+"/api/auth/login", "application/json", bytes.NewReader(oldLogin))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	newLogin, _ := json.Marshal(map[string]string{"username": "alice@example.com", "password": "freshpassword1"})
	resp, err = app.Client.Post(app.Server.URL+"/api/auth/login", "application/json", bytes.NewReader(newLogin))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// The token was consumed by the reset.
	var count int
	require.NoError(t, app.DB.QueryRow("SELECT COUNT(*) FROM recovery_tokens").Scan(&count))
	assert.Zero(t, count)
}
