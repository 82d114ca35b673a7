package httpapi_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	authorizationHeaderName = "Authorization"
	bearerTokenPrefix       = "Bearer "
	testAdminEmail          = "admin@example.com"
	testAdminPassword       = "correct horse battery staple"
)

func loginAdmin(testingT *testing.T, api apiHarness) string {
	testingT.Helper()

	response := performJSONRequest(testingT, api.router, http.MethodPost, "/api/admin/login", map[string]any{
		"email":    testAdminEmail,
		"password": testAdminPassword,
	}, nil)
	require.Equal(testingT, http.StatusOK, response.Code)

	body := decodeJSONBody(testingT, response)
	token, _ := body["token"].(string)
	require.NotEmpty(testingT, token)
	return token
}

func bearerHeaders(token string) map[string]string {
	return map[string]string{authorizationHeaderName: bearerTokenPrefix + token}
}

func TestLoginIssuesTokenAndSession(t *testing.T) {
	api := buildAPIHarness(t, nil)
	insertAdmin(t, api.database, testAdminEmail, testAdminPassword)

	response := performJSONRequest(t, api.router, http.MethodPost, "/api/admin/login", map[string]any{
		"email":    "Admin@Example.com",
		"password": testAdminPassword,
	}, nil)
	require.Equal(t, http.StatusOK, response.Code)

	body := decodeJSONBody(t, response)
	require.NotEmpty(t, body["token"])
	require.Equal(t, testAdminEmail, body["email"])
	require.NotEmpty(t, response.Header().Get("Set-Cookie"))
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	api := buildAPIHarness(t, nil)
	insertAdmin(t, api.database, testAdminEmail, testAdminPassword)

	wrongPassword := performJSONRequest(t, api.router, http.MethodPost, "/api/admin/login", map[string]any{
		"email":    testAdminEmail,
		"password": "wrong",
	}, nil)
	require.Equal(t, http.StatusUnauthorized, wrongPassword.Code)

	unknownAccount := performJSONRequest(t, api.router, http.MethodPost, "/api/admin/login", map[string]any{
		"email":    "nobody@example.com",
		"password": testAdminPassword,
	}, nil)
	require.Equal(t, http.StatusUnauthorized, unknownAccount.Code)
}

func TestAdminRoutesRequireAuthentication(t *testing.T) {
	api := buildAPIHarness(t, nil)
	insertAdmin(t, api.database, testAdminEmail, testAdminPassword)

	missingToken := performJSONRequest(t, api.router, http.MethodGet, "/api/admin/inquiries", nil, nil)
	require.Equal(t, http.StatusUnauthorized, missingToken.Code)

	invalidToken := performJSONRequest(t, api.router, http.MethodGet, "/api/admin/inquiries", nil, bearerHeaders("not-a-token"))
	require.Equal(t, http.StatusUnauthorized, invalidToken.Code)

	token := loginAdmin(t, api)
	authorized := performJSONRequest(t, api.router, http.MethodGet, "/api/admin/inquiries", nil, bearerHeaders(token))
	require.Equal(t, http.StatusOK, authorized.Code)
}

func TestSessionCookieGrantsAccess(t *testing.T) {
	api := buildAPIHarness(t, nil)
	insertAdmin(t, api.database, testAdminEmail, testAdminPassword)

	loginResponse := performJSONRequest(t, api.router, http.MethodPost, "/api/admin/login", map[string]any{
		"email":    testAdminEmail,
		"password": testAdminPassword,
	}, nil)
	require.Equal(t, http.StatusOK, loginResponse.Code)
	cookies := loginResponse.Result().Cookies()
	require.NotEmpty(t, cookies)

	request := httptest.NewRequest(http.MethodGet, "/api/admin/inquiries", nil)
	for _, cookie := range cookies {
		request.AddCookie(cookie)
	}
	recorder := httptest.NewRecorder()
	api.router.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusOK, recorder.Code)
}

func TestLogoutClearsSession(t *testing.T) {
	api := buildAPIHarness(t, nil)
	insertAdmin(t, api.database, testAdminEmail, testAdminPassword)

	loginResponse := performJSONRequest(t, api.router, http.MethodPost, "/api/admin/login", map[string]any{
		"email":    testAdminEmail,
		"password": testAdminPassword,
	}, nil)
	require.Equal(t, http.StatusOK, loginResponse.Code)

	logoutRequest := httptest.NewRequest(http.MethodPost, "/api/admin/logout", nil)
	for _, cookie := range loginResponse.Result().Cookies() {
		logoutRequest.AddCookie(cookie)
	}
	logoutRecorder := httptest.NewRecorder()
	api.router.ServeHTTP(logoutRecorder, logoutRequest)
	require.Equal(t, http.StatusNoContent, logoutRecorder.Code)

	expired := false
	for _, cookie := range logoutRecorder.Result().Cookies() {
		if cookie.MaxAge < 0 {
			expired = true
		}
	}
	require.True(t, expired)
}
