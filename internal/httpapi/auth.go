package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/MirBabaTravels/booking_svc/internal/model"
)

const (
	contextKeyCurrentAdmin = "httpapi_current_admin"
	sessionName            = "booking_admin_session"
	sessionKeyAdminEmail   = "admin_email"
	sessionKeyAdminName    = "admin_name"

	authErrorUnauthorized       = "unauthorized"
	authErrorInvalidCredentials = "invalid_credentials"

	bearerTokenPrefix = "Bearer "
	tokenIssuer       = "booking_svc"

	logEventLoadSession     = "load_session"
	logEventSaveSession     = "save_session"
	logEventLoginFailed     = "login_failed"
	logFieldAdminEmail      = "admin_email"
	defaultAdminSessionAge  = 12 * time.Hour
	defaultAdminBearerTTL   = 12 * time.Hour
	sessionCookiePathRoot   = "/"
	errorValueSessionFailed = "session_failed"
)

// CurrentAdmin identifies the authenticated staff member for a request.
type CurrentAdmin struct {
	Email string
	Name  string
}

// AuthManager authenticates administrators with an email/password login and
// authorizes subsequent requests through either a signed bearer token or a
// session cookie set at login time.
type AuthManager struct {
	database     *gorm.DB
	logger       *zap.Logger
	sessionStore *sessions.CookieStore
	tokenSecret  []byte
	tokenTTL     time.Duration
}

// NewAuthManager creates an AuthManager using the provided secrets.
func NewAuthManager(database *gorm.DB, logger *zap.Logger, sessionSecret string, tokenSecret string) *AuthManager {
	sessionStore := sessions.NewCookieStore([]byte(sessionSecret))
	sessionStore.Options = &sessions.Options{
		Path:     sessionCookiePathRoot,
		MaxAge:   int(defaultAdminSessionAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	return &AuthManager{
		database:     database,
		logger:       logger,
		sessionStore: sessionStore,
		tokenSecret:  []byte(tokenSecret),
		tokenTTL:     defaultAdminBearerTTL,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Login verifies the email/password pair, sets the dashboard session cookie
// and returns a bearer token for API clients.
func (authManager *AuthManager) Login(context *gin.Context) {
	var payload loginRequest
	if bindErr := context.BindJSON(&payload); bindErr != nil {
		context.JSON(http.StatusBadRequest, gin.H{jsonKeyError: errorValueInvalidJSON})
		return
	}

	normalizedEmail := strings.ToLower(strings.TrimSpace(payload.Email))
	if normalizedEmail == "" || payload.Password == "" {
		context.JSON(http.StatusBadRequest, gin.H{jsonKeyError: errorValueMissingFields})
		return
	}

	var adminUser model.AdminUser
	if lookupErr := authManager.database.First(&adminUser, "email = ?", normalizedEmail).Error; lookupErr != nil {
		authManager.logger.Warn(logEventLoginFailed, zap.String(logFieldAdminEmail, normalizedEmail))
		context.JSON(http.StatusUnauthorized, gin.H{jsonKeyError: authErrorInvalidCredentials})
		return
	}

	if compareErr := bcrypt.CompareHashAndPassword([]byte(adminUser.PasswordHash), []byte(payload.Password)); compareErr != nil {
		authManager.logger.Warn(logEventLoginFailed, zap.String(logFieldAdminEmail, normalizedEmail))
		context.JSON(http.StatusUnauthorized, gin.H{jsonKeyError: authErrorInvalidCredentials})
		return
	}

	signedToken, signErr := authManager.issueToken(adminUser)
	if signErr != nil {
		context.JSON(http.StatusInternalServerError, gin.H{jsonKeyError: errorValueSessionFailed})
		return
	}

	sessionInstance, sessionErr := authManager.sessionStore.Get(context.Request, sessionName)
	if sessionErr != nil {
		authManager.logger.Warn(logEventLoadSession, zap.Error(sessionErr))
	}
	if sessionInstance != nil {
		sessionInstance.Values[sessionKeyAdminEmail] = adminUser.Email
		sessionInstance.Values[sessionKeyAdminName] = adminUser.Name
		if saveErr := sessionInstance.Save(context.Request, context.Writer); saveErr != nil {
			authManager.logger.Warn(logEventSaveSession, zap.Error(saveErr))
		}
	}

	context.JSON(http.StatusOK, loginResponse{
		Token: signedToken,
		Email: adminUser.Email,
		Name:  adminUser.Name,
	})
}

// Logout clears the dashboard session cookie.
func (authManager *AuthManager) Logout(context *gin.Context) {
	sessionInstance, sessionErr := authManager.sessionStore.Get(context.Request, sessionName)
	if sessionErr == nil && sessionInstance != nil {
		sessionInstance.Options.MaxAge = -1
		if saveErr := sessionInstance.Save(context.Request, context.Writer); saveErr != nil {
			authManager.logger.Warn(logEventSaveSession, zap.Error(saveErr))
		}
	}
	context.Status(http.StatusNoContent)
}

// RequireAdminJSON rejects requests carrying neither a valid bearer token
// nor a valid admin session cookie.
func (authManager *AuthManager) RequireAdminJSON() gin.HandlerFunc {
	return func(context *gin.Context) {
		if _, ok := authManager.ensureAdmin(context); !ok {
			context.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{jsonKeyError: authErrorUnauthorized})
			return
		}
		context.Next()
	}
}

// CurrentAdminFromContext returns the admin recorded on the request context.
func CurrentAdminFromContext(context *gin.Context) (*CurrentAdmin, bool) {
	value, exists := context.Get(contextKeyCurrentAdmin)
	if !exists {
		return nil, false
	}
	currentAdmin, ok := value.(*CurrentAdmin)
	return currentAdmin, ok
}

func (authManager *AuthManager) issueToken(adminUser model.AdminUser) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   adminUser.Email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(authManager.tokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(authManager.tokenSecret)
}

func (authManager *AuthManager) ensureAdmin(context *gin.Context) (*CurrentAdmin, bool) {
	if currentAdmin, exists := CurrentAdminFromContext(context); exists {
		return currentAdmin, true
	}

	if currentAdmin, ok := authManager.adminFromBearerToken(context); ok {
		context.Set(contextKeyCurrentAdmin, currentAdmin)
		return currentAdmin, true
	}

	if currentAdmin, ok := authManager.adminFromSession(context); ok {
		context.Set(contextKeyCurrentAdmin, currentAdmin)
		return currentAdmin, true
	}

	return nil, false
}

func (authManager *AuthManager) adminFromBearerToken(context *gin.Context) (*CurrentAdmin, bool) {
	authorizationHeader := strings.TrimSpace(context.GetHeader("Authorization"))
	if !strings.HasPrefix(authorizationHeader, bearerTokenPrefix) {
		return nil, false
	}

	rawToken := strings.TrimPrefix(authorizationHeader, bearerTokenPrefix)
	parsedToken, parseErr := jwt.ParseWithClaims(rawToken, &jwt.RegisteredClaims{}, func(*jwt.Token) (interface{}, error) {
		return authManager.tokenSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(tokenIssuer))
	if parseErr != nil || !parsedToken.Valid {
		return nil, false
	}

	claims, ok := parsedToken.Claims.(*jwt.RegisteredClaims)
	if !ok || strings.TrimSpace(claims.Subject) == "" {
		return nil, false
	}

	var adminUser model.AdminUser
	if lookupErr := authManager.database.First(&adminUser, "email = ?", claims.Subject).Error; lookupErr != nil {
		return nil, false
	}

	return &CurrentAdmin{Email: adminUser.Email, Name: adminUser.Name}, true
}

func (authManager *AuthManager) adminFromSession(context *gin.Context) (*CurrentAdmin, bool) {
	sessionInstance, sessionErr := authManager.sessionStore.Get(context.Request, sessionName)
	if sessionErr != nil {
		authManager.logger.Warn(logEventLoadSession, zap.Error(sessionErr))
		return nil, false
	}

	email := extractString(sessionInstance.Values[sessionKeyAdminEmail])
	if email == "" {
		return nil, false
	}

	return &CurrentAdmin{Email: email, Name: extractString(sessionInstance.Values[sessionKeyAdminName])}, true
}

func extractString(value interface{}) string {
	text, ok := value.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(text)
}
