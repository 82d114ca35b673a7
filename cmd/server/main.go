package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MirBabaTravels/booking_svc/internal/chatbot"
	"github.com/MirBabaTravels/booking_svc/internal/httpapi"
	"github.com/MirBabaTravels/booking_svc/internal/inquiry"
	"github.com/MirBabaTravels/booking_svc/internal/localcache"
	"github.com/MirBabaTravels/booking_svc/internal/storage"
)

const (
	commandUseName              = "server"
	commandShortDescription     = "Run the booking server"
	commandLongDescription      = "Launch the travel inquiry and booking HTTP server"
	missingConfigurationMessage = "missing required configuration"
	loggerCreationErrorMessage  = "logger"
	logEventListening           = "listening"
	logFieldAddress             = "addr"

	flagNameApplicationAddress     = "app-addr"
	flagNameDatabaseDriverName     = "db-driver"
	flagNameDatabaseDataSourceName = "db-dsn"
	flagNameAdminTokenSecret       = "admin-jwt-secret"
	flagNameSessionSecret          = "session-secret"
	flagNameCachePath              = "cache-path"
	flagNameSMTPHost               = "smtp-host"
	flagNameSMTPPort               = "smtp-port"
	flagNameSMTPUsername           = "smtp-username"
	flagNameSMTPPassword           = "smtp-password"
	flagNameSMTPFromAddress        = "smtp-from-address"
	flagNameSMTPFromName           = "smtp-from-name"

	flagUsageApplicationAddress     = "address for the HTTP server to listen on"
	flagUsageDatabaseDriverName     = "database driver name"
	flagUsageDatabaseDataSourceName = "database connection string"
	flagUsageAdminTokenSecret       = "secret used to sign admin bearer tokens"
	flagUsageSessionSecret          = "secret used to authenticate admin session cookies"
	flagUsageCachePath              = "path of the local inquiry fallback cache file"
	flagUsageSMTPHost               = "SMTP host for confirmation emails"
	flagUsageSMTPPort               = "SMTP port for confirmation emails"
	flagUsageSMTPUsername           = "SMTP username"
	flagUsageSMTPPassword           = "SMTP password"
	flagUsageSMTPFromAddress        = "sender address for confirmation emails"
	flagUsageSMTPFromName           = "sender display name for confirmation emails"

	environmentKeyApplicationAddress = "APP_ADDR"
	environmentKeyDatabaseDriver     = "DB_DRIVER"
	environmentKeyDatabaseDataSource = "DB_DSN"
	environmentKeyAdminTokenSecret   = "ADMIN_JWT_SECRET"
	environmentKeySessionSecret      = "SESSION_SECRET"
	environmentKeyCachePath          = "CACHE_PATH"
	environmentKeySMTPHost           = "SMTP_HOST"
	environmentKeySMTPPort           = "SMTP_PORT"
	environmentKeySMTPUsername       = "SMTP_USERNAME"
	environmentKeySMTPPassword       = "SMTP_PASSWORD"
	environmentKeySMTPFromAddress    = "SMTP_FROM_ADDRESS"
	environmentKeySMTPFromName       = "SMTP_FROM_NAME"

	defaultApplicationAddress = ":8080"
	defaultDatabaseDriverName = storage.DriverNameSQLite
	defaultCachePath          = "inquiries.json"
	defaultSMTPPort           = "587"

	publicRouteInquiries     = "/api/inquiries"
	publicRouteBookings      = "/api/bookings"
	publicRouteChat          = "/api/chat"
	publicRoutePackages      = "/api/packages"
	publicRoutePackageBySlug = "/api/packages/:slug"

	adminRoutePrefix          = "/api/admin"
	adminRouteLogin           = "/login"
	adminRouteLogout          = "/logout"
	adminRouteInquiries       = "/inquiries"
	adminRouteInquiryByID     = "/inquiries/:id"
	adminRoutePackages        = "/packages"
	adminRoutePackageByID     = "/packages/:id"
	adminRoutePackagesSeed    = "/packages/seed"
	adminRouteFAQs            = "/faqs"
	adminRouteFAQByID         = "/faqs/:id"
	corsOriginWildcard        = "*"
	corsHeaderAuthorization   = "Authorization"
	corsHeaderContentType     = "Content-Type"
	httpMethodGet             = "GET"
	httpMethodOptions         = "OPTIONS"
	httpMethodPost            = "POST"
	httpMethodPatch           = "PATCH"
	httpMethodDelete          = "DELETE"
	loggerContextOpenDatabase = "open_db"
	loggerContextAutoMigrate  = "migrate"
	loggerContextServer       = "server"
	readHeaderTimeoutSeconds  = 5

	unexpectedArgumentsMessage    = "unexpected command arguments"
	commandInitializationFailure  = "failed to configure command"
	flagNotDefinedMessage         = "flag %s not defined"
	environmentConfigurationError = "failed to apply environment configuration"
)

var (
	corsAllowedMethods = []string{httpMethodPost, httpMethodGet, httpMethodPatch, httpMethodDelete, httpMethodOptions}
	corsAllowedHeaders = []string{corsHeaderAuthorization, corsHeaderContentType}
	corsExposedHeaders = []string{corsHeaderContentType}
	corsAllowOrigins   = []string{corsOriginWildcard}
)

type flagBinding struct {
	environmentKey string
	flagName       string
	defaultValue   string
	usage          string
	required       bool
}

var flagBindings = []flagBinding{
	{environmentKeyApplicationAddress, flagNameApplicationAddress, defaultApplicationAddress, flagUsageApplicationAddress, false},
	{environmentKeyDatabaseDriver, flagNameDatabaseDriverName, defaultDatabaseDriverName, flagUsageDatabaseDriverName, false},
	{environmentKeyDatabaseDataSource, flagNameDatabaseDataSourceName, "", flagUsageDatabaseDataSourceName, true},
	{environmentKeyAdminTokenSecret, flagNameAdminTokenSecret, "", flagUsageAdminTokenSecret, true},
	{environmentKeySessionSecret, flagNameSessionSecret, "", flagUsageSessionSecret, true},
	{environmentKeyCachePath, flagNameCachePath, defaultCachePath, flagUsageCachePath, false},
	{environmentKeySMTPHost, flagNameSMTPHost, "", flagUsageSMTPHost, false},
	{environmentKeySMTPPort, flagNameSMTPPort, defaultSMTPPort, flagUsageSMTPPort, false},
	{environmentKeySMTPUsername, flagNameSMTPUsername, "", flagUsageSMTPUsername, false},
	{environmentKeySMTPPassword, flagNameSMTPPassword, "", flagUsageSMTPPassword, false},
	{environmentKeySMTPFromAddress, flagNameSMTPFromAddress, "", flagUsageSMTPFromAddress, false},
	{environmentKeySMTPFromName, flagNameSMTPFromName, "", flagUsageSMTPFromName, false},
}

// ServerConfig captures configuration needed to run the server.
type ServerConfig struct {
	ApplicationAddress     string
	DatabaseDriverName     string
	DatabaseDataSourceName string
	AdminTokenSecret       string
	SessionSecret          string
	CachePath              string
	SMTP                   httpapi.SMTPConfig
}

// DatabaseOpener opens a database connection using the provided configuration.
type DatabaseOpener func(storage.Config) (*gorm.DB, error)

// ServerApplication constructs and executes the server command.
type ServerApplication struct {
	configurationLoader *viper.Viper
	databaseOpener      DatabaseOpener
}

// NewServerApplication creates a ServerApplication with default dependencies.
func NewServerApplication() *ServerApplication {
	return &ServerApplication{
		configurationLoader: viper.New(),
		databaseOpener:      storage.OpenDatabase,
	}
}

// WithDatabaseOpener overrides the database opener dependency.
func (application *ServerApplication) WithDatabaseOpener(databaseOpener DatabaseOpener) *ServerApplication {
	application.databaseOpener = databaseOpener
	return application
}

// Command builds the Cobra command for the server.
func (application *ServerApplication) Command() (*cobra.Command, error) {
	rootCommand := &cobra.Command{
		Use:   commandUseName,
		Short: commandShortDescription,
		Long:  commandLongDescription,
		RunE:  application.runCommand,
	}

	if configurationErr := application.configureCommand(rootCommand); configurationErr != nil {
		return nil, configurationErr
	}

	return rootCommand, nil
}

func (application *ServerApplication) configureCommand(command *cobra.Command) error {
	application.configurationLoader.AutomaticEnv()

	commandFlags := command.Flags()
	for _, binding := range flagBindings {
		application.configurationLoader.SetDefault(binding.environmentKey, binding.defaultValue)
		commandFlags.String(binding.flagName, binding.defaultValue, binding.usage)
	}

	for _, binding := range flagBindings {
		if bindErr := application.bindFlag(commandFlags, binding.environmentKey, binding.flagName); bindErr != nil {
			return bindErr
		}

		if environmentErr := application.applyEnvironmentConfiguration(commandFlags, binding.environmentKey, binding.flagName); environmentErr != nil {
			return environmentErr
		}
	}

	return nil
}

func (application *ServerApplication) bindFlag(flagSet *pflag.FlagSet, environmentKey string, flagName string) error {
	flag := flagSet.Lookup(flagName)
	if flag == nil {
		return fmt.Errorf(flagNotDefinedMessage, flagName)
	}

	if bindErr := application.configurationLoader.BindPFlag(environmentKey, flag); bindErr != nil {
		return bindErr
	}

	return nil
}

func (application *ServerApplication) applyEnvironmentConfiguration(flagSet *pflag.FlagSet, environmentKey string, flagName string) error {
	environmentValue, environmentFound := os.LookupEnv(environmentKey)
	if !environmentFound {
		return nil
	}

	if setErr := flagSet.Set(flagName, environmentValue); setErr != nil {
		return fmt.Errorf("%s: %w", environmentConfigurationError, setErr)
	}

	return nil
}

func (application *ServerApplication) loadConfiguration() ServerConfig {
	return ServerConfig{
		ApplicationAddress:     application.configurationLoader.GetString(environmentKeyApplicationAddress),
		DatabaseDriverName:     strings.TrimSpace(application.configurationLoader.GetString(environmentKeyDatabaseDriver)),
		DatabaseDataSourceName: strings.TrimSpace(application.configurationLoader.GetString(environmentKeyDatabaseDataSource)),
		AdminTokenSecret:       strings.TrimSpace(application.configurationLoader.GetString(environmentKeyAdminTokenSecret)),
		SessionSecret:          strings.TrimSpace(application.configurationLoader.GetString(environmentKeySessionSecret)),
		CachePath:              strings.TrimSpace(application.configurationLoader.GetString(environmentKeyCachePath)),
		SMTP: httpapi.SMTPConfig{
			Host:        strings.TrimSpace(application.configurationLoader.GetString(environmentKeySMTPHost)),
			Port:        application.configurationLoader.GetInt(environmentKeySMTPPort),
			Username:    application.configurationLoader.GetString(environmentKeySMTPUsername),
			Password:    application.configurationLoader.GetString(environmentKeySMTPPassword),
			FromAddress: strings.TrimSpace(application.configurationLoader.GetString(environmentKeySMTPFromAddress)),
			FromName:    strings.TrimSpace(application.configurationLoader.GetString(environmentKeySMTPFromName)),
		},
	}
}

func (application *ServerApplication) runCommand(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return fmt.Errorf("%s: %s", unexpectedArgumentsMessage, strings.Join(arguments, " "))
	}

	serverConfig := application.loadConfiguration()

	if validationErr := application.ensureRequiredConfiguration(serverConfig); validationErr != nil {
		return validationErr
	}

	logger, loggerErr := zap.NewProduction()
	if loggerErr != nil {
		return fmt.Errorf("%s: %w", loggerCreationErrorMessage, loggerErr)
	}
	defer func() {
		_ = logger.Sync()
	}()

	database, databaseErr := application.databaseOpener(storage.Config{
		DriverName:     serverConfig.DatabaseDriverName,
		DataSourceName: serverConfig.DatabaseDataSourceName,
	})
	if databaseErr != nil {
		logger.Fatal(loggerContextOpenDatabase, zap.Error(databaseErr))
	}

	if migrateErr := storage.AutoMigrate(database); migrateErr != nil {
		logger.Fatal(loggerContextAutoMigrate, zap.Error(migrateErr))
	}

	router := buildRouter(database, logger, serverConfig)

	httpServer := &http.Server{
		Addr:              serverConfig.ApplicationAddress,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeoutSeconds * time.Second,
	}

	logger.Info(logEventListening, zap.String(logFieldAddress, serverConfig.ApplicationAddress))
	if serveErr := httpServer.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
		logger.Fatal(loggerContextServer, zap.Error(serveErr))
	}

	return nil
}

func buildRouter(database *gorm.DB, logger *zap.Logger, serverConfig ServerConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(httpapi.RequestLogger(logger))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     corsAllowOrigins,
		AllowMethods:     corsAllowedMethods,
		AllowHeaders:     corsAllowedHeaders,
		ExposeHeaders:    corsExposedHeaders,
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	inquiryStore := inquiry.NewStore(
		inquiry.NewRemoteRepository(database),
		inquiry.NewLocalCacheRepository(localcache.NewFileStore(serverConfig.CachePath)),
		logger,
	)
	matcher := chatbot.NewMatcher(chatbot.DefaultRules())

	var emailSender httpapi.EmailSender
	if serverConfig.SMTP.IsConfigured() {
		emailSender = httpapi.NewSMTPEmailSender(serverConfig.SMTP)
	} else {
		emailSender = httpapi.NewLogEmailSender(logger)
	}

	publicHandlers := httpapi.NewPublicHandlers(database, logger, inquiryStore, matcher, emailSender)
	authManager := httpapi.NewAuthManager(database, logger, serverConfig.SessionSecret, serverConfig.AdminTokenSecret)
	adminHandlers := httpapi.NewAdminHandlers(database, logger, inquiryStore)

	router.POST(publicRouteInquiries, publicHandlers.CreateInquiry)
	router.POST(publicRouteBookings, publicHandlers.CreateBooking)
	router.GET(publicRouteBookings, publicHandlers.ListBookings)
	router.POST(publicRouteChat, publicHandlers.Chat)
	router.GET(publicRoutePackages, publicHandlers.ListPackages)
	router.GET(publicRoutePackageBySlug, publicHandlers.GetPackageBySlug)

	adminGroup := router.Group(adminRoutePrefix)
	adminGroup.POST(adminRouteLogin, authManager.Login)
	adminGroup.POST(adminRouteLogout, authManager.Logout)

	protectedGroup := adminGroup.Group("")
	protectedGroup.Use(authManager.RequireAdminJSON())
	protectedGroup.GET(adminRouteInquiries, adminHandlers.ListInquiries)
	protectedGroup.PATCH(adminRouteInquiryByID, adminHandlers.UpdateInquiryStatus)
	protectedGroup.DELETE(adminRouteInquiryByID, adminHandlers.DeleteInquiry)
	protectedGroup.GET(adminRoutePackages, adminHandlers.ListPackages)
	protectedGroup.POST(adminRoutePackages, adminHandlers.CreatePackage)
	protectedGroup.POST(adminRoutePackagesSeed, adminHandlers.SeedPackages)
	protectedGroup.PATCH(adminRoutePackageByID, adminHandlers.UpdatePackage)
	protectedGroup.DELETE(adminRoutePackageByID, adminHandlers.DeletePackage)
	protectedGroup.GET(adminRouteFAQs, adminHandlers.ListFAQs)
	protectedGroup.POST(adminRouteFAQs, adminHandlers.CreateFAQ)
	protectedGroup.PATCH(adminRouteFAQByID, adminHandlers.UpdateFAQ)
	protectedGroup.DELETE(adminRouteFAQByID, adminHandlers.DeleteFAQ)

	return router
}

func (application *ServerApplication) ensureRequiredConfiguration(configuration ServerConfig) error {
	var missingParameters []string

	if configuration.DatabaseDataSourceName == "" {
		missingParameters = append(missingParameters, flagNameDatabaseDataSourceName)
	}

	if configuration.AdminTokenSecret == "" {
		missingParameters = append(missingParameters, flagNameAdminTokenSecret)
	}

	if configuration.SessionSecret == "" {
		missingParameters = append(missingParameters, flagNameSessionSecret)
	}

	if len(missingParameters) == 0 {
		return nil
	}

	return fmt.Errorf("%s: %s", missingConfigurationMessage, strings.Join(missingParameters, ", "))
}

func main() {
	_ = godotenv.Load()

	application := NewServerApplication()
	rootCommand, commandErr := application.Command()
	if commandErr != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", commandInitializationFailure, commandErr)
		os.Exit(1)
	}

	if executeErr := rootCommand.Execute(); executeErr != nil {
		os.Exit(1)
	}
}
