package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/MirBabaTravels/booking_svc/internal/model"
	"github.com/MirBabaTravels/booking_svc/internal/storage"
)

const (
	commandUseName          = "createadmin"
	commandShortDescription = "Create an admin user"
	commandLongDescription  = "Create an admin user able to sign in to the booking back office"

	flagNameDatabaseDriverName     = "db-driver"
	flagNameDatabaseDataSourceName = "db-dsn"
	flagNameEmail                  = "email"
	flagNamePassword               = "password"
	flagNameDisplayName            = "name"

	flagUsageDatabaseDriverName     = "database driver name"
	flagUsageDatabaseDataSourceName = "database connection string"
	flagUsageEmail                  = "email address the admin signs in with"
	flagUsagePassword               = "password the admin signs in with"
	flagUsageDisplayName            = "display name shown in the back office"

	environmentKeyDatabaseDriver     = "DB_DRIVER"
	environmentKeyDatabaseDataSource = "DB_DSN"

	missingConfigurationMessage  = "missing required configuration"
	adminAlreadyExistsMessage    = "admin user already exists: %s\n"
	adminCreatedMessage          = "admin user created: %s\n"
	commandInitializationFailure = "failed to configure command"
)

func newCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   commandUseName,
		Short: commandShortDescription,
		Long:  commandLongDescription,
		RunE:  runCommand,
	}

	commandFlags := command.Flags()
	commandFlags.String(flagNameDatabaseDriverName, storage.DriverNameSQLite, flagUsageDatabaseDriverName)
	commandFlags.String(flagNameDatabaseDataSourceName, "", flagUsageDatabaseDataSourceName)
	commandFlags.String(flagNameEmail, "", flagUsageEmail)
	commandFlags.String(flagNamePassword, "", flagUsagePassword)
	commandFlags.String(flagNameDisplayName, "", flagUsageDisplayName)

	return command
}

func runCommand(command *cobra.Command, arguments []string) error {
	driverName, _ := command.Flags().GetString(flagNameDatabaseDriverName)
	dataSourceName, _ := command.Flags().GetString(flagNameDatabaseDataSourceName)
	email, _ := command.Flags().GetString(flagNameEmail)
	password, _ := command.Flags().GetString(flagNamePassword)
	displayName, _ := command.Flags().GetString(flagNameDisplayName)

	if environmentValue, found := os.LookupEnv(environmentKeyDatabaseDriver); found && driverName == storage.DriverNameSQLite {
		driverName = environmentValue
	}
	if environmentValue, found := os.LookupEnv(environmentKeyDatabaseDataSource); found && dataSourceName == "" {
		dataSourceName = environmentValue
	}

	email = strings.ToLower(strings.TrimSpace(email))
	displayName = strings.TrimSpace(displayName)

	var missingParameters []string
	if dataSourceName == "" {
		missingParameters = append(missingParameters, flagNameDatabaseDataSourceName)
	}
	if email == "" {
		missingParameters = append(missingParameters, flagNameEmail)
	}
	if password == "" {
		missingParameters = append(missingParameters, flagNamePassword)
	}
	if len(missingParameters) > 0 {
		return fmt.Errorf("%s: %s", missingConfigurationMessage, strings.Join(missingParameters, ", "))
	}

	database, databaseErr := storage.OpenDatabase(storage.Config{
		DriverName:     driverName,
		DataSourceName: dataSourceName,
	})
	if databaseErr != nil {
		return databaseErr
	}

	if migrateErr := storage.AutoMigrate(database); migrateErr != nil {
		return migrateErr
	}

	var existingAdmin model.AdminUser
	if lookupErr := database.First(&existingAdmin, "email = ?", email).Error; lookupErr == nil {
		fmt.Printf(adminAlreadyExistsMessage, email)
		return nil
	}

	passwordHash, hashErr := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if hashErr != nil {
		return hashErr
	}

	adminUser := model.AdminUser{
		ID:           storage.NewID(),
		Email:        email,
		Name:         displayName,
		PasswordHash: string(passwordHash),
	}
	if createErr := database.Create(&adminUser).Error; createErr != nil {
		return createErr
	}

	fmt.Printf(adminCreatedMessage, email)
	return nil
}

func main() {
	_ = godotenv.Load()

	if executeErr := newCommand().Execute(); executeErr != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", commandInitializationFailure, executeErr)
		os.Exit(1)
	}
}
