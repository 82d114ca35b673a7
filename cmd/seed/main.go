package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/MirBabaTravels/booking_svc/internal/catalog"
	"github.com/MirBabaTravels/booking_svc/internal/model"
	"github.com/MirBabaTravels/booking_svc/internal/storage"
)

const (
	commandUseName          = "seed"
	commandShortDescription = "Seed the tour package catalog"
	commandLongDescription  = "Insert the builtin tour packages into the database, skipping slugs that already exist"

	flagNameDatabaseDriverName     = "db-driver"
	flagNameDatabaseDataSourceName = "db-dsn"

	flagUsageDatabaseDriverName     = "database driver name"
	flagUsageDatabaseDataSourceName = "database connection string"

	environmentKeyDatabaseDriver     = "DB_DRIVER"
	environmentKeyDatabaseDataSource = "DB_DSN"

	missingConfigurationMessage  = "missing required configuration"
	packageInsertedMessage       = "inserted: %s\n"
	packageSkippedMessage        = "skipped (already present): %s\n"
	seedSummaryMessage           = "done: %d inserted, %d skipped\n"
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

	return command
}

func runCommand(command *cobra.Command, arguments []string) error {
	driverName, _ := command.Flags().GetString(flagNameDatabaseDriverName)
	dataSourceName, _ := command.Flags().GetString(flagNameDatabaseDataSourceName)

	if environmentValue, found := os.LookupEnv(environmentKeyDatabaseDriver); found && driverName == storage.DriverNameSQLite {
		driverName = environmentValue
	}
	if environmentValue, found := os.LookupEnv(environmentKeyDatabaseDataSource); found && dataSourceName == "" {
		dataSourceName = environmentValue
	}

	if strings.TrimSpace(dataSourceName) == "" {
		return fmt.Errorf("%s: %s", missingConfigurationMessage, flagNameDatabaseDataSourceName)
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

	insertedCount := 0
	skippedCount := 0
	for _, builtinPackage := range catalog.Packages() {
		var existingCount int64
		if countErr := database.Model(&model.TourPackage{}).
			Where("slug = ?", builtinPackage.Slug).
			Count(&existingCount).Error; countErr != nil {
			return countErr
		}
		if existingCount > 0 {
			fmt.Printf(packageSkippedMessage, builtinPackage.Slug)
			skippedCount++
			continue
		}

		seededPackage := builtinPackage
		seededPackage.ID = storage.NewID()
		if createErr := database.Create(&seededPackage).Error; createErr != nil {
			return createErr
		}
		fmt.Printf(packageInsertedMessage, seededPackage.Slug)
		insertedCount++
	}

	fmt.Printf(seedSummaryMessage, insertedCount, skippedCount)
	return nil
}

func main() {
	_ = godotenv.Load()

	if executeErr := newCommand().Execute(); executeErr != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", commandInitializationFailure, executeErr)
		os.Exit(1)
	}
}
