package main

import (
	"fmt"
	"os"

	"github.com/bi-tools/board-pulse/pkg/server"
	"github.com/bi-tools/board-pulse/pkg/services/boards"
	"github.com/bi-tools/board-pulse/pkg/services/config"
	"github.com/bi-tools/board-pulse/pkg/store/monday"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	profilePath string
	profileName string
	serverCfg   string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the Board Pulse analytics server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&profilePath, "profiles", "p", "",
		"Path to the board credentials file (ini). Environment variables are used when omitted")
	rootCmd.Flags().StringVar(&profileName, "profile", config.DefaultProfile,
		"Credential profile to use")
	rootCmd.Flags().StringVarP(&serverCfg, "config", "c", "",
		"Path to the server settings file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	var registry config.Registry
	if profilePath != "" {
		var err error
		registry, err = config.NewRegistry(profilePath)
		if err != nil {
			return fmt.Errorf("failed to create config registry: %w", err)
		}
		logger.Info().Msgf("Credentials loaded from `%s`.", profilePath)
	} else {
		registry = config.NewEnvRegistry()
	}

	profile, err := registry.GetProfile(ctx, profileName)
	if err != nil {
		return fmt.Errorf("failed to resolve profile %s: %w", profileName, err)
	}

	settings, err := config.LoadServerSettings(serverCfg)
	if err != nil {
		return fmt.Errorf("failed to load server settings: %w", err)
	}

	storeSettings := monday.DefaultSettings(profile.Token, profile.DealsBoardID, profile.WorkOrdersBoardID)
	storeSettings.CacheTTL = settings.CacheTTL
	store := monday.NewClient(storeSettings)
	explorer := boards.NewExplorer(store)

	api := server.NewWebAPI(logger, server.Config{
		Addr:            settings.Addr,
		ShutdownTimeout: settings.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Boards: explorer,
		},
	})

	return api.Start()
}
