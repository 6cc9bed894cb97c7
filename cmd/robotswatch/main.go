package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"

	"github.com/robotswatch/robotswatch/internal/config"
	"github.com/robotswatch/robotswatch/internal/datastore"
	"github.com/robotswatch/robotswatch/internal/differ"
	"github.com/robotswatch/robotswatch/internal/fetcher"
	"github.com/robotswatch/robotswatch/internal/history"
	"github.com/robotswatch/robotswatch/internal/logger"
	"github.com/robotswatch/robotswatch/internal/notifier"
	"github.com/robotswatch/robotswatch/internal/orchestrator"
	"github.com/robotswatch/robotswatch/internal/registry"
)

const smtpPasswordEnvVar = "ROBOTSWATCH_SMTP_PASSWORD"

func main() {
	flags := ParseFlags()

	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()

	gCfg, err := config.LoadGlobalConfig(flags.GlobalConfigFile)
	if err != nil {
		log.Fatalf("[FATAL] Main: Could not load global config using path '%s': %v", flags.GlobalConfigFile, err)
	}

	if flags.SitesFile != "" {
		gCfg.MonitorConfig.SitesFile = flags.SitesFile
	}

	// SMTP credentials come from the environment only, never from the
	// config file.
	gCfg.NotificationConfig.SMTPPassword = os.Getenv(smtpPasswordEnvVar)

	if err := config.ValidateConfig(gCfg); err != nil {
		log.Fatalf("[FATAL] Main: Configuration validation failed: %v", err)
	}

	zLogger, err := logger.New(gCfg.LogConfig)
	if err != nil {
		log.Fatalf("[FATAL] Main: Could not initialize logger: %v", err)
	}
	zLogger.Info().Msg("Configuration loaded and validated")

	if gCfg.MonitorConfig.SitesFile == "" {
		zLogger.Fatal().Msg("No site registry provided: set monitor_config.sites_file or pass -sites")
	}

	sites, err := registry.NewLoader(zLogger).Load(gCfg.MonitorConfig.SitesFile)
	if err != nil {
		zLogger.Fatal().Err(err).Str("file", gCfg.MonitorConfig.SitesFile).Msg("Failed to load site registry")
	}
	zLogger.Info().Int("sites", len(sites)).Msg("Site registry loaded")

	store, err := datastore.NewSnapshotStore(afero.NewOsFs(), gCfg.StorageConfig.DataDir, zLogger)
	if err != nil {
		zLogger.Fatal().Err(err).Str("data_dir", gCfg.StorageConfig.DataDir).Msg("Failed to initialize snapshot store")
	}

	robotsFetcher := fetcher.NewFetcher(nil, zLogger, &gCfg.MonitorConfig)
	detector := differ.NewChangeDetector(zLogger)

	var sender notifier.EmailSender
	if gCfg.NotificationConfig.EmailsEnabled {
		smtpSender, err := notifier.NewSMTPSender(gCfg.NotificationConfig)
		if err != nil {
			zLogger.Fatal().Err(err).Msg("Failed to initialize SMTP sender")
		}
		sender = smtpSender
	} else {
		zLogger.Info().Msg("Email notifications are disabled")
	}
	notificationHelper := notifier.NewNotificationHelper(sender, gCfg.NotificationConfig, zLogger)

	var recorder orchestrator.RunRecorder
	if gCfg.HistoryConfig.Enabled {
		db, err := history.NewDB(gCfg.HistoryDatabasePath(), zLogger)
		if err != nil {
			zLogger.Warn().Err(err).Str("path", gCfg.HistoryDatabasePath()).Msg("Run history database unavailable, continuing without history")
		} else {
			defer db.Close()
			recorder = db
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	o := orchestrator.NewOrchestrator(robotsFetcher, detector, store, notificationHelper, recorder, zLogger)
	summary := o.Run(ctx, sites)

	fmt.Println(summary.String())
}
