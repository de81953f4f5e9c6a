package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Gateway
		OverdueScan
		Tasks
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	Gateway struct {
		FailureRate float64 // Probability in [0,1] of simulated payment failure
	}
	OverdueScan struct {
		Enabled      bool
		Schedule     string        // Cron format: "0 8 * * *" = daily at 08:00
		NoticeWindow time.Duration // Skip pairs already noticed within this window
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8189)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)

	// Payment gateway simulation defaults
	v.SetDefault("gateway_failure_rate", 0.0)

	// Overdue scan defaults
	v.SetDefault("overdue_scan_enabled", true)
	v.SetDefault("overdue_scan_schedule", "0 8 * * *") // Daily at 08:00
	v.SetDefault("overdue_notice_window", "24h")

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Gateway: Gateway{
			FailureRate: v.GetFloat64("GATEWAY_FAILURE_RATE"),
		},
		OverdueScan: OverdueScan{
			Enabled:      v.GetBool("OVERDUE_SCAN_ENABLED"),
			Schedule:     v.GetString("OVERDUE_SCAN_SCHEDULE"),
			NoticeWindow: v.GetDuration("OVERDUE_NOTICE_WINDOW"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
	}
}
