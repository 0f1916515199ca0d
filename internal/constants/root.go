package constants

import "time"

const (
	AppName            = "hush"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/hush/hush.db"
	Version            = "v0.3.0"

	// Environment variables
	EnvDBConnection = "HUSH_DB_CONNECTION"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "hush-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.hush"
	TrayExecutablePrefix   = "hush-tray"

	// History
	DefaultHistoryLimit = 20

	// Watch
	WatchTickInterval   = time.Second
	WatchReloadDebounce = 50 * time.Millisecond
)
