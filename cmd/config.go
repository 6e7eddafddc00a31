package cmd

import "time"

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	OrderNumberPrefix string
	OrderNumberLength int
	DefaultCurrency   string

	ConfirmOnPayment      bool
	CompleteOnFulfillment bool
	AllowEdit             bool
	AllowCancel           bool
	TrackEvents           bool

	StalePendingTTL time.Duration
}
