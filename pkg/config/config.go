// Package config holds the env-driven configuration shared by the service
// binaries. Values load through cleanenv struct tags; nothing here is
// hardcoded into the verification logic itself.
package config

import (
	"fmt"
	"time"

	dbutils "github.com/tendant/db-utils/db"
	"github.com/webmenu/webmenu-auth/pkg/notification"
)

// DatabaseConfig holds PostgreSQL database configuration
type DatabaseConfig struct {
	Host     string `env:"AUTH_PG_HOST" env-default:"localhost"`
	Port     uint16 `env:"AUTH_PG_PORT" env-default:"5432"`
	Database string `env:"AUTH_PG_DATABASE" env-default:"webmenu_auth"`
	User     string `env:"AUTH_PG_USER" env-default:"webmenu"`
	Password string `env:"AUTH_PG_PASSWORD" env-default:"pwd"`
}

// ToDatabaseURL converts the config to a PostgreSQL connection URL
func (d DatabaseConfig) ToDatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		d.User, d.Password, d.Host, d.Port, d.Database)
}

// ToDbConfig converts the config to a db-utils DbConfig
func (d DatabaseConfig) ToDbConfig() dbutils.DbConfig {
	return dbutils.DbConfig{
		Host:     d.Host,
		Port:     d.Port,
		Database: d.Database,
		User:     d.User,
		Password: d.Password,
	}
}

// EmailConfig holds SMTP email configuration
type EmailConfig struct {
	Host     string `env:"EMAIL_HOST" env-default:"localhost"`
	Port     uint16 `env:"EMAIL_PORT" env-default:"1025"`
	Username string `env:"EMAIL_USERNAME" env-default:""`
	Password string `env:"EMAIL_PASSWORD" env-default:""`
	From     string `env:"EMAIL_FROM" env-default:"noreply@example.com"`
	TLS      bool   `env:"EMAIL_TLS" env-default:"false"`
}

// ToSMTPConfig converts the config to a notification.SMTPConfig
func (e EmailConfig) ToSMTPConfig() notification.SMTPConfig {
	return notification.SMTPConfig{
		Host:     e.Host,
		Port:     int(e.Port),
		Username: e.Username,
		Password: e.Password,
		From:     e.From,
		TLS:      e.TLS,
	}
}

// TwoFactorConfig holds per-mechanism verification settings
type TwoFactorConfig struct {
	// EmailCodeTTL is the lifetime of a mailed one-time code
	EmailCodeTTL time.Duration `env:"TWOFA_EMAIL_CODE_TTL" env-default:"5m"`
	// TotpPeriod is the authenticator time-step length in seconds
	TotpPeriod uint `env:"TWOFA_TOTP_PERIOD" env-default:"30"`
	// TotpSkew is how many adjacent time steps are accepted
	TotpSkew uint `env:"TWOFA_TOTP_SKEW" env-default:"1"`
}

// JwtConfig holds token verification configuration
type JwtConfig struct {
	JwtSecret string        `env:"JWT_SECRET" env-default:"very-secure-jwt-secret"`
	Expiry    time.Duration `env:"JWT_EXPIRY" env-default:"1h"`
}
