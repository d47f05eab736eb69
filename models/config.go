package models

import "time"

// Config holds all configuration for the application
type Config struct {
	// Application
	AppName    string `mapstructure:"app_name"`
	AppVersion string `mapstructure:"app_version"`
	AppEnv     string `mapstructure:"app_env"`
	AppHost    string `mapstructure:"app_host"`
	AppPort    string `mapstructure:"app_port"`

	// JWT
	JWTSecret        string        `mapstructure:"jwt_secret"`
	JWTExpiresIn     time.Duration `mapstructure:"jwt_expires_in"`
	RefreshExpiresIn time.Duration `mapstructure:"refresh_expires_in"`

	// AWS
	AWSRegion           string `mapstructure:"aws_region"`
	AWSAccessKeyID      string `mapstructure:"aws_access_key_id"`
	AWSSecretAccessKey  string `mapstructure:"aws_secret_access_key"`
	DynamoDBEndpoint    string `mapstructure:"dynamodb_endpoint"`
	DynamoDBTablePrefix string `mapstructure:"dynamodb_table_prefix"`

	// Email
	EmailEnabled  bool   `mapstructure:"email_enabled"`
	SMTPHost      string `mapstructure:"smtp_host"`
	SMTPPort      string `mapstructure:"smtp_port"`
	SMTPUser      string `mapstructure:"smtp_user"`
	SMTPPassword  string `mapstructure:"smtp_password"`
	EmailFromName string `mapstructure:"email_from_name"`
	AdminEmail    string `mapstructure:"admin_email"`

	// Follow-up worker
	FollowUpSchedule string `mapstructure:"follow_up_schedule"`

	// Logging
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	// CORS
	CORSOrigins []string `mapstructure:"cors_origins"`

	// Base Path
	BasePath string `mapstructure:"basePath"`

	Tables []string `mapstructure:"tables"`
}
