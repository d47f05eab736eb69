package utils

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"enquirydesk-backend/models"

	"github.com/google/uuid"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

// GetConfig reads the configuration from environment variables or config files
func GetConfig() (*models.Config, error) {
	config, err := load()
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	return config, nil
}

// load initializes and returns the application configuration using Viper
func load() (*models.Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../")

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("Config file not found (%v), using defaults and environment variables\n", err)
	} else {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	var config models.Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	// Application defaults
	v.SetDefault("app_name", "EnquiryDesk Backend")
	v.SetDefault("app_version", "1.0.0")
	v.SetDefault("app_env", "development")
	v.SetDefault("app_host", "0.0.0.0")
	v.SetDefault("app_port", "8080")

	// JWT defaults
	v.SetDefault("jwt_secret", "change-this-jwt-secret-before-production")
	v.SetDefault("jwt_expires_in", 24*time.Hour)
	v.SetDefault("refresh_expires_in", 7*24*time.Hour)

	// AWS defaults
	v.SetDefault("aws_region", "us-east-1")
	v.SetDefault("aws_access_key_id", "")
	v.SetDefault("aws_secret_access_key", "")
	v.SetDefault("dynamodb_endpoint", "")
	v.SetDefault("dynamodb_table_prefix", "dev")

	// Email defaults
	v.SetDefault("email_enabled", false)
	v.SetDefault("smtp_host", "smtp.gmail.com")
	v.SetDefault("smtp_port", "587")
	v.SetDefault("smtp_user", "")
	v.SetDefault("smtp_password", "")
	v.SetDefault("email_from_name", "EnquiryDesk")
	v.SetDefault("admin_email", "admin@example.com")

	// Follow-up worker: hourly sweep
	v.SetDefault("follow_up_schedule", "0 0 * * * *")

	// Logging defaults
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")

	// CORS defaults
	v.SetDefault("cors_origins", []string{"*"})

	// Base path default
	v.SetDefault("basePath", "/api/v1")

	// Tables to provision
	v.SetDefault("tables", []string{"enquiries", "admins"})
}

// validate checks if all required configuration is provided
func validate(c *models.Config) error {
	if c.JWTSecret == "change-this-jwt-secret-before-production" && c.AppEnv == "production" {
		return fmt.Errorf("JWT_SECRET must be set in production environment")
	}

	if c.EmailEnabled && (c.SMTPUser == "" || c.SMTPPassword == "") {
		return fmt.Errorf("SMTP credentials are required when email is enabled")
	}

	if c.AppEnv == "production" && c.AWSAccessKeyID == "" {
		fmt.Println("No AWS credentials provided, assuming IAM role is used")
	}

	return nil
}

// PrintPrettyJSON takes any struct or map and renders it as indented JSON
func PrintPrettyJSON(data interface{}) string {
	prettyJSON, err := json.MarshalIndent(data, "", "    ")
	if err != nil {
		fmt.Println("Failed to generate JSON:", err)
		return ""
	}
	return string(prettyJSON)
}

// GenerateUUID returns a new UUID string
func GenerateUUID() string {
	return uuid.New().String()
}

var uuidPattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// IsValidID reports whether id is a well-formed record identifier. Malformed
// ids must be rejected as bad requests rather than treated as absent records.
func IsValidID(id string) bool {
	return uuidPattern.MatchString(strings.ToLower(id))
}

// HashPassword hashes a plain text password using bcrypt.
func HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// CheckPassword compares a hashed password with a plain text password.
func CheckPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}
