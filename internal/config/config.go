package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultTokenDuration = 24 * time.Hour

type (
	Container struct {
		App         *App
		Token       *Token
		DB          *DB
		HTTP        *HTTP
		Redis       *Redis
		Auth        *Auth
		Reservation *Reservation
		Storage     *Storage
		Mail        *Mail
		Uploads     *Uploads
	}

	App struct {
		Name string
		Env  string
	}

	Token struct {
		Secret   string
		Duration string
	}

	DB struct {
		URL      string
		Host     string
		Port     string
		User     string
		Password string
		Name     string
	}

	HTTP struct {
		Env            string
		Port           string
		AllowedOrigins string
		URL            string
		PublicBaseURL  string
	}

	Redis struct {
		Address  string
		Password string
	}

	Auth struct {
		LegacyHeaders bool
	}

	Reservation struct {
		Policy string
	}

	Storage struct {
		CloudName string
		APIKey    string
		APISecret string
		Folder    string
	}

	Mail struct {
		Host     string
		Port     int
		User     string
		Password string
		From     string
	}

	Uploads struct {
		Dir string
	}
)

func New() (*Container, error) {
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	app := &App{
		Name: getEnv("APP_NAME", "club-service"),
		Env:  getEnv("APP_ENV", "development"),
	}

	token := &Token{
		Secret:   os.Getenv("TOKEN_SECRET"),
		Duration: os.Getenv("TOKEN_DURATION"),
	}
	if token.Secret == "" {
		if app.Env == "production" {
			return nil, errors.New("TOKEN_SECRET is required in production")
		}
		token.Secret = "dev-secret"
	}

	db := &DB{
		URL:      os.Getenv("DATABASE_URL"),
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		Name:     os.Getenv("DB_NAME"),
	}

	http := &HTTP{
		Port:           getEnv("HTTP_PORT", "4000"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "*"),
		URL:            os.Getenv("HTTP_URL"),
		Env:            app.Env,
		PublicBaseURL:  getEnv("PUBLIC_BASE_URL", "http://localhost:5173"),
	}

	redis := &Redis{
		Address:  getEnv("REDIS_ADDRESS", "localhost:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
	}

	auth := &Auth{
		LegacyHeaders: getBool("AUTH_LEGACY_HEADERS"),
	}

	reservation := &Reservation{
		Policy: strings.ToLower(getEnv("RESERVATION_POLICY", "advisory")),
	}
	if reservation.Policy != "advisory" && reservation.Policy != "strict" {
		return nil, fmt.Errorf("RESERVATION_POLICY must be advisory or strict, got %q", reservation.Policy)
	}

	storage := &Storage{
		CloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		APIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		APISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		Folder:    getEnv("CLOUDINARY_FOLDER", "boat-reports"),
	}

	mailPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}
	mail := &Mail{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     mailPort,
		User:     os.Getenv("SMTP_USER"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     getEnv("SMTP_FROM", os.Getenv("SMTP_USER")),
	}

	uploads := &Uploads{
		Dir: getEnv("UPLOADS_DIR", "uploads"),
	}

	return &Container{
		App:         app,
		Token:       token,
		DB:          db,
		HTTP:        http,
		Redis:       redis,
		Auth:        auth,
		Reservation: reservation,
		Storage:     storage,
		Mail:        mail,
		Uploads:     uploads,
	}, nil
}

func (a *App) IsProduction() bool {
	return a.Env == "production"
}

// DSN prefers DATABASE_URL over the individual DB_* variables.
func (d *DB) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Password, d.Name)
}

// TTL parses Duration as a Go duration ("12h") or a number of hours, and
// falls back to 24h when unset or invalid.
func (t *Token) TTL() time.Duration {
	raw := strings.TrimSpace(t.Duration)
	if raw == "" {
		return defaultTokenDuration
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	if hours, err := strconv.Atoi(raw); err == nil && hours > 0 {
		return time.Duration(hours) * time.Hour
	}
	return defaultTokenDuration
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getBool(key string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	return err == nil && v
}
