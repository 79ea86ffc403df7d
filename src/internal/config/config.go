package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const defaultConnectionString = "Host=localhost;Port=5432;Database=somaluganda_remit_db;Username=postgres;Password=postgres;Timeout=30;CommandTimeout=30"
const defaultAdminPin = "1123"
const defaultGenAIBaseURL = "https://generativelanguage.googleapis.com"
const defaultGenAIModel = "gemini-2.5-flash"
const defaultInfobipBaseURL = "https://api.infobip.com"
const defaultDigestSchedule = "0 0 7 * * *"

const (
	LedgerStoreFile     = "file"
	LedgerStorePostgres = "postgres"
	LedgerStoreMongo    = "mongo"

	EmailProviderInfobip  = "infobip"
	EmailProviderSendGrid = "sendgrid"
)

type Config struct {
	ServerHost string `yaml:"server_host"`
	ServerPort string `yaml:"server_port"`

	LedgerStore   string `yaml:"ledger_store"`
	LedgerFile    string `yaml:"ledger_file"`
	DatabaseDSN   string `yaml:"database_dsn"`
	MigrationsDir string `yaml:"migrations_dir"`
	MongoURI      string `yaml:"mongo_uri"`
	MongoDatabase string `yaml:"mongo_database"`

	AdminPin     string `yaml:"admin_pin"`
	AdminPinHash string `yaml:"admin_pin_hash"`

	GenAIAPIKey  string        `yaml:"genai_api_key"`
	GenAIBaseURL string        `yaml:"genai_base_url"`
	GenAIModel   string        `yaml:"genai_model"`
	GenAITimeout time.Duration `yaml:"-"`
	OfflineMode  bool          `yaml:"offline_mode"`

	InfobipBaseURL string `yaml:"infobip_base_url"`
	InfobipAPIKey  string `yaml:"infobip_api_key"`
	WhatsAppSender string `yaml:"whatsapp_sender"`
	SMSSenderID    string `yaml:"sms_sender_id"`
	EmailSender    string `yaml:"email_sender"`
	AdminEmail     string `yaml:"admin_email"`
	EmailProvider  string `yaml:"email_provider"`
	SendGridAPIKey string `yaml:"sendgrid_api_key"`

	NotifyTimeout  time.Duration `yaml:"-"`
	NotifyRetryMax int           `yaml:"notify_retry_max"`

	DigestSchedule string `yaml:"digest_schedule"`

	AgentNumberSomalia string `yaml:"agent_number_somalia"`
	AgentNumberUganda  string `yaml:"agent_number_uganda"`

	GenAITimeoutSeconds  int `yaml:"genai_timeout_seconds"`
	NotifyTimeoutSeconds int `yaml:"notify_timeout_seconds"`
}

func Load() (Config, error) {
	cfg := defaults()

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	cfg.DatabaseDSN = normalizeConnectionString(cfg.DatabaseDSN)
	cfg.LedgerStore = strings.ToLower(strings.TrimSpace(cfg.LedgerStore))
	cfg.EmailProvider = strings.ToLower(strings.TrimSpace(cfg.EmailProvider))
	cfg.GenAITimeout = time.Duration(cfg.GenAITimeoutSeconds) * time.Second
	cfg.NotifyTimeout = time.Duration(cfg.NotifyTimeoutSeconds) * time.Second

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Offline reports whether generative calls should be skipped entirely.
func (c Config) Offline() bool {
	return c.OfflineMode || strings.TrimSpace(c.GenAIAPIKey) == ""
}

func (c Config) Address() string {
	return c.ServerHost + ":" + c.ServerPort
}

func defaults() Config {
	return Config{
		ServerHost:           "0.0.0.0",
		ServerPort:           "8080",
		LedgerStore:          LedgerStoreFile,
		LedgerFile:           filepath.Join("data", "ledger.json"),
		DatabaseDSN:          defaultConnectionString,
		MigrationsDir:        filepath.Join("src", "migrations"),
		MongoURI:             "mongodb://localhost:27017",
		MongoDatabase:        "somaluganda_remit",
		AdminPin:             defaultAdminPin,
		GenAIBaseURL:         defaultGenAIBaseURL,
		GenAIModel:           defaultGenAIModel,
		GenAITimeoutSeconds:  15,
		InfobipBaseURL:       defaultInfobipBaseURL,
		WhatsAppSender:       "447860099299",
		SMSSenderID:          "SomalUganda",
		EmailSender:          "SomalUganda Remit <remit@somaluganda.com>",
		AdminEmail:           "admin@somaluganda.com",
		EmailProvider:        EmailProviderInfobip,
		NotifyTimeoutSeconds: 10,
		NotifyRetryMax:       2,
		DigestSchedule:       defaultDigestSchedule,
		AgentNumberSomalia:   "+252 771 957 722",
		AgentNumberUganda:    "+256 779 334 452",
	}
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %q: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	stringVars := map[string]*string{
		"SERVER_HOST":          &cfg.ServerHost,
		"SERVER_PORT":          &cfg.ServerPort,
		"LEDGER_STORE":         &cfg.LedgerStore,
		"LEDGER_FILE":          &cfg.LedgerFile,
		"DATABASE_DSN":         &cfg.DatabaseDSN,
		"MIGRATIONS_DIR":       &cfg.MigrationsDir,
		"MONGO_URI":            &cfg.MongoURI,
		"MONGO_DATABASE":       &cfg.MongoDatabase,
		"ADMIN_PIN":            &cfg.AdminPin,
		"ADMIN_PIN_HASH":       &cfg.AdminPinHash,
		"GENAI_API_KEY":        &cfg.GenAIAPIKey,
		"GENAI_BASE_URL":       &cfg.GenAIBaseURL,
		"GENAI_MODEL":          &cfg.GenAIModel,
		"INFOBIP_BASE_URL":     &cfg.InfobipBaseURL,
		"INFOBIP_API_KEY":      &cfg.InfobipAPIKey,
		"WHATSAPP_SENDER":      &cfg.WhatsAppSender,
		"SMS_SENDER_ID":        &cfg.SMSSenderID,
		"EMAIL_SENDER":         &cfg.EmailSender,
		"ADMIN_EMAIL":          &cfg.AdminEmail,
		"EMAIL_PROVIDER":       &cfg.EmailProvider,
		"SENDGRID_API_KEY":     &cfg.SendGridAPIKey,
		"DIGEST_SCHEDULE":      &cfg.DigestSchedule,
		"AGENT_NUMBER_SOMALIA": &cfg.AgentNumberSomalia,
		"AGENT_NUMBER_UGANDA":  &cfg.AgentNumberUganda,
	}
	for key, target := range stringVars {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*target = v
		}
	}

	intVars := map[string]*int{
		"GENAI_TIMEOUT_SECONDS":  &cfg.GenAITimeoutSeconds,
		"NOTIFY_TIMEOUT_SECONDS": &cfg.NotifyTimeoutSeconds,
		"NOTIFY_RETRY_MAX":       &cfg.NotifyRetryMax,
	}
	for key, target := range intVars {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse %s: %w", key, err)
		}
		*target = n
	}

	if v := strings.TrimSpace(os.Getenv("OFFLINE_MODE")); v != "" {
		offline, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parse OFFLINE_MODE: %w", err)
		}
		cfg.OfflineMode = offline
	}

	return nil
}

func (c Config) validate() error {
	switch c.LedgerStore {
	case LedgerStoreFile, LedgerStorePostgres, LedgerStoreMongo:
	default:
		return fmt.Errorf("unsupported LEDGER_STORE %q", c.LedgerStore)
	}

	switch c.EmailProvider {
	case EmailProviderInfobip, EmailProviderSendGrid:
	default:
		return fmt.Errorf("unsupported EMAIL_PROVIDER %q", c.EmailProvider)
	}

	if c.AdminPin == "" && c.AdminPinHash == "" {
		return fmt.Errorf("ADMIN_PIN or ADMIN_PIN_HASH is required")
	}
	if c.GenAITimeoutSeconds <= 0 {
		return fmt.Errorf("GENAI_TIMEOUT_SECONDS must be greater than zero")
	}
	if c.NotifyTimeoutSeconds <= 0 {
		return fmt.Errorf("NOTIFY_TIMEOUT_SECONDS must be greater than zero")
	}
	if c.NotifyRetryMax < 0 {
		return fmt.Errorf("NOTIFY_RETRY_MAX cannot be negative")
	}

	return nil
}

func normalizeConnectionString(raw string) string {
	if strings.Contains(raw, "://") {
		return raw
	}

	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	hasSSLMode := false

	for _, part := range parts {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}

		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(kv[0]))
		val := strings.TrimSpace(kv[1])

		switch key {
		case "host":
			out = append(out, "host="+val)
		case "port":
			out = append(out, "port="+val)
		case "database":
			out = append(out, "dbname="+val)
		case "username":
			out = append(out, "user="+val)
		case "password":
			out = append(out, "password="+val)
		case "timeout", "connect timeout":
			out = append(out, "connect_timeout="+val)
		case "commandtimeout", "command timeout":
			out = append(out, "statement_timeout="+val+"s")
		case "sslmode":
			hasSSLMode = true
			out = append(out, "sslmode="+val)
		default:
			out = append(out, key+"="+val)
		}
	}

	if len(out) == 0 {
		return raw
	}

	if !hasSSLMode {
		out = append(out, "sslmode=disable")
	}

	return strings.Join(out, " ")
}
