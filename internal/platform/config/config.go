// Package config loads service settings from defaults, an optional YAML
// file and PRIMEWEB_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override. A double underscore
// separates nesting levels: PRIMEWEB_RELAY__TIMEOUT=5s sets relay.timeout.
const EnvPrefix = "PRIMEWEB_"

// Store backends.
const (
	StoreMemory    = "memory"
	StoreFirestore = "firestore"
	StorePostgres  = "postgres"
)

type Config struct {
	Port        string         `koanf:"port"`
	SiteName    string         `koanf:"site_name"`
	BaseURL     string         `koanf:"base_url"`
	CORSOrigins string         `koanf:"cors_origins"`
	Relay       RelayConfig    `koanf:"relay"`
	WhatsApp    WhatsAppConfig `koanf:"whatsapp"`
	Booking     BookingConfig  `koanf:"booking"`
	Chat        ChatConfig     `koanf:"chat"`
	Consent     ConsentConfig  `koanf:"consent"`
	Firebase    FirebaseConfig `koanf:"firebase"`
	Postgres    PostgresConfig `koanf:"postgres"`
	Notify      NotifyConfig   `koanf:"notify"`
	Admin       AdminConfig    `koanf:"admin"`
}

type RelayConfig struct {
	Endpoint string        `koanf:"endpoint"`
	Timeout  time.Duration `koanf:"timeout"`
}

type WhatsAppConfig struct {
	Number         string `koanf:"number"`
	DefaultMessage string `koanf:"default_message"`
}

type BookingConfig struct {
	ScheduleURL string `koanf:"schedule_url"`
}

type ChatConfig struct {
	Language string        `koanf:"language"`
	Store    string        `koanf:"store"`
	MaxIdle  time.Duration `koanf:"max_idle"`
}

type ConsentConfig struct {
	Store       string        `koanf:"store"`
	BannerDelay time.Duration `koanf:"banner_delay"`
	CookieName  string        `koanf:"cookie_name"`
}

type FirebaseConfig struct {
	ProjectID   string `koanf:"project_id"`
	Credentials string `koanf:"credentials"`
}

type PostgresConfig struct {
	DSN string `koanf:"dsn"`
}

// AdminConfig grants admin scope to verified staff emails, on top of the
// "admin" custom claim.
type AdminConfig struct {
	Emails string `koanf:"emails"`
}

// NotifyConfig enables lead fan-out. Each channel is off while its key settings are empty.
type NotifyConfig struct {
	SNSTopicARN  string `koanf:"sns_topic_arn"`
	AWSRegion    string `koanf:"aws_region"`
	TwilioSID    string `koanf:"twilio_sid"`
	TwilioToken  string `koanf:"twilio_token"`
	TwilioFrom   string `koanf:"twilio_from"`
	TwilioTo     string `koanf:"twilio_to"`
	TwilioAsChat bool   `koanf:"twilio_whatsapp"`
}

// Default returns the settings the site runs with when nothing is configured.
func Default() *Config {
	return &Config{
		Port:     "8080",
		SiteName: "PRIME WEB",
		BaseURL:  "http://localhost:8080",
		Relay: RelayConfig{
			Endpoint: "https://formspree.io/f/xgooedeg",
			Timeout:  10 * time.Second,
		},
		WhatsApp: WhatsAppConfig{
			Number:         "34672616466",
			DefaultMessage: "¡Hola! Me interesa saber más sobre los servicios de PRIME WEB.",
		},
		Booking: BookingConfig{
			ScheduleURL: "https://calendar.google.com/calendar/appointments/schedules/AcZssZ1ENS987BXNL5VCg8PpnRx7MHxBF7bMgv5RZ9NFfsYfYsUFqZ3Y-Q3n-xTR6Bqgontctwsvxwiv?gv=true",
		},
		Chat: ChatConfig{
			Language: "es",
			Store:    StoreMemory,
			MaxIdle:  24 * time.Hour,
		},
		Consent: ConsentConfig{
			Store:       StoreMemory,
			BannerDelay: 1500 * time.Millisecond,
			CookieName:  "pw_visitor",
		},
		Notify: NotifyConfig{
			AWSRegion: "eu-west-1",
		},
	}
}

// Load builds a Config from Default, the YAML file at path (skipped when
// missing) and PRIMEWEB_* variables. A PORT variable wins over everything.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = port
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Validate reports every setting that would stop the service from working.
func (c *Config) Validate() error {
	var errs []error
	if c.Port == "" {
		errs = append(errs, errors.New("port is required"))
	}
	if u, err := url.Parse(c.Relay.Endpoint); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("relay.endpoint %q is not an absolute URL", c.Relay.Endpoint))
	}
	if c.Relay.Timeout <= 0 {
		errs = append(errs, errors.New("relay.timeout must be positive"))
	}
	if strings.Trim(c.WhatsApp.Number, "+ ") == "" {
		errs = append(errs, errors.New("whatsapp.number is required"))
	}
	if c.Chat.Language != "es" && c.Chat.Language != "en" {
		errs = append(errs, fmt.Errorf("chat.language %q is not supported", c.Chat.Language))
	}
	errs = append(errs, validateStore("chat.store", c.Chat.Store, StoreMemory, StoreFirestore, StorePostgres))
	errs = append(errs, validateStore("consent.store", c.Consent.Store, StoreMemory, StoreFirestore))
	if c.usesStore(StoreFirestore) && c.Firebase.ProjectID == "" {
		errs = append(errs, errors.New("firebase.project_id is required for the firestore store"))
	}
	if c.Chat.Store == StorePostgres && c.Postgres.DSN == "" {
		errs = append(errs, errors.New("postgres.dsn is required for the postgres store"))
	}
	if c.Consent.CookieName == "" {
		errs = append(errs, errors.New("consent.cookie_name is required"))
	}
	return errors.Join(errs...)
}

func validateStore(key, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("%s %q must be one of %s", key, value, strings.Join(allowed, ", "))
}

func (c *Config) usesStore(backend string) bool {
	return c.Chat.Store == backend || c.Consent.Store == backend
}

// UsesFirebase reports whether Firebase clients must be initialised.
func (c *Config) UsesFirebase() bool {
	return c.Firebase.ProjectID != "" || c.usesStore(StoreFirestore)
}

// AllowedOrigins splits cors_origins on commas. Empty means any origin.
func (c *Config) AllowedOrigins() []string {
	return splitList(c.CORSOrigins)
}

// AdminEmails splits admin.emails on commas.
func (c *Config) AdminEmails() []string {
	return splitList(c.Admin.Emails)
}

// SecureCookies reports whether the site is served over HTTPS.
func (c *Config) SecureCookies() bool {
	return strings.HasPrefix(c.BaseURL, "https://")
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// TwilioEnabled reports whether the Twilio notifier has everything it needs.
func (n NotifyConfig) TwilioEnabled() bool {
	return n.TwilioSID != "" && n.TwilioToken != "" && n.TwilioFrom != "" && n.TwilioTo != ""
}
