package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"net/netip"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/mehndi-booking-service/internal/domain"
	"github.com/m04kA/mehndi-booking-service/internal/service/pricing"
	"github.com/m04kA/mehndi-booking-service/pkg/types"
)

// Config is the whole service configuration
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Database  DatabaseConfig  `toml:"database"`
	Calendar  CalendarConfig  `toml:"calendar"`
	Stripe    StripeConfig    `toml:"stripe"`
	EmailJS   EmailJSConfig   `toml:"emailjs"`
	Booking   BookingConfig   `toml:"booking"`
	Pricing   PricingConfig   `toml:"pricing"`
	CORS      CORSConfig      `toml:"cors"`
	RateLimit RateLimitConfig `toml:"ratelimit"`
	RabbitMQ  RabbitMQConfig  `toml:"rabbitmq"`
}

type ServerConfig struct {
	HTTPPort        int   `toml:"http_port"`
	ReadTimeout     int   `toml:"read_timeout"`  // seconds
	WriteTimeout    int   `toml:"write_timeout"` // seconds
	IdleTimeout     int   `toml:"idle_timeout"`  // seconds
	ShutdownTimeout int   `toml:"shutdown_timeout"`
	MaxBodyBytes    int64 `toml:"max_body_bytes"`

	// TrustedProxies are addresses or CIDRs allowed to set X-Forwarded-For
	TrustedProxies []string `toml:"trusted_proxies"`
}

// Proxies parses TrustedProxies. A bare address is a single-host prefix.
func (s ServerConfig) Proxies() ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(s.TrustedProxies))
	for _, raw := range s.TrustedProxies {
		raw = strings.TrimSpace(raw)
		if strings.Contains(raw, "/") {
			p, err := netip.ParsePrefix(raw)
			if err != nil {
				return nil, fmt.Errorf("server.trusted_proxies %q: %v", raw, err)
			}
			prefixes = append(prefixes, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(raw)
		if err != nil {
			return nil, fmt.Errorf("server.trusted_proxies %q: %v", raw, err)
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"` // empty = stdout
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // seconds
}

// DSN returns the lib/pq connection string
func (c DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:   c.DBName,
	}
	q := u.Query()
	q.Set("sslmode", c.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

type CalendarConfig struct {
	CalendarID      string `toml:"calendar_id"`
	CredentialsFile string `toml:"credentials_file"`
	Timeout         int    `toml:"timeout"` // seconds
}

type StripeConfig struct {
	SecretKey         string `toml:"secret_key"`
	WebhookSecret     string `toml:"webhook_secret"`
	WebhookTolerance  int    `toml:"webhook_tolerance"` // seconds
	Timeout           int    `toml:"timeout"`           // seconds
	MaxNetworkRetries int64  `toml:"max_network_retries"`
}

type EmailJSConfig struct {
	BaseURL            string `toml:"base_url"`
	ServiceID          string `toml:"service_id"`
	PublicKey          string `toml:"public_key"`
	PrivateKey         string `toml:"private_key"`
	OwnerTemplateID    string `toml:"owner_template_id"`
	CustomerTemplateID string `toml:"customer_template_id"`
	RefundTemplateID   string `toml:"refund_template_id"`
	OwnerEmail         string `toml:"owner_email"`
	Timeout            int    `toml:"timeout"` // seconds
}

type BookingConfig struct {
	Timezone        string         `toml:"timezone"`
	LookaheadDays   int            `toml:"lookahead_days"`
	DurationMinutes int            `toml:"duration_minutes"`
	RequireTerms    bool           `toml:"require_terms"`
	Currency        string         `toml:"currency"`
	Windows         []WindowConfig `toml:"windows"`
	// PackageDurations overrides the duration per package, in minutes
	PackageDurations map[string]int `toml:"package_durations"`

	WebhookMaxAttempts  int `toml:"webhook_max_attempts"`
	WebhookClaimTimeout int `toml:"webhook_claim_timeout"` // seconds
}

type WindowConfig struct {
	Label string `toml:"label"`
	From  string `toml:"from"`
	To    string `toml:"to"`
}

// PricingConfig amounts are in pounds
type PricingConfig struct {
	Packages          []PackageConfig `toml:"packages"`
	GuestHourlyRate   float64         `toml:"guest_hourly_rate"`
	BridalDiscount    float64         `toml:"bridal_discount"`
	PackageDeposit    float64         `toml:"package_deposit"`
	PerPersonDeposit  float64         `toml:"per_person_deposit"`
	GuestDeposit      float64         `toml:"guest_deposit"`
	AdditionalPricing string          `toml:"additional_person_pricing"`
}

type PackageConfig struct {
	Name   string  `toml:"name"`
	Price  float64 `toml:"price"`
	Bridal bool    `toml:"bridal"`
}

type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
	AllowedMethods []string `toml:"allowed_methods"`
	AllowedHeaders []string `toml:"allowed_headers"`
	MaxAge         int      `toml:"max_age"` // seconds
}

type RateLimitConfig struct {
	Enabled       bool   `toml:"enabled"`
	Requests      int    `toml:"requests"`
	WindowSeconds int    `toml:"window_seconds"`
	FailOpen      bool   `toml:"fail_open"`
	RedisAddr     string `toml:"redis_addr"` // empty = in-process limiter
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	RedisPrefix   string `toml:"redis_prefix"`
}

type RabbitMQConfig struct {
	URL      string `toml:"url"` // empty = escalations stay in the database
	Exchange string `toml:"exchange"`
}

// Load reads .env (if present), the TOML file at path and the environment,
// then validates the result.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg, err := decode(path)
	if err != nil {
		return nil, err
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode overlays the file on the defaults. Arrays of tables replace the
// default arrays as a whole instead of merging element by element.
func decode(path string) (*Config, error) {
	defaults := Default()
	cfg := Default()
	cfg.Pricing.Packages = nil
	cfg.Booking.Windows = nil

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if !md.IsDefined("pricing", "packages") {
		cfg.Pricing.Packages = defaults.Pricing.Packages
	}
	if !md.IsDefined("booking", "windows") {
		cfg.Booking.Windows = defaults.Booking.Windows
	}
	return cfg, nil
}

// Default returns the settings used for anything the file leaves out
func Default() *Config {
	rules := pricing.DefaultRules()
	packages := make([]PackageConfig, 0, len(rules.Packages))
	for _, p := range rules.Packages {
		packages = append(packages, PackageConfig{Name: p.Name, Price: toPounds(p.Price), Bridal: p.Bridal})
	}

	windows := make([]WindowConfig, 0, 2)
	for _, w := range domain.DefaultWindows() {
		windows = append(windows, WindowConfig{Label: string(w.Label), From: w.From.String(), To: w.To.String()})
	}

	return &Config{
		Server: ServerConfig{
			HTTPPort:        3001,
			ReadTimeout:     15,
			WriteTimeout:    30,
			IdleTimeout:     60,
			ShutdownTimeout: 20,
			MaxBodyBytes:    64 << 10,
		},
		Logs:     LogsConfig{Level: "info"},
		Metrics:  MetricsConfig{Enabled: true, Path: "/metrics", ServiceName: "mehndi-booking-service"},
		Database: DatabaseConfig{Host: "localhost", Port: 5432, SSLMode: "disable", MaxOpenConns: 10, MaxIdleConns: 5, ConnMaxLifetime: 300},
		Calendar: CalendarConfig{Timeout: 10},
		Stripe:   StripeConfig{WebhookTolerance: 300, Timeout: 15, MaxNetworkRetries: 2},
		EmailJS:  EmailJSConfig{BaseURL: "https://api.emailjs.com", Timeout: 10},
		Booking: BookingConfig{
			Timezone:            domain.DefaultLocation,
			LookaheadDays:       domain.DefaultLookaheadDays,
			DurationMinutes:     int(domain.DefaultBookingDuration / time.Minute),
			RequireTerms:        true,
			Currency:            domain.DefaultCurrency,
			Windows:             windows,
			WebhookMaxAttempts:  5,
			WebhookClaimTimeout: 120,
		},
		Pricing: PricingConfig{
			Packages:          packages,
			GuestHourlyRate:   toPounds(rules.GuestHourlyRate),
			BridalDiscount:    toPounds(rules.BridalDiscount),
			PackageDeposit:    toPounds(rules.PackageDeposit),
			PerPersonDeposit:  toPounds(rules.PerPersonDeposit),
			GuestDeposit:      toPounds(rules.GuestDeposit),
			AdditionalPricing: string(rules.AdditionalPricing),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"http://localhost:5173", "http://localhost:5174", "https://amys-mehndi-booking.web.app"},
			AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", "stripe-signature"},
			MaxAge:         600,
		},
		RateLimit: RateLimitConfig{Enabled: true, Requests: 10, WindowSeconds: 60, FailOpen: true, RedisPrefix: "mehndi:book"},
		RabbitMQ:  RabbitMQConfig{Exchange: "bookings.escalations"},
	}
}

// applyEnv lets secrets live outside the config file
func (c *Config) applyEnv() {
	setString(&c.Stripe.SecretKey, "STRIPE_SECRET_KEY")
	setString(&c.Stripe.WebhookSecret, "STRIPE_WEBHOOK_SECRET")
	setString(&c.Calendar.CalendarID, "GOOGLE_CALENDAR_ID")
	setString(&c.Calendar.CredentialsFile, "GOOGLE_APPLICATION_CREDENTIALS")
	setString(&c.EmailJS.ServiceID, "EMAILJS_SERVICE_ID")
	setString(&c.EmailJS.PublicKey, "EMAILJS_PUBLIC_KEY")
	setString(&c.EmailJS.PrivateKey, "EMAILJS_PRIVATE_KEY")
	setString(&c.EmailJS.OwnerTemplateID, "EMAILJS_OWNER_TEMPLATE_ID")
	setString(&c.EmailJS.CustomerTemplateID, "EMAILJS_CUSTOMER_TEMPLATE_ID")
	setString(&c.EmailJS.RefundTemplateID, "EMAILJS_REFUND_TEMPLATE_ID")
	setString(&c.EmailJS.OwnerEmail, "OWNER_EMAIL")
	setString(&c.Database.Host, "DB_HOST")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.DBName, "DB_NAME")
	setString(&c.RabbitMQ.URL, "RABBITMQ_URL")
	setString(&c.RateLimit.RedisAddr, "REDIS_ADDR")
	setString(&c.RateLimit.RedisPassword, "REDIS_PASSWORD")

	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.HTTPPort = port
		}
	}
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

// Validate reports every missing credential and invalid setting at once
func (c *Config) Validate() error {
	var problems []string
	require := func(value, name string) {
		if strings.TrimSpace(value) == "" {
			problems = append(problems, name+" is required")
		}
	}

	require(c.Stripe.SecretKey, "stripe.secret_key (STRIPE_SECRET_KEY)")
	require(c.Stripe.WebhookSecret, "stripe.webhook_secret (STRIPE_WEBHOOK_SECRET)")
	require(c.Calendar.CalendarID, "calendar.calendar_id (GOOGLE_CALENDAR_ID)")
	require(c.Calendar.CredentialsFile, "calendar.credentials_file (GOOGLE_APPLICATION_CREDENTIALS)")
	require(c.EmailJS.ServiceID, "emailjs.service_id (EMAILJS_SERVICE_ID)")
	require(c.EmailJS.PublicKey, "emailjs.public_key (EMAILJS_PUBLIC_KEY)")
	require(c.EmailJS.OwnerTemplateID, "emailjs.owner_template_id (EMAILJS_OWNER_TEMPLATE_ID)")
	require(c.EmailJS.CustomerTemplateID, "emailjs.customer_template_id (EMAILJS_CUSTOMER_TEMPLATE_ID)")
	require(c.Database.Host, "database.host")
	require(c.Database.DBName, "database.dbname")

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		problems = append(problems, fmt.Sprintf("server.http_port %d is out of range", c.Server.HTTPPort))
	}
	if _, err := c.Schedule(); err != nil {
		problems = append(problems, err.Error())
	}
	if _, err := pricing.NewCalculator(c.PricingRules()); err != nil {
		problems = append(problems, err.Error())
	}
	if _, err := c.Server.Proxies(); err != nil {
		problems = append(problems, err.Error())
	}
	if c.RateLimit.Enabled && c.RateLimit.Requests <= 0 {
		problems = append(problems, "ratelimit.requests must be positive")
	}

	if len(problems) > 0 {
		return &domain.ConfigurationError{Problems: problems}
	}
	return nil
}

// Schedule builds the booking time rules
func (c *Config) Schedule() (*domain.Schedule, error) {
	b := c.Booking
	loc, err := time.LoadLocation(b.Timezone)
	if err != nil {
		return nil, fmt.Errorf("booking.timezone %q: %v", b.Timezone, err)
	}
	if b.DurationMinutes <= 0 {
		return nil, fmt.Errorf("booking.duration_minutes must be positive")
	}
	if b.LookaheadDays <= 0 {
		return nil, fmt.Errorf("booking.lookahead_days must be positive")
	}
	if len(b.Windows) == 0 {
		return nil, fmt.Errorf("booking.windows must not be empty")
	}

	windows := make([]domain.Window, 0, len(b.Windows))
	for _, w := range b.Windows {
		from, errFrom := types.NewTimeStringFromString(w.From)
		to, errTo := types.NewTimeStringFromString(w.To)
		if err := errors.Join(errFrom, errTo); err != nil {
			return nil, fmt.Errorf("booking.windows %q: %v", w.Label, err)
		}
		if w.Label == "" || to.IsBefore(from) {
			return nil, fmt.Errorf("booking.windows %q: invalid range %s-%s", w.Label, from, to)
		}
		windows = append(windows, domain.Window{Label: domain.SlotLabel(w.Label), From: from, To: to})
	}

	var durations map[string]time.Duration
	if len(b.PackageDurations) > 0 {
		durations = make(map[string]time.Duration, len(b.PackageDurations))
		for name, minutes := range b.PackageDurations {
			durations[name] = time.Duration(minutes) * time.Minute
		}
	}

	return &domain.Schedule{
		Location:         loc,
		Windows:          windows,
		DefaultDuration:  time.Duration(b.DurationMinutes) * time.Minute,
		PackageDurations: durations,
		LookaheadDays:    b.LookaheadDays,
	}, nil
}

// PricingRules converts the pound amounts to pricing rules
func (c *Config) PricingRules() pricing.Rules {
	p := c.Pricing
	packages := make([]pricing.Package, 0, len(p.Packages))
	for _, pkg := range p.Packages {
		packages = append(packages, pricing.Package{Name: pkg.Name, Price: toMoney(pkg.Price), Bridal: pkg.Bridal})
	}
	return pricing.Rules{
		Packages:          packages,
		GuestHourlyRate:   toMoney(p.GuestHourlyRate),
		BridalDiscount:    toMoney(p.BridalDiscount),
		PackageDeposit:    toMoney(p.PackageDeposit),
		PerPersonDeposit:  toMoney(p.PerPersonDeposit),
		GuestDeposit:      toMoney(p.GuestDeposit),
		AdditionalPricing: pricing.AdditionalPricing(p.AdditionalPricing),
	}
}

func toMoney(pounds float64) domain.Money {
	return domain.Money(math.Round(pounds * 100))
}

func toPounds(m domain.Money) float64 {
	return float64(m.Pence()) / 100
}

// Seconds converts an integer setting to a duration
func Seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
