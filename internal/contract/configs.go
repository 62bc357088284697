package contract

import (
	"fmt"
	"maps"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/dorascope/dorascope/schema"
)

// Default values for configuration.
const (
	DefaultPeriodDays = 30
	MaxPeriodDays     = 365
	MaxTrendWeeks     = 52
	DefaultPrecision  = 1
)

// Webhook kinds accepted by the health notification flags.
const (
	WebhookSlack = "slack"
	WebhookTeams = "teams"
	WebhookHTTP  = "http"
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// DateOnlyFormat is the calendar date representation accepted by --date.
var DateOnlyFormat = time.DateOnly

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// MetricThresholdRaw holds the custom boundaries for a single metric.
// Only fields that might be customized are included. Use float64 pointers for optional fields.
type MetricThresholdRaw struct {
	Good    *float64 `mapstructure:"good"`
	Warning *float64 `mapstructure:"warning"`
}

// ThresholdsRawInput holds all health threshold definitions from the YAML config file.
type ThresholdsRawInput struct {
	LeadTime      *MetricThresholdRaw `mapstructure:"lead_time"`
	ChangeFailure *MetricThresholdRaw `mapstructure:"change_failure_rate"`
	Recovery      *MetricThresholdRaw `mapstructure:"mttr"`
	CycleTime     *MetricThresholdRaw `mapstructure:"cycle_time"`
}

// Config holds the runtime configuration for metric collection and reporting.
// This struct remains the "final, validated" config.
type Config struct {
	Repos      []string
	PeriodDays int
	Date       time.Time
	TrendWeeks int
	Workers    int
	Detail     bool
	Precision  int
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)

	Token       string // Please use env var as this is plaintext
	APIBaseURL  string
	Environment string
	EventsFile  string

	ExcludeLabels []string
	BaseBranches  []string

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	// HealthThresholds is a mapping of [MetricKey] = good/warning boundaries
	HealthThresholds map[schema.MetricKey]schema.Threshold

	FailOn      schema.HealthStatus
	WebhookURL  string
	WebhookType string

	ServeAddr   string
	FromHistory bool

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	ReposArgs []string

	// --- Fields from rootCmd.PersistentFlags() ---
	Repos            string `mapstructure:"repos"`
	Period           int    `mapstructure:"period"`
	Date             string `mapstructure:"date"`
	Workers          int    `mapstructure:"workers"`
	Detail           bool   `mapstructure:"detail"`
	Precision        int    `mapstructure:"precision"`
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Width            int    `mapstructure:"width"`
	Token            string `mapstructure:"token"`
	APIBaseURL       string `mapstructure:"api-base-url"`
	Environment      string `mapstructure:"environment"`
	ExcludeLabels    string `mapstructure:"exclude-labels"`
	BaseBranches     string `mapstructure:"base-branches"`
	EventsFile       string `mapstructure:"events-file"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`
	Emoji            string `mapstructure:"emoji"`
	Color            string `mapstructure:"color"`

	// --- Fields from trendsCmd.Flags() ---
	Weeks int `mapstructure:"weeks"`

	// --- Fields from overviewCmd.Flags() ---
	FromHistory bool `mapstructure:"from-history"`

	// --- Fields from healthCmd.Flags() ---
	FailOn        string `mapstructure:"fail-on"`
	ThresholdsStr string `mapstructure:"thresholds-override"`
	WebhookURL    string `mapstructure:"webhook-url"`
	WebhookType   string `mapstructure:"webhook-type"`

	// --- Fields from serveCmd.Flags() ---
	ServeAddr string `mapstructure:"serve-addr"`

	// --- Health thresholds from config file ---
	Thresholds ThresholdsRawInput `mapstructure:"thresholds"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Repos != nil {
		clone.Repos = make([]string, len(c.Repos))
		copy(clone.Repos, c.Repos)
	}
	if c.ExcludeLabels != nil {
		clone.ExcludeLabels = make([]string, len(c.ExcludeLabels))
		copy(clone.ExcludeLabels, c.ExcludeLabels)
	}
	if c.BaseBranches != nil {
		clone.BaseBranches = make([]string, len(c.BaseBranches))
		copy(clone.BaseBranches, c.BaseBranches)
	}
	if c.HealthThresholds != nil {
		clone.HealthThresholds = make(map[schema.MetricKey]schema.Threshold)
		maps.Copy(clone.HealthThresholds, c.HealthThresholds)
	}
	return &clone
}

// GetWindowStart returns the start of the reporting window.
func (c *Config) GetWindowStart() time.Time {
	return c.Date.AddDate(0, 0, -c.PeriodDays)
}

// GetWindowEnd returns the end of the reporting window.
func (c *Config) GetWindowEnd() time.Time {
	return c.Date
}

// ProcessAndValidate performs all complex parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	// All validation functions read from 'input' and populate 'cfg'.
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processPeriodAndDate(cfg, input); err != nil {
		return err
	}
	if err := processRepos(cfg, input); err != nil {
		return err
	}
	if err := processEventFilters(cfg, input); err != nil {
		return err
	}
	if err := processHealthThresholds(cfg, input); err != nil {
		return err
	}
	if err := processBackendConfig(cfg, input); err != nil {
		return err
	}
	if err := processNotify(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		hasURLForm := strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://")
		if !hasURLForm && !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must be a postgres:// URL or contain 'host=' parameter")
		}
	}
	return nil
}

// validateSimpleInputs processes and validates all non-repository fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Detail = input.Detail
	cfg.Width = input.Width
	cfg.FromHistory = input.FromHistory
	cfg.ServeAddr = strings.TrimSpace(input.ServeAddr)

	// Parse emoji flag
	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Workers Validation ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 2. TrendWeeks Validation ---
	// Zero means "not set"; the trend builder substitutes its default.
	if input.Weeks < 0 {
		return fmt.Errorf("weeks must be greater than 0 (received %d)", input.Weeks)
	}
	if input.Weeks > MaxTrendWeeks {
		return fmt.Errorf("weeks cannot exceed %d (received %d)", MaxTrendWeeks, input.Weeks)
	}
	cfg.TrendWeeks = input.Weeks

	// --- 3. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", cfg.Output)
	}

	return nil
}

// processPeriodAndDate validates the reporting period and resolves the report date.
func processPeriodAndDate(cfg *Config, input *ConfigRawInput) error {
	if input.Period <= 0 || input.Period > MaxPeriodDays {
		return fmt.Errorf("period must be between 1 and %d days (received %d)", MaxPeriodDays, input.Period)
	}
	cfg.PeriodDays = input.Period

	now := time.Now()
	cfg.Date = now

	if input.Date != "" {
		if t, err := time.Parse(DateOnlyFormat, input.Date); err == nil {
			cfg.Date = t.UTC()
		} else if t, err := time.Parse(DateTimeFormat, input.Date); err == nil {
			cfg.Date = t
		} else {
			t, relErr := ParseRelativeTime(input.Date, now)
			if relErr != nil {
				return fmt.Errorf("invalid date format for '%s'. Expected YYYY-MM-DD, absolute ISO8601 or 'N [units] ago': %v", input.Date, relErr)
			}
			cfg.Date = t
		}
	}

	return nil
}

// processRepos merges positional arguments with the --repos flag, validates the
// owner/name format and removes duplicates while preserving order.
func processRepos(cfg *Config, input *ConfigRawInput) error {
	var repos []string
	seen := make(map[string]struct{})

	add := func(raw string) error {
		repo := strings.TrimSpace(raw)
		if repo == "" {
			return nil
		}
		if _, _, ok := schema.SplitRepo(repo); !ok {
			return fmt.Errorf("invalid repository '%s'. Expected owner/name format", repo)
		}
		if _, dup := seen[repo]; dup {
			return nil
		}
		seen[repo] = struct{}{}
		repos = append(repos, repo)
		return nil
	}

	for _, arg := range input.ReposArgs {
		if err := add(arg); err != nil {
			return err
		}
	}
	for _, repo := range schema.ParseList(input.Repos) {
		if err := add(repo); err != nil {
			return err
		}
	}

	// An empty list is allowed here so that the serve and mcp surfaces can
	// start without repositories and receive them per request. The report
	// pipeline rejects an empty list at execution time.
	cfg.Repos = repos
	return nil
}

// processEventFilters handles the collection source and the event filters.
func processEventFilters(cfg *Config, input *ConfigRawInput) error {
	cfg.Token = input.Token
	cfg.APIBaseURL = strings.TrimSpace(input.APIBaseURL)
	cfg.Environment = strings.TrimSpace(input.Environment)
	cfg.EventsFile = strings.TrimSpace(input.EventsFile)
	cfg.ExcludeLabels = schema.ParseList(input.ExcludeLabels)
	cfg.BaseBranches = schema.ParseList(input.BaseBranches)
	return nil
}

// processHealthThresholds merges default thresholds with config file values.
// Command-line --thresholds-override flag takes precedence over config file settings.
func processHealthThresholds(cfg *Config, input *ConfigRawInput) error {
	thresholds := schema.GetDefaultThresholds()

	applyRaw := func(key schema.MetricKey, raw *MetricThresholdRaw) {
		if raw == nil {
			return
		}
		threshold := thresholds[key]
		if raw.Good != nil {
			threshold.Good = *raw.Good
		}
		if raw.Warning != nil {
			threshold.Warning = *raw.Warning
		}
		thresholds[key] = threshold
	}
	applyRaw(schema.LeadTimeMetric, input.Thresholds.LeadTime)
	applyRaw(schema.FailureRateMetric, input.Thresholds.ChangeFailure)
	applyRaw(schema.RecoveryMetric, input.Thresholds.Recovery)
	applyRaw(schema.CycleTimeMetric, input.Thresholds.CycleTime)

	// Override with command-line flag if provided (takes precedence)
	if input.ThresholdsStr != "" {
		parsed, err := parseThresholdOverrides(input.ThresholdsStr)
		if err != nil {
			return fmt.Errorf("invalid --thresholds-override format: %w", err)
		}
		maps.Copy(thresholds, parsed)
	}

	// Validate thresholds
	for key, threshold := range thresholds {
		if threshold.Good < 0 || threshold.Warning < 0 {
			return fmt.Errorf("health thresholds for %s must be non-negative (received %.2f/%.2f)", key, threshold.Good, threshold.Warning)
		}
		if threshold.Good > threshold.Warning {
			return fmt.Errorf("good threshold for %s cannot exceed its warning threshold (received %.2f/%.2f)", key, threshold.Good, threshold.Warning)
		}
	}

	cfg.HealthThresholds = thresholds
	return nil
}

// processBackendConfig validates the history backend configuration.
func processBackendConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	if err := ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return err
	}
	return nil
}

// processNotify validates the health gate and webhook settings.
func processNotify(cfg *Config, input *ConfigRawInput) error {
	failOn := schema.HealthStatus(strings.ToLower(strings.TrimSpace(input.FailOn)))
	if failOn == "" {
		failOn = schema.CriticalStatus
	}
	if _, ok := schema.ValidHealthStatuses[failOn]; !ok {
		return fmt.Errorf("invalid fail-on '%s'. must be good, warning, critical", input.FailOn)
	}
	cfg.FailOn = failOn

	cfg.WebhookURL = strings.TrimSpace(input.WebhookURL)
	cfg.WebhookType = strings.ToLower(strings.TrimSpace(input.WebhookType))
	if cfg.WebhookType == "" {
		cfg.WebhookType = WebhookSlack
	}
	switch cfg.WebhookType {
	case WebhookSlack, WebhookTeams, WebhookHTTP:
	default:
		return fmt.Errorf("invalid webhook-type '%s'. must be slack, teams, http", input.WebhookType)
	}

	return nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// parseThresholdOverrides parses a string like "lead:24:168,cfr:15:30"
// into a map of MetricKey to Threshold. Each entry is metric:good:warning.
func parseThresholdOverrides(s string) (map[schema.MetricKey]schema.Threshold, error) {
	thresholds := make(map[schema.MetricKey]schema.Threshold)

	if s == "" {
		return thresholds, nil
	}

	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		fields := strings.Split(part, ":")
		if len(fields) != 3 {
			return nil, fmt.Errorf("invalid threshold format '%s', expected 'metric:good:warning'", part)
		}

		var key schema.MetricKey
		switch strings.ToLower(strings.TrimSpace(fields[0])) {
		case "lead", "lead_time":
			key = schema.LeadTimeMetric
		case "cfr", "change_failure_rate":
			key = schema.FailureRateMetric
		case "mttr", "recovery":
			key = schema.RecoveryMetric
		case "cycle", "cycle_time":
			key = schema.CycleTimeMetric
		default:
			return nil, fmt.Errorf("invalid metric '%s', must be lead, cfr, mttr, or cycle", fields[0])
		}

		good, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid good threshold '%s' for metric %s: %w", fields[1], key, err)
		}
		warning, err := strconv.ParseFloat(strings.TrimSpace(fields[2]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid warning threshold '%s' for metric %s: %w", fields[2], key, err)
		}

		thresholds[key] = schema.Threshold{Good: good, Warning: warning}
	}

	return thresholds, nil
}
