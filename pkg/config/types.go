// Package config provides configuration loading and validation for sensorlog.
package config

import "time"

// Config is the root configuration structure loaded from YAML.
type Config struct {
	// Reference is an optional second sensor log the input is aligned against.
	Reference string `yaml:"reference,omitempty"`

	// Columns selects which table columns are summarized, charted and
	// exported. Empty means all columns.
	Columns []string `yaml:"columns,omitempty"`

	// Output is the report format: text or json.
	Output string `yaml:"output,omitempty"`

	// MaxLineBytes is the longest accepted input line.
	MaxLineBytes int `yaml:"max_line_bytes,omitempty"`

	Chart    ChartConfig     `yaml:"chart,omitempty"`
	Export   ExportConfig    `yaml:"export,omitempty"`
	Webhooks []WebhookConfig `yaml:"webhooks,omitempty"`
}

// ChartConfig controls HTML chart rendering.
type ChartConfig struct {
	// Output is the HTML file to write. Empty disables the chart.
	Output string `yaml:"output,omitempty"`

	Title  string `yaml:"title,omitempty"`
	Height string `yaml:"height,omitempty"`
}

// ExportConfig controls CSV export.
type ExportConfig struct {
	// CSV is the file to write. Empty disables export.
	CSV string `yaml:"csv,omitempty"`
}

// WebhookTrigger determines when a webhook fires.
type WebhookTrigger string

const (
	// WebhookTriggerOnEmpty fires only when no rows survived (default).
	WebhookTriggerOnEmpty WebhookTrigger = "on_empty"
	// WebhookTriggerAlways fires after every run.
	WebhookTriggerAlways WebhookTrigger = "always"
	// WebhookTriggerNever disables the webhook.
	WebhookTriggerNever WebhookTrigger = "never"
)

// WebhookConfig defines a webhook endpoint that receives the JSON report.
type WebhookConfig struct {
	// Name is an optional identifier for the webhook.
	Name string `yaml:"name,omitempty"`

	// URL is the webhook endpoint (required).
	URL string `yaml:"url"`

	// Token is an optional bearer token. ${VAR} and $VAR are expanded.
	Token string `yaml:"token,omitempty"`

	// Trigger defaults to "on_empty".
	Trigger WebhookTrigger `yaml:"trigger,omitempty"`

	// Timeout defaults to 10s.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}
