package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "keyprep/internal/errors"
)

// EnvPrefix namespaces all environment variables, e.g. KEYPREP_LOGGING_LEVEL
const EnvPrefix = "KEYPREP"

// Config represents the complete application configuration
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Paths     PathsConfig     `yaml:"paths" envconfig:"PATHS"`
	Stimuli   StimuliConfig   `yaml:"stimuli" envconfig:"STIMULI"`
	Responses ResponsesConfig `yaml:"responses" envconfig:"RESPONSES"`
	Export    ExportConfig    `yaml:"export" envconfig:"EXPORT"`
	Tracing   TracingConfig   `yaml:"tracing" envconfig:"TRACING"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format      string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output      string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath    string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required_unless=Output console"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT"`
}

// PathsConfig contains file system locations. Relative paths resolve against BaseDir.
type PathsConfig struct {
	BaseDir   string `yaml:"base_dir" envconfig:"BASE_DIR"`
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR" validate:"required"`
	LogsDir   string `yaml:"logs_dir" envconfig:"LOGS_DIR" validate:"required"`
}

// StimuliConfig describes the stimulus tree scanned for conditions
type StimuliConfig struct {
	Root        string   `yaml:"root" envconfig:"ROOT" validate:"required"`
	Experiments []string `yaml:"experiments" envconfig:"EXPERIMENTS" validate:"min=1,dive,required"`
	// Extensions filters stimulus files by suffix; empty accepts every file
	Extensions []string `yaml:"extensions" envconfig:"EXTENSIONS"`
}

// ResponsesConfig describes where participant logs are read from
type ResponsesConfig struct {
	Dir      string   `yaml:"dir" envconfig:"DIR" validate:"required"`
	Pattern  string   `yaml:"pattern" envconfig:"PATTERN" validate:"required"`
	Files    []string `yaml:"files" envconfig:"FILES"`
	DropRows int      `yaml:"drop_rows" envconfig:"DROP_ROWS" validate:"min=0"`

	// Experiments keeps only trials with these exp_no values; empty keeps all
	Experiments []string `yaml:"experiments" envconfig:"EXPERIMENTS"`
}

// ExportConfig names the artifacts written to the output directory
type ExportConfig struct {
	CorrelationFile string `yaml:"correlation_file" envconfig:"CORRELATION_FILE" validate:"required"`
	ConditionsFile  string `yaml:"conditions_file" envconfig:"CONDITIONS_FILE" validate:"required"`
	PracticeFile    string `yaml:"practice_file" envconfig:"PRACTICE_FILE" validate:"required"`
	ScaleFitFile    string `yaml:"scale_fit_file" envconfig:"SCALE_FIT_FILE" validate:"required"`
	MeanRatingsFile string `yaml:"mean_ratings_file" envconfig:"MEAN_RATINGS_FILE" validate:"required"`
	CombinedFile    string `yaml:"combined_file" envconfig:"COMBINED_FILE" validate:"required"`
}

// TracingConfig controls span export for pipeline stages
type TracingConfig struct {
	Enabled     bool   `yaml:"enabled" envconfig:"ENABLED"`
	ServiceName string `yaml:"service_name" envconfig:"SERVICE_NAME" validate:"required"`
}

// Load builds the configuration from defaults, an optional YAML file and
// environment variables, in increasing order of precedence. An empty
// configFile searches the usual locations.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile == "" {
		configFile = getConfigFilePath()
	}
	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, apperrors.NewConfigError("failed to load config from file", err).
				WithContext("path", configFile)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file onto cfg; keys absent from the file keep their value
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.UnmarshalStrict(data, cfg)
}

// normalize lower-cases enum-like values and trims list entries
func (c *Config) normalize() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Output = strings.ToLower(strings.TrimSpace(c.Logging.Output))
	c.Stimuli.Experiments = trimAll(c.Stimuli.Experiments)
	c.Stimuli.Extensions = trimAll(c.Stimuli.Extensions)
	for i, ext := range c.Stimuli.Extensions {
		if ext != "" && !strings.HasPrefix(ext, ".") {
			c.Stimuli.Extensions[i] = "." + ext
		}
	}
	c.Responses.Files = trimAll(c.Responses.Files)
	c.Responses.Experiments = trimAll(c.Responses.Experiments)
}

func trimAll(values []string) []string {
	out := values[:0]
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the configuration against its struct constraints
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fields []string
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
		}
		return apperrors.NewConfigError("config validation failed", err).
			WithContext("fields", strings.Join(fields, ", "))
	}
	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	locations := []string{
		"keyprep.yaml",
		"config.yaml",
		"configs/keyprep.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use defaults and env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "both",
			FilePath: "logs/keyprep.log",
		},
		Paths: PathsConfig{
			OutputDir: "output",
			LogsDir:   "logs",
		},
		Stimuli: StimuliConfig{
			Root:        "stimuli",
			Experiments: []string{"exp1", "exp2"},
			Extensions:  []string{".wav"},
		},
		Responses: ResponsesConfig{
			Dir:      "data/responses",
			Pattern:  "*.csv",
			DropRows: 2,
		},
		Export: ExportConfig{
			CorrelationFile: "kk_correlations.xlsx",
			ConditionsFile:  "conditions.xlsx",
			PracticeFile:    "practice_conditions.xlsx",
			ScaleFitFile:    "scale_fit.xlsx",
			MeanRatingsFile: "mean_ratings.xlsx",
			CombinedFile:    "responses_combined.csv",
		},
		Tracing: TracingConfig{
			Enabled:     false,
			ServiceName: "keyprep",
		},
	}
}
