package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment variable overrides,
// e.g. CELLRECON_INPUT_PATH overrides input.path
const EnvPrefix = "CELLRECON"

// Config represents the application configuration
type Config struct {
	Input  InputConfig  `mapstructure:"input"`
	Output OutputConfig `mapstructure:"output"`
	Sheets SheetsConfig `mapstructure:"sheets"`
	Stages StagesConfig `mapstructure:"stages"`
	Layout LayoutConfig `mapstructure:"layout"`
	Log    LogConfig    `mapstructure:"log"`
}

// InputConfig holds the source workbook settings
type InputConfig struct {
	Path string `mapstructure:"path"` // Workbook to clean (.xlsx)
}

// OutputConfig holds output settings
type OutputConfig struct {
	Dir        string `mapstructure:"dir"`         // Output directory
	FileName   string `mapstructure:"file_name"`   // Base name for stage outputs (without extension)
	ReportName string `mapstructure:"report_name"` // Base name for run reports (without extension)
}

// SheetsConfig selects which sheets the stages touch
type SheetsConfig struct {
	Exclude []string `mapstructure:"exclude"` // Sheet name patterns to skip ("*Notes", "Draft*")
}

// StagesConfig holds per-stage settings
type StagesConfig struct {
	Headers HeadersConfig `mapstructure:"headers"`
	Merge   MergeConfig   `mapstructure:"merge"`
}

// HeadersConfig configures header standardization
type HeadersConfig struct {
	TemplateSheet string `mapstructure:"template_sheet"` // Sheet whose rows 1-2 are copied to every other sheet
	CodeFormat    string `mapstructure:"code_format"`    // Number format for the first column
}

// MergeConfig configures the sheet merge
type MergeConfig struct {
	MaxColumns int    `mapstructure:"max_columns"` // Columns kept from each sheet (A..)
	SheetName  string `mapstructure:"sheet_name"`  // Name of the merged output sheet
}

// LayoutConfig controls column width estimation
type LayoutConfig struct {
	MinWidth int `mapstructure:"min_width"`
	MaxWidth int `mapstructure:"max_width"`
	Padding  int `mapstructure:"padding"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `mapstructure:"level"` // DEBUG, INFO, WARN, ERROR
	File  string `mapstructure:"file"`  // Log file name inside the output directory
}

// Load reads the configuration from a file or uses defaults.
// If configPath is empty, it looks for "config.yaml" in the current directory.
// A .env file in the working directory is loaded first so CELLRECON_*
// variables can be kept next to the workbook.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath == "" {
		configPath = "config.yaml"
	}
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) || strings.Contains(err.Error(), "no such file") ||
			strings.Contains(err.Error(), "cannot find") {
			fmt.Println("==========================================")
			fmt.Println("Config file not found. Using defaults:")
			fmt.Printf("  Input:  %s\n", v.GetString("input.path"))
			fmt.Printf("  Output: %s\n", v.GetString("output.dir"))
			fmt.Println("==========================================")
		} else {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		fmt.Printf("Loaded config from: %s\n", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.normalizePaths(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults configures sensible default values
func setDefaults(v *viper.Viper) {
	v.SetDefault("input.path", "./input.xlsx")

	v.SetDefault("output.dir", "./output")
	v.SetDefault("output.file_name", "cleaned")
	v.SetDefault("output.report_name", "cell-recon-report")

	v.SetDefault("sheets.exclude", []string{})

	v.SetDefault("stages.headers.template_sheet", "Table 2")
	v.SetDefault("stages.headers.code_format", "0000")
	v.SetDefault("stages.merge.max_columns", 11)
	v.SetDefault("stages.merge.sheet_name", "Merged")

	v.SetDefault("layout.min_width", 8)
	v.SetDefault("layout.max_width", 50)
	v.SetDefault("layout.padding", 2)

	v.SetDefault("log.level", "INFO")
	v.SetDefault("log.file", "cell_recon.log")
}

// normalizePaths converts relative paths to absolute paths
func (c *Config) normalizePaths() error {
	absInput, err := filepath.Abs(c.Input.Path)
	if err != nil {
		return fmt.Errorf("failed to resolve input.path: %w", err)
	}
	c.Input.Path = absInput

	absOutput, err := filepath.Abs(c.Output.Dir)
	if err != nil {
		return fmt.Errorf("failed to resolve output.dir: %w", err)
	}
	c.Output.Dir = absOutput

	return nil
}

// EnsureOutputDir creates the output directory if it doesn't exist
func (c *Config) EnsureOutputDir() error {
	if err := os.MkdirAll(c.Output.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// ShouldSkipSheet checks if a sheet name matches any exclude pattern
func (c *Config) ShouldSkipSheet(sheetName string) bool {
	for _, pattern := range c.Sheets.Exclude {
		if matchPattern(sheetName, pattern) {
			return true
		}
	}
	return false
}

// StageOutputPath returns the workbook path written by a stage,
// e.g. "<dir>/cleaned_clean.xlsx"
func (c *Config) StageOutputPath(stage string) string {
	return filepath.Join(c.Output.Dir, fmt.Sprintf("%s_%s.xlsx", c.Output.FileName, stage))
}

// ReportPath returns the report path for a file extension (".html", ".docx")
func (c *Config) ReportPath(ext string) string {
	return filepath.Join(c.Output.Dir, c.Output.ReportName+ext)
}

// LogPath returns the path of the run log
func (c *Config) LogPath() string {
	return filepath.Join(c.Output.Dir, c.Log.File)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if _, err := os.Stat(c.Input.Path); os.IsNotExist(err) {
		return fmt.Errorf("input.path does not exist: %s", c.Input.Path)
	}

	if c.Output.FileName == "" {
		return fmt.Errorf("output.file_name cannot be empty")
	}

	if c.Output.ReportName == "" {
		return fmt.Errorf("output.report_name cannot be empty")
	}

	if c.Stages.Merge.MaxColumns <= 0 {
		return fmt.Errorf("stages.merge.max_columns must be positive, got %d", c.Stages.Merge.MaxColumns)
	}

	if c.Stages.Merge.SheetName == "" {
		return fmt.Errorf("stages.merge.sheet_name cannot be empty")
	}

	if c.Layout.MinWidth <= 0 || c.Layout.MaxWidth < c.Layout.MinWidth {
		return fmt.Errorf("layout widths must satisfy 0 < min_width <= max_width, got %d/%d",
			c.Layout.MinWidth, c.Layout.MaxWidth)
	}

	return nil
}

// matchPattern checks if a string matches a simple glob pattern
// Supports only '*' wildcard at the beginning or end
func matchPattern(str, pattern string) bool {
	if pattern == "*" {
		return true
	}

	if strings.HasPrefix(pattern, "*") && strings.HasSuffix(pattern, "*") {
		middle := pattern[1 : len(pattern)-1]
		return strings.Contains(str, middle)
	} else if strings.HasPrefix(pattern, "*") {
		return strings.HasSuffix(str, pattern[1:])
	} else if strings.HasSuffix(pattern, "*") {
		return strings.HasPrefix(str, pattern[:len(pattern)-1])
	}

	return str == pattern
}

// Print displays the current configuration
func (c *Config) Print() {
	fmt.Println("=== Cell Recon Configuration ===")
	fmt.Printf("Input Workbook:   %s\n", c.Input.Path)
	fmt.Printf("Output Directory: %s\n", c.Output.Dir)
	fmt.Printf("Output Base Name: %s\n", c.Output.FileName)
	fmt.Printf("Excluded Sheets:  %v\n", c.Sheets.Exclude)
	fmt.Printf("Template Sheet:   %s\n", c.Stages.Headers.TemplateSheet)
	fmt.Printf("Code Format:      %s\n", c.Stages.Headers.CodeFormat)
	fmt.Printf("Merge Columns:    %d\n", c.Stages.Merge.MaxColumns)
	fmt.Printf("Merged Sheet:     %s\n", c.Stages.Merge.SheetName)
	fmt.Printf("Column Width:     %d..%d (+%d)\n", c.Layout.MinWidth, c.Layout.MaxWidth, c.Layout.Padding)
	fmt.Println("================================")
}
