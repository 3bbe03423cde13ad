package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/KaramelBytes/hotelscope/internal/utils"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Data source: a CSV/TSV/XLSX path or a postgres:// / sqlite:// DSN.
	DataPath  string `mapstructure:"data_path" yaml:"data_path"`
	SQLTable  string `mapstructure:"sql_table" yaml:"sql_table"`
	SheetName string `mapstructure:"sheet_name" yaml:"sheet_name"`

	// Explorer limits
	PreviewRows   int     `mapstructure:"preview_rows" yaml:"preview_rows"`
	TopCategories int     `mapstructure:"top_categories" yaml:"top_categories"`
	TopWeathers   int     `mapstructure:"top_weathers" yaml:"top_weathers"`
	SampleCap     int     `mapstructure:"sample_cap" yaml:"sample_cap"`
	SampleSeed    uint64  `mapstructure:"sample_seed" yaml:"sample_seed"`
	Jitter        float64 `mapstructure:"jitter" yaml:"jitter"`
	HistogramBins int     `mapstructure:"histogram_bins" yaml:"histogram_bins"`

	// Initial variable selection
	DefaultCategorical string `mapstructure:"default_categorical" yaml:"default_categorical"`
	DefaultNumerical   string `mapstructure:"default_numerical" yaml:"default_numerical"`

	// HTTP API
	ServeAddr string `mapstructure:"serve_addr" yaml:"serve_addr"`
}

// Dir returns ~/.hotelscope.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".hotelscope"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.hotelscope/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("HOTELSCOPE")
	v.AutomaticEnv()

	v.SetDefault("data_path", "")
	v.SetDefault("sql_table", "hotel_weather")
	v.SetDefault("sheet_name", "")
	v.SetDefault("preview_rows", 5)
	v.SetDefault("top_categories", 10)
	v.SetDefault("top_weathers", 8)
	v.SetDefault("sample_cap", 500)
	v.SetDefault("sample_seed", 42)
	v.SetDefault("jitter", 0.2)
	v.SetDefault("histogram_bins", 30)
	v.SetDefault("default_categorical", "arrival_date_month")
	v.SetDefault("default_numerical", "lead_time")
	v.SetDefault("serve_addr", ":8080")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
