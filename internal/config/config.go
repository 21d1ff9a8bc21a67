// Package config loads and saves the agora-ledger TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all agora-ledger configuration.
type Config struct {
	Ledger   LedgerConfig   `toml:"ledger"`
	Database DatabaseConfig `toml:"database"`
	Partners PartnersConfig `toml:"partners"`
	Classify ClassifyConfig `toml:"classify"`
	Report   ReportConfig   `toml:"report"`
}

// LedgerConfig locates the spreadsheet and describes its layout.
type LedgerConfig struct {
	Path         string        `toml:"path"`
	Sheet        string        `toml:"sheet,omitempty"` // empty = first sheet
	HeaderMarker string        `toml:"header_marker"`   // token that starts the header row
	Columns      ColumnMapping `toml:"columns"`
}

// ColumnMapping names the header cells that hold each record field.
// Matching is case- and accent-insensitive. The split year/month/day
// headers are used when no combined due-date column exists; a sheet may
// carry either form.
type ColumnMapping struct {
	Number      string `toml:"number"`
	Description string `toml:"description"`
	Type        string `toml:"type"`
	Periodicity string `toml:"periodicity"`
	Amount      string `toml:"amount"`
	DueDate     string `toml:"due_date,omitempty"`
	DueYear     string `toml:"due_year,omitempty"`
	DueMonth    string `toml:"due_month,omitempty"`
	DueDay      string `toml:"due_day,omitempty"`
	PaymentDate string `toml:"payment_date,omitempty"`
}

// DatabaseConfig holds the relational store location.
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// PartnersConfig names the two business partners. The even split is a
// fixed rule; the names only label reports and map personal categories.
type PartnersConfig struct {
	A string `toml:"a"`
	B string `toml:"b"`
}

// ClassifyConfig holds the keyword lists driving classification. Keyword
// matching folds case and diacritics, so one spelling per word would do,
// but the defaults ship both accented and plain forms observed in real
// ledgers to keep an edited file self-documenting.
type ClassifyConfig struct {
	MonthlyMarkers    []string `toml:"monthly_markers"`
	ExclusionKeywords []string `toml:"exclusion_keywords"`
	EquipmentKeywords []string `toml:"equipment_keywords"`
	ProjectKeywords   []string `toml:"project_keywords"`
}

// ReportConfig holds presentation preferences.
type ReportConfig struct {
	ListingLimit int `toml:"listing_limit"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Ledger: LedgerConfig{
			Path:         "agora.xlsx",
			HeaderMarker: "#",
			Columns: ColumnMapping{
				Number:      "#",
				Description: "Descrição",
				Type:        "Tipo",
				Periodicity: "Periodicidade",
				Amount:      "Valor s/IVA",
				DueDate:     "Data",
				DueYear:     "Ano",
				DueMonth:    "Mês",
				DueDay:      "Dia",
				PaymentDate: "Pagamento",
			},
		},
		Database: DatabaseConfig{
			Path: "agora.db",
		},
		Partners: PartnersConfig{
			A: "Bruno",
			B: "Maral",
		},
		Classify: ClassifyConfig{
			MonthlyMarkers:    []string{"mensal", "monthly"},
			ExclusionKeywords: []string{"ordenado", "salário", "salario", "vencimento", "payroll"},
			EquipmentKeywords: []string{"equipamento", "equipment", "material"},
			ProjectKeywords:   []string{"projeto", "projecto", "project", "obra"},
		},
		Report: ReportConfig{
			ListingLimit: 20,
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "agora-ledger")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "agora-ledger")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// DatabasePath returns the store path from the AGORA_DB environment
// variable or the config, in that order.
func DatabasePath(cfg Config) string {
	if p := os.Getenv("AGORA_DB"); p != "" {
		return p
	}
	return cfg.Database.Path
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
