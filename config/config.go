package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config es la configuración completa de matchlens.
type Config struct {
	Analysis   AnalysisConfig   `yaml:"analysis"`
	Vocabulary VocabularyConfig `yaml:"vocabulary"`
	Storage    StorageConfig    `yaml:"storage"`
	Dataset    DatasetConfig    `yaml:"dataset"`
	HTTP       HTTPConfig       `yaml:"http"`
	Log        LogConfig        `yaml:"log"`
}

// AnalysisConfig controla los analizadores y el orquestador.
type AnalysisConfig struct {
	HistorySize int     `yaml:"history_size"` // partidos por contexto (home / away)
	RaceTargets []int   `yaml:"race_targets"` // objetivos race-to-N de córners
	ValueEdge   float64 `yaml:"value_edge"`   // puntos porcentuales mínimos para marcar value
	Workers     int     `yaml:"workers"`      // 0 = NumCPU*2
	MinGames    int     `yaml:"min_games"`    // -date: historial mínimo por equipo
	OnlyValue   bool    `yaml:"only_value"`   // -date: solo fixtures con value bets
	MinEdge     float64 `yaml:"min_edge"`     // -date: edge mínimo de la mejor value bet (0 = sin filtro)
}

// VocabularyConfig añade nombres del proveedor a los tipos canónicos,
// ej. events: {corner: ["Corner Awarded"]}.
type VocabularyConfig struct {
	Events map[string][]string `yaml:"events"`
	Stats  map[string][]string `yaml:"stats"`
}

// StorageConfig controla dónde se persisten los datos.
type StorageConfig struct {
	DSN string `yaml:"dsn"` // ruta al archivo SQLite, o ":memory:"
}

// DatasetConfig apunta al volcado JSON del proveedor que importa -import.
type DatasetConfig struct {
	Path string `yaml:"path"`
}

// HTTPConfig controla el API.
type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load carga la configuración desde el archivo YAML y el archivo .env si existe.
// Las variables de entorno sobreescriben los valores del YAML.
func Load(path string) (*Config, error) {
	// Cargar .env si existe (silencia error si no hay archivo)
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	return &cfg, nil
}

// applyEnvOverrides sobreescribe valores con variables de entorno si están presentes.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("MATCHLENS_DSN"); v != "" {
		cfg.Storage.DSN = v
	}
	if v := os.Getenv("MATCHLENS_HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
}

// setDefaults asegura que los valores requeridos tengan valores sensatos.
func setDefaults(cfg *Config) {
	if cfg.Analysis.HistorySize <= 0 {
		cfg.Analysis.HistorySize = 10
	}
	if len(cfg.Analysis.RaceTargets) == 0 {
		cfg.Analysis.RaceTargets = []int{3, 5, 7, 9}
	}
	if cfg.Analysis.ValueEdge <= 0 {
		cfg.Analysis.ValueEdge = 5
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "matchlens.db"
	}
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":8080"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}

func (c *Config) validate() error {
	for _, t := range c.Analysis.RaceTargets {
		if t <= 0 {
			return fmt.Errorf("analysis.race_targets: %d is not a positive target", t)
		}
	}
	if c.Analysis.MinGames < 0 {
		return fmt.Errorf("analysis.min_games: must be >= 0, got %d", c.Analysis.MinGames)
	}
	if c.Analysis.MinEdge < 0 {
		return fmt.Errorf("analysis.min_edge: must be >= 0, got %g", c.Analysis.MinEdge)
	}
	if c.Analysis.Workers < 0 {
		return fmt.Errorf("analysis.workers: must be >= 0, got %d", c.Analysis.Workers)
	}
	return nil
}
