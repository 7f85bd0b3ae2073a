package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/diillson/finance-tracker-go/internal/domain/repository"
	"github.com/diillson/finance-tracker-go/internal/shared/types"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// Variáveis de ambiente reconhecidas.
const (
	EnvAPIBaseURL     = "FINANCE_API_BASE_URL"
	EnvSessionFile    = "FINANCE_SESSION_FILE"
	EnvHTTPTimeout    = "FINANCE_HTTP_TIMEOUT"
	EnvQueryRetries   = "FINANCE_QUERY_RETRIES"
	EnvQueryStaleTime = "FINANCE_QUERY_STALE_TIME"
	EnvReportDir      = "FINANCE_REPORT_DIR"
	EnvDebug          = "FINANCE_DEBUG"
)

// ConfigRepositoryImpl implementa o ConfigRepository.
type ConfigRepositoryImpl struct {
	envFiles []string
}

// NewConfigRepository cria uma nova implementação do ConfigRepository.
// envFiles são os arquivos .env lidos por ApplyEnvironment (padrão: ".env").
func NewConfigRepository(envFiles ...string) repository.ConfigRepository {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	return &ConfigRepositoryImpl{envFiles: envFiles}
}

// LoadConfigFile carrega um arquivo de configuração TOML, YAML ou JSON
// sobre os valores padrão.
func (r *ConfigRepositoryImpl) LoadConfigFile(filePath string) (*types.Config, error) {
	fileExtension := filepath.Ext(filePath)
	fileExtension = strings.ToLower(fileExtension)

	// Verifica se o arquivo existe
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error accessing config file: %w", err)
	}

	if fileInfo.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", filePath)
	}

	// Lê o arquivo
	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	config := types.DefaultConfig()

	switch fileExtension {
	case ".toml":
		if err := toml.Unmarshal(fileData, config); err != nil {
			return nil, fmt.Errorf("error parsing TOML file: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(fileData, config); err != nil {
			return nil, fmt.Errorf("error parsing YAML file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(fileData, config); err != nil {
			return nil, fmt.Errorf("error parsing JSON file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s", fileExtension)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", filePath, err)
	}
	return config, nil
}

// validateConfig rejeita valores numéricos negativos.
func validateConfig(cfg *types.Config) error {
	fields := []struct {
		name  string
		value int
	}{
		{"http_timeout", cfg.HTTPTimeout},
		{"query_retries", cfg.QueryRetries},
		{"query_stale_time", cfg.QueryStaleTime},
	}
	for _, f := range fields {
		if f.value < 0 {
			return fmt.Errorf("%s %d: must be a non-negative integer", f.name, f.value)
		}
	}
	return nil
}

// ApplyEnvironment carrega os arquivos .env (sem sobrescrever variáveis já
// definidas) e aplica as variáveis FINANCE_* sobre cfg.
func (r *ConfigRepositoryImpl) ApplyEnvironment(cfg *types.Config) error {
	for _, file := range r.envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("error loading %s: %w", file, err)
		}
	}

	if v, ok := os.LookupEnv(EnvAPIBaseURL); ok && v != "" {
		cfg.APIBaseURL = v
	}
	if v, ok := os.LookupEnv(EnvSessionFile); ok && v != "" {
		cfg.SessionFile = v
	}
	if v, ok := os.LookupEnv(EnvReportDir); ok && v != "" {
		cfg.ReportDir = v
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{EnvHTTPTimeout, &cfg.HTTPTimeout},
		{EnvQueryRetries, &cfg.QueryRetries},
		{EnvQueryStaleTime, &cfg.QueryStaleTime},
	}
	for _, e := range ints {
		v, ok := os.LookupEnv(e.name)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n < 0 {
			return fmt.Errorf("invalid %s %q: must be a non-negative integer", e.name, v)
		}
		*e.dst = n
	}

	if v, ok := os.LookupEnv(EnvDebug); ok && v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvDebug, v, err)
		}
		cfg.Debug = debug
	}
	return nil
}
