package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"
)

const (
	// EnvPrefix starts every environment override, e.g.
	// JOBRAG_POSTGRES_CONNECTION_HOST for postgres.connection.host.
	EnvPrefix = "JOBRAG_"

	// EnvConfigFile names an optional YAML file loaded between defaults and
	// environment overrides.
	EnvConfigFile = EnvPrefix + "CONFIG_FILE"
)

type validatable interface {
	Validate() error
}

// Load builds the configuration from defaults, then the YAML file at path
// (if non-empty), then environment variables. Later sources win.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}
	if path != "" {
		if err := k.Load(yamlFile(path), nil); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	envToPath := envMappings(k.Keys())
	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			if p, ok := envToPath[key]; ok {
				return p, value
			}
			return "", nil
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           &cfg,
			TagName:          "koanf",
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate runs the struct tag rules and then each section's own Validate.
// Sections of backends that are not selected are not checked by the latter.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return err
	}

	checks := []validatable{cfg.Chunker}
	if cfg.Embedding.Provider != "" {
		checks = append(checks, cfg.Embedding)
	}

	var errs []error
	for _, c := range checks {
		if err := c.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if cfg.Server.QueryTopK > cfg.Pipeline.CandidateK {
		errs = append(errs, fmt.Errorf("server.query_top_k %d exceeds pipeline.candidate_k %d",
			cfg.Server.QueryTopK, cfg.Pipeline.CandidateK))
	}
	return errors.Join(errs...)
}

// envMappings maps JOBRAG_A_B_C to a.b_c for every known key. Explicit
// mappings avoid guessing where a section ends and a field name begins.
func envMappings(keys []string) map[string]string {
	out := make(map[string]string, len(keys))
	for _, key := range keys {
		name := EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		out[name] = key
	}
	return out
}

// yamlProvider reads a YAML file into a nested map for koanf.
type yamlProvider struct {
	path string
}

func yamlFile(path string) *yamlProvider {
	return &yamlProvider{path: path}
}

func (y *yamlProvider) ReadBytes() ([]byte, error) {
	return nil, errors.New("yaml provider does not support ReadBytes")
}

func (y *yamlProvider) Read() (map[string]any, error) {
	data, err := os.ReadFile(y.path)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}
