package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/arthur-debert/srcbundle/pkg/errors"
	"github.com/arthur-debert/srcbundle/pkg/logging"
	"github.com/arthur-debert/srcbundle/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks environment variables and .env entries read as settings
const EnvPrefix = "SRCBUNDLE_"

// additiveKeys accumulate across file layers instead of being replaced
var additiveKeys = map[string]bool{
	"pack.ignore":    true,
	"pack.skip_dirs": true,
}

// LoadOptions select the optional layers
type LoadOptions struct {
	// SourceDir is searched for .srcbundle.toml and .env; empty skips both
	SourceDir string
	// ConfigFile is an explicit file loaded last; it must exist
	ConfigFile string
	// SkipUserConfig ignores the user configuration file
	SkipUserConfig bool
	// SkipEnv ignores the process environment
	SkipEnv bool
}

// Default returns the embedded defaults only
func Default() (*Config, error) {
	return Load(LoadOptions{SkipUserConfig: true, SkipEnv: true})
}

// Load resolves the configuration layers in order and decodes the result
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	var sources []string

	// 1. Manually merge defaults
	base, err := readTOML(&rawBytesProvider{bytes: defaultConfig})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}
	sources = append(sources, "defaults")

	// 2. Load user and project config if they exist
	if !opts.SkipUserConfig {
		path := paths.UserConfigFile()
		loaded, err := mergeFileIfExists(base, path)
		if err != nil {
			return nil, err
		}
		if loaded {
			sources = append(sources, path)
		}
	}

	if opts.SourceDir != "" {
		path := filepath.Join(opts.SourceDir, paths.ProjectConfigFileName)
		loaded, err := mergeFileIfExists(base, path)
		if err != nil {
			return nil, err
		}
		if loaded {
			sources = append(sources, path)
		}

		dotenv := filepath.Join(opts.SourceDir, ".env")
		loaded, err = mergeDotEnv(base, dotenv)
		if err != nil {
			return nil, err
		}
		if loaded {
			sources = append(sources, dotenv)
		}
	}

	// 3. Load env vars
	if !opts.SkipEnv {
		tempK := koanf.New(".")
		if err := tempK.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
		}
		if len(tempK.Keys()) > 0 {
			mergeMaps(base, tempK.Raw(), "")
			sources = append(sources, "environment")
		}
	}

	// 4. Explicit file wins over everything else
	if opts.ConfigFile != "" {
		if _, err := os.Stat(opts.ConfigFile); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file %s", opts.ConfigFile).
				WithDetail("path", opts.ConfigFile)
		}
		if _, err := mergeFileIfExists(base, opts.ConfigFile); err != nil {
			return nil, err
		}
		sources = append(sources, opts.ConfigFile)
	}

	// 5. Unmarshal
	cfg, err := decode(base)
	if err != nil {
		return nil, err
	}
	cfg.Sources = sources

	// 6. Post-process
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Debug().Strs("sources", sources).Msg("Configuration loaded")
	return cfg, nil
}

// envKey maps SRCBUNDLE_PACK_SKIP_DIRS to pack.skip_dirs: the first segment
// names the section, the rest is the key.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, key, ok := strings.Cut(s, "_")
	if !ok {
		return s
	}
	return section + "." + key
}

func readTOML(p koanf.Provider) (map[string]interface{}, error) {
	k := koanf.New(".")
	if err := k.Load(p, toml.Parser()); err != nil {
		return nil, err
	}
	return k.Raw(), nil
}

func mergeFileIfExists(base map[string]interface{}, path string) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		return false, nil
	}
	layer, err := readTOML(file.Provider(path))
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s", path).
			WithDetail("path", path)
	}
	mergeMaps(base, layer, "")
	return true, nil
}

// mergeDotEnv reads SRCBUNDLE_* entries of a .env file. The file is parsed,
// never applied to the process environment.
func mergeDotEnv(base map[string]interface{}, path string) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		return false, nil
	}
	values, err := godotenv.Read(path)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s", path).
			WithDetail("path", path)
	}

	flat := make(map[string]interface{})
	for k, v := range values {
		if strings.HasPrefix(k, EnvPrefix) {
			flat[envKey(k)] = v
		}
	}
	if len(flat) == 0 {
		return false, nil
	}

	tempK := koanf.New(".")
	if err := tempK.Load(confmap.Provider(flat, "."), nil); err != nil {
		return false, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load %s", path)
	}
	mergeMaps(base, tempK.Raw(), "")
	return true, nil
}

func mergeMaps(dest, src map[string]interface{}, prefix string) {
	for key, srcVal := range src {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}

		destVal, destOk := dest[key]
		if !destOk {
			dest[key] = srcVal
			continue
		}

		// Merge maps
		if srcMap, srcOk := srcVal.(map[string]interface{}); srcOk {
			if destMap, destOk := destVal.(map[string]interface{}); destOk {
				mergeMaps(destMap, srcMap, full)
				continue
			}
		}

		// Append slices for additive keys
		if additiveKeys[full] {
			srcSlice, srcOk := srcVal.([]interface{})
			destSlice, destOk := destVal.([]interface{})
			if srcOk && destOk {
				dest[key] = append(append([]interface{}{}, destSlice...), srcSlice...)
				continue
			}
		}

		// Otherwise, overwrite
		dest[key] = srcVal
	}
}

func decode(raw map[string]interface{}) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(raw, "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load merged config")
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
				trimSliceHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	return &cfg, nil
}

// trimSliceHookFunc trims list entries split from strings and drops empty ones
func trimSliceHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if t.Kind() != reflect.Slice || t.Elem().Kind() != reflect.String {
			return data, nil
		}
		items, ok := data.([]string)
		if !ok {
			return data, nil
		}
		out := make([]string, 0, len(items))
		for _, item := range items {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
		return out, nil
	}
}
