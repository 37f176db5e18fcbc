package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	LogoConfig struct {
		Path          string `yaml:"path,omitempty" sanitize:"assure_file_access" validate:"omitempty,filepath"`
		MinWidth      int    `yaml:"min_width" validate:"min=1"`
		MinHeight     int    `yaml:"min_height" validate:"min=1"`
		ThumbnailSize int    `yaml:"thumbnail_size" validate:"min=16,max=2048"`
	}

	BookConfig struct {
		TOCPath           string     `yaml:"toc_path" sanitize:"path_clean" validate:"required,filepath"`
		ContentDir        string     `yaml:"content_dir" sanitize:"path_clean" validate:"required"`
		Extensions        []string   `yaml:"extensions" validate:"min=1,dive,startswith=."`
		Language          string     `yaml:"language" validate:"omitempty,bcp47_language_tag"`
		Title             string     `yaml:"title,omitempty"`
		ID                string     `yaml:"id,omitempty"`
		TitleTemplate     string     `yaml:"title_template,omitempty"`
		TitlesFromContent bool       `yaml:"titles_from_content"`
		CachePath         string     `yaml:"cache_path,omitempty" sanitize:"path_clean,assure_dir_exists_for_file" validate:"omitempty,filepath"`
		StaticDir         string     `yaml:"static_dir,omitempty" sanitize:"path_clean"`
		Logo              LogoConfig `yaml:"logo"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Book      BookConfig     `yaml:"book"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field name above, alternative is to use struct
	// field name and reflection which I want to avoid for now
	TitleTemplateFieldName TemplateFieldName = "title_template"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(TitleTemplateFieldName)),
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration tamplate to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
