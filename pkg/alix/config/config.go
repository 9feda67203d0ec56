package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/Laisky/errors/v2"
	"gopkg.in/yaml.v3"

	"github.com/cognicore/alix/pkg/alix/internalerr"
)

// Config is the analyzer configuration file.
type Config struct {
	// Defaults loads the embedded French resources before the dictionaries.
	Defaults     bool         `yaml:"defaults"`
	Dictionaries []Dictionary `yaml:"dictionaries"`
	Stoplist     string       `yaml:"stoplist"`
	MWE          string       `yaml:"mwe"`
	Vocab        string       `yaml:"vocab"`
	Pipeline     Pipeline     `yaml:"pipeline"`
}

// Dictionary is one CSV resource to load.
type Dictionary struct {
	Path    string `yaml:"path"`
	Kind    string `yaml:"kind"`
	Replace bool   `yaml:"replace"`
}

// Pipeline selects the analysis stages.
type Pipeline struct {
	Locutions     bool     `yaml:"locutions"`
	MWE           bool     `yaml:"mwe"`
	DropStopwords bool     `yaml:"drop_stopwords"`
	KeepTags      bool     `yaml:"keep_tags"`
	ExcludedTags  []string `yaml:"excluded_tags"`
	MaxSentence   int      `yaml:"max_sentence"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Defaults: true,
		Pipeline: Pipeline{Locutions: true, MWE: true},
	}
}

// LoadConfig loads a configuration file. Keys missing from the file keep
// their default value; relative paths are resolved against the directory
// of the file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(internalerr.ErrInvalidConfig, "parse `%s`: %v", path, err)
	}

	dir := filepath.Dir(path)
	for i := range cfg.Dictionaries {
		cfg.Dictionaries[i].Path = resolve(dir, cfg.Dictionaries[i].Path)
	}
	cfg.Stoplist = resolve(dir, cfg.Stoplist)
	cfg.MWE = resolve(dir, cfg.MWE)
	cfg.Vocab = resolve(dir, cfg.Vocab)

	return cfg, cfg.Validate()
}

func resolve(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

// Validate checks the values that cannot be checked by loading them.
func (c *Config) Validate() error {
	for i, d := range c.Dictionaries {
		if d.Path == "" {
			return errors.Wrapf(internalerr.ErrInvalidConfig, "dictionary %d has no path", i)
		}
		if d.Kind == "" {
			return errors.Wrapf(internalerr.ErrInvalidConfig, "dictionary `%s` has no kind", d.Path)
		}
	}
	if c.Pipeline.MaxSentence < 0 {
		return errors.Wrapf(internalerr.ErrInvalidConfig, "max_sentence %d", c.Pipeline.MaxSentence)
	}
	return nil
}

// Stoplist represents the stopword list configuration
type Stoplist struct {
	Terms []string `yaml:"terms"`
}

// LoadStoplist loads stopwords from a YAML file
func LoadStoplist(path string) (*Stoplist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sl Stoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, err
	}

	return &sl, nil
}

// Dict represents the expression dictionary
type Dict struct {
	Entries []DictEntry
}

// DictEntry represents a dictionary entry
type DictEntry struct {
	Canonical string
	Variants  []string
	Category  string
}

// LoadDict loads the expression dictionary from a file
// Format: canonical|variant1|variant2|category
func LoadDict(path string) (*Dict, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	dict := &Dict{Entries: []DictEntry{}}
	lines := strings.Split(string(data), "\n")

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, "|")
		if len(parts) < 2 {
			continue
		}

		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}

		variants := make([]string, 0, len(parts)-2)
		for _, v := range parts[1 : len(parts)-1] {
			if v != "" {
				variants = append(variants, v)
			}
		}

		dict.Entries = append(dict.Entries, DictEntry{
			Canonical: parts[0],
			Variants:  variants,
			Category:  parts[len(parts)-1],
		})
	}

	return dict, nil
}
