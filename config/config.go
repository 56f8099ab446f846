// Package config loads the Config struct the CLI binaries share, in the
// teacher's config/config.go style: cleanenv reads a YAML file, then
// explicit flags override individual fields.
package config

import (
	"flag"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the top-level configuration for cmd/fts and cmd/ftsstat.
type Config struct {
	Env        string       `yaml:"env" env-default:"local"`
	StorageDir string       `yaml:"storage_dir" env-required:"true"`
	Corpus     CorpusConfig `yaml:"corpus"`
	MaxResults int          `yaml:"max_results" env-default:"20"`
}

// CorpusConfig describes where documents are acquired from at startup.
type CorpusConfig struct {
	Dir      string `yaml:"dir" env-default:"./data/corpus"`
	WikiDump string `yaml:"wiki_dump" env-default:""`
}

// PostingListPath, TriePath and AuditPath derive the three on-disk files
// the Session needs, and TextStorePath the text store's directory, all
// rooted at StorageDir, matching spec §6's file-based persistence contract.
func (c *Config) PostingListPath() string { return c.StorageDir + "/posting_list.txt" }
func (c *Config) TriePath() string        { return c.StorageDir + "/trie.bin" }
func (c *Config) AuditPath() string       { return c.StorageDir + "/build_info.log" }
func (c *Config) TextStorePath() string   { return c.StorageDir + "/textsource" }

// MustLoad reads config, panicking on any failure the way the teacher's
// MustLoad does: a CLI that can't find its config has nothing useful to do.
func MustLoad() *Config {
	configPathFlag := flag.String("config", "", "Path to the config file")
	storageDirFlag := flag.String("storage-dir", "", "Path to the storage directory")
	corpusFlag := flag.String("corpus", "", "Path to the corpus directory")
	flag.Parse()

	configPath := *configPathFlag
	if configPath == "" {
		configPath = fetchConfigPath()
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("error loading config file: " + err.Error())
	}

	if *storageDirFlag != "" {
		cfg.StorageDir = *storageDirFlag
	}
	if *corpusFlag != "" {
		cfg.Corpus.Dir = *corpusFlag
	}

	return &cfg
}

// fetchConfigPath resolves the config file path. Priority: flag > env >
// default.
func fetchConfigPath() string {
	res := os.Getenv("CONFIG_PATH")
	if res == "" {
		res = "./config/config_local.yaml"
	}
	fmt.Println("Config path:", res)
	return res
}
