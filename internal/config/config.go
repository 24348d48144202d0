package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

type Application struct {
	Listen     string     `koanf:"listen"`
	Storage    Storage    `koanf:"storage"`
	Categories Categories `koanf:"categories"`
}

// Storage selects the snapshot backend. Type is one of: file, sqlite, redis, memory.
type Storage struct {
	Type   string `koanf:"type"`
	File   File   `koanf:"file"`
	SQLite SQLite `koanf:"sqlite"`
	Redis  Redis  `koanf:"redis"`
}

type File struct {
	Dir string `koanf:"dir"`
}

type SQLite struct {
	Path string `koanf:"path"`
}

type Redis struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

// Categories overrides the built-in vocabulary. Empty lists keep the defaults.
type Categories struct {
	Expense []string `koanf:"expense"`
	Savings []string `koanf:"savings"`
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		Listen: ":8181",
		Storage: Storage{
			Type: "file",
			File: File{
				Dir: "./data",
			},
			SQLite: SQLite{
				Path: "./data/fintrack.db",
			},
			Redis: Redis{
				Addr: "localhost:6379",
			},
		},
	}, "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "FINTRACK_",
		TransformFunc: func(k, v string) (string, any) {
			// Transform the key.
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "FINTRACK_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}
