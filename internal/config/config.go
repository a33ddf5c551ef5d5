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
	Host     string   `koanf:"host"`
	Google   Google   `koanf:"google"`
	Database Database `koanf:"db"`
	Heatmap  Heatmap  `koanf:"heatmap"`
}

type Google struct {
	ClientId     string `koanf:"clientid"`
	ClientSecret string `koanf:"clientsecret"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

// Heatmap holds the default rendering style; per-request parameters
// override any of these.
type Heatmap struct {
	Language   string  `koanf:"language"`
	MinColor   string  `koanf:"mincolor"`
	MaxColor   string  `koanf:"maxcolor"`
	LineColor  string  `koanf:"linecolor"`
	LineWidth  float64 `koanf:"linewidth"`
	EventColor string  `koanf:"eventcolor"`
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		Host: "http://localhost:8181",
		Database: Database{
			Host:   "localhost",
			Port:   5432,
			User:   "calplot",
			Pass:   "",
			Name:   "calplot",
			Schema: "calplot",
		},
		Heatmap: Heatmap{
			Language:   "en",
			MinColor:   "#eeeeee",
			MaxColor:   "#678fae",
			LineColor:  "#9e9e9e",
			LineWidth:  1.5,
			EventColor: "#76cf61",
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
		Prefix: "CALPLOT_",
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "CALPLOT_")), "_", ".")
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
