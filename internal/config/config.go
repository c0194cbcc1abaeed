package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/ledgercal/ledgercal/pkg/money"
	log "github.com/sirupsen/logrus"
)

type Application struct {
	API     API     `koanf:"api"`
	Balance Balance `koanf:"balance"`
}

type API struct {
	// URL is the base address of the remote budgeting service that owns
	// items, scheduled occurrences, and balance adjustments.
	URL            string `koanf:"url"`
	TimeoutSeconds int    `koanf:"timeoutseconds"`
}

type Balance struct {
	// Default is the base starting balance used when no adjustment pin
	// exists at or before the reference date, as a decimal string.
	Default string `koanf:"default"`
}

// DefaultStartingBalance parses the configured base starting balance.
func (c Application) DefaultStartingBalance() (money.Money, error) {
	return money.ParseSigned(c.Balance.Default)
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		API: API{
			URL:            "http://localhost:8080",
			TimeoutSeconds: 15,
		},
		Balance: Balance{
			Default: "2500.00",
		},
	}, "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Debugf("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "LEDGERCAL_",
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "LEDGERCAL_")), "_", ".")
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
