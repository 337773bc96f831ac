package main

import (
	"io"

	"gopkg.in/yaml.v2"

	"github.com/hackforla/map-service/internal/pkg/application/mapservice"
	"github.com/hackforla/map-service/internal/pkg/infrastructure/cache"
)

type flagType int
type flagMap map[flagType]string

const (
	listenAddress flagType = iota
	servicePort

	configurationFile
	centroidsFile
	seedFile
	allowedOrigins

	devmode
)

type appConfig struct {
	Cache    cache.Config      `yaml:"cache"`
	Clusters mapservice.Config `yaml:"clusters"`
}

func defaultConfig() appConfig {
	return appConfig{
		Cache:    cache.DefaultConfig(),
		Clusters: mapservice.DefaultConfig(),
	}
}

// parseConfigFile overlays the yaml document on the default configuration, so
// sections or keys left out keep their defaults.
func parseConfigFile(cfgFile io.Reader) (appConfig, error) {
	cfg := defaultConfig()

	b, err := io.ReadAll(cfgFile)
	if err != nil {
		return cfg, err
	}

	err = yaml.Unmarshal(b, &cfg)
	if err != nil {
		return cfg, err
	}

	return cfg, nil
}
