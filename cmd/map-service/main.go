package main

import (
	"context"
	"errors"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/diwise/service-chassis/pkg/infrastructure/buildinfo"
	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"

	"github.com/hackforla/map-service/internal/pkg/application/centroids"
	"github.com/hackforla/map-service/internal/pkg/application/mapservice"
	"github.com/hackforla/map-service/internal/pkg/infrastructure/cache"
	"github.com/hackforla/map-service/internal/pkg/infrastructure/router"
	"github.com/hackforla/map-service/internal/pkg/infrastructure/storage"
	"github.com/hackforla/map-service/internal/pkg/presentation/api"
)

const serviceName string = "map-service"

func defaultFlags() flagMap {
	return flagMap{
		listenAddress: "0.0.0.0",
		servicePort:   "8080",

		configurationFile: "/opt/hackforla/config/config.yaml",
		centroidsFile:     "/opt/hackforla/config/nc-centroids.csv",
		seedFile:          "/opt/hackforla/config/requests.csv",
		allowedOrigins:    "",

		devmode: "false",
	}
}

func main() {
	serviceVersion := buildinfo.SourceVersion()

	ctx, logger, cleanup := o11y.Init(context.Background(), serviceName, serviceVersion)
	defer cleanup()

	flags := parseExternalConfig(logger, defaultFlags())

	cfg, err := loadConfigFile(flags[configurationFile])
	exitIf(err, logger, "could not load configuration file")

	svc, closeAll, err := initialize(ctx, flags, cfg)
	exitIf(err, logger, "failed to initialize map service")
	defer closeAll()

	r := router.New(serviceName, splitOrigins(flags[allowedOrigins]))
	api.RegisterHandlers(ctx, r, svc)

	err = run(ctx, net.JoinHostPort(flags[listenAddress], flags[servicePort]), r)
	exitIf(err, logger, "failed to run web server")
}

// initialize connects storage, loads the centroid table and creates the cache.
// The returned func releases everything that was opened.
func initialize(ctx context.Context, flags flagMap, cfg appConfig) (mapservice.MapService, func(), error) {
	log := logging.GetFromContext(ctx)

	if err := cfg.Clusters.Validate(); err != nil {
		return nil, nil, err
	}

	s, err := newStorage(ctx, log, flags)
	if err != nil {
		return nil, nil, err
	}

	ncs, err := centroids.Load(flags[centroidsFile])
	if err != nil {
		return nil, nil, err
	}

	log.Info().Int("count", ncs.Len()).Msg("loaded neighborhood council centroids")

	c, err := cache.New(ctx, cfg.Cache)
	if err != nil {
		return nil, nil, err
	}

	closeAll := func() {
		if err := c.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close cache")
		}
	}

	return mapservice.New(s, c, ncs, cfg.Clusters), closeAll, nil
}

func newStorage(ctx context.Context, log zerolog.Logger, flags flagMap) (storage.Store, error) {
	if flags[devmode] == "true" {
		log.Warn().Msg("running in dev mode with an in memory database")

		s, err := storage.New(storage.NewSQLiteConnector(log, ""))
		if err != nil {
			return nil, err
		}

		seed, err := os.Open(flags[seedFile])
		if err != nil {
			return nil, err
		}
		defer seed.Close()

		return s, storage.SeedRequests(ctx, s, seed)
	}

	return storage.New(storage.NewPostgreSQLConnector(log, storage.LoadConfigFromEnv(log)))
}

func run(ctx context.Context, addr string, r *chi.Mux) error {
	log := logging.GetFromContext(ctx)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, unix.SIGTERM)
	defer stop()

	server := &http.Server{Addr: addr, Handler: r}

	errs := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("starting to listen for connections")
		errs <- server.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := server.Shutdown(shutdownCtx)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func loadConfigFile(path string) (appConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return appConfig{}, err
	}
	defer f.Close()

	return parseConfigFile(f)
}

func splitOrigins(origins string) []string {
	result := []string{}
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			result = append(result, o)
		}
	}
	return result
}

func parseExternalConfig(log zerolog.Logger, flags flagMap) flagMap {
	// Allow environment variables to override certain defaults
	envOrDef := func(name string, def string) string {
		return env.GetVariableOrDefault(log, name, def)
	}

	flags[listenAddress] = envOrDef("LISTEN_ADDRESS", flags[listenAddress])
	flags[servicePort] = envOrDef("SERVICE_PORT", flags[servicePort])

	flags[configurationFile] = envOrDef("MAP_CONFIG_FILE", flags[configurationFile])
	flags[centroidsFile] = envOrDef("NC_CENTROIDS_FILE", flags[centroidsFile])
	flags[allowedOrigins] = envOrDef("ALLOWED_ORIGINS", flags[allowedOrigins])

	apply := func(f flagType) func(string) error {
		return func(value string) error {
			flags[f] = value
			return nil
		}
	}

	// Allow command line arguments to override defaults and environment variables
	flag.Func("config", "map service configuration file", apply(configurationFile))
	flag.Func("centroids", "neighborhood council centroids file", apply(centroidsFile))
	flag.Func("seed", "service requests to load in dev mode", apply(seedFile))
	flag.Func("devmode", "enable dev mode", apply(devmode))
	flag.Parse()

	return flags
}

func exitIf(err error, logger zerolog.Logger, msg string) {
	if err != nil {
		logger.Fatal().Err(err).Msg(msg)
	}
}
