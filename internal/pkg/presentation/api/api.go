package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"

	"github.com/hackforla/map-service/internal/pkg/application/mapservice"
	"github.com/hackforla/map-service/internal/pkg/infrastructure/storage"
	"github.com/hackforla/map-service/pkg/types"
)

var tracer = otel.Tracer("map-service/api")

func RegisterHandlers(ctx context.Context, router *chi.Mux, svc mapservice.MapService) *chi.Mux {
	log := logging.GetFromContext(ctx)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	router.Handle("/metrics", promhttp.Handler())

	router.Route("/api/v0", func(r chi.Router) {
		r.Route("/map", func(r chi.Router) {
			r.Post("/clusters", clustersHandler(log, svc))
			r.Post("/pins", pinsHandler(log, svc))
			r.Post("/heatmap", heatmapHandler(log, svc))
		})
	})

	return router
}

func clustersHandler(log zerolog.Logger, svc mapservice.MapService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "map-clusters")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		var q types.ClustersQuery
		err = decodeBody(r.Body, &q)
		if err != nil {
			requestLogger.Error().Err(err).Msg("unable to decode cluster query")
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		clusters, err := svc.Clusters(ctx, q)
		if err != nil {
			requestLogger.Error().Err(err).Msg("unable to get clusters")
			w.WriteHeader(statusFromError(err))
			return
		}

		contentType := "application/json"
		var b []byte

		if wantsGeoJSON(r) {
			contentType = "application/geo+json"
			b, err = NewFeatureCollectionWithClusters(clusters).MarshalJSON()
		} else {
			b, err = json.Marshal(clusters)
		}

		if err != nil {
			requestLogger.Error().Err(err).Msg("unable to marshal clusters")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		requestLogger.Debug().Int("zoom", q.Zoom).Int("clusters", len(clusters)).Msg("returning clusters")

		writeResponse(w, contentType, b)
	}
}

func pinsHandler(log zerolog.Logger, svc mapservice.MapService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "map-pins")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		var q types.ClustersQuery
		err = decodeBody(r.Body, &q)
		if err != nil {
			requestLogger.Error().Err(err).Msg("unable to decode pins query")
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		result, err := svc.Pins(ctx, q)
		if err != nil {
			requestLogger.Error().Err(err).Msg("unable to get pins")
			w.WriteHeader(statusFromError(err))
			return
		}

		b, err := json.Marshal(result)
		if err != nil {
			requestLogger.Error().Err(err).Msg("unable to marshal pins")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		requestLogger.Debug().Bool("overview", result.Overview).Int("count", result.Len()).Msg("returning pins")

		writeResponse(w, "application/json", b)
	}
}

func heatmapHandler(log zerolog.Logger, svc mapservice.MapService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "map-heatmap")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		var q types.HeatmapQuery
		err = decodeBody(r.Body, &q)
		if err != nil {
			requestLogger.Error().Err(err).Msg("unable to decode heatmap query")
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		coords, err := svc.Heatmap(ctx, q)
		if err != nil {
			requestLogger.Error().Err(err).Msg("unable to get heatmap")
			w.WriteHeader(statusFromError(err))
			return
		}

		b, err := json.Marshal(coords)
		if err != nil {
			requestLogger.Error().Err(err).Msg("unable to marshal heatmap")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		writeResponse(w, "application/json", b)
	}
}

// statusFromError answers queries the service rejected as malformed with 400.
func statusFromError(err error) int {
	if errors.Is(err, mapservice.ErrInvalidOptions) || errors.Is(err, storage.ErrInvalidCondition) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func decodeBody(body io.Reader, v any) error {
	b, err := io.ReadAll(body)
	if err != nil {
		return err
	}

	return json.Unmarshal(b, v)
}

func wantsGeoJSON(r *http.Request) bool {
	return r.URL.Query().Get("format") == "geojson"
}

func writeResponse(w http.ResponseWriter, contentType string, b []byte) {
	w.Header().Add("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
