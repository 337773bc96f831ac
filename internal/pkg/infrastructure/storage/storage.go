package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/hackforla/map-service/pkg/types"
)

var (
	ErrQueryFailed = errors.New("could not query service requests")
	ErrStoreFailed = errors.New("could not store service requests")
	ErrBadRecord   = errors.New("invalid service request record")
)

type ConnectorConfig struct {
	Host     string
	Port     string
	Username string
	DbName   string
	Password string
	SslMode  string
}

func LoadConfigFromEnv(log zerolog.Logger) ConnectorConfig {
	return ConnectorConfig{
		Host:     env.GetVariableOrDefault(log, "POSTGRES_HOST", ""),
		Port:     env.GetVariableOrDefault(log, "POSTGRES_PORT", "5432"),
		Username: env.GetVariableOrDefault(log, "POSTGRES_USER", ""),
		DbName:   env.GetVariableOrDefault(log, "POSTGRES_DBNAME", "311"),
		Password: env.GetVariableOrDefault(log, "POSTGRES_PASSWORD", ""),
		SslMode:  env.GetVariableOrDefault(log, "POSTGRES_SSLMODE", "disable"),
	}
}

type ConnectorFunc func() (*gorm.DB, zerolog.Logger, error)

// NewSQLiteConnector connects to the sqlite database at path, or to a private
// in memory database if path is empty.
func NewSQLiteConnector(log zerolog.Logger, path string) ConnectorFunc {
	dsn := "file::memory:"
	if path != "" {
		dsn = path
	}

	return func() (*gorm.DB, zerolog.Logger, error) {
		db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
			Logger:          logger.Default.LogMode(logger.Silent),
			CreateBatchSize: 1000,
		})

		if err == nil {
			sqldb, _ := db.DB()
			sqldb.SetMaxOpenConns(1)
		}

		return db, log, err
	}
}

func NewPostgreSQLConnector(log zerolog.Logger, cfg ConnectorConfig) ConnectorFunc {
	dbURI := fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=%s password=%s", cfg.Host, cfg.Port, cfg.Username, cfg.DbName, cfg.SslMode, cfg.Password)

	return func() (*gorm.DB, zerolog.Logger, error) {
		sublogger := log.With().Str("host", cfg.Host).Str("database", cfg.DbName).Logger()
		sublogger.Info().Msg("connecting to database host")

		db, err := gorm.Open(postgres.Open(dbURI), &gorm.Config{
			Logger: logger.New(
				&sublogger,
				logger.Config{
					SlowThreshold:             time.Second,
					LogLevel:                  logger.Warn,
					IgnoreRecordNotFoundError: true,
					Colorful:                  false,
				},
			),
			CreateBatchSize: 1000,
		})
		if err != nil {
			sublogger.Error().Err(err).Msg("failed to connect to database")
			return nil, sublogger, err
		}

		return db, sublogger, nil
	}
}

//go:generate moq -rm -out storage_mock.go . Store

type Store interface {
	QueryPins(ctx context.Context, conditions ...ConditionFunc) ([]types.Pin, error)
	QueryCoordinates(ctx context.Context, conditions ...ConditionFunc) ([]types.Coordinate, error)
	CountByNC(ctx context.Context, conditions ...ConditionFunc) ([]types.NCCount, error)
	Save(ctx context.Context, requests ...ServiceRequest) error
}

type store struct {
	db *gorm.DB
}

func New(connect ConnectorFunc) (Store, error) {
	db, _, err := connect()
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(&ServiceRequest{})
	if err != nil {
		return nil, err
	}

	return &store{db: db}, nil
}

func (s *store) QueryPins(ctx context.Context, conditions ...ConditionFunc) ([]types.Pin, error) {
	var rows []ServiceRequest

	q, err := s.query(ctx, conditions)
	if err != nil {
		return nil, err
	}

	err = q.
		Select("srnumber", "requesttype", "latitude", "longitude").
		Order("srnumber").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrQueryFailed, err.Error())
	}

	return lo.Map(rows, func(r ServiceRequest, _ int) types.Pin {
		return types.Pin{
			SRNumber:    r.SRNumber,
			RequestType: r.RequestType,
			Latitude:    r.Latitude,
			Longitude:   r.Longitude,
		}
	}), nil
}

func (s *store) QueryCoordinates(ctx context.Context, conditions ...ConditionFunc) ([]types.Coordinate, error) {
	var rows []ServiceRequest

	q, err := s.query(ctx, conditions)
	if err != nil {
		return nil, err
	}

	err = q.
		Select("latitude", "longitude").
		Order("srnumber").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrQueryFailed, err.Error())
	}

	return lo.Map(rows, func(r ServiceRequest, _ int) types.Coordinate {
		return types.NewCoordinate(r.Latitude, r.Longitude)
	}), nil
}

func (s *store) CountByNC(ctx context.Context, conditions ...ConditionFunc) ([]types.NCCount, error) {
	var rows []ncCount

	q, err := s.query(ctx, conditions)
	if err != nil {
		return nil, err
	}

	err = q.
		Select("nc, count(*) AS total").
		Group("nc").
		Order("nc").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrQueryFailed, err.Error())
	}

	return lo.Map(rows, func(r ncCount, _ int) types.NCCount {
		return types.NCCount{NC: r.NC, Count: r.Total}
	}), nil
}

func (s *store) Save(ctx context.Context, requests ...ServiceRequest) error {
	if len(requests) == 0 {
		return nil
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&requests).Error
	if err != nil {
		return fmt.Errorf("%w: %s", ErrStoreFailed, err.Error())
	}

	return nil
}

func (s *store) query(ctx context.Context, conditions []ConditionFunc) (*gorm.DB, error) {
	c := NewCondition(conditions...)
	if err := c.Err(); err != nil {
		return nil, err
	}

	q := s.db.WithContext(ctx).Model(&ServiceRequest{})
	if where := c.Where(); where != "" {
		q = q.Where(where, c.NamedArgs())
	}

	return q, nil
}

type ncCount struct {
	NC    string `gorm:"column:nc"`
	Total int    `gorm:"column:total"`
}
