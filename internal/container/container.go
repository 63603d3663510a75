package container

import (
	"cloud.google.com/go/storage"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/travelbuddy/journal-api/config"
	"github.com/travelbuddy/journal-api/internal/cleanup"
	"github.com/travelbuddy/journal-api/internal/infrastructure/assetstore"
	"github.com/travelbuddy/journal-api/pkg/helpers"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client
	gcsClient   *storage.Client

	jwtManager *helpers.TokenManager

	assets         assetstore.Store
	cleanupEnqueue cleanup.Enqueuer
)

func SetConfig(c *config.Config)      { cfg = c }
func GetConfig() *config.Config       { return cfg }
func SetLogger(l *logrus.Logger)      { logger = l }
func GetLogger() *logrus.Logger       { return logger }
func SetPGPool(p *pgxpool.Pool)       { pgPool = p }
func GetPGPool() *pgxpool.Pool        { return pgPool }
func SetRedis(r *redis.Client)        { redisClient = r }
func GetRedis() *redis.Client         { return redisClient }
func SetGCS(s *storage.Client)        { gcsClient = s }
func GetGCS() *storage.Client         { return gcsClient }
func SetJWT(m *helpers.TokenManager)  { jwtManager = m }
func SetAssets(s assetstore.Store)    { assets = s }
func GetAssets() assetstore.Store     { return assets }
func SetCleanup(e cleanup.Enqueuer)   { cleanupEnqueue = e }
func GetCleanup() cleanup.Enqueuer    { return cleanupEnqueue }

func GetJWT() *helpers.TokenManager {
	if jwtManager != nil {
		return jwtManager
	}
	return helpers.DefaultJWT()
}
