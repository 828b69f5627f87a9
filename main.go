package main

import (
	"os"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"taskboard-api/api"
	"taskboard-api/auth"
	"taskboard-api/storage"
	"taskboard-api/tasks"
)

func main() {
	if dbg, err := strconv.ParseBool(os.Getenv("DEBUG")); err == nil && dbg {
		log.SetLevel(log.DebugLevel)
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("missing JWT_SECRET")
	}
	ttlRaw := os.Getenv("TOKEN_TTL")
	if ttlRaw == "" {
		log.Fatal("missing TOKEN_TTL")
	}
	ttl, err := time.ParseDuration(ttlRaw)
	if err != nil || ttl <= 0 {
		log.Fatalf("invalid TOKEN_TTL: %v", err)
	}

	users := storage.NewUserStore()
	taskStore := storage.NewTaskStore()

	var taskBackend tasks.Store = taskStore
	if redisConn := os.Getenv("REDIS_CONNECTION_STRING"); redisConn != "" {
		redisOpts, err := redis.ParseURL(redisConn)
		if err != nil {
			log.Fatalf("invalid REDIS_CONNECTION_STRING: %v", err)
		}
		cacheTTL := time.Minute
		if v := os.Getenv("CACHE_TTL"); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil || d <= 0 {
				log.Fatalf("invalid CACHE_TTL: %v", err)
			}
			cacheTTL = d
		}
		taskBackend = storage.NewCache(taskStore, redis.NewClient(redisOpts), cacheTTL)
		log.WithField("ttl", cacheTTL).Info("task read cache enabled")
	}

	codec := auth.NewTokenCodec([]byte(secret), ttl)
	authSvc := auth.NewService(users, codec)
	engine := tasks.NewEngine(taskBackend)

	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	logger := log.New()
	api.Register(e, engine, authSvc, codec, authSvc, logger)

	listenAddr := ":8080"
	if val, ok := os.LookupEnv("PORT"); ok {
		listenAddr = ":" + val
	}

	e.Logger.Fatal(e.Start(listenAddr))
}
