// @title County API
// @version 1.0
// @description Пользователи и позиции; позиции загружаются XML-документом.
// @BasePath /

package main

import (
	"context"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"countyapi/config"
	"countyapi/internal/db"
	"countyapi/internal/handlers"
	"countyapi/internal/services"
	"countyapi/internal/services/storage"

	docs "countyapi/docs"
)

func main() {
	// 1. Загружаем конфиг из .env / окружения
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	// 1.1 Определяем режим запуска (dev/prod)
	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// 2. Открываем хранилище и создаём таблицы; без него сервис не работает
	gormDB, err := db.NewDB(cfg.DBDriver, cfg.DSN)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	gw := db.NewGateway(gormDB, cfg.DBTimeout)
	defer gw.Close()
	log.WithFields(log.Fields{"driver": cfg.DBDriver, "dsn": cfg.DSN}).Info("connected to store")

	// 3. Архив исходных XML и журнал пакетов
	archive, err := storage.New(storage.Options{
		Endpoint:  cfg.MinioEndpoint,
		AccessKey: cfg.MinioAccessKey,
		SecretKey: cfg.MinioSecretKey,
		Bucket:    cfg.MinioBucket,
		UseSSL:    cfg.MinioUseSSL,
	})
	if err != nil {
		log.Fatalf("storage init failed: %v", err)
	}
	if s, ok := archive.(*storage.MinioArchive); ok {
		if err := s.EnsureBucket(context.Background()); err != nil {
			log.WithError(err).Warn("bucket check failed, archiving may fail")
		}
	}
	ingest := handlers.IngestOptions{MaxBytes: cfg.XMLMaxBytes, Archive: archive}
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		ingest.Log = services.NewIngestLog(rdb, cfg.BatchLogLimit)
	}

	docs.SwaggerInfo.BasePath = "/"

	// 4. Создаём Gin-роутер и регистрируем маршруты
	r := gin.Default()
	r.Use(cors.Default())
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	handlers.Register(r, handlers.Deps{Gateway: gw, Ingest: ingest})

	// 5. Запускаем сервер
	addr := ":" + cfg.Port
	log.Printf("listening on %s …", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
