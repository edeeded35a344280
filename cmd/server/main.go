package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	redisv9 "github.com/redis/go-redis/v9"

	"task_backend/internal/app/di"
	"task_backend/internal/app/router"
	authadapters "task_backend/internal/feature/auth/adapters"
	authhandler "task_backend/internal/feature/auth/transport/handler"
	authusecase "task_backend/internal/feature/auth/usecase"
	taskhandler "task_backend/internal/feature/tasks/transport/handler"
	taskusecase "task_backend/internal/feature/tasks/usecase"
	infradb "task_backend/internal/platform/db"
	jwtmw "task_backend/internal/platform/jwt"
	infraredis "task_backend/internal/platform/redis"
)

// defaultTokenTTL はJWT_TTL未設定時のトークン有効期限です。
const defaultTokenTTL = time.Hour

func main() {
	// 本番環境ではGinのデバッグログを抑制する
	if os.Getenv("APP_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// db
	db := infradb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// JWT_SECRETチェック（開発中の注意喚起）
	secret := os.Getenv(jwtmw.EnvKeyJWTSecret)
	if secret == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}
	ttl := defaultTokenTTL
	if raw := os.Getenv("JWT_TTL"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			ttl = parsed
		} else {
			log.Printf("[WARN] Invalid JWT_TTL %q. Using default %v.", raw, defaultTokenTTL)
		}
	}

	// Repository
	userRepo := authadapters.NewUserRepository(db)
	// Redisが使えればキャッシュ付きリポジトリでラップ
	taskRepo := di.NewTaskRepository(rdb, db)

	// Usecase
	jwtGen := jwtmw.NewGenerator(secret, ttl)
	authUC := authusecase.NewAuthUsecase(userRepo, jwtGen)
	taskUC := taskusecase.NewTaskUsecase(taskRepo)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	taskH := taskhandler.NewTaskHandler(taskUC)

	// ルータ生成
	router := router.NewRouter(authH, taskH)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := router.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
