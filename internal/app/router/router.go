package router

import (
	"time"

	"github.com/gin-gonic/gin"

	authhandler "task_backend/internal/feature/auth/transport/handler"
	taskhandler "task_backend/internal/feature/tasks/transport/handler"
	"task_backend/internal/platform/http/handler"
	"task_backend/internal/platform/http/middleware"
	jwtmw "task_backend/internal/platform/jwt"
	"task_backend/internal/shared/ratelimiter"
)

func NewRouter(authHandler *authhandler.AuthHandler, tasks *taskhandler.TaskHandler) *gin.Engine {
	r := gin.Default()

	// 全リクエストにリクエストIDを付与してアクセスログを出す
	r.Use(middleware.RequestID())

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	// 新規ユーザー登録（登録の乱用防止のためレート制限あり）
	registerLimiter := ratelimiter.NewRateLimiter(5, time.Minute)
	r.POST("/register", registerLimiter.Middleware(), authHandler.Register)
	// ログイン（JWT 発行、総当たり攻撃対策のレート制限あり）
	loginLimiter := ratelimiter.NewRateLimiter(10, time.Minute)
	r.POST("/login", loginLimiter.Middleware(), authHandler.Login)

	// 認証必須のルート
	// r.Group("/") でルートグループを作成
	auth := r.Group("/")
	// jwtmw.AuthRequired() ミドルウェアを適用
	// → リクエストヘッダーに JWT が必要になる
	auth.Use(jwtmw.AuthRequired())
	{
		auth.POST("/tasks", tasks.Create)
		auth.GET("/tasks", tasks.List)
		auth.GET("/tasks/:id", tasks.Get)
		auth.PATCH("/tasks/:id", tasks.Update)
		auth.PUT("/tasks/:id", tasks.Replace)
		auth.DELETE("/tasks/:id", tasks.Delete)
	}

	return r
}
