package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	authadapters "task_backend/internal/feature/auth/adapters"
	authentity "task_backend/internal/feature/auth/domain/entity"
	authhandler "task_backend/internal/feature/auth/transport/handler"
	authusecase "task_backend/internal/feature/auth/usecase"
	taskadapters "task_backend/internal/feature/tasks/adapters"
	taskentity "task_backend/internal/feature/tasks/domain/entity"
	taskhandler "task_backend/internal/feature/tasks/transport/handler"
	taskusecase "task_backend/internal/feature/tasks/usecase"
	jwtmw "task_backend/internal/platform/jwt"
)

// newTestServer はインメモリSQLiteと実物のユースケース一式でルータを組み立てます。
func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv(jwtmw.EnvKeyJWTSecret, "integration-test-secret")

	// テストごとに独立した共有インメモリDB（GORMの複数コネクションでも同一DBを見る）
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&authentity.User{}, &taskentity.Task{}))

	userRepo := authadapters.NewUserRepository(db)
	taskRepo := taskadapters.NewTaskRepository(db)

	jwtGen := jwtmw.NewGenerator("integration-test-secret", time.Hour)
	authUC := authusecase.NewAuthUsecase(userRepo, jwtGen)
	taskUC := taskusecase.NewTaskUsecase(taskRepo)

	authH := authhandler.NewAuthHandler(authUC)
	taskH := taskhandler.NewTaskHandler(taskUC)

	return NewRouter(authH, taskH)
}

func doRequest(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// TestRouter_RegisterLoginTaskLifecycle は登録→ログイン→タスク作成→一覧→削除→404
// のライフサイクル全体をエンドツーエンドで検証します。
func TestRouter_RegisterLoginTaskLifecycle(t *testing.T) {
	r := newTestServer(t)

	// 登録
	w := doRequest(r, http.MethodPost, "/register", "", gin.H{
		"username": "user1",
		"password": "Pass1234!",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// ログインしてトークンを取得
	w = doRequest(r, http.MethodPost, "/login", "", gin.H{
		"username": "user1",
		"password": "Pass1234!",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var loginResp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginResp))
	require.NotEmpty(t, loginResp.AccessToken)
	token := loginResp.AccessToken

	// タスク作成
	w = doRequest(r, http.MethodPost, "/tasks", token, gin.H{
		"title": "Buy groceries",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotZero(t, created.ID)

	// 一覧に作成したタスクが pending で現れる
	w = doRequest(r, http.MethodGet, "/tasks", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Buy groceries", list[0]["title"])
	assert.Equal(t, "pending", list[0]["status"])

	// ステータス更新
	w = doRequest(r, http.MethodPatch, fmt.Sprintf("/tasks/%d", created.ID), token, gin.H{
		"status": "completed",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "completed", updated["status"])
	assert.Equal(t, "Buy groceries", updated["title"])

	// 削除
	w = doRequest(r, http.MethodDelete, fmt.Sprintf("/tasks/%d", created.ID), token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	// 削除後は404
	w = doRequest(r, http.MethodGet, fmt.Sprintf("/tasks/%d", created.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// TestRouter_DuplicateUsername は同名ユーザーの再登録が409になることを検証します。
func TestRouter_DuplicateUsername(t *testing.T) {
	r := newTestServer(t)

	body := gin.H{"username": "dupuser", "password": "Pass1234!"}
	w := doRequest(r, http.MethodPost, "/register", "", body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(r, http.MethodPost, "/register", "", body)
	assert.Equal(t, http.StatusConflict, w.Code)
}

// TestRouter_LoginFailures は誤ったパスワードと未知のユーザーが
// 同じ401レスポンスになることを検証します。
func TestRouter_LoginFailures(t *testing.T) {
	r := newTestServer(t)

	w := doRequest(r, http.MethodPost, "/register", "", gin.H{
		"username": "loginuser",
		"password": "Pass1234!",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	wrongPassword := doRequest(r, http.MethodPost, "/login", "", gin.H{
		"username": "loginuser",
		"password": "WrongPass1",
	})
	unknownUser := doRequest(r, http.MethodPost, "/login", "", gin.H{
		"username": "nobody-here",
		"password": "Pass1234!",
	})

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownUser.Code)
	// レスポンスボディからユーザー存在の有無が区別できてはいけない
	assert.Equal(t, wrongPassword.Body.String(), unknownUser.Body.String())
}

// TestRouter_TasksRequireAuth はトークンなし・不正トークンでの
// タスクアクセスが401になることを検証します。
func TestRouter_TasksRequireAuth(t *testing.T) {
	r := newTestServer(t)

	w := doRequest(r, http.MethodGet, "/tasks", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(r, http.MethodGet, "/tasks", "not-a-real-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// TestRouter_OwnershipOpacity は他ユーザーのタスクへのアクセスが
// 403ではなく404になることを検証します。
func TestRouter_OwnershipOpacity(t *testing.T) {
	r := newTestServer(t)

	register := func(username string) string {
		w := doRequest(r, http.MethodPost, "/register", "", gin.H{
			"username": username,
			"password": "Pass1234!",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		w = doRequest(r, http.MethodPost, "/login", "", gin.H{
			"username": username,
			"password": "Pass1234!",
		})
		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			AccessToken string `json:"access_token"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		return resp.AccessToken
	}

	ownerToken := register("owner-user")
	otherToken := register("other-user")

	w := doRequest(r, http.MethodPost, "/tasks", ownerToken, gin.H{"title": "Private task"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	path := fmt.Sprintf("/tasks/%d", created.ID)
	missing := fmt.Sprintf("/tasks/%d", created.ID+1000)

	foreignGet := doRequest(r, http.MethodGet, path, otherToken, nil)
	missingGet := doRequest(r, http.MethodGet, missing, otherToken, nil)
	assert.Equal(t, http.StatusNotFound, foreignGet.Code)
	assert.Equal(t, http.StatusNotFound, missingGet.Code)
	// 他人のタスクと存在しないタスクが応答から区別できてはいけない
	assert.Equal(t, missingGet.Body.String(), foreignGet.Body.String())

	foreignDelete := doRequest(r, http.MethodDelete, path, otherToken, nil)
	assert.Equal(t, http.StatusNotFound, foreignDelete.Code)

	// 所有者からはまだ見える
	w = doRequest(r, http.MethodGet, path, ownerToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

// TestRouter_ReplaceResetsOmittedFields はPUTが全置換であり、
// 省略フィールドが初期値に戻ることを検証します。
func TestRouter_ReplaceResetsOmittedFields(t *testing.T) {
	r := newTestServer(t)

	w := doRequest(r, http.MethodPost, "/register", "", gin.H{
		"username": "putuser",
		"password": "Pass1234!",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	w = doRequest(r, http.MethodPost, "/login", "", gin.H{
		"username": "putuser",
		"password": "Pass1234!",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var loginResp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginResp))
	token := loginResp.AccessToken

	w = doRequest(r, http.MethodPost, "/tasks", token, gin.H{
		"title":       "Original title",
		"description": "keep me?",
		"status":      "in-progress",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doRequest(r, http.MethodPut, fmt.Sprintf("/tasks/%d", created.ID), token, gin.H{
		"title": "Replaced title",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var replaced map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &replaced))
	assert.Equal(t, "Replaced title", replaced["title"])
	assert.Equal(t, "pending", replaced["status"])
	_, hasDescription := replaced["description"]
	assert.False(t, hasDescription, "omitted description should reset to empty")
}

// TestRouter_Healthz は導通確認エンドポイントを検証します。
func TestRouter_Healthz(t *testing.T) {
	r := newTestServer(t)

	w := doRequest(r, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
