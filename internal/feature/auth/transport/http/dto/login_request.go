// Package dto はauthフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// LoginReq は/loginエンドポイントのリクエストボディを表します。
// 必須フィールドのバリデーションを含みます。
type LoginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResp は/loginエンドポイントの成功レスポンスを表します。
type TokenResp struct {
	AccessToken string `json:"access_token"`
}

// ErrorResp はエラーレスポンスの共通フォーマットです。
type ErrorResp struct {
	Error string `json:"error"`
}
