// internal/model/error.go
package model

import (
	"errors"
	"fmt"
)

// アプリケーション固有のエラー
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInternalServer = errors.New("internal server error")
	ErrForbidden      = errors.New("forbidden")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrConflict       = errors.New("resource conflict") // 重複エラー用
)

// ポイント・レベル計算のエラー分類
var (
	// ErrStorage はストアに到達できない、または書き込みに失敗した場合。トランザクションは必ずロールバックされる。
	ErrStorage = errors.New("storage error")
	// ErrConfiguration はレベル閾値の設定が不正な場合 (0始まりでない、単調増加でない)。
	ErrConfiguration = errors.New("invalid level threshold configuration")
	// ErrLevelDowngradeNotAllowed はポイントで到達済みのレベルより下を選ぼうとした場合。
	ErrLevelDowngradeNotAllowed = errors.New("level downgrade not allowed")
	// ErrInvariantViolation は合計ポイントが負になるなど帳簿の不整合。
	ErrInvariantViolation = errors.New("invariant violation")
	// ErrAppendOnly はポイント履歴を更新・削除しようとした場合。
	ErrAppendOnly = errors.New("points log is append-only")
)

// ErrorDetail はAPIエラーレスポンスの中身
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// APIErrorResponse はAPIエラーレスポンスの構造体
type APIErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// AppError はクライアント向けの情報と原因のエラーをまとめたもの
type AppError struct {
	Detail ErrorDetail
	Err    error
}

func NewAppError(code, message, field string, err error) *AppError {
	return &AppError{
		Detail: ErrorDetail{Code: code, Message: message, Field: field},
		Err:    err,
	}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Detail.Code, e.Detail.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Detail.Code, e.Detail.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewStorageError はDBエラーを ErrStorage でラップする。
// 冪等な操作なので、メッセージは再試行を促すものにする。
func NewStorageError(op string, err error) *AppError {
	return NewAppError("STORAGE_ERROR", "A temporary storage problem occurred. Please retry.", "",
		fmt.Errorf("%s: %w: %w", op, ErrStorage, err))
}
