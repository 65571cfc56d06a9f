package webutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"ai_learning_tracker/internal/model"

	"github.com/go-playground/validator/v10"
)

// maxBodyBytes はリクエストボディの上限
const maxBodyBytes = 1 << 20

// DecodeJSONBody はリクエストボディをデコードする。未知のフィールドは拒否する。
func DecodeJSONBody(r *http.Request, dst interface{}, logger *slog.Logger) error {
	if r.Body == nil {
		return model.NewAppError("INVALID_BODY", "Request body is required.", "", model.ErrInvalidInput)
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		logger.Warn("Error decoding JSON body", "error", err)
		msg := "Request body is not valid JSON."
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			msg = fmt.Sprintf("Field '%s' has the wrong type.", typeErr.Field)
		}
		if errors.Is(err, io.EOF) {
			msg = "Request body is required."
		}
		return model.NewAppError("INVALID_BODY", msg, "", model.ErrInvalidInput)
	}
	return nil
}

// DecodeAndValidate は DecodeJSONBody の後に validate タグを検証する
func DecodeAndValidate(r *http.Request, dst interface{}, logger *slog.Logger) error {
	if err := DecodeJSONBody(r, dst, logger); err != nil {
		return err
	}
	if err := Validator.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return NewValidationErrorResponse(verrs)
		}
		return model.NewAppError("VALIDATION_ERROR", err.Error(), "", model.ErrInvalidInput)
	}
	return nil
}
