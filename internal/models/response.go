package models

// Коды ошибок для клиента. Текстовые, чтобы фронтенду не приходилось
// разбирать HTTP-статусы.
const (
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeStoryLimit   = "STORY_LIMIT_REACHED"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// ErrorResponse - стандартная структура для ответа об ошибке в формате JSON.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Limit заполняется только для STORY_LIMIT_REACHED: потолок текущего тарифа.
	Limit int `json:"limit,omitempty"`
}
