package apierr

import "net/http"

// Error 是业务层统一的错误类型：携带HTTP状态码、给用户看的消息，
// 以及可选的字段级校验错误列表。handler层在边界处统一转换成错误响应
type Error struct {
	StatusCode int
	Message    string
	Errors     []string
}

func (e *Error) Error() string {
	return e.Message
}

func New(statusCode int, message string) *Error {
	return &Error{StatusCode: statusCode, Message: message}
}

// NewValidation 用于422请求格式校验失败，附带字段错误列表
func NewValidation(message string, errs []string) *Error {
	return &Error{StatusCode: http.StatusUnprocessableEntity, Message: message, Errors: errs}
}
