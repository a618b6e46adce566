package consts

import (
	"errors"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Errno struct {
	err  error
	code codes.Code
}

// GRPCStatus 实现 GRPCStatus 方法
func (en *Errno) GRPCStatus() *status.Status {
	return status.New(en.code, en.err.Error())
}

// 实现 Error 方法
func (en *Errno) Error() string {
	return en.err.Error()
}

// Code 返回错误码
func (en *Errno) Code() int { return int(en.code) }

// IsValidation 是否是入参校验类错误, 对应HTTP 400
func (en *Errno) IsValidation() bool {
	return en.code == codes.InvalidArgument
}

// IsRateLimited 是否是限流类错误, 对应HTTP 429
func (en *Errno) IsRateLimited() bool {
	return en.code == codes.ResourceExhausted
}

// NewErrno 创建自定义错误
func NewErrno(code codes.Code, err error) *Errno {
	return &Errno{
		err:  err,
		code: code,
	}
}

// 定义常量错误
var (
	ErrForbidden = NewErrno(codes.PermissionDenied, errors.New("forbidden"))

	// 入参校验类
	ErrWrongAgent = NewErrno(codes.InvalidArgument,
		errors.New("invalid agent name, expected 'resilience_coach'"))
	ErrLengthOutOfBounds = NewErrno(codes.InvalidArgument,
		errors.New("input length out of bounds, 3 to 2000 characters allowed"))
	ErrSpamLike = NewErrno(codes.InvalidArgument,
		errors.New("input appears invalid, please share genuine thoughts or feelings"))
	ErrUnsafeContent = NewErrno(codes.InvalidArgument,
		errors.New("invalid input detected, please avoid special characters or code"))
	ErrMissingUserId = NewErrno(codes.InvalidArgument,
		errors.New("missing required field: user_id"))

	// 限流类
	ErrRateLimited = NewErrno(codes.ResourceExhausted,
		errors.New("rate limit exceeded, please wait a moment before trying again"))
)

// RateLimitedError 限流错误, 附带建议的重试等待时间
type RateLimitedError struct {
	*Errno
	RetryAfter time.Duration
}

// NewRateLimited 创建一个携带重试时间的限流错误
func NewRateLimited(retryAfter time.Duration) *RateLimitedError {
	return &RateLimitedError{
		Errno:      ErrRateLimited,
		RetryAfter: retryAfter,
	}
}
