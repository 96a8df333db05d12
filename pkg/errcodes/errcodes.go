package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError   failure.ErrorCode = "InternalServerError"
	ValidationError       failure.ErrorCode = "ValidationError"
	Forbidden             failure.ErrorCode = "Forbidden"
	MethodNotAllowed      failure.ErrorCode = "MethodNotAllowed"
	TooManyRequests       failure.ErrorCode = "TooManyRequests"
	OriginsNotConfigured  failure.ErrorCode = "OriginsNotConfigured"
	InvalidFormTiming     failure.ErrorCode = "InvalidFormTiming"
	InvalidName           failure.ErrorCode = "InvalidName"
	InvalidPhoneNumber    failure.ErrorCode = "InvalidPhoneNumber"
	RelayNotConfigured    failure.ErrorCode = "RelayNotConfigured"
	RelayFailed           failure.ErrorCode = "RelayFailed"
	RateLimitStoreFailure failure.ErrorCode = "RateLimitStoreFailure"
)
