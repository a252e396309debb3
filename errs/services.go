package errs

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Third-Party API & LLM Specific Errors
var (
	ErrRateLimitExceeded  = errors.New("rate limit exceeded")
	ErrInvalidLLMResponse = errors.New("invalid LLM response")
)

// Configuration & Environment Errors
var (
	ErrConfigMissing       = errors.New("configuration missing")
	ErrConfigInvalid       = errors.New("configuration invalid")
	ErrEnvironmentVariable = errors.New("environment variable error")
)

// Data Consistency & Integrity Errors
var (
	ErrPartialFailure = errors.New("partial failure")
)

// Dependency Errors
var (
	ErrServiceUnreachable = errors.New("service unreachable")
)

func NewRateLimitError(service string, retryAfter time.Duration) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusTooManyRequests,
		err:        ErrRateLimitExceeded,
		Details:    fmt.Sprintf("Rate limit exceeded for %s, retry after %s", service, retryAfter),
		Field:      "rate_limit",
	}
}

func NewInvalidLLMResponseError(service string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrInvalidLLMResponse,
		Details:    fmt.Sprintf("Unexpected response from %s", service),
		Cause:      cause,
		Field:      "llm",
	}
}

func NewConfigError(configName string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusServiceUnavailable,
		err:        ErrConfigInvalid,
		Details:    fmt.Sprintf("Configuration error for %s", configName),
		Cause:      cause,
		Field:      configName,
	}
}

func NewEnvironmentVariableError(varName string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusServiceUnavailable,
		err:        ErrEnvironmentVariable,
		Details:    fmt.Sprintf("Environment variable %s is missing or invalid", varName),
		Field:      varName,
	}
}

func NewServiceUnreachableError(service string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrServiceUnreachable,
		Details:    fmt.Sprintf("Service %s is unreachable", service),
		Cause:      cause,
		Field:      "service",
	}
}

func NewPartialFailureError(operation string, failedSteps []string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrPartialFailure,
		Details:    fmt.Sprintf("Partial failure in %s operation. Failed steps: %v", operation, failedSteps),
		Field:      "partial_failure",
	}
}

func IsConfigError(err error) bool {
	return errors.Is(err, ErrConfigInvalid) || errors.Is(err, ErrConfigMissing)
}

func IsEnvironmentVariableError(err error) bool {
	return errors.Is(err, ErrEnvironmentVariable)
}

func IsPartialFailureError(err error) bool {
	return errors.Is(err, ErrPartialFailure)
}

func IsServiceUnreachableError(err error) bool {
	return errors.Is(err, ErrServiceUnreachable)
}
