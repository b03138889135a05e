package core

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestRelayError_Constructors(t *testing.T) {
	cause := errors.New("boom")
	tests := []struct {
		name       string
		err        *RelayError
		wantStatus int
		wantCode   string
		wantCause  error
	}{
		{"校验错误", NewValidationError("bad input"), http.StatusBadRequest, ErrCodeValidation, nil},
		{"配置错误", NewConfigurationError("no project"), http.StatusInternalServerError, ErrCodeConfiguration, nil},
		{"凭证错误", NewCredentialError("refresh failed", cause), http.StatusInternalServerError, ErrCodeCredential, cause},
		{"上游错误保留状态码", NewUpstreamError(http.StatusTooManyRequests, "quota"), http.StatusTooManyRequests, ErrCodeUpstream, nil},
		{"超时错误", NewTimeoutError("deadline", cause), http.StatusInternalServerError, ErrCodeTimeout, cause},
		{"内部错误", NewInternalError("oops", cause), http.StatusInternalServerError, ErrCodeInternal, cause},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Status != tt.wantStatus {
				t.Errorf("期望状态码 %d，实际 %d", tt.wantStatus, tt.err.Status)
			}
			if tt.err.Code != tt.wantCode {
				t.Errorf("期望错误码 %s，实际 %s", tt.wantCode, tt.err.Code)
			}
			if !errors.Is(tt.err, tt.wantCause) && tt.wantCause != nil {
				t.Errorf("errors.Is 应能追溯到原始错误")
			}
		})
	}
}

func TestRelayError_Error(t *testing.T) {
	plain := NewValidationError("empty prompt")
	if got := plain.Error(); got != "[VALIDATION_ERROR] empty prompt" {
		t.Errorf("无 cause 时格式不符，实际 %q", got)
	}

	wrapped := NewCredentialError("refresh failed", errors.New("token expired"))
	want := "[CREDENTIAL_ERROR] refresh failed: token expired"
	if got := wrapped.Error(); got != want {
		t.Errorf("带 cause 时格式不符，期望 %q，实际 %q", want, got)
	}
}

func TestRelayError_Unwrap(t *testing.T) {
	cause := errors.New("network down")
	err := NewInternalError("call failed", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is 应匹配被包裹的错误")
	}

	wrapped := fmt.Errorf("handler: %w", err)
	var relayErr *RelayError
	if !errors.As(wrapped, &relayErr) {
		t.Fatal("errors.As 应能从外层链中取出 RelayError")
	}
	if relayErr.Code != ErrCodeInternal {
		t.Errorf("期望错误码 %s，实际 %s", ErrCodeInternal, relayErr.Code)
	}
}

func TestAsRelayError(t *testing.T) {
	original := NewUpstreamError(http.StatusNotFound, "model not found")
	if got := AsRelayError(original); got != original {
		t.Error("RelayError 应原样返回，不应重新包装")
	}

	chained := fmt.Errorf("outer: %w", original)
	if got := AsRelayError(chained); got != original {
		t.Error("链中的 RelayError 应被取出")
	}

	plain := errors.New("something broke")
	got := AsRelayError(plain)
	if got.Code != ErrCodeInternal {
		t.Errorf("未知错误应映射为内部错误，实际 %s", got.Code)
	}
	if got.Status != http.StatusInternalServerError {
		t.Errorf("未知错误应映射为 500，实际 %d", got.Status)
	}
	if got.Message != "something broke" {
		t.Errorf("原始错误文本应保留，实际 %q", got.Message)
	}
	if !errors.Is(got, plain) {
		t.Error("原始错误应作为 cause 保留")
	}
}
