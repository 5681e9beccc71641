package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 测试内容：验证包装后的 ServiceError 仍能通过 errors.As / errors.Is 识别。
func TestAsServiceError_Wrapped(t *testing.T) {
	root := errors.New("disk gone")
	err := fmt.Errorf("outer: %w", WrapInternalError("读取失败", root))

	serviceErr, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, ErrorCodeInternal, serviceErr.Code)
	assert.Equal(t, "读取失败", serviceErr.Message)
	assert.ErrorIs(t, err, root)
}

// 测试内容：验证 CodeOf 对普通错误与业务错误的返回值。
func TestCodeOf(t *testing.T) {
	assert.Equal(t, ErrorCodeNotFound, CodeOf(NewNotFoundErrorf("person %s", "x")))
	assert.Equal(t, ErrorCodeForbidden, CodeOf(NewForbiddenError("no")))
	assert.Equal(t, ErrorCodeInternal, CodeOf(errors.New("plain")))
}
