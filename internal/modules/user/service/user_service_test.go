package service

import (
	"testing"

	"github.com/jesb1n/immich/internal/consts"
	"github.com/jesb1n/immich/internal/modules/user/repo"
	platformservice "github.com/jesb1n/immich/internal/platform/service"
	"github.com/jesb1n/immich/internal/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	gdb := testutils.SetupDB(t)
	return New(repo.NewUserRepository(gdb))
}

// 测试内容：验证创建用户会规范化邮箱并拒绝重复邮箱。
func TestCreateUser_NormalizesAndRejectsDuplicate(t *testing.T) {
	s := newTestService(t)

	u, err := s.CreateUser(CreateUserInput{Email: "  Alice@Example.com ", Password: "password123", FirstName: "Alice"})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.NotEmpty(t, u.ID)
	assert.NotEqual(t, "password123", u.Password)

	_, err = s.CreateUser(CreateUserInput{Email: "alice@example.com", Password: "password123"})
	assert.Equal(t, platformservice.ErrorCodeConflict, platformservice.CodeOf(err))
}

// 测试内容：验证创建用户的参数校验。
func TestCreateUser_Validation(t *testing.T) {
	s := newTestService(t)

	_, err := s.CreateUser(CreateUserInput{Email: "bad", Password: "password123"})
	assert.Equal(t, platformservice.ErrorCodeValidation, platformservice.CodeOf(err))

	_, err = s.CreateUser(CreateUserInput{Email: "a@example.com", Password: "short"})
	assert.Equal(t, platformservice.ErrorCodeValidation, platformservice.CodeOf(err))
}

// 测试内容：验证密码校验成功与失败分支。
func TestAuthenticate(t *testing.T) {
	s := newTestService(t)
	created, err := s.CreateUser(CreateUserInput{Email: "bob@example.com", Password: "password123"})
	require.NoError(t, err)

	u, err := s.Authenticate("bob@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, created.ID, u.ID)

	_, err = s.Authenticate("bob@example.com", "wrong-password")
	assert.Equal(t, platformservice.ErrorCodeUnauthorized, platformservice.CodeOf(err))

	_, err = s.Authenticate("nobody@example.com", "password123")
	assert.Equal(t, platformservice.ErrorCodeUnauthorized, platformservice.CodeOf(err))
}

// 测试内容：验证账号状态与管理员标记查询，以及不存在用户的错误码。
func TestGetUserAccess(t *testing.T) {
	s := newTestService(t)
	u, err := s.CreateUser(CreateUserInput{Email: "c@example.com", Password: "password123", IsAdmin: true})
	require.NoError(t, err)

	access, err := s.GetUserAccess(u.ID)
	require.NoError(t, err)
	assert.Equal(t, consts.UserStatusActive, access.Status)
	assert.True(t, access.IsAdmin)

	_, err = s.GetUserAccess("3fa85f64-5717-4562-b3fc-2c963f66afa6")
	assert.Equal(t, platformservice.ErrorCodeUnauthorized, platformservice.CodeOf(err))

	n, err := s.CountAll()
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

// 测试内容：验证按邮箱修改账号状态与管理员标记，以及参数校验和不存在用户。
func TestUpdateAccess(t *testing.T) {
	s := newTestService(t)
	u, err := s.CreateUser(CreateUserInput{Email: "d@example.com", Password: "password123", IsAdmin: true})
	require.NoError(t, err)

	banned := consts.UserStatusBanned
	notAdmin := false
	updated, err := s.UpdateAccess("D@example.com", &banned, &notAdmin)
	require.NoError(t, err)
	assert.Equal(t, u.ID, updated.ID)
	assert.Equal(t, consts.UserStatusBanned, updated.Status)
	assert.False(t, updated.IsAdmin)

	access, err := s.GetUserAccess(u.ID)
	require.NoError(t, err)
	assert.Equal(t, consts.UserStatusBanned, access.Status)
	assert.False(t, access.IsAdmin)

	_, err = s.UpdateAccess("d@example.com", nil, nil)
	assert.Equal(t, platformservice.ErrorCodeValidation, platformservice.CodeOf(err))

	invalid := 9
	_, err = s.UpdateAccess("d@example.com", &invalid, nil)
	assert.Equal(t, platformservice.ErrorCodeValidation, platformservice.CodeOf(err))

	_, err = s.UpdateAccess("nobody@example.com", &banned, nil)
	assert.Equal(t, platformservice.ErrorCodeNotFound, platformservice.CodeOf(err))
}
