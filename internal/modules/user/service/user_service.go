package service

import (
	"errors"
	"strings"

	"github.com/jesb1n/immich/internal/consts"
	"github.com/jesb1n/immich/internal/dto"
	"github.com/jesb1n/immich/internal/model"
	platformservice "github.com/jesb1n/immich/internal/platform/service"
	"github.com/jesb1n/immich/internal/utils"

	"gorm.io/gorm"
)

// CreateUserInput 创建用户参数（CLI 使用）
type CreateUserInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	IsAdmin   bool
}

func (s *Service) CreateUser(in CreateUserInput) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, platformservice.NewValidationError("邮箱格式错误")
	}
	if len(in.Password) < 8 {
		return nil, platformservice.NewValidationError("密码最少8位")
	}

	if _, err := s.userStore.FindByEmail(email); err == nil {
		return nil, platformservice.NewConflictError("邮箱已被使用")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, platformservice.WrapInternalError("查询用户失败", err)
	}

	hashed, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, platformservice.WrapInternalError("密码加密失败", err)
	}

	user := &model.User{
		Email:     email,
		Password:  hashed,
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		IsAdmin:   in.IsAdmin,
		Status:    consts.UserStatusActive,
	}
	if err := s.userStore.Create(user); err != nil {
		return nil, platformservice.WrapInternalError("创建用户失败", err)
	}
	return user, nil
}

// Authenticate 校验邮箱与密码，仅允许正常状态的账号
func (s *Service) Authenticate(email, password string) (*model.User, error) {
	user, err := s.userStore.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformservice.NewUnauthorizedError("邮箱或密码错误")
		}
		return nil, platformservice.WrapInternalError("查询用户失败", err)
	}
	if !utils.CheckPassword(user.Password, password) {
		return nil, platformservice.NewUnauthorizedError("邮箱或密码错误")
	}
	if user.Status != consts.UserStatusActive {
		return nil, platformservice.NewForbiddenError("账号已被封禁或停用")
	}
	return user, nil
}

func (s *Service) GetUserByID(id string) (*model.User, error) {
	user, err := s.userStore.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformservice.NewNotFoundError("用户不存在")
		}
		return nil, platformservice.WrapInternalError("查询用户失败", err)
	}
	return user, nil
}

// GetUserAccess 供认证中间件检查账号状态与管理员权限
func (s *Service) GetUserAccess(id string) (*dto.UserAccess, error) {
	user, err := s.userStore.FindAccessByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformservice.NewUnauthorizedError("用户不存在")
		}
		return nil, platformservice.WrapInternalError("查询用户状态失败", err)
	}
	return &dto.UserAccess{Status: user.Status, IsAdmin: user.IsAdmin}, nil
}

// UpdateAccess 按邮箱修改账号状态或管理员标记，参数为 nil 的字段保持不变
func (s *Service) UpdateAccess(email string, status *int, isAdmin *bool) (*model.User, error) {
	if status == nil && isAdmin == nil {
		return nil, platformservice.NewValidationError("未指定要修改的字段")
	}
	fields := make(map[string]any, 2)
	if status != nil {
		switch *status {
		case consts.UserStatusActive, consts.UserStatusBanned, consts.UserStatusDisabled:
		default:
			return nil, platformservice.NewValidationError("账号状态无效")
		}
		fields["status"] = *status
	}
	if isAdmin != nil {
		fields["is_admin"] = *isAdmin
	}

	user, err := s.userStore.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformservice.NewNotFoundError("用户不存在")
		}
		return nil, platformservice.WrapInternalError("查询用户失败", err)
	}
	if err := s.userStore.UpdateFields(user.ID, fields); err != nil {
		return nil, platformservice.WrapInternalError("更新用户失败", err)
	}
	if status != nil {
		user.Status = *status
	}
	if isAdmin != nil {
		user.IsAdmin = *isAdmin
	}
	return user, nil
}

func (s *Service) CountAll() (int64, error) {
	return s.userStore.CountAll()
}
