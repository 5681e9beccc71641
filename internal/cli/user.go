package cli

import (
	"fmt"

	"github.com/jesb1n/immich/internal/config"
	"github.com/jesb1n/immich/internal/consts"
	"github.com/jesb1n/immich/internal/db"
	"github.com/jesb1n/immich/internal/middleware"
	userrepo "github.com/jesb1n/immich/internal/modules/user/repo"
	userservice "github.com/jesb1n/immich/internal/modules/user/service"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// withUserService 打开数据库并在回调结束后关闭
func withUserService(fn func(*userservice.Service) error) error {
	gdb, err := db.Open(config.Get().Database)
	if err != nil {
		return err
	}
	defer closeDB(gdb)
	return fn(userservice.New(userrepo.NewUserRepository(gdb)))
}

func closeDB(gdb *gorm.DB) {
	if sqlDB, err := gdb.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func newUserCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "用户管理",
	}
	cmd.AddCommand(newUserCreateCommand(), newUserUpdateCommand())
	return cmd
}

func newUserCreateCommand() *cobra.Command {
	var in userservice.CreateUserInput
	cmd := &cobra.Command{
		Use:   "create",
		Short: "创建用户",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withUserService(func(s *userservice.Service) error {
				user, err := s.CreateUser(in)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✅ 用户已创建: %s (%s)\n", user.ID, user.Email)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&in.Email, "email", "", "邮箱")
	cmd.Flags().StringVar(&in.Password, "password", "", "密码，至少 8 位")
	cmd.Flags().StringVar(&in.FirstName, "first-name", "", "名")
	cmd.Flags().StringVar(&in.LastName, "last-name", "", "姓")
	cmd.Flags().BoolVar(&in.IsAdmin, "admin", false, "是否为管理员")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

var userStatuses = map[string]int{
	"active":   consts.UserStatusActive,
	"banned":   consts.UserStatusBanned,
	"disabled": consts.UserStatusDisabled,
}

func newUserUpdateCommand() *cobra.Command {
	var (
		email      string
		statusName string
		admin      bool
	)
	cmd := &cobra.Command{
		Use:   "update",
		Short: "修改账号状态或管理员权限",
		RunE: func(cmd *cobra.Command, args []string) error {
			var status *int
			if cmd.Flags().Changed("status") {
				v, ok := userStatuses[statusName]
				if !ok {
					return fmt.Errorf("未知的账号状态: %s", statusName)
				}
				status = &v
			}
			var isAdmin *bool
			if cmd.Flags().Changed("admin") {
				isAdmin = &admin
			}

			return withUserService(func(s *userservice.Service) error {
				user, err := s.UpdateAccess(email, status, isAdmin)
				if err != nil {
					return err
				}
				// 启用 Redis 时同时清除服务进程共享的缓存
				middleware.ClearUserAccessCache(user.ID)
				fmt.Fprintf(cmd.OutOrStdout(), "✅ 用户已更新: %s (%s) status=%d admin=%t\n", user.ID, user.Email, user.Status, user.IsAdmin)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "邮箱")
	cmd.Flags().StringVar(&statusName, "status", "", "账号状态: active, banned, disabled")
	cmd.Flags().BoolVar(&admin, "admin", false, "是否为管理员")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
