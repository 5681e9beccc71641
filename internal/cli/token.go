package cli

import (
	"fmt"
	"time"

	"github.com/jesb1n/immich/internal/config"
	userservice "github.com/jesb1n/immich/internal/modules/user/service"
	"github.com/jesb1n/immich/internal/utils"

	"github.com/spf13/cobra"
)

func newTokenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "访问令牌",
	}
	cmd.AddCommand(newTokenIssueCommand())
	return cmd
}

func newTokenIssueCommand() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "issue",
		Short: "校验邮箱与密码后签发访问令牌",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withUserService(func(s *userservice.Service) error {
				user, err := s.Authenticate(email, password)
				if err != nil {
					return err
				}
				hours := config.Get().JWT.ExpirationHours
				if hours <= 0 {
					hours = 24
				}
				token, err := utils.GenerateAccessToken(user.ID, user.Email, user.IsAdmin, time.Duration(hours)*time.Hour)
				if err != nil {
					return fmt.Errorf("签发令牌失败: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), token)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "邮箱")
	cmd.Flags().StringVar(&password, "password", "", "密码")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
