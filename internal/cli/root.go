package cli

import (
	"github.com/jesb1n/immich/internal/config"
	"github.com/jesb1n/immich/internal/consts"

	"github.com/spf13/cobra"
)

// NewRootCommand 构建命令行入口，所有子命令执行前加载配置
func NewRootCommand() *cobra.Command {
	var configDir string

	root := &cobra.Command{
		Use:           "immich-server",
		Short:         consts.ApplicationName,
		Version:       consts.ApplicationVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.InitConfig(configDir)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	root.PersistentFlags().StringVar(&configDir, "config", "config", "配置文件所在目录")

	root.AddCommand(
		newServeCommand(),
		newExportAPICommand(),
		newUserCommand(),
		newTokenCommand(),
	)
	return root
}

func Execute() error {
	return NewRootCommand().Execute()
}
