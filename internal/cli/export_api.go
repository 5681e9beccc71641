package cli

import (
	"fmt"

	"github.com/jesb1n/immich/internal/apidoc"
	"github.com/jesb1n/immich/internal/router"

	"github.com/spf13/cobra"
)

func newExportAPICommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export-api",
		Short: "导出 OpenAPI 接口描述 (YAML)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := apidoc.WriteFile(output, router.APIRoutes()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ 接口描述已导出到 %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "immich-openapi.yaml", "输出文件路径")
	return cmd
}
