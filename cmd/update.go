package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/wangdayong228/dross-manager-client/internal/utils/commonutil"
)

var (
	updateData string
	updateFile string
)

func init() {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "整条替换 faery",
		Long:  "调用 PUT /faeries/{id} 用给定内容整条替换记录（不是局部更新），内容中的 id 需要与参数一致（Dross Manager 服务要求携带 id，mock 服务允许省略）。",
		Args:  cobra.ExactArgs(1),
		RunE:  runUpdate,
	}

	cmd.Flags().StringVarP(&updateData, "data", "d", "", "JSON 格式的完整记录内容")
	cmd.Flags().StringVar(&updateFile, "file", "", "从文件读取记录内容，- 表示 stdin")

	rootCmd.AddCommand(cmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	payload, err := commonutil.ReadPayload(updateData, updateFile, cmd.InOrStdin())
	if err != nil {
		return err
	}

	updated, err := app.client.Faeries.Update(cmd.Context(), args[0], payload)
	if err != nil {
		return errors.Wrapf(err, "update %s 失败", args[0])
	}
	app.log.WithField("id", args[0]).Info("updated faery")
	if updated == nil {
		return app.printer.Message("已更新 faery "+args[0], map[string]any{"id": args[0]})
	}
	return app.printer.Record(updated)
}
