package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "查看单个 faery",
		Long:  "调用 GET /faeries/{id} 获取单条 faery 记录，id 中的特殊字符会被转义。",
		Args:  cobra.ExactArgs(1),
		RunE:  runGet,
	}

	rootCmd.AddCommand(cmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	faery, err := app.client.Faeries.Get(cmd.Context(), args[0])
	if err != nil {
		return errors.Wrapf(err, "get %s 失败", args[0])
	}
	return app.printer.Record(faery)
}
