package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var deleteAllConfirmed bool

func init() {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "删除单个 faery",
		Long:  "调用 DELETE /faeries/{id} 删除单条 faery 记录。",
		Args:  cobra.ExactArgs(1),
		RunE:  runDelete,
	}
	rootCmd.AddCommand(cmd)

	allCmd := &cobra.Command{
		Use:   "delete-all",
		Short: "删除全部 faery",
		Long:  "调用 DELETE /faeries 删除全部 faery 记录，需要显式指定 --yes。",
		Args:  cobra.NoArgs,
		RunE:  runDeleteAll,
	}
	allCmd.Flags().BoolVarP(&deleteAllConfirmed, "yes", "y", false, "确认删除全部记录")
	rootCmd.AddCommand(allCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	if err := app.client.Faeries.Delete(cmd.Context(), args[0]); err != nil {
		return errors.Wrapf(err, "delete %s 失败", args[0])
	}
	app.log.WithField("id", args[0]).Info("deleted faery")
	return app.printer.Message("已删除 faery "+args[0], map[string]any{"id": args[0]})
}

func runDeleteAll(cmd *cobra.Command, args []string) error {
	if !deleteAllConfirmed {
		return errors.New("delete-all 会删除全部记录，请使用 --yes 确认")
	}
	if err := app.client.Faeries.DeleteAll(cmd.Context()); err != nil {
		return errors.Wrap(err, "delete-all 失败")
	}
	app.log.Info("deleted all faeries")
	return app.printer.Message("已删除全部 faery", nil)
}
