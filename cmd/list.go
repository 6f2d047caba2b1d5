package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "列出所有 faery",
		Long:  "调用 GET /faeries 获取全部 faery 记录，顺序由服务端决定。",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}

	rootCmd.AddCommand(cmd)
}

func runList(cmd *cobra.Command, args []string) error {
	faeries, err := app.client.Faeries.List(cmd.Context())
	if err != nil {
		return errors.Wrap(err, "list 失败")
	}
	app.log.WithField("count", len(faeries)).Debug("listed faeries")
	return app.printer.Collection(faeries)
}
