package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/wangdayong228/dross-manager-client/internal/utils/commonutil"
)

var (
	createData string
	createFile string
)

func init() {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "新增 faery",
		Long:  "调用 POST /faeries 新增一条 faery 记录，内容原样发送，id 由服务端分配。",
		Example: `  dross-manager-client create --data '{"name":"Puck","email":"puck@example.com","is_admin":false,"dross":0}'
  cat faery.json | dross-manager-client create --file -`,
		Args: cobra.NoArgs,
		RunE: runCreate,
	}

	cmd.Flags().StringVarP(&createData, "data", "d", "", "JSON 格式的记录内容")
	cmd.Flags().StringVar(&createFile, "file", "", "从文件读取记录内容，- 表示 stdin")

	rootCmd.AddCommand(cmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	payload, err := commonutil.ReadPayload(createData, createFile, cmd.InOrStdin())
	if err != nil {
		return err
	}

	created, err := app.client.Faeries.Create(cmd.Context(), payload)
	if err != nil {
		return errors.Wrap(err, "create 失败")
	}
	app.log.WithField("id", created.ID()).Info("created faery")
	return app.printer.Record(created)
}
