package cmd

import (
	"github.com/spf13/cobra"

	"github.com/wangdayong228/dross-manager-client/internal/mockserver"
	"github.com/wangdayong228/dross-manager-client/internal/utils/commonutil"
)

var (
	serveMockAddr   string
	serveMockPrefix string
	serveMockSeed   string
)

func init() {
	cmd := &cobra.Command{
		Use:   "serve-mock",
		Short: "启动内存版 Dross Manager faeries 接口，用于本地联调",
		Long:  "在本地启动一个与 Dross Manager 状态码一致的 faeries 接口（数据只保存在内存中），可通过 --seed 预置记录。Ctrl+C 退出。",
		Args:  cobra.NoArgs,
		RunE:  runServeMock,
	}

	cmd.Flags().StringVar(&serveMockAddr, "addr", ":8000", "监听地址")
	cmd.Flags().StringVar(&serveMockPrefix, "prefix", mockserver.DefaultPrefix, "接口挂载前缀")
	cmd.Flags().StringVar(&serveMockSeed, "seed", "", "预置记录文件（JSON array，可选）")

	rootCmd.AddCommand(cmd)
}

func runServeMock(cmd *cobra.Command, args []string) error {
	opts := []mockserver.Option{
		mockserver.WithLogger(app.log),
		mockserver.WithPrefix(serveMockPrefix),
	}
	if serveMockSeed != "" {
		seed, err := commonutil.ReadCollectionFile(serveMockSeed)
		if err != nil {
			return err
		}
		opts = append(opts, mockserver.WithSeed(seed))
		app.log.WithField("count", len(seed)).Info("seeded mock store")
	}

	return mockserver.New(opts...).ListenAndServe(cmd.Context(), serveMockAddr)
}
