package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/wangdayong228/dross-manager-client/internal/config"
	"github.com/wangdayong228/dross-manager-client/internal/output"
	drossmanagersdk "github.com/wangdayong228/dross-manager-client/pkg/dross-manager-sdk"
)

var (
	configPath string
	overrides  config.Overrides

	app *appContext
)

// appContext 在 PersistentPreRunE 中根据配置构造一次，所有子命令共用。
type appContext struct {
	cfg     *config.Config
	log     *logrus.Logger
	client  *drossmanagersdk.Client
	printer *output.Printer
}

var rootCmd = &cobra.Command{
	Use:               "dross-manager-client",
	Short:             "Dross Manager faeries 接口的命令行客户端",
	Long:              "dross-manager-client 是一款用 Go 编写的 CLI 工具，通过 Dross Manager 的 REST 接口对 faery 记录进行列表、查看、新增、修改、删除以及 dross 转账。",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initApp,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "f", "", "配置文件路径（YAML，可选）")
	pf.StringVar(&overrides.BaseURL, "base-url", "", "接口根地址，覆盖配置文件（默认 "+config.DefaultBaseURL+"）")
	pf.DurationVar(&overrides.Timeout, "timeout", 0, "单次请求超时，覆盖配置文件（默认 30s）")
	pf.StringArrayVar(&overrides.Headers, "header", nil, "附加请求头 key=value，可重复指定")
	pf.StringVar(&overrides.LogLevel, "log-level", "", "日志级别 panic/fatal/error/warn/info/debug/trace（默认 info）")
	pf.StringVarP(&overrides.Output, "output", "o", "", "输出格式 table/json（默认 table）")
}

func initApp(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return errors.Wrap(err, "加载配置失败")
	}
	if err := cfg.ApplyOverrides(overrides); err != nil {
		return errors.Wrap(err, "解析命令行参数失败")
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "配置校验失败")
	}

	logger := logrus.New()
	logger.SetOutput(cmd.ErrOrStderr())
	logger.SetLevel(cfg.Level())
	logger.WithField("baseUrl", cfg.BaseURL).Debug("loaded config")

	app = &appContext{
		cfg:     cfg,
		log:     logger,
		client:  drossmanagersdk.New(cfg.BaseURL, cfg.SDKOptions(logger)...),
		printer: output.NewPrinter(cmd.OutOrStdout(), cfg.Format()),
	}
	return nil
}

// Execute 入口
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
