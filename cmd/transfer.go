package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/wangdayong228/dross-manager-client/internal/dross"
)

func init() {
	cmd := &cobra.Command{
		Use:   "transfer <from-id> <to-id> <amount>",
		Short: "在两个 faery 之间转移 dross",
		Long:  "读取双方记录后依次 PUT 回写：转出方减少 amount、转入方增加 amount；转入方写入失败时会尝试恢复转出方。",
		Args:  cobra.ExactArgs(3),
		RunE:  runTransfer,
	}

	rootCmd.AddCommand(cmd)
}

func runTransfer(cmd *cobra.Command, args []string) error {
	amount, err := dross.ParseAmount(args[2])
	if err != nil {
		return err
	}

	res, err := dross.Transfer(cmd.Context(), app.client.Faeries, args[0], args[1], amount)
	if err != nil {
		return errors.Wrap(err, "transfer 失败")
	}
	app.log.WithFields(logrus.Fields{"from": res.FromID, "to": res.ToID, "amount": res.Amount.String()}).Info("transferred dross")

	msg := fmt.Sprintf("已从 faery %s 转移 %s dross 到 faery %s（余额 %s / %s）",
		res.FromID, res.Amount, res.ToID, res.FromBalance, res.ToBalance)
	return app.printer.Message(msg, map[string]any{
		"from":        res.FromID,
		"to":          res.ToID,
		"amount":      res.Amount.String(),
		"fromBalance": res.FromBalance.String(),
		"toBalance":   res.ToBalance.String(),
	})
}
