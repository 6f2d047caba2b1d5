// Package dross 实现 faery 之间的 dross 转账，只依赖 Faeries 的 Get / Update 两个接口。
package dross

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	drossmanagersdk "github.com/wangdayong228/dross-manager-client/pkg/dross-manager-sdk"
)

// MaxDross 为 Dross Manager 服务中 dross 字段（u32）的上限，余额与转账数量都不能超过它。
var MaxDross = decimal.NewFromInt(math.MaxUint32)

var (
	ErrInvalidAmount    = errors.New("转账数量必须为不超过 4294967295 的正整数")
	ErrInvalidIncrement = errors.New("转入后 dross 余额超出上限")
	ErrNotEnoughDross   = errors.New("dross 余额不足")
	ErrSameFaery        = errors.New("转出与转入不能是同一个 faery")
	ErrInvalidBalance   = errors.New("dross 余额不是不超过 4294967295 的非负整数")
)

// Store 为转账需要的最小接口，drossmanagersdk.Faeries 满足该接口。
type Store interface {
	Get(ctx context.Context, id string) (drossmanagersdk.Record, error)
	Update(ctx context.Context, id string, payload drossmanagersdk.Record) (drossmanagersdk.Record, error)
}

type TransferResult struct {
	FromID      string
	ToID        string
	Amount      decimal.Decimal
	FromBalance decimal.Decimal
	ToBalance   decimal.Decimal
}

// Transfer 从 fromID 转出 amount 个 dross 到 toID。
// 顺序为：读取双方 -> 更新转出方 -> 更新转入方；转入方更新失败时尽力把转出方恢复为原记录。
// 两次更新之间没有事务保证，并发转账需要调用方自行串行化。
func Transfer(ctx context.Context, store Store, fromID, toID string, amount decimal.Decimal) (*TransferResult, error) {
	if !validAmount(amount) {
		return nil, errors.Wrapf(ErrInvalidAmount, "amount=%s", amount)
	}
	if fromID == toID {
		return nil, errors.Wrapf(ErrSameFaery, "id=%s", fromID)
	}

	sender, err := store.Get(ctx, fromID)
	if err != nil {
		return nil, errors.Wrapf(err, "获取转出方 faery %s 失败", fromID)
	}
	receiver, err := store.Get(ctx, toID)
	if err != nil {
		return nil, errors.Wrapf(err, "获取转入方 faery %s 失败", toID)
	}

	senderBalance, err := Balance(sender)
	if err != nil {
		return nil, errors.Wrapf(err, "faery %s", fromID)
	}
	receiverBalance, err := Balance(receiver)
	if err != nil {
		return nil, errors.Wrapf(err, "faery %s", toID)
	}
	if senderBalance.LessThan(amount) {
		return nil, errors.Wrapf(ErrNotEnoughDross, "faery %s 余额 %s，需要 %s", fromID, senderBalance, amount)
	}
	if receiverBalance.Add(amount).GreaterThan(MaxDross) {
		return nil, errors.Wrapf(ErrInvalidIncrement, "faery %s 余额 %s，转入 %s", toID, receiverBalance, amount)
	}

	newSender := withBalance(sender, senderBalance.Sub(amount))
	newReceiver := withBalance(receiver, receiverBalance.Add(amount))

	if _, err := store.Update(ctx, fromID, newSender); err != nil {
		return nil, errors.Wrapf(err, "更新转出方 faery %s 失败", fromID)
	}
	if _, err := store.Update(ctx, toID, newReceiver); err != nil {
		if _, rbErr := store.Update(ctx, fromID, sender); rbErr != nil {
			return nil, errors.Wrapf(err, "更新转入方 faery %s 失败，且恢复转出方失败(%v)", toID, rbErr)
		}
		return nil, errors.Wrapf(err, "更新转入方 faery %s 失败，已恢复转出方", toID)
	}

	return &TransferResult{
		FromID:      fromID,
		ToID:        toID,
		Amount:      amount,
		FromBalance: senderBalance.Sub(amount),
		ToBalance:   receiverBalance.Add(amount),
	}, nil
}

// Balance 读取记录中的 dross 字段，缺失时视为 0。
func Balance(rec drossmanagersdk.Record) (decimal.Decimal, error) {
	v, ok := rec[drossmanagersdk.FieldDross]
	if !ok || v == nil {
		return decimal.Zero, nil
	}

	var (
		d   decimal.Decimal
		err error
	)
	switch val := v.(type) {
	case json.Number:
		d, err = decimal.NewFromString(val.String())
	case string:
		d, err = decimal.NewFromString(val)
	case float64:
		d = decimal.NewFromFloat(val)
	case int:
		d = decimal.NewFromInt(int64(val))
	case int64:
		d = decimal.NewFromInt(val)
	default:
		err = fmt.Errorf("不支持的类型 %T", v)
	}
	if err != nil {
		return decimal.Zero, errors.Wrapf(ErrInvalidBalance, "dross=%v: %v", v, err)
	}
	if !d.IsInteger() || d.IsNegative() || d.GreaterThan(MaxDross) {
		return decimal.Zero, errors.Wrapf(ErrInvalidBalance, "dross=%s", d)
	}
	return d, nil
}

// ParseAmount 解析命令行传入的转账数量。
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errors.Wrapf(ErrInvalidAmount, "amount=%q", s)
	}
	if !validAmount(d) {
		return decimal.Zero, errors.Wrapf(ErrInvalidAmount, "amount=%q", s)
	}
	return d, nil
}

func validAmount(d decimal.Decimal) bool {
	return d.IsInteger() && d.IsPositive() && d.LessThanOrEqual(MaxDross)
}

// withBalance 返回记录的拷贝并写入新的余额，原记录（包括 id）保持不变。
func withBalance(rec drossmanagersdk.Record, balance decimal.Decimal) drossmanagersdk.Record {
	out := make(drossmanagersdk.Record, len(rec)+1)
	for k, v := range rec {
		out[k] = v
	}
	out[drossmanagersdk.FieldDross] = json.Number(balance.String())
	return out
}
