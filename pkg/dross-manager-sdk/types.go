package drossmanagersdk

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// 说明：
// - 客户端不解释 Record 的字段内容，只把它当作 字段名 -> 值 的映射原样收发。
// - 唯一被识别的字段是 id，由服务端分配，客户端从不生成或修改它。
// - 数值统一解码为 json.Number（见 decodeJSON），再次序列化时保持原样。

// FieldID 为服务端用于寻址单条记录的字段。
const FieldID = "id"

// Dross Manager faery 表的已知字段，仅供调用方使用，SDK 不做校验。
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldIsAdmin = "is_admin"
	FieldDross   = "dross"
)

// Record 是与服务端交换的单条 faery 记录。
type Record map[string]any

// Collection 是 List 返回的记录序列，顺序由服务端决定。
type Collection []Record

// HasID 判断记录中是否已有非空的 id。
func (r Record) HasID() bool {
	return r.ID() != ""
}

// ID 以字符串形式返回 id，兼容服务端返回数字或字符串两种形式；没有 id 时返回空串。
func (r Record) ID() string {
	v, ok := r[FieldID]
	if !ok || v == nil {
		return ""
	}
	switch id := v.(type) {
	case string:
		return id
	case json.Number:
		return id.String()
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	case int:
		return strconv.Itoa(id)
	case int64:
		return strconv.FormatInt(id, 10)
	default:
		return fmt.Sprint(id)
	}
}

// IDs 返回集合中每条记录的 id，保持原有顺序。
func (c Collection) IDs() []string {
	ids := make([]string, 0, len(c))
	for _, r := range c {
		ids = append(ids, r.ID())
	}
	return ids
}
