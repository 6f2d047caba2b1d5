package enums

import (
	"github.com/nft-rainbow/rainbow-goutils/utils/enumutils"
)

// OutputFormat 表示 CLI 的输出格式，配置文件与命令行中使用其字符串形式。
type OutputFormat int8

const (
	OutputFormatTable OutputFormat = iota + 1
	OutputFormatJSON
)

var OutputFormatEb enumutils.EnumBase[OutputFormat]

func init() {
	OutputFormatEb = enumutils.NewEnumBase("OutputFormat", map[OutputFormat]string{
		OutputFormatTable: "table",
		OutputFormatJSON:  "json",
	})
}

func (f OutputFormat) MarshalText() ([]byte, error) {
	return OutputFormatEb.MarshalText(f)
}

func (f *OutputFormat) UnmarshalText(data []byte) error {
	val, err := OutputFormatEb.UnmarshalText(data)
	if err != nil {
		return err
	}
	*f = val
	return nil
}

func (f OutputFormat) String() string {
	return OutputFormatEb.String(f)
}

func ParseOutputFormat(s string) (OutputFormat, error) {
	return OutputFormatEb.Parse(s)
}
