package commonutil

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"

	drossmanagersdk "github.com/wangdayong228/dross-manager-client/pkg/dross-manager-sdk"
)

// ReadPayload 从 --data（内联 JSON）或 --file（文件路径，"-" 表示 stdin）读取一条记录。
// 两者必须且只能指定一个；内容只要求是 JSON 对象，字段内容不做校验。
func ReadPayload(data, file string, stdin io.Reader) (drossmanagersdk.Record, error) {
	data = strings.TrimSpace(data)
	file = strings.TrimSpace(file)
	switch {
	case data != "" && file != "":
		return nil, errors.New("--data 与 --file 只能指定一个")
	case data == "" && file == "":
		return nil, errors.New("需要通过 --data 或 --file 提供 JSON 内容")
	}

	raw := []byte(data)
	if file != "" {
		var err error
		raw, err = readSource(file, stdin)
		if err != nil {
			return nil, err
		}
	}
	return DecodeRecord(raw)
}

// DecodeRecord 解析 JSON 对象，数值保留为 json.Number。
func DecodeRecord(raw []byte) (drossmanagersdk.Record, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var rec drossmanagersdk.Record
	if err := dec.Decode(&rec); err != nil {
		return nil, errors.Wrap(err, "解析 JSON 失败")
	}
	if rec == nil {
		return nil, errors.New("JSON 内容必须是对象")
	}
	return rec, nil
}

// ReadCollectionFile 读取 JSON array 格式的记录列表，用于 serve-mock 的 --seed。
func ReadCollectionFile(path string) (drossmanagersdk.Collection, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "读取文件失败: %s", path)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var out drossmanagersdk.Collection
	if err := dec.Decode(&out); err != nil {
		return nil, errors.Wrapf(err, "解析 %s 失败，需要 JSON array", path)
	}
	return out, nil
}

func readSource(file string, stdin io.Reader) ([]byte, error) {
	if file == "-" {
		if stdin == nil {
			return nil, errors.New("stdin 不可用")
		}
		raw, err := io.ReadAll(stdin)
		return raw, errors.Wrap(err, "读取 stdin 失败")
	}
	raw, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.Wrapf(err, "读取文件失败: %s", file)
	}
	return raw, nil
}
