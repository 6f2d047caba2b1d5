// Package output 负责把 faery 记录按 table / json 格式输出到终端。
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/wangdayong228/dross-manager-client/internal/constants/enums"
	drossmanagersdk "github.com/wangdayong228/dross-manager-client/pkg/dross-manager-sdk"
)

// knownColumns 为 Dross Manager faery 表的列顺序，其余字段按字母序排在后面。
var knownColumns = []string{
	drossmanagersdk.FieldID,
	drossmanagersdk.FieldName,
	drossmanagersdk.FieldEmail,
	drossmanagersdk.FieldIsAdmin,
	drossmanagersdk.FieldDross,
}

type Printer struct {
	w      io.Writer
	format enums.OutputFormat
}

func NewPrinter(w io.Writer, format enums.OutputFormat) *Printer {
	return &Printer{w: w, format: format}
}

// Record 输出单条记录；table 格式下为 key/value 两列。
func (p *Printer) Record(rec drossmanagersdk.Record) error {
	if p.format == enums.OutputFormatJSON {
		return p.json(rec)
	}
	tw := newTable(p.w)
	for _, col := range columns(drossmanagersdk.Collection{rec}) {
		fmt.Fprintf(tw, "%s\t%s\n", strings.ToUpper(col), cell(rec[col]))
	}
	return tw.Flush()
}

// Collection 输出记录列表；table 格式下每条记录一行，列为所有记录字段的并集。
func (p *Printer) Collection(c drossmanagersdk.Collection) error {
	if p.format == enums.OutputFormatJSON {
		if c == nil {
			c = drossmanagersdk.Collection{}
		}
		return p.json(c)
	}
	if len(c) == 0 {
		_, err := fmt.Fprintln(p.w, "没有 faery 记录")
		return err
	}

	cols := columns(c)
	tw := newTable(p.w)
	header := make([]string, 0, len(cols))
	for _, col := range cols {
		header = append(header, strings.ToUpper(col))
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, rec := range c {
		row := make([]string, 0, len(cols))
		for _, col := range cols {
			row = append(row, cell(rec[col]))
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// Message 输出一条操作结果；json 格式下输出 {"message": ..., 以及 fields}。
func (p *Printer) Message(msg string, fields map[string]any) error {
	if p.format == enums.OutputFormatJSON {
		out := make(map[string]any, len(fields)+1)
		for k, v := range fields {
			out[k] = v
		}
		out["message"] = msg
		return p.json(out)
	}
	_, err := fmt.Fprintln(p.w, msg)
	return err
}

func (p *Printer) json(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func columns(c drossmanagersdk.Collection) []string {
	seen := make(map[string]struct{})
	for _, rec := range c {
		for k := range rec {
			seen[k] = struct{}{}
		}
	}

	cols := make([]string, 0, len(seen))
	for _, k := range knownColumns {
		if _, ok := seen[k]; ok {
			cols = append(cols, k)
			delete(seen, k)
		}
	}
	rest := make([]string, 0, len(seen))
	for k := range seen {
		rest = append(rest, k)
	}
	sort.Strings(rest)
	return append(cols, rest...)
}

func cell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case map[string]any, []any:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	default:
		return fmt.Sprint(val)
	}
}
