package config

import (
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/nft-rainbow/rainbow-goutils/utils/configutils"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/wangdayong228/dross-manager-client/internal/constants/enums"
	drossmanagersdk "github.com/wangdayong228/dross-manager-client/pkg/dross-manager-sdk"
)

const (
	DefaultBaseURL  = "http://localhost:8000/api"
	DefaultLogLevel = "info"
	DefaultOutput   = "table"
)

// Config 描述访问 dross-manager 服务所需的传输层配置，启动时确定，之后只读。
type Config struct {
	// BaseURL 为接口根地址，faeries 资源挂在其下的 /faeries
	BaseURL string `yaml:"baseUrl"`
	// Timeout 为单次请求超时
	Timeout time.Duration `yaml:"timeout"`
	// Headers 为每个请求都会携带的默认请求头
	Headers map[string]string `yaml:"headers"`

	LogLevel string `yaml:"logLevel"` // panic/fatal/error/warn/info/debug/trace
	Output   string `yaml:"output"`   // table / json
}

// Overrides 为命令行上显式指定的参数，非零值覆盖配置文件。
type Overrides struct {
	BaseURL  string
	Timeout  time.Duration
	Headers  []string // key=value
	LogLevel string
	Output   string
}

func Default() *Config {
	return &Config{
		BaseURL:  DefaultBaseURL,
		Timeout:  drossmanagersdk.DefaultTimeout,
		Headers:  map[string]string{},
		LogLevel: DefaultLogLevel,
		Output:   DefaultOutput,
	}
}

// LoadConfigFromFile 从 YAML 文件加载配置，未填写的字段使用默认值。
func LoadConfigFromFile(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(err, "配置文件不可访问: %s", path)
	}
	registerDefaults()
	cfg, err := mustLoadByFile(path)
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// registerDefaults 让文件中缺省的 key 也被视为已设置，configutils 解码时不允许未设置的字段。
// headers 使用 map[string]string，viper 会把 map[string]any 类型的空默认值展开为零个 key。
func registerDefaults() {
	d := Default()
	viper.SetDefault("baseUrl", d.BaseURL)
	viper.SetDefault("timeout", d.Timeout)
	viper.SetDefault("headers", map[string]string{})
	viper.SetDefault("logLevel", d.LogLevel)
	viper.SetDefault("output", d.Output)
}

// mustLoadByFile 调用 configutils.MustLoadByFile，把它打印到 stdout 的提示改写到 stderr，
// 避免污染 -o json 的输出；解码失败（未知字段、类型不符）时的 panic 转为 error。
func mustLoadByFile(path string) (cfg *Config, err error) {
	stdout := os.Stdout
	os.Stdout = os.Stderr
	defer func() {
		os.Stdout = stdout
		if r := recover(); r != nil {
			cfg, err = nil, errors.Errorf("解析配置文件 %s 失败: %v", path, r)
		}
	}()
	return configutils.MustLoadByFile[Config](path), nil
}

// Load 在 path 为空时返回默认配置，否则从文件加载。
func Load(path string) (*Config, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	return LoadConfigFromFile(path)
}

func (c *Config) applyDefaults() {
	d := Default()
	if c.BaseURL == "" {
		c.BaseURL = d.BaseURL
	}
	if c.Timeout == 0 {
		c.Timeout = d.Timeout
	}
	if c.Headers == nil {
		c.Headers = d.Headers
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.Output == "" {
		c.Output = d.Output
	}
}

func (c *Config) ApplyOverrides(o Overrides) error {
	if o.BaseURL != "" {
		c.BaseURL = o.BaseURL
	}
	if o.Timeout != 0 {
		c.Timeout = o.Timeout
	}
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}
	if o.Output != "" {
		c.Output = o.Output
	}
	for _, kv := range o.Headers {
		k, v, ok := strings.Cut(kv, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return errors.Errorf("header 格式应为 key=value，got=%q", kv)
		}
		if c.Headers == nil {
			c.Headers = map[string]string{}
		}
		c.Headers[k] = strings.TrimSpace(v)
	}
	return nil
}

// Validate 对关键字段做一层保护性校验，避免在真正发请求时才失败。
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return errors.Wrapf(err, "baseUrl 无法解析: %q", c.BaseURL)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.Errorf("baseUrl 必须是 http(s) 绝对地址，got=%q", c.BaseURL)
	}
	if c.Timeout <= 0 {
		return errors.Errorf("timeout 必须大于 0，got=%s", c.Timeout)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, "logLevel 不合法")
	}
	if _, err := enums.ParseOutputFormat(c.Output); err != nil {
		return errors.Wrap(err, "output 不合法")
	}
	return nil
}

// Level 返回日志级别，需在 Validate 通过后调用。
func (c *Config) Level() logrus.Level {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

// Format 返回输出格式，需在 Validate 通过后调用。
func (c *Config) Format() enums.OutputFormat {
	f, err := enums.ParseOutputFormat(c.Output)
	if err != nil {
		return enums.OutputFormatTable
	}
	return f
}

// SDKOptions 把配置转换为 SDK 的构造参数；debug 级别时同时打开 resty 调试日志。
func (c *Config) SDKOptions(logger *logrus.Logger) []drossmanagersdk.Option {
	opts := []drossmanagersdk.Option{
		drossmanagersdk.WithTimeout(c.Timeout),
		drossmanagersdk.WithHeaders(c.Headers),
	}
	if logger != nil {
		opts = append(opts,
			drossmanagersdk.WithLogger(logger),
			drossmanagersdk.WithDebug(logger.IsLevelEnabled(logrus.DebugLevel)),
		)
	}
	return opts
}
