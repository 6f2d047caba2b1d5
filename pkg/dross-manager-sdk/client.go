package drossmanagersdk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const DefaultTimeout = 30 * time.Second

var (
	// ErrNotFound 可配合 errors.Is 判断服务端返回的 404。
	ErrNotFound = errors.New("dross-manager: not found")
	// ErrEmptyID 在按 id 寻址的操作收到空 id 时返回，此时不会发出任何请求。
	ErrEmptyID = errors.New("dross-manager: empty id")
)

// HTTPClient 是最原生的 HTTP 交互层：负责 resty client、通用请求、错误解析。
// 构造完成后只读，可并发使用。
type HTTPClient struct {
	http *resty.Client
}

type Option func(*HTTPClient)

// NewHTTPClient 创建底层 HTTP 客户端。
func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	baseURL = strings.TrimRight(baseURL, "/")

	rc := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetTimeout(DefaultTimeout).
		SetJSONUnmarshaler(decodeJSON)

	c := &HTTPClient{http: rc}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// WithRestyClient 整体替换底层 resty client（测试或需要自定义 transport 时使用）。
// 传入的 client 需要自行设置 BaseURL。
func WithRestyClient(rc *resty.Client) Option {
	return func(c *HTTPClient) {
		if rc != nil {
			c.http = rc
		}
	}
}

func WithHeader(key, value string) Option {
	return func(c *HTTPClient) {
		if key != "" {
			c.http.SetHeader(key, value)
		}
	}
}

func WithHeaders(headers map[string]string) Option {
	return func(c *HTTPClient) {
		for k, v := range headers {
			if k != "" {
				c.http.SetHeader(k, v)
			}
		}
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *HTTPClient) {
		if timeout > 0 {
			c.http.SetTimeout(timeout)
		}
	}
}

// WithLogger 设置 resty 的日志输出，logrus.Logger / logrus.Entry 均满足 resty.Logger。
func WithLogger(l resty.Logger) Option {
	return func(c *HTTPClient) {
		if l != nil {
			c.http.SetLogger(l)
		}
	}
}

// WithDebug 打开 resty 的请求/响应调试日志。
func WithDebug(debug bool) Option {
	return func(c *HTTPClient) {
		c.http.SetDebug(debug)
	}
}

// APIError 表示服务端返回了 >= 400 的状态码，Body 为原始响应内容，不做解析。
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("dross-manager api error: %s %s status=%d body=%q", e.Method, e.Path, e.StatusCode, e.Body)
}

//nolint:errorlint
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// request 是一次请求的描述，pathParams 会经过 url.PathEscape 后替换到 path 中。
type request struct {
	method     string
	path       string
	pathParams map[string]string
	body       any
	out        any
}

// do 只发出一次请求：不重试、不校验请求 body、不改写返回内容。
// 网络错误与响应解析错误原样返回，状态码错误包装为 *APIError。
func (c *HTTPClient) do(ctx context.Context, r request) error {
	req := c.http.R().SetContext(ctx)
	if len(r.pathParams) > 0 {
		req.SetPathParams(r.pathParams)
	}
	if r.body != nil {
		req.SetBody(r.body)
	}
	if r.out != nil {
		// 不论响应 Content-Type 为何，成功的 body 都按 JSON 解码，非 JSON 内容返回解析错误。
		req.SetResult(r.out).ForceContentType("application/json")
	}

	resp, err := req.Execute(r.method, r.path)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return newAPIError(resp)
	}
	return nil
}

func newAPIError(resp *resty.Response) *APIError {
	e := &APIError{
		StatusCode: resp.StatusCode(),
		Body:       string(resp.Body()),
	}
	if resp.Request != nil {
		e.Method = resp.Request.Method
		if raw := resp.Request.RawRequest; raw != nil && raw.URL != nil {
			e.Path = raw.URL.EscapedPath()
		} else {
			e.Path = resp.Request.URL
		}
	}
	return e
}

// decodeJSON 使用 UseNumber 解码，避免数值型 id / dross 被转成 float64 丢失精度。
func decodeJSON(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}
