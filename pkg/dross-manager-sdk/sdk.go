package drossmanagersdk

// Client 是 SDK 对外入口，按资源分组（例如 Faeries）。
type Client struct {
	Faeries Faeries
}

// New 根据 baseURL（例如 http://localhost:8000/api）创建客户端。
func New(baseURL string, opts ...Option) *Client {
	hc := NewHTTPClient(baseURL, opts...)
	return &Client{
		Faeries: Faeries{http: hc},
	}
}
