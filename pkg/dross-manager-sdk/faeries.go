package drossmanagersdk

import (
	"context"

	"github.com/go-resty/resty/v2"
)

// FaeriesPath 为 faery 资源的根路径，相对于 baseURL。
const FaeriesPath = "/faeries"

const faeryPath = FaeriesPath + "/{id}"

// Faeries 聚合 `/faeries` 下的所有接口，每个方法恰好对应一次 HTTP 请求。
type Faeries struct {
	http *HTTPClient
}

// List GET /faeries
func (f Faeries) List(ctx context.Context) (Collection, error) {
	var out Collection
	if err := f.http.do(ctx, request{
		method: resty.MethodGet,
		path:   FaeriesPath,
		out:    &out,
	}); err != nil {
		return nil, err
	}
	return out, nil
}

// Get GET /faeries/{id}，未知 id 返回 404 的 *APIError。
func (f Faeries) Get(ctx context.Context, id string) (Record, error) {
	if id == "" {
		return nil, ErrEmptyID
	}
	var out Record
	if err := f.http.do(ctx, request{
		method:     resty.MethodGet,
		path:       faeryPath,
		pathParams: map[string]string{"id": id},
		out:        &out,
	}); err != nil {
		return nil, err
	}
	return out, nil
}

// Create POST /faeries，payload 原样作为 body 发送，id 由服务端分配。
func (f Faeries) Create(ctx context.Context, payload Record) (Record, error) {
	var out Record
	if err := f.http.do(ctx, request{
		method: resty.MethodPost,
		path:   FaeriesPath,
		body:   payload,
		out:    &out,
	}); err != nil {
		return nil, err
	}
	return out, nil
}

// Update PUT /faeries/{id}，整条替换而不是局部更新。
// 服务端返回 204 时 Record 为 nil。
func (f Faeries) Update(ctx context.Context, id string, payload Record) (Record, error) {
	if id == "" {
		return nil, ErrEmptyID
	}
	var out Record
	if err := f.http.do(ctx, request{
		method:     resty.MethodPut,
		path:       faeryPath,
		pathParams: map[string]string{"id": id},
		body:       payload,
		out:        &out,
	}); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete DELETE /faeries/{id}
func (f Faeries) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrEmptyID
	}
	return f.http.do(ctx, request{
		method:     resty.MethodDelete,
		path:       faeryPath,
		pathParams: map[string]string{"id": id},
	})
}

// DeleteAll DELETE /faeries
func (f Faeries) DeleteAll(ctx context.Context) error {
	return f.http.do(ctx, request{
		method: resty.MethodDelete,
		path:   FaeriesPath,
	})
}
