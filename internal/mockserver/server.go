// Package mockserver 是 Dross Manager faeries 接口的内存版实现，
// 用于本地联调（serve-mock 命令）以及 SDK 的测试。
// 状态码与 Dross Manager 服务保持一致：创建 201、删除 204、未知 id 404、id 不一致 400。
package mockserver

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/wangdayong228/dross-manager-client/internal/utils/commonutil"
	drossmanagersdk "github.com/wangdayong228/dross-manager-client/pkg/dross-manager-sdk"
)

// DefaultPrefix 与 Dross Manager 服务一致，接口挂载在 /api 下。
const DefaultPrefix = "/api"

// 错误响应体沿用 Dross Manager 的 JSON 字符串形式。
const (
	msgNotFound     = "Not Found"
	msgIDMismatch   = "ID mismatch"
	msgInvalidModel = "InvalidModel"
	msgInvalidID    = "Invalid faery id"
)

type Server struct {
	store  *Store
	log    logrus.FieldLogger
	prefix string
}

type Option func(*Server)

func WithStore(store *Store) Option {
	return func(s *Server) {
		if store != nil {
			s.store = store
		}
	}
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithPrefix 设置接口挂载前缀，传入空串时直接挂在根路径。
func WithPrefix(prefix string) Option {
	return func(s *Server) {
		s.prefix = strings.TrimRight(prefix, "/")
	}
}

// WithSeed 预先写入若干记录，记录中的 id 会被重新分配。
func WithSeed(records drossmanagersdk.Collection) Option {
	return func(s *Server) {
		for _, rec := range records {
			s.store.Create(rec)
		}
	}
}

func New(opts ...Option) *Server {
	s := &Server{
		store:  NewStore(),
		log:    logrus.StandardLogger(),
		prefix: DefaultPrefix,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Server) Store() *Store {
	return s.store
}

// BaseURL 返回 SDK 应使用的 baseURL，例如 http://127.0.0.1:8000/api。
func (s *Server) BaseURL(host string) string {
	return strings.TrimRight(host, "/") + s.prefix
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(requestLogger(s.log))

	if s.prefix == "" {
		s.routes(r)
	} else {
		r.Route(s.prefix, s.routes)
	}
	return r
}

func (s *Server) routes(r chi.Router) {
	r.Get("/hello", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("Hello, world!"))
	})
	r.Route(drossmanagersdk.FaeriesPath, func(r chi.Router) {
		r.Get("/", s.listFaeries)
		r.Post("/", s.createFaery)
		r.Delete("/", s.deleteAllFaeries)
		r.Get("/{id}", s.getFaery)
		r.Put("/{id}", s.updateFaery)
		r.Delete("/{id}", s.deleteFaery)
	})
}

// ListenAndServe 启动 HTTP 服务，ctx 结束时优雅关闭。
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.log.WithField("addr", addr).WithField("prefix", s.prefix).Info("mock dross-manager api listening")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return errors.Wrap(srv.Shutdown(shutdownCtx), "关闭 mock 服务失败")
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrapf(err, "mock 服务监听 %s 失败", addr)
	}
}

func (s *Server) listFaeries(w http.ResponseWriter, _ *http.Request) {
	faeries := s.store.List()
	s.log.WithField("count", len(faeries)).Info("Got faeries")
	writeJSON(w, http.StatusOK, faeries)
}

func (s *Server) getFaery(w http.ResponseWriter, r *http.Request) {
	id, ok := s.parseID(w, r)
	if !ok {
		return
	}
	rec, found := s.store.Get(id)
	if !found {
		s.log.WithField("id", id).Warn("faery not found")
		writeJSON(w, http.StatusNotFound, msgNotFound)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) createFaery(w http.ResponseWriter, r *http.Request) {
	rec, err := decodeRecord(r.Body)
	if err != nil {
		s.log.WithError(err).Error("Error creating faery")
		writeJSON(w, http.StatusBadRequest, msgInvalidModel)
		return
	}
	created := s.store.Create(rec)
	s.log.WithField("id", created.ID()).Info("Created faery")
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) updateFaery(w http.ResponseWriter, r *http.Request) {
	id, ok := s.parseID(w, r)
	if !ok {
		return
	}
	rec, err := decodeRecord(r.Body)
	if err != nil {
		s.log.WithError(err).WithField("id", id).Error("Error updating faery")
		writeJSON(w, http.StatusBadRequest, msgInvalidModel)
		return
	}
	if rec.HasID() && rec.ID() != strconv.FormatInt(id, 10) {
		s.log.WithField("id", id).WithField("bodyId", rec.ID()).Error("Error updating faery: ID mismatch")
		writeJSON(w, http.StatusBadRequest, msgIDMismatch)
		return
	}
	updated, found := s.store.Replace(id, rec)
	if !found {
		writeJSON(w, http.StatusNotFound, msgNotFound)
		return
	}
	s.log.WithField("id", id).Info("Updated faery")
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) deleteFaery(w http.ResponseWriter, r *http.Request) {
	id, ok := s.parseID(w, r)
	if !ok {
		return
	}
	if !s.store.Delete(id) {
		writeJSON(w, http.StatusNotFound, msgNotFound)
		return
	}
	s.log.WithField("id", id).Info("Deleted faery")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) deleteAllFaeries(w http.ResponseWriter, _ *http.Request) {
	n := s.store.DeleteAll()
	s.log.WithField("count", n).Info("Deleted all faeries")
	w.WriteHeader(http.StatusNoContent)
}

// parseID 服务端 id 为 i64，无法解析时返回 400。
func (s *Server) parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		s.log.WithField("id", raw).Warn("invalid faery id")
		writeJSON(w, http.StatusBadRequest, msgInvalidID)
		return 0, false
	}
	return id, true
}

// decodeRecord 要求 body 为 JSON 对象，数值保持为 json.Number。
func decodeRecord(body io.Reader) (drossmanagersdk.Record, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, errors.Wrap(err, "读取请求 body 失败")
	}
	return commonutil.DecodeRecord(data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func requestLogger(log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.WithFields(logrus.Fields{
				"method":   r.Method,
				"path":     r.URL.Path,
				"status":   ww.Status(),
				"duration": time.Since(start),
			}).Debug("handled request")
		})
	}
}
