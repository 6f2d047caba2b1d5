package mockserver

import (
	"encoding/json"
	"strconv"
	"sync"

	drossmanagersdk "github.com/wangdayong228/dross-manager-client/pkg/dross-manager-sdk"
)

// Store 是并发安全的内存 faery 表，id 从 1 开始自增，List 按插入顺序（即 id 升序）返回。
type Store struct {
	mu     sync.RWMutex
	items  map[int64]drossmanagersdk.Record
	order  []int64
	nextID int64
}

func NewStore() *Store {
	return &Store{
		items: make(map[int64]drossmanagersdk.Record),
	}
}

// Create 分配新 id 并保存记录副本；rec 中原有的 id 会被覆盖。
func (s *Store) Create(rec drossmanagersdk.Record) drossmanagersdk.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	stored := withID(rec, id)
	s.items[id] = stored
	s.order = append(s.order, id)
	return clone(stored)
}

func (s *Store) Get(id int64) (drossmanagersdk.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.items[id]
	if !ok {
		return nil, false
	}
	return clone(rec), true
}

// Replace 整条替换已有记录，id 不存在时返回 false。
func (s *Store) Replace(id int64, rec drossmanagersdk.Record) (drossmanagersdk.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return nil, false
	}
	stored := withID(rec, id)
	s.items[id] = stored
	return clone(stored), true
}

func (s *Store) Delete(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return false
	}
	delete(s.items, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// DeleteAll 清空所有记录，id 计数不回退。
func (s *Store) DeleteAll() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.items)
	s.items = make(map[int64]drossmanagersdk.Record)
	s.order = nil
	return n
}

func (s *Store) List() drossmanagersdk.Collection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(drossmanagersdk.Collection, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, clone(s.items[id]))
	}
	return out
}

func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func withID(rec drossmanagersdk.Record, id int64) drossmanagersdk.Record {
	out := clone(rec)
	out[drossmanagersdk.FieldID] = json.Number(strconv.FormatInt(id, 10))
	return out
}

// clone 只做一层拷贝，记录的值来自 JSON 解码，嵌套结构在这里不会被修改。
func clone(rec drossmanagersdk.Record) drossmanagersdk.Record {
	out := make(drossmanagersdk.Record, len(rec)+1)
	for k, v := range rec {
		out[k] = v
	}
	return out
}
