// Package filedao 实现平面文件存储后端
// 每次写入都整体序列化集合文件（读-改-写），写入先落临时文件再原子改名
package filedao

import (
	"fmt"
	"os"
	"sync"

	"github.com/haierkeys/note-capsule-service/internal/domain"
	"github.com/haierkeys/note-capsule-service/pkg/fileurl"
	"github.com/haierkeys/note-capsule-service/pkg/timex"

	"gopkg.in/yaml.v3"
)

// noteRecord 笔记文件记录
type noteRecord struct {
	ID        string     `yaml:"id"`
	Content   string     `yaml:"content"`
	Author    string     `yaml:"author"`
	Name      string     `yaml:"name"`
	Email     string     `yaml:"email"`
	EmailSent bool       `yaml:"email-sent"`
	CreatedAt timex.Time `yaml:"created-at"`
	UpdatedAt timex.Time `yaml:"updated-at"`
}

// unsentRecord 暂存笔记文件记录
type unsentRecord struct {
	ID        string     `yaml:"id"`
	Content   string     `yaml:"content"`
	CreatedAt timex.Time `yaml:"created-at"`
}

// collection 集合文件整体结构
type collection struct {
	Notes       []*noteRecord   `yaml:"notes"`
	UnsentNotes []*unsentRecord `yaml:"unsent-notes"`
}

// Store 平面文件集合存储
// 互斥锁保证进程内写入串行，整文件重写天然形成粗粒度单写者
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore 创建 Store 实例并确保父目录存在
func NewStore(path string) (*Store, error) {
	if err := fileurl.CreatePath(path, 0754); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return &Store{path: path}, nil
}

// load 读取整个集合文件，文件不存在视为空集合
func (s *Store) load() (*collection, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &collection{}, nil
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	var c collection
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return &c, nil
}

// save 整体序列化集合并原子替换文件
func (s *Store) save(c *collection) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// Path 返回集合文件路径
func (s *Store) Path() string {
	return s.path
}
