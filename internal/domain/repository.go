// Package domain 定义领域模型和接口
package domain

import (
	"context"
	"errors"
)

// 仓储层统一错误
var (
	// ErrNotFound 记录不存在
	ErrNotFound = errors.New("record not found")

	// ErrStoreUnavailable 存储不可用（IO 或连接失败）
	ErrStoreUnavailable = errors.New("note store unavailable")
)

// NoteRepository 笔记仓储接口
// 两种实现：平面文件存储与关系型数据库存储，调用方不感知后端类型
type NoteRepository interface {
	// ListAll 获取全部笔记
	ListAll(ctx context.Context) ([]*Note, error)

	// GetByID 根据 ID 获取笔记
	GetByID(ctx context.Context, id string) (*Note, error)

	// Create 创建笔记
	Create(ctx context.Context, note *Note) (*Note, error)

	// Update 部分更新笔记
	// 邮箱地址发生变化时必须将 EmailSent 复位为 false
	Update(ctx context.Context, id string, update *NoteUpdate) (*Note, error)

	// Delete 删除笔记
	Delete(ctx context.Context, id string) error

	// SetEmailSent 持久化投递完成标记
	SetEmailSent(ctx context.Context, id string, sent bool) error
}

// UnsentNoteRepository 暂存笔记仓储接口
type UnsentNoteRepository interface {
	// ListAll 获取全部暂存笔记
	ListAll(ctx context.Context) ([]*UnsentNote, error)

	// GetByID 根据 ID 获取暂存笔记
	GetByID(ctx context.Context, id string) (*UnsentNote, error)

	// Create 创建暂存笔记
	Create(ctx context.Context, note *UnsentNote) (*UnsentNote, error)

	// Delete 删除暂存笔记
	Delete(ctx context.Context, id string) error
}
