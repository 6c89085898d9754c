// Package domain 定义领域模型和接口
package domain

import "time"

// AnonymousAuthor 未署名笔记的默认作者
const AnonymousAuthor = "Anonymous"

// 投递时间窗口
// "一年后投递" 取 365 天减去一天的容差，吸收调度抖动与日历差异
const (
	// DeliveryAfter 投递延迟基准
	DeliveryAfter = 365 * 24 * time.Hour

	// DeliveryTolerance 投递容差
	DeliveryTolerance = 24 * time.Hour
)

// Note 笔记领域模型
// EmailSent 是投递幂等的唯一标记：只有 Email 存在时才可能为 true
type Note struct {
	ID        string
	Content   string
	Author    string
	Name      string
	Email     string
	EmailSent bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasEmail 判断笔记是否绑定了投递邮箱
func (n *Note) HasEmail() bool {
	return n.Email != ""
}

// IsDue 判断笔记投递是否到期（使用默认时间窗口）
// 纯函数：不读时钟、无副作用，便于用固定时间测试
func (n *Note) IsDue(now time.Time) bool {
	return n.IsDueAfter(now, DeliveryAfter-DeliveryTolerance)
}

// IsDueAfter 判断笔记在给定等待时长后是否到期
func (n *Note) IsDueAfter(now time.Time, wait time.Duration) bool {
	if !n.HasEmail() || n.EmailSent {
		return false
	}
	return now.Sub(n.CreatedAt) >= wait
}

// AgeDays 笔记创建至今的天数
func (n *Note) AgeDays(now time.Time) int {
	age := now.Sub(n.CreatedAt)
	if age < 0 {
		return 0
	}
	return int(age / (24 * time.Hour))
}

// NoteUpdate 笔记的部分更新字段，nil 表示不修改
type NoteUpdate struct {
	Content *string
	Name    *string
	Email   *string
}

// UnsentNote 暂存笔记领域模型
// 刻意匿名：不携带作者与邮箱，只有内容
type UnsentNote struct {
	ID        string
	Content   string
	CreatedAt time.Time
}
