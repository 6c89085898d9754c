package model

import (
	"github.com/haierkeys/note-capsule-service/pkg/timex"
)

// Note 笔记数据库模型
type Note struct {
	ID        string     `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`        // ID
	Content   string     `gorm:"column:content;type:text;not null" json:"content"`       // 内容
	Author    string     `gorm:"column:author;type:varchar(191)" json:"author"`          // 作者
	Name      string     `gorm:"column:name;type:varchar(191)" json:"name"`              // 署名
	Email     string     `gorm:"column:email;type:varchar(191);index" json:"email"`      // 投递邮箱
	EmailSent bool       `gorm:"column:email_sent;default:false;index" json:"emailSent"` // 是否已投递
	CreatedAt timex.Time `gorm:"column:created_at" json:"createdAt"`                     // 创建时间
	UpdatedAt timex.Time `gorm:"column:updated_at" json:"updatedAt"`                     // 更新时间
}

// UnsentNote 暂存笔记数据库模型
// 匿名草稿，不携带作者与邮箱
type UnsentNote struct {
	ID        string     `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`  // ID
	Content   string     `gorm:"column:content;type:text;not null" json:"content"` // 内容
	CreatedAt timex.Time `gorm:"column:created_at" json:"createdAt"`               // 创建时间
}
