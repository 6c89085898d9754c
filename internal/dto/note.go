// Package dto 定义请求数据传输对象
package dto

// NoteGetRequest 获取笔记请求
type NoteGetRequest struct {
	ID string `json:"id" form:"id" binding:"required"` // 笔记 ID
}

// NoteCreateRequest 创建笔记请求
type NoteCreateRequest struct {
	Content string `json:"content" form:"content" binding:"required"`    // 内容
	Author  string `json:"author" form:"author"`                         // 作者
	Name    string `json:"name" form:"name"`                             // 署名
	Email   string `json:"email" form:"email" binding:"omitempty,email"` // 投递邮箱
}

// NoteUpdateRequest 更新笔记请求
// 指针字段为 nil 表示不修改
type NoteUpdateRequest struct {
	ID      string  `json:"id" form:"id" binding:"required"`              // 笔记 ID
	Content *string `json:"content" form:"content"`                       // 内容
	Name    *string `json:"name" form:"name"`                             // 署名
	Email   *string `json:"email" form:"email" binding:"omitempty,email"` // 投递邮箱
}

// NoteDeleteRequest 删除笔记请求
type NoteDeleteRequest struct {
	ID string `json:"id" form:"id" binding:"required"` // 笔记 ID
}
