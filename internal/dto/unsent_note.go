package dto

// UnsentNoteCreateRequest 暂存笔记请求
type UnsentNoteCreateRequest struct {
	Content string `json:"content" form:"content" binding:"required"` // 内容
}

// UnsentNoteSendRequest 暂存笔记转正请求
type UnsentNoteSendRequest struct {
	ID string `json:"id" form:"id" binding:"required"` // 暂存笔记 ID
}

// UnsentNoteDiscardRequest 丢弃暂存笔记请求
type UnsentNoteDiscardRequest struct {
	ID string `json:"id" form:"id" binding:"required"` // 暂存笔记 ID
}
