package code

// 成功码
var (
	Success = NewSuss(200, lang{en: "Success", zh_cn: "成功"})
)

// 通用错误码
var (
	ErrorInvalidParams   = NewError(400, lang{en: "Invalid params", zh_cn: "入参错误"})
	ErrorNotFoundAPI     = NewError(404, lang{en: "Not found", zh_cn: "找不到接口"})
	ErrorTooManyRequests = NewError(429, lang{en: "Too many requests", zh_cn: "请求过多"})
	ErrorServerInternal  = NewError(500, lang{en: "Server internal error", zh_cn: "服务内部错误"})
)

// 业务错误码
var (
	ErrorNoteNotFound       = NewError(10001, lang{en: "Note not found", zh_cn: "笔记不存在"})
	ErrorUnsentNoteNotFound = NewError(10002, lang{en: "Unsent note not found", zh_cn: "暂存笔记不存在"})
	ErrorEmptyContent       = NewError(10003, lang{en: "Note content can not be empty", zh_cn: "笔记内容不能为空"})
	ErrorInvalidEmail       = NewError(10004, lang{en: "Invalid email address", zh_cn: "邮箱地址格式错误"})
	ErrorStoreUnavailable   = NewError(10005, lang{en: "Note store unavailable", zh_cn: "笔记存储不可用"})
	ErrorDeliveryCheck      = NewError(10006, lang{en: "Delivery check failed", zh_cn: "投递检查执行失败"})
)
