package response

// Msg 错误与简单确认统一使用 {"message": "..."}
type Msg struct {
	Message string `json:"message"`
}

// Error 失败响应（customMsg 为空时使用默认提示）
func Error(code int, customMsg string) Msg {
	msg := customMsg
	if msg == "" {
		msg = CodeMsgMap[code]
	}
	return Msg{Message: msg}
}

func Message(msg string) Msg { return Msg{Message: msg} }
