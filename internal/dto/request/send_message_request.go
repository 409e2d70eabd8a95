package request

// SendMessageRequest 发送消息请求
// text 和 image 至少提供一个；image 为 data:image/...;base64 内嵌图片
type SendMessageRequest struct {
	Text  string `json:"text"`
	Image string `json:"image"`
}
