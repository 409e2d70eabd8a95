package request

// UpdateProfileRequest 更新个人资料请求
// 指针字段区分"未提供"和"清空"；ProfilePic 仅接受 data:image/...;base64 内嵌图片
type UpdateProfileRequest struct {
	FullName   *string `json:"fullName"`
	Bio        *string `json:"bio"`
	ProfilePic string  `json:"profilePic"`
}
