package respond

import "quick_chat_server/internal/model"

// UserRespond 用户信息响应
// 使用位置:
//   - internal/service/user/service.go: Register, Login, CheckAuth, UpdateProfile
//   - internal/service/message/service.go: GetSidebarUsers
type UserRespond struct {
	Id         string `json:"id"`
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Bio        string `json:"bio"`
	ProfilePic string `json:"profilePic"`
}

// NewUserRespond 从数据库模型构建用户响应
func NewUserRespond(user *model.UserInfo) *UserRespond {
	return &UserRespond{
		Id:         user.Uuid,
		FullName:   user.FullName,
		Email:      user.Email,
		Bio:        user.Bio,
		ProfilePic: user.ProfilePic,
	}
}

// AuthRespond 注册/登录响应，携带用户信息和 Token 对
type AuthRespond struct {
	User         *UserRespond `json:"user"`
	Token        string       `json:"token"`
	RefreshToken string       `json:"refreshToken"`
}
