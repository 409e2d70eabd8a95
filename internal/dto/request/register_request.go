package request

// RegisterRequest 用户注册请求
// 使用位置:
//   - internal/handler/user_handler.go: Signup
//   - internal/service/user/service.go: Register
type RegisterRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Bio      string `json:"bio"`
}
