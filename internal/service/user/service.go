// Package user 实现用户业务：注册、登录、认证检查、资料更新、令牌刷新
package user

import (
	"context"
	"time"

	"go.uber.org/zap"

	"quick_chat_server/internal/dao/mysql/repository"
	myredis "quick_chat_server/internal/dao/redis"
	"quick_chat_server/internal/dto/request"
	"quick_chat_server/internal/dto/respond"
	"quick_chat_server/internal/infrastructure/imagestore"
	"quick_chat_server/internal/model"
	"quick_chat_server/pkg/constants"
	"quick_chat_server/pkg/errorx"
	"quick_chat_server/pkg/util/jwt"
	"quick_chat_server/pkg/util/random"
)

type userService struct {
	users  repository.UserRepository
	cache  myredis.CacheService
	images imagestore.Store
}

// NewUserService 创建用户业务实例
func NewUserService(users repository.UserRepository, cache myredis.CacheService, images imagestore.Store) *userService {
	return &userService{users: users, cache: cache, images: images}
}

// Register 注册新用户
// 邮箱唯一；注册成功即视为登录，直接发放 Token 对
func (s *userService) Register(req request.RegisterRequest) (*respond.AuthRespond, error) {
	if len(req.Password) < constants.PASSWORD_MIN_LEN {
		return nil, errorx.Newf(errorx.CodeInvalidParam, "Password must be at least %d characters", constants.PASSWORD_MIN_LEN)
	}
	_, err := s.users.FindByEmail(req.Email)
	if err == nil {
		return nil, errorx.New(errorx.CodeUserExist, "Email already exists")
	}
	if !errorx.IsNotFound(err) {
		return nil, err
	}

	u := &model.UserInfo{
		Uuid:        "U" + random.GetNowAndLenRandomString(13),
		FullName:    req.FullName,
		Email:       req.Email,
		Bio:         req.Bio,
		RawPassword: req.Password,
	}
	if err := s.users.Create(u); err != nil {
		return nil, err
	}
	zap.L().Info("user registered", zap.String("userId", u.Uuid), zap.String("email", u.Email))
	return s.buildAuthRespond(u)
}

// Login 密码登录
// 邮箱不存在和密码错误返回不同错误码，但对外消息一致，避免泄露账号存在性
func (s *userService) Login(req request.LoginRequest) (*respond.AuthRespond, error) {
	u, err := s.users.FindByEmail(req.Email)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeUserNotExist, "Invalid credentials")
		}
		return nil, err
	}
	if !u.CheckPassword(req.Password) {
		return nil, errorx.New(errorx.CodeInvalidPassword, "Invalid credentials")
	}
	zap.L().Info("user login", zap.String("userId", u.Uuid))
	return s.buildAuthRespond(u)
}

// CheckAuth 返回当前登录用户的资料
// Token 有效但账号已被删除时返回 CodeNotFound
func (s *userService) CheckAuth(userId string) (*respond.UserRespond, error) {
	u, err := s.users.FindByUuid(userId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "User not found")
		}
		return nil, err
	}
	return respond.NewUserRespond(u), nil
}

// UpdateProfile 更新个人资料
// 头像先上传后落库，上传失败时不动任何字段
func (s *userService) UpdateProfile(userId string, req request.UpdateProfileRequest) (*respond.UserRespond, error) {
	u, err := s.users.FindByUuid(userId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "User not found")
		}
		return nil, err
	}

	if req.ProfilePic != "" {
		url, err := s.images.Save(req.ProfilePic)
		if err != nil {
			return nil, err
		}
		u.ProfilePic = url
	}
	if req.FullName != nil {
		u.FullName = *req.FullName
	}
	if req.Bio != nil {
		u.Bio = *req.Bio
	}

	if err := s.users.Update(u); err != nil {
		return nil, err
	}
	zap.L().Info("profile updated", zap.String("userId", u.Uuid))
	return respond.NewUserRespond(u), nil
}

// RefreshToken 校验 Refresh Token 并签发新的 Access Token
// Redis 中只保留最近一次签发的 TokenID，旧 Refresh Token 自动失效
func (s *userService) RefreshToken(refreshToken string) (string, error) {
	claims, err := jwt.ParseToken(refreshToken)
	if err != nil || claims.Subject != "refresh_token" {
		return "", errorx.New(errorx.CodeUnauthorized, "Invalid refresh token")
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.REDIS_TIMEOUT*time.Second)
	defer cancel()
	stored, err := s.cache.Get(ctx, tokenKey(claims.UserID))
	if err != nil {
		return "", errorx.Wrap(err, errorx.CodeServerBusy, "read refresh token state")
	}
	if stored == "" || stored != claims.TokenID {
		return "", errorx.New(errorx.CodeUnauthorized, "Refresh token expired, please login again")
	}

	access, err := jwt.GenerateAccessToken(claims.UserID)
	if err != nil {
		return "", errorx.Wrap(err, errorx.CodeServerBusy, "generate access token")
	}
	return access, nil
}

// buildAuthRespond 签发 Token 对并登记 Refresh Token
func (s *userService) buildAuthRespond(u *model.UserInfo) (*respond.AuthRespond, error) {
	access, err := jwt.GenerateAccessToken(u.Uuid)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.CodeServerBusy, "generate access token")
	}
	refresh, tokenID, err := jwt.GenerateRefreshToken(u.Uuid)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.CodeServerBusy, "generate refresh token")
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.REDIS_TIMEOUT*time.Second)
	defer cancel()
	ttl := time.Duration(constants.REFRESH_TOKEN_EXPIRY_HOURS) * time.Hour
	if err := s.cache.SetEx(ctx, tokenKey(u.Uuid), tokenID, ttl); err != nil {
		// 登记失败只影响后续刷新，本次登录照常放行
		zap.L().Warn("store refresh token state failed", zap.String("userId", u.Uuid), zap.Error(err))
	}

	return &respond.AuthRespond{
		User:         respond.NewUserRespond(u),
		Token:        access,
		RefreshToken: refresh,
	}, nil
}

func tokenKey(userId string) string {
	return "user_token:" + userId
}
