package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"quick_chat_server/internal/dto/request"
	"quick_chat_server/internal/dto/respond"
	"quick_chat_server/internal/handler"
	"quick_chat_server/internal/router"
	"quick_chat_server/internal/service"
	"quick_chat_server/internal/service/chat"
	"quick_chat_server/pkg/errorx"
	"quick_chat_server/pkg/util/jwt"
)

type stubUserService struct{}

func (s stubUserService) Register(req request.RegisterRequest) (*respond.AuthRespond, error) {
	if req.Email == "taken@test.dev" {
		return nil, errorx.New(errorx.CodeUserExist, "Email already exists")
	}
	return &respond.AuthRespond{
		User:         &respond.UserRespond{Id: "U_test", Email: req.Email, FullName: req.FullName},
		Token:        "access",
		RefreshToken: "refresh",
	}, nil
}

func (s stubUserService) Login(req request.LoginRequest) (*respond.AuthRespond, error) {
	if req.Password != "secret123" {
		return nil, errorx.New(errorx.CodeInvalidPassword, "Invalid credentials")
	}
	return &respond.AuthRespond{
		User:  &respond.UserRespond{Id: "U_test", Email: req.Email},
		Token: "access", RefreshToken: "refresh",
	}, nil
}

func (s stubUserService) CheckAuth(userId string) (*respond.UserRespond, error) {
	return &respond.UserRespond{Id: userId}, nil
}

func (s stubUserService) UpdateProfile(userId string, req request.UpdateProfileRequest) (*respond.UserRespond, error) {
	return &respond.UserRespond{Id: userId}, nil
}

func (s stubUserService) RefreshToken(refreshToken string) (string, error) {
	if refreshToken != "refresh" {
		return "", errorx.New(errorx.CodeUnauthorized, "Invalid refresh token")
	}
	return "new-access", nil
}

type stubMessageService struct{}

func (s stubMessageService) GetSidebarUsers(userId string) (*respond.SidebarRespond, error) {
	return &respond.SidebarRespond{
		Users:          []respond.UserRespond{{Id: "U_peer"}},
		UnseenMessages: map[string]int64{"U_peer": 3},
	}, nil
}

func (s stubMessageService) GetMessageList(userId, peerId string) ([]respond.MessageRespond, error) {
	return []respond.MessageRespond{{Id: "1", SenderId: peerId, ReceiverId: userId, Text: "hi"}}, nil
}

func (s stubMessageService) MarkSeen(userId, peerId string) (int64, error) {
	return 2, nil
}

func (s stubMessageService) SendMessage(senderId, receiverId string, req request.SendMessageRequest) (*respond.MessageRespond, error) {
	if strings.TrimSpace(req.Text) == "" && req.Image == "" {
		return nil, errorx.New(errorx.CodeInvalidParam, "Message must contain text or image")
	}
	return &respond.MessageRespond{Id: "42", SenderId: senderId, ReceiverId: receiverId, Text: req.Text}, nil
}

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	jwt.Init("handler-test-secret", 5, 1)
	if err := handler.InitTrans("en"); err != nil {
		t.Fatalf("init translator: %v", err)
	}

	hub := chat.NewHub()
	go hub.Start()
	t.Cleanup(hub.Close)

	handlers := handler.NewHandlers(&service.Services{
		User:    stubUserService{},
		Message: stubMessageService{},
	}, hub)

	engine := gin.New()
	router.RegisterRoutes(engine, handlers)
	return engine
}

func do(t *testing.T, engine *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func accessToken(t *testing.T, userId string) string {
	t.Helper()
	token, err := jwt.GenerateAccessToken(userId)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

func TestSignup(t *testing.T) {
	engine := newTestEngine(t)

	w := do(t, engine, http.MethodPost, "/signup", "", gin.H{
		"fullName": "Alice", "email": "alice@test.dev", "password": "secret123",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}
	body := decode(t, w)
	if body["success"] != true || body["token"] == "" {
		t.Fatalf("body = %v", body)
	}

	// 重复邮箱
	w = do(t, engine, http.MethodPost, "/signup", "", gin.H{
		"fullName": "Alice", "email": "taken@test.dev", "password": "secret123",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate email: status = %d, want 400", w.Code)
	}
	if decode(t, w)["success"] != false {
		t.Fatalf("duplicate email: success should be false")
	}
}

func TestSignupValidation(t *testing.T) {
	engine := newTestEngine(t)

	// 缺邮箱、密码过短
	w := do(t, engine, http.MethodPost, "/signup", "", gin.H{
		"fullName": "Alice", "password": "123",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	body := decode(t, w)
	if body["success"] != false {
		t.Fatalf("body = %v", body)
	}
	msg, ok := body["message"].(map[string]any)
	if !ok {
		t.Fatalf("message should carry field errors, got %v", body["message"])
	}
	if _, ok := msg["email"]; !ok {
		t.Fatalf("missing email error in %v", msg)
	}
	if _, ok := msg["password"]; !ok {
		t.Fatalf("missing password error in %v", msg)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	engine := newTestEngine(t)

	w := do(t, engine, http.MethodPost, "/login", "", gin.H{
		"email": "alice@test.dev", "password": "wrong",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	engine := newTestEngine(t)

	for _, path := range []string{"/check-auth", "/messages/users", "/messages/U_peer"} {
		w := do(t, engine, http.MethodGet, path, "", nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("GET %s without token: status = %d, want 401", path, w.Code)
		}
	}
}

func TestCheckAuthWithToken(t *testing.T) {
	engine := newTestEngine(t)

	w := do(t, engine, http.MethodGet, "/check-auth", accessToken(t, "U_me"), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	body := decode(t, w)
	user := body["user"].(map[string]any)
	if user["id"] != "U_me" {
		t.Fatalf("user = %v", user)
	}
}

func TestSidebarUsers(t *testing.T) {
	engine := newTestEngine(t)

	w := do(t, engine, http.MethodGet, "/messages/users", accessToken(t, "U_me"), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := decode(t, w)
	unseen := body["unseenMessages"].(map[string]any)
	if unseen["U_peer"] != float64(3) {
		t.Fatalf("unseen = %v", unseen)
	}
}

func TestSendMessage(t *testing.T) {
	engine := newTestEngine(t)
	token := accessToken(t, "U_me")

	w := do(t, engine, http.MethodPost, "/messages/send/U_peer", token, gin.H{"text": "hello"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	body := decode(t, w)
	msg := body["message"].(map[string]any)
	if msg["senderId"] != "U_me" || msg["receiverId"] != "U_peer" {
		t.Fatalf("message = %v", msg)
	}

	// 空消息体
	w = do(t, engine, http.MethodPost, "/messages/send/U_peer", token, gin.H{"text": "   "})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("empty message: status = %d, want 400", w.Code)
	}
}

func TestMarkSeen(t *testing.T) {
	engine := newTestEngine(t)

	w := do(t, engine, http.MethodPut, "/messages/mark/U_peer", accessToken(t, "U_me"), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if decode(t, w)["updatedCount"] != float64(2) {
		t.Fatalf("body = %v", decode(t, w))
	}
}

func TestRefresh(t *testing.T) {
	engine := newTestEngine(t)

	w := do(t, engine, http.MethodPost, "/auth/refresh", "", gin.H{"refreshToken": "refresh"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if decode(t, w)["token"] != "new-access" {
		t.Fatalf("body = %v", decode(t, w))
	}

	w = do(t, engine, http.MethodPost, "/auth/refresh", "", gin.H{"refreshToken": "stale"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("stale refresh: status = %d, want 401", w.Code)
	}
}

func TestStatus(t *testing.T) {
	engine := newTestEngine(t)

	w := do(t, engine, http.MethodGet, "/status", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := decode(t, w)
	if body["success"] != true || body["status"] != "ok" {
		t.Fatalf("body = %v", body)
	}
	if _, ok := body["online"]; !ok {
		t.Fatalf("online snapshot missing: %v", body)
	}
}
