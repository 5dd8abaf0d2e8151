package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"Lyra_Tube/internal/model"
	"Lyra_Tube/internal/service"

	"github.com/gin-gonic/gin"
)

// 搭一个只挂认证中间件的探针路由，把context里的用户信息原样吐回来
func newProbeRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/probe", AuthMiddleware(), func(c *gin.Context) {
		userID, _ := c.Get("userID")
		username, _ := c.Get("username")
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "username": username})
	})
	return r
}

func issueAccessToken(t *testing.T, user *model.User) string {
	t.Helper()
	token, err := service.GenerateAccessToken(user, 15*time.Minute)
	if err != nil {
		t.Fatalf("签发访问令牌失败: %v", err)
	}
	return token
}

func TestAuthMiddlewareBearerRoundTrip(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "test-access-secret")
	r := newProbeRouter()

	user := &model.User{Username: "alice", Email: "alice@example.com"}
	user.ID = 42
	token := issueAccessToken(t, user)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("期望200，实际%d，body=%s", w.Code, w.Body.String())
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("响应解析失败: %v", err)
	}
	// MapClaims里的数字经json一来一回都是float64
	if got, ok := body["user_id"].(float64); !ok || uint64(got) != 42 {
		t.Errorf("期望user_id=42，实际%v", body["user_id"])
	}
	if body["username"] != "alice" {
		t.Errorf("期望username=alice，实际%v", body["username"])
	}
}

func TestAuthMiddlewareCookieRoundTrip(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "test-access-secret")
	r := newProbeRouter()

	user := &model.User{Username: "bob", Email: "bob@example.com"}
	user.ID = 7
	token := issueAccessToken(t, user)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("期望200，实际%d，body=%s", w.Code, w.Body.String())
	}
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "test-access-secret")
	r := newProbeRouter()

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("无令牌请求期望401，实际%d", w.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("响应解析失败: %v", err)
	}
	if body["success"] != false {
		t.Errorf("错误响应的success应为false，实际%v", body["success"])
	}
}

func TestAuthMiddlewareRejectsMalformedHeader(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "test-access-secret")
	r := newProbeRouter()

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Token abc.def.ghi")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("格式错误的授权头期望401，实际%d", w.Code)
	}
}

func TestAuthMiddlewareRejectsForgedSignature(t *testing.T) {
	// 用别的秘钥签发，再换回正式秘钥验证
	t.Setenv("ACCESS_TOKEN_SECRET", "attacker-secret")
	user := &model.User{Username: "mallory", Email: "mallory@example.com"}
	user.ID = 99
	forged := issueAccessToken(t, user)

	t.Setenv("ACCESS_TOKEN_SECRET", "test-access-secret")
	r := newProbeRouter()

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("伪造签名的令牌期望401，实际%d", w.Code)
	}
}
