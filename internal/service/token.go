package service

import (
	"errors"
	"os"
	"time"

	"Lyra_Tube/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// 两类令牌，各用各的秘钥：
// 访问令牌短效，payload带id/email/username，每个请求都要出示；
// 刷新令牌长效，payload只带id和jti，服务端在用户表存一份（单槽位），用来免密换新令牌对

// GenerateAccessToken 签发访问令牌。payload不加密，绝不能放密码
func GenerateAccessToken(user *model.User, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"email":    user.Email,
		"username": user.Username,
		"exp":      time.Now().Add(ttl).Unix(), // 过期时间
		"iat":      time.Now().Unix(),          // 签发时间
	}
	// Header带上算法信息HS256，对称加密
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	secretKey := []byte(os.Getenv("ACCESS_TOKEN_SECRET"))
	return token.SignedString(secretKey)
}

// GenerateRefreshToken 签发刷新令牌，payload里只有用户ID和jti。
// iat/exp只有秒级精度，同一秒内给同一用户签两次会得到完全相同的串，
// 单槽位轮换就形同虚设了，所以必须带上jti保证每次签发的令牌都不同
func GenerateRefreshToken(user *model.User, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"jti":     uuid.NewString(),
		"exp":     time.Now().Add(ttl).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	secretKey := []byte(os.Getenv("REFRESH_TOKEN_SECRET"))
	return token.SignedString(secretKey)
}

// ParseRefreshToken 验证刷新令牌并取出其中的用户ID。
// 签名不对、过期、格式错——一律返回error，不做区分
func ParseRefreshToken(tokenString string) (uint64, error) {
	secretKey := []byte(os.Getenv("REFRESH_TOKEN_SECRET"))

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// 确保签名方法是对称加密族，防止算法替换攻击
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("非预期的签名方法")
		}
		return secretKey, nil
	})
	if err != nil || !token.Valid {
		return 0, errors.New("无效的刷新令牌")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("无效的刷新令牌")
	}
	// jwt.MapClaims里的数字会被解析为float64
	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return 0, errors.New("无效的刷新令牌")
	}
	return uint64(userIDFloat), nil
}
