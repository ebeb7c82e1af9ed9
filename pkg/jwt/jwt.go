package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/xiebiao/warehouse/pkg/errors"
)

// Manager 身份Token解析器
// 设计说明：
// 1. 认证由外部auth服务完成，本核心不做登录、不做权限判断
// 2. 这里只负责解出操作人身份（ActorID），写入审计字段
//   （Transfer.Actor、PurchaseRequest.RequestedBy/ApprovedBy等）
// 3. 与auth服务共享HMAC密钥，密钥由配置下发
type Manager struct {
	secret string
}

// NewManager 创建Token解析器
func NewManager(secret string) *Manager {
	return &Manager{secret: secret}
}

// Claims 身份Token的Claims
// 嵌入jwt.RegisteredClaims获取标准字段（exp、iat、nbf等）
type Claims struct {
	ActorID uint   `json:"actor_id"`
	Name    string `json:"name"`
	jwt.RegisteredClaims
}

// Parse 解析身份Token，返回操作人Claims
func (m *Manager) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// 校验签名算法，防止alg=none攻击
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.ErrInvalidToken
		}
		return []byte(m.secret), nil
	})

	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}

	return claims, nil
}

// Sign 签发身份Token
// 说明：正常流量的Token由外部auth服务签发，这里主要供测试和本地联调使用
func (m *Manager) Sign(actorID uint, name string, expire time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		ActorID: actorID,
		Name:    name,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expire)),
			Issuer:    "warehouse",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.secret))
}
