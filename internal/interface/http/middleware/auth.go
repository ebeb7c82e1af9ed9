package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/warehouse/pkg/errors"
	"github.com/xiebiao/warehouse/pkg/jwt"
	"github.com/xiebiao/warehouse/pkg/response"
)

// AuthMiddleware 操作人身份中间件
// 设计说明:
// 1. Token由外部认证服务签发,本服务只解析、不做登录和权限判断
// 2. 解析出的操作人ID注入Context,记录到审计相关实体上
//    (调拨ActorID、申请requestedBy/approvedBy、采购单createdBy)
type AuthMiddleware struct {
	jwtManager *jwt.Manager
}

// NewAuthMiddleware 创建身份中间件
func NewAuthMiddleware(jwtManager *jwt.Manager) *AuthMiddleware {
	return &AuthMiddleware{jwtManager: jwtManager}
}

// RequireActor 要求请求携带操作人身份
// 使用方式:
//
//	authorized := r.Group("/api/v1")
//	authorized.Use(authMiddleware.RequireActor())
func (m *AuthMiddleware) RequireActor() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. 从Header提取Token
		// 格式:Authorization: Bearer <token>
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.ErrorWithCode(c, apperrors.ErrCodeUnauthorized, "缺少操作人身份")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.ErrorWithCode(c, apperrors.ErrCodeInvalidToken, "Token格式错误")
			c.Abort()
			return
		}

		// 2. 验证Token并解析Claims
		claims, err := m.jwtManager.Parse(parts[1])
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		// 签名合法但没有操作人ID的Token同样拒绝,
		// 0是"未注入"的哨兵值,不能作为合法操作人进入Handler
		if claims.ActorID == 0 {
			response.ErrorWithCode(c, apperrors.ErrCodeInvalidToken, "Token缺少操作人ID")
			c.Abort()
			return
		}

		// 3. 将操作人信息注入Context
		c.Set("actor_id", claims.ActorID)
		c.Set("actor_name", claims.Name)

		c.Next()
	}
}

// GetActorID 从Context获取操作人ID,未注入时返回0
func GetActorID(c *gin.Context) uint {
	if actorID, exists := c.Get("actor_id"); exists {
		if id, ok := actorID.(uint); ok {
			return id
		}
	}
	return 0
}

// MustGetActorID 从Context获取操作人ID
// 仅用于已经过RequireActor中间件的Handler
func MustGetActorID(c *gin.Context) uint {
	actorID := GetActorID(c)
	if actorID == 0 {
		panic("actor_id not found in context")
	}
	return actorID
}
