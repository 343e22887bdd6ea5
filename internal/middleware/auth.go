package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// 身份信息在gin上下文中的键
const (
	CtxUserId = "user_id"
	CtxRole   = "role"
)

// Auth 解析身份提供方签发的JWT并注入主体信息。
// 本服务不做注册登录，只校验签名并信任claims中的 sub 和 role。
func Auth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		bearer := c.GetHeader("Authorization")
		if !strings.HasPrefix(bearer, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "缺少认证凭证"})
			return
		}
		tokenStr := bearer[7:]
		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "认证凭证无效"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "认证凭证无效"})
			return
		}

		userId, _ := claims["sub"].(string)
		if userId == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "认证凭证缺少主体"})
			return
		}
		role, _ := claims["role"].(string)

		c.Set(CtxUserId, userId)
		c.Set(CtxRole, role)
		c.Next()
	}
}

// GetUserId 从上下文取出主体ID
func GetUserId(c *gin.Context) string {
	return c.GetString(CtxUserId)
}

// GetRole 从上下文取出主体角色
func GetRole(c *gin.Context) string {
	return c.GetString(CtxRole)
}
