package httpx

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// 校验标签 -> 提示文案
var tagMessages = map[string]string{
	"required": "不能为空",
	"uuid4":    "必须是合法的 UUID v4",
	"min":      "数量或长度过小",
	"max":      "数量或长度过大",
	"datetime": "日期格式必须为 YYYY-MM-DD",
}

// WriteBindError 将绑定/校验失败统一转为 400
func WriteBindError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make(map[string]string, len(validationErrs))
		for _, fe := range validationErrs {
			msg, ok := tagMessages[fe.Tag()]
			if !ok {
				msg = "校验失败(" + fe.Tag() + ")"
			}
			fields[fieldPath(fe)] = msg
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "参数校验失败", "fields": fields})
		return
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "参数格式错误"})
}

// fieldPath 去掉顶层结构体名，例如 MergePersonRequest.IDs[0] -> IDs[0]
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// BindURI 绑定并校验路径参数
func BindURI(c *gin.Context, obj any) bool {
	if err := c.ShouldBindUri(obj); err != nil {
		WriteBindError(c, err)
		return false
	}
	return true
}

// BindJSON 绑定并校验请求体
func BindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		WriteBindError(c, err)
		return false
	}
	return true
}

// BindQuery 绑定并校验查询参数
func BindQuery(c *gin.Context, obj any) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		WriteBindError(c, err)
		return false
	}
	return true
}
