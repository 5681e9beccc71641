package httpx

import (
	"net/http"

	"github.com/jesb1n/immich/internal/dto"

	"github.com/gin-gonic/gin"
)

// WriteStream 以固定长度输出二进制流，任何情况下都会关闭 stream
func WriteStream(c *gin.Context, stream *dto.ReadStream, extraHeaders map[string]string) {
	defer func() { _ = stream.Stream.Close() }()

	c.DataFromReader(http.StatusOK, stream.Length, stream.Type, stream.Stream, extraHeaders)
}
