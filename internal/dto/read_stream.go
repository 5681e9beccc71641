package dto

import "io"

// ReadStream 带类型与长度的二进制流，调用方负责关闭 Stream
type ReadStream struct {
	Stream io.ReadCloser
	Type   string
	Length int64
}
