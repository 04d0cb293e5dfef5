package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewID 32 位 hex 主键（UUID 去连字符）
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
