package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateOrderSlug 生成订单短码，用于分享和客服查单
// 格式：ord-<yymmdd>-<uuid前8位>，例如 ord-240131-a1b2c3d4
func GenerateOrderSlug() string {
	return fmt.Sprintf("ord-%s-%s",
		time.Now().Format("060102"),
		strings.Split(uuid.New().String(), "-")[0])
}
