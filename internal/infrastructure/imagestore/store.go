// Package imagestore 提供内嵌图片的存储服务
// 前端以 data:image/...;base64 形式内嵌上传，解码后落盘到静态资源目录，
// 返回经 /static/images 暴露的访问路径
package imagestore

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"

	"quick_chat_server/pkg/constants"
	"quick_chat_server/pkg/errorx"
	"quick_chat_server/pkg/util/random"
)

// URLPrefix 图片对外访问路径前缀，与 http_server 的静态路由映射保持一致
const URLPrefix = "/static/images"

// Store 图片存储接口
// 本地落盘是默认实现，换成对象存储时只需替换该接口的实现
type Store interface {
	// Save 保存一张内嵌图片，返回可访问的 URL 路径
	// 输入必须是 data:image/...;base64 形式；保存失败不留任何残余
	Save(dataURI string) (string, error)
}

// localStore 本地文件系统实现
type localStore struct {
	dir string
}

// NewLocalStore 创建本地图片存储
func NewLocalStore(dir string) Store {
	return &localStore{dir: dir}
}

// extByMime 支持的图片 MIME 类型与文件后缀
var extByMime = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Save 解析 data URI 并写入磁盘
func (s *localStore) Save(dataURI string) (string, error) {
	mime, encoded, err := splitDataURI(dataURI)
	if err != nil {
		return "", err
	}
	ext, ok := extByMime[mime]
	if !ok {
		return "", errorx.Newf(errorx.CodeInvalidParam, "unsupported image type %s", mime)
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", errorx.Wrap(err, errorx.CodeInvalidParam, "invalid base64 image payload")
	}
	if len(raw) > constants.IMAGE_MAX_SIZE {
		return "", errorx.New(errorx.CodeInvalidParam, "image too large")
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", errorx.Wrap(err, errorx.CodeImageUpload, "create image directory")
	}
	filename := random.GetNowAndLenRandomString(12) + ext
	if err := os.WriteFile(filepath.Join(s.dir, filename), raw, 0o644); err != nil {
		return "", errorx.Wrap(err, errorx.CodeImageUpload, "write image file")
	}
	return URLPrefix + "/" + filename, nil
}

// splitDataURI 拆出 MIME 类型和 base64 载荷
func splitDataURI(dataURI string) (mime, encoded string, err error) {
	if !strings.HasPrefix(dataURI, "data:image/") {
		return "", "", errorx.New(errorx.CodeInvalidParam, "image must be an embedded data URI")
	}
	rest := strings.TrimPrefix(dataURI, "data:")
	idx := strings.Index(rest, ";base64,")
	if idx < 0 {
		return "", "", errorx.New(errorx.CodeInvalidParam, "image must be base64 encoded")
	}
	return rest[:idx], rest[idx+len(";base64,"):], nil
}
