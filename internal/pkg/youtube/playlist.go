package youtube

import (
	"errors"
	"net/url"
	"strings"
)

var ErrInvalidPlaylist = errors.New("无效的歌单地址或 ID")

// ExtractPlaylistID 从裸 ID 或完整 URL 中提取 YouTube 歌单 ID。
// 纯字符串处理，不做网络校验（ID 是否真实存在由播放器自己报错）。
// 支持 https://youtube.com/playlist?list=PLxxx&feature=share 这类地址。
func ExtractPlaylistID(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", ErrInvalidPlaylist
	}

	// 不含 list= 的输入按裸 ID 处理
	if !strings.Contains(input, "list=") {
		if strings.Contains(input, "/") || strings.Contains(input, "?") {
			return "", ErrInvalidPlaylist
		}
		return input, nil
	}

	// URL 形式：优先走标准解析
	if strings.Contains(input, "://") {
		u, err := url.Parse(input)
		if err == nil {
			if id := u.Query().Get("list"); id != "" {
				return id, nil
			}
		}
	}

	// 兜底：直接截 list= 参数（处理没有 scheme 的地址）
	id := input[strings.Index(input, "list=")+len("list="):]
	if i := strings.IndexAny(id, "&#"); i >= 0 {
		id = id[:i]
	}
	if id == "" {
		return "", ErrInvalidPlaylist
	}
	return id, nil
}
