package service

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/tube24/tube24_go_server/internal/model"
	"github.com/tube24/tube24_go_server/internal/model/dto"
	"github.com/tube24/tube24_go_server/internal/repository"
)

const minutesPerDay = 24 * 60

var ErrInvalidClock = errors.New("时间格式错误，应为 HH:MM")

// ScheduleService 排班解析：给定频道和时间点，算出当前在播的歌单。
// 所有时间窗按频道时区的当日分钟数解析，每天重复。
type ScheduleService struct {
	channelRepo *repository.ChannelRepository
}

func NewScheduleService(channelRepo *repository.ChannelRepository) *ScheduleService {
	return &ScheduleService{channelRepo: channelRepo}
}

// Resolve 解析频道在 at 时刻的直播状态
func (s *ScheduleService) Resolve(channelID int64, at time.Time) (*dto.LiveStatus, error) {
	channel, err := s.channelRepo.GetByIDWithPlaylists(channelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChannelNotFound
		}
		return nil, err
	}
	return s.ResolveChannel(channel, at), nil
}

// ResolveChannel 对已加载歌单的频道做排班解析
func (s *ScheduleService) ResolveChannel(channel *model.Channel, at time.Time) *dto.LiveStatus {
	loc := channelLocation(channel)
	local := at.In(loc)
	minute := local.Hour()*60 + local.Minute()

	status := &dto.LiveStatus{
		ChannelID: channel.ID,
		At:        local.Format(time.RFC3339),
		Conflicts: Conflicts(channel.Playlists),
	}

	// 在所有覆盖当前分钟的窗口里，最新创建的歌单胜出
	var winner *model.Playlist
	for i := range channel.Playlists {
		p := &channel.Playlists[i]
		if !windowContains(p, minute) {
			continue
		}
		if winner == nil || laterCreated(p, winner) {
			winner = p
		}
	}

	if winner == nil {
		return status // off-air
	}

	status.OnAir = true
	status.Playlist = buildPlaylistInfo(winner)
	status.OffsetMinutes = offsetInto(winner, minute)
	return status
}

func channelLocation(channel *model.Channel) *time.Location {
	if channel.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(channel.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func laterCreated(a, b *model.Playlist) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}

// effectiveEnd 返回窗口结束分钟；EndMinute 为空表示播到午夜
func effectiveEnd(p *model.Playlist) int {
	if p.EndMinute == nil {
		return minutesPerDay
	}
	return *p.EndMinute
}

// windowIntervals 把窗口拆成不跨午夜的 [start, end) 区间
func windowIntervals(p *model.Playlist) [][2]int {
	end := effectiveEnd(p)
	if end > p.StartMinute {
		return [][2]int{{p.StartMinute, end}}
	}
	// 跨午夜：拆成当天尾段和次日头段
	return [][2]int{{p.StartMinute, minutesPerDay}, {0, end}}
}

func windowContains(p *model.Playlist, minute int) bool {
	for _, iv := range windowIntervals(p) {
		if minute >= iv[0] && minute < iv[1] {
			return true
		}
	}
	return false
}

// offsetInto 计算 minute 距窗口开始的分钟数（跨午夜时次日段继续累计）
func offsetInto(p *model.Playlist, minute int) int {
	if minute >= p.StartMinute {
		return minute - p.StartMinute
	}
	return minute + minutesPerDay - p.StartMinute
}

// Conflicts 找出歌单时间窗的两两重叠，供频道主修正排班。
// 重叠不阻止保存，只作提示。
func Conflicts(playlists []model.Playlist) []*dto.ConflictInfo {
	var conflicts []*dto.ConflictInfo
	for i := range playlists {
		for j := i + 1; j < len(playlists); j++ {
			a, b := &playlists[i], &playlists[j]
			start, end, ok := overlap(a, b)
			if !ok {
				continue
			}
			conflicts = append(conflicts, &dto.ConflictInfo{
				PlaylistID:   a.ID,
				PlaylistName: a.Name,
				OverlapsID:   b.ID,
				OverlapsName: b.Name,
				OverlapStart: FormatClock(start),
				OverlapEnd:   FormatClock(end),
			})
		}
	}
	return conflicts
}

// overlap 返回两个窗口的首个重叠区间
func overlap(a, b *model.Playlist) (start, end int, ok bool) {
	for _, ia := range windowIntervals(a) {
		for _, ib := range windowIntervals(b) {
			s := ia[0]
			if ib[0] > s {
				s = ib[0]
			}
			e := ia[1]
			if ib[1] < e {
				e = ib[1]
			}
			if s < e {
				return s, e, true
			}
		}
	}
	return 0, 0, false
}

// ParseClock 解析 "HH:MM" 为当天分钟数
func ParseClock(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, ErrInvalidClock
	}
	if len(s) != 5 || s[2] != ':' || h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, ErrInvalidClock
	}
	return h*60 + m, nil
}

// FormatClock 把当天分钟数格式化为 "HH:MM"；1440 显示为 24:00
func FormatClock(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}

func buildPlaylistInfo(p *model.Playlist) *dto.PlaylistInfo {
	info := &dto.PlaylistInfo{
		ID:                p.ID,
		ChannelID:         p.ChannelID,
		YoutubePlaylistID: p.YoutubePlaylistID,
		Name:              p.Name,
		Description:       p.Description,
		StartTime:         FormatClock(p.StartMinute),
		CreatedAt:         p.CreatedAt.Format(time.RFC3339),
	}
	if p.EndMinute != nil {
		info.EndTime = FormatClock(*p.EndMinute)
	}
	return info
}
