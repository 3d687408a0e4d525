package timing

import (
	"time"
)

// Clock 提供当前时间接口，用于mock测试
type Clock interface {
	Now() time.Time
}

// SystemClock 使用系统实际时间
type SystemClock struct{}

func (c *SystemClock) Now() time.Time {
	return time.Now()
}

// Session A股交易时段检测器
type Session struct {
	clock Clock
}

// NewSession 创建交易时段检测器
func NewSession(clock Clock) *Session {
	return &Session{clock: clock}
}

// DefaultSession 使用系统时间的默认交易时段检测器
func DefaultSession() *Session {
	return NewSession(&SystemClock{})
}

// Now 返回当前时间
func (s *Session) Now() time.Time {
	return s.clock.Now()
}

// IsTradingDay 判断是否是交易日（周一到周五，不含法定节假日）
func (s *Session) IsTradingDay(t time.Time) bool {
	weekday := t.Weekday()
	return weekday >= time.Monday && weekday <= time.Friday
}

// IsTradingTime 判断当前是否在交易时段
// 上午 09:30:00 - 11:30:00，下午 13:00:00 - 15:00:00
func (s *Session) IsTradingTime() bool {
	now := s.clock.Now()
	if !s.IsTradingDay(now) {
		return false
	}

	current := now.Format("15:04:05")
	return (current >= "09:30:00" && current <= "11:30:00") ||
		(current >= "13:00:00" && current <= "15:00:00")
}

// NextOpen 获取下一次开盘时间
// 当日开盘已过时指向下一个交易日的开盘
func (s *Session) NextOpen() time.Time {
	now := s.clock.Now()
	open := time.Date(now.Year(), now.Month(), now.Day(), 9, 30, 0, 0, now.Location())

	switch now.Weekday() {
	case time.Saturday:
		return open.AddDate(0, 0, 2)
	case time.Sunday:
		return open.AddDate(0, 0, 1)
	}

	if now.Before(open) {
		return open
	}
	if now.Weekday() == time.Friday {
		return open.AddDate(0, 0, 3)
	}
	return open.AddDate(0, 0, 1)
}
