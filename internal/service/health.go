package service

import (
	"sync/atomic"
	"time"
)

// HealthService 給 k8s probe 使用；ready 由 App 啟動完成後打開、關閉前收回
type HealthService struct {
	live      atomic.Bool
	ready     atomic.Bool
	startedAt time.Time
}

func NewHealthService() *HealthService {
	s := &HealthService{startedAt: time.Now()}
	s.live.Store(true)
	return s
}

func (s *HealthService) SetReady(v bool) {
	s.ready.Store(v)
}

func (s *HealthService) IsLive() bool {
	return s.live.Load()
}

func (s *HealthService) IsReady() bool {
	return s.ready.Load()
}

// Uptime 以秒為單位
func (s *HealthService) Uptime() int64 {
	return int64(time.Since(s.startedAt) / time.Second)
}
