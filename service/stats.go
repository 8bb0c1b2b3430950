package service

import (
	"supportchat/model"
)

// StatsService logs table sizes for operators. Wired to a daily cron job
// in main; there is no stats endpoint.
type StatsService struct {
	store *model.Store
}

func NewStatsService(store *model.Store) *StatsService {
	return &StatsService{store: store}
}

func (s *StatsService) LogDailyStats() {
	conversations, messages, err := s.store.Counts()
	if err != nil {
		logger.Warnf("[%s] failed to collect daily stats, %s", "scheduled task", err)
		return
	}
	logger.Infof("[%s] daily stats: %d conversations, %d messages", "scheduled task", conversations, messages)
}
