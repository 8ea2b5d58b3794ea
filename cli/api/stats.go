package api

import (
	"context"
	"fmt"
)

type StatsService struct {
	client *Client
}

func NewStatsService(client *Client) *StatsService {
	return &StatsService{client: client}
}

func (s *StatsService) Get(ctx context.Context) (*Stats, error) {
	var stats Stats
	if err := s.client.get(ctx, "/stats", &stats); err != nil {
		return nil, fmt.Errorf("failed to fetch stats: %w", err)
	}
	return &stats, nil
}
