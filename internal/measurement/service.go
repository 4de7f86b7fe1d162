package measurement

import (
	"context"
	"math"
)

type Service interface {
	// Trend returns the member's recent weight history, oldest first, with
	// the net change between the first and last record of the window.
	Trend(ctx context.Context, gymID, userID int) (*TrendResponse, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Trend(ctx context.Context, gymID, userID int) (*TrendResponse, error) {
	records, err := s.repo.ListRecent(ctx, gymID, userID, trendWindow)
	if err != nil {
		return nil, err
	}

	// Reverse to chronological order for charting.
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}

	resp := &TrendResponse{Records: records, Direction: DirectionSteady}
	if len(records) >= 2 {
		delta := records[len(records)-1].WeightKg - records[0].WeightKg
		resp.DeltaKg = math.Round(delta*10) / 10
		switch {
		case resp.DeltaKg > 0:
			resp.Direction = DirectionUp
		case resp.DeltaKg < 0:
			resp.Direction = DirectionDown
		}
	}

	return resp, nil
}
