package gym

import "context"

type Repository interface {
	Create(ctx context.Context, name string) (*Gym, error)
	GetByID(ctx context.Context, id int) (*Gym, error)
	List(ctx context.Context, activeOnly bool) ([]Gym, error)
	SetActive(ctx context.Context, id int, active bool) error
}
