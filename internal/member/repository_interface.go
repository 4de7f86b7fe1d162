package member

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, gymID int, fullName, email, passwordHash, role string, joinDate time.Time) (*Member, error)
	GetByID(ctx context.Context, gymID, id int) (*Member, error)
	FindByEmail(ctx context.Context, email string) (*Member, error)
	FindByPhone(ctx context.Context, gymID int, phone string) (*Member, error)
	List(ctx context.Context, gymID int, activeOnly bool) ([]Member, error)
	Update(ctx context.Context, gymID, id int, req UpdateMemberRequest) (*Member, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}
