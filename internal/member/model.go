package member

import "time"

const (
	RoleAdmin  = "admin"
	RoleStaff  = "staff"
	RoleMember = "member"
)

// DefaultPassword is assigned to members created by an admin; they are
// expected to change it on first login.
const DefaultPassword = "gim12345"

// Member is a gym user. JoinDate anchors the monthly billing period: a
// member who joined on the 15th pays for the 15th through the 14th.
type Member struct {
	ID           int        `db:"id" json:"id"`
	GymID        int        `db:"gym_id" json:"gym_id"`
	FullName     string     `db:"full_name" json:"full_name"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	Role         string     `db:"role" json:"role"`
	JoinDate     time.Time  `db:"join_date" json:"join_date"`
	BirthDate    *time.Time `db:"birth_date" json:"birth_date,omitempty"`
	Phone        *string    `db:"phone" json:"phone,omitempty"`
	HeightCm     *int       `db:"height_cm" json:"height_cm,omitempty"`
	IsActive     bool       `db:"is_active" json:"is_active"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Member       Member `json:"member"`
}

type CreateMemberRequest struct {
	FullName string  `json:"full_name" binding:"required"`
	Email    string  `json:"email" binding:"required,email"`
	Role     string  `json:"role" binding:"omitempty,oneof=admin staff member"`
	Phone    *string `json:"phone"`
}

type UpdateMemberRequest struct {
	FullName  *string    `json:"full_name"`
	Role      *string    `json:"role" binding:"omitempty,oneof=admin staff member"`
	JoinDate  *time.Time `json:"join_date"`
	BirthDate *time.Time `json:"birth_date"`
	Phone     *string    `json:"phone"`
	HeightCm  *int       `json:"height_cm"`
	IsActive  *bool      `json:"is_active"`
}
