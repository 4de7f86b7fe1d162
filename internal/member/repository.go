package member

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/joroheos90/easygymapp/internal/db"

	"github.com/jmoiron/sqlx"
)

var ErrMemberNotFound = errors.New("member not found")

const memberColumns = `id, gym_id, full_name, email, password_hash, role, join_date, birth_date, phone, height_cm, is_active, created_at, updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, gymID int, fullName, email, passwordHash, role string, joinDate time.Time) (*Member, error) {
	query := `
		INSERT INTO members (gym_id, full_name, email, password_hash, role, join_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + memberColumns

	var m Member
	err := r.db.GetContext(ctx, &m, query, gymID, fullName, email, passwordHash, role, joinDate)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *repository) GetByID(ctx context.Context, gymID, id int) (*Member, error) {
	query := `
		SELECT ` + memberColumns + `
		FROM members
		WHERE id = $1 AND gym_id = $2
	`

	var m Member
	err := r.db.GetContext(ctx, &m, query, id, gymID)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Member, error) {
	query := `
		SELECT ` + memberColumns + `
		FROM members
		WHERE LOWER(email) = LOWER($1)
	`

	var m Member
	err := r.db.GetContext(ctx, &m, query, email)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *repository) FindByPhone(ctx context.Context, gymID int, phone string) (*Member, error) {
	query := `
		SELECT ` + memberColumns + `
		FROM members
		WHERE gym_id = $1 AND LOWER(phone) = LOWER($2)
	`

	var m Member
	err := r.db.GetContext(ctx, &m, query, gymID, strings.TrimSpace(phone))
	if err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *repository) List(ctx context.Context, gymID int, activeOnly bool) ([]Member, error) {
	query := `
		SELECT ` + memberColumns + `
		FROM members
		WHERE gym_id = $1
	`
	if activeOnly {
		query += " AND is_active = TRUE"
	}
	query += " ORDER BY full_name ASC"

	var members []Member
	err := r.db.SelectContext(ctx, &members, query, gymID)
	if err != nil {
		return nil, err
	}

	return members, nil
}

func (r *repository) Update(ctx context.Context, gymID, id int, req UpdateMemberRequest) (*Member, error) {
	query := `
		UPDATE members
		SET full_name  = COALESCE($3, full_name),
		    role       = COALESCE($4, role),
		    join_date  = COALESCE($5, join_date),
		    birth_date = COALESCE($6, birth_date),
		    phone      = COALESCE($7, phone),
		    height_cm  = COALESCE($8, height_cm),
		    is_active  = COALESCE($9, is_active),
		    updated_at = NOW()
		WHERE id = $1 AND gym_id = $2
		RETURNING ` + memberColumns

	var m Member
	err := r.db.GetContext(ctx, &m, query, id, gymID,
		req.FullName, req.Role, req.JoinDate, req.BirthDate, req.Phone, req.HeightCm, req.IsActive)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *repository) EmailExists(ctx context.Context, email string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM members
			WHERE LOWER(email) = LOWER($1)
		)
	`

	exists, err := db.Exists(ctx, r.db, query, email)
	if err != nil {
		return false, err
	}

	return exists, nil
}
