package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/jmoiron/sqlx"
	"github.com/mbolis/formpilot/fault"
	"github.com/mbolis/formpilot/model"
	"github.com/pkg/errors"
)

// UserRepository is the credential store. Only the auth service uses it.
type UserRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db, now: time.Now}
}

// Insert stores a new user. It fails with fault.ErrUniqueViolation when
// the email is already registered.
func (r *UserRepository) Insert(ctx context.Context, email, passwordHash string) (model.User, error) {
	id, err := newID()
	if err != nil {
		return model.User{}, err
	}
	user := model.User{
		ID:           id,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    timestamp(r.now),
	}

	_, err = r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO users (id, email, password_hash, created_at)
		VALUES (?, ?, ?, ?)`),
		user.ID,
		user.Email,
		user.PasswordHash,
		user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.User{}, errors.Wrap(fault.ErrUniqueViolation, "insert user")
		}
		return model.User{}, errors.Wrap(err, "insert user")
	}
	return user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, r.db.Rebind(`
		SELECT id, email, password_hash, created_at
		FROM users
		WHERE email = ?`),
		email,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, fault.ErrNotFound
	}
	if err != nil {
		return model.User{}, errors.Wrap(err, "find user")
	}
	return user, nil
}

func newID() (string, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return "", errors.Wrap(err, "generate id")
	}
	return id.String(), nil
}

// timestamp is truncated to what every supported store can keep.
func timestamp(now func() time.Time) time.Time {
	return now().UTC().Truncate(time.Microsecond)
}
