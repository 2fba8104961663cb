package sqlite

import (
	"context"
	"database/sql"

	hasard "github.com/hasard-app/hasard-api"
)

var _ hasard.UserService = (*UserService)(nil)

// UserService looks up accounts and their accessible classes.
type UserService struct {
	db *DB
}

// NewUserService creates a new user service with the provided database.
func NewUserService(db *DB) *UserService {
	return &UserService{db: db}
}

// FindUserByUsername returns the user with the provided username along with
// its accessible classes in roster order.
//
// returns ENOTFOUND if no such user exists.
func (s *UserService) FindUserByUsername(ctx context.Context, username string) (*hasard.User, error) {
	tx, cancel, err := s.db.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()
	defer tx.Rollback()

	usr, err := findUserByUsername(ctx, tx, username)
	if err != nil {
		return nil, err
	}

	if usr.Classes, err = findClassesByUser(ctx, tx, usr.ID); err != nil {
		return nil, err
	}
	return usr, nil
}

func findUserByUsername(ctx context.Context, tx *sql.Tx, username string) (*hasard.User, error) {
	row := tx.QueryRowContext(ctx, `
		SELECT
			id,
			username,
			password_hash,
			perm
		FROM users
		WHERE username = ?
	`,
		username,
	)

	var usr hasard.User
	err := row.Scan(
		&usr.ID,
		&usr.Username,
		&usr.PasswordHash,
		&usr.Perm,
	)
	if err == sql.ErrNoRows {
		return nil, hasard.Errorf(hasard.ENOTFOUND, "user not found")
	} else if err != nil {
		return nil, err
	}

	return &usr, nil
}

func findClassesByUser(ctx context.Context, tx *sql.Tx, userID int) ([]hasard.Class, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT
			c.id,
			c.year,
			c.section
		FROM classes c
		INNER JOIN user_classes uc ON uc.class_id = c.id
		WHERE uc.user_id = ?
		ORDER BY c.id
	`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var classes []hasard.Class
	for rows.Next() {
		var c hasard.Class
		if err := rows.Scan(&c.ID, &c.Year, &c.Section); err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}
