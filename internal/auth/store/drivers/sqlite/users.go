package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/ailab/authd/internal/auth/domain"
	"github.com/ailab/authd/internal/auth/store"
)

type usersRepo struct {
	db *sql.DB
}

const userColumns = `id, account_name, password_hash, name, phone, role, sno, status, created_at, updated_at`

func (r *usersRepo) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *usersRepo) GetUserByAccountName(ctx context.Context, accountName string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE account_name = ?`, accountName)
	return scanUser(row)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (account_name, password_hash, name, phone, role, sno, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.AccountName, u.PasswordHash, u.Name, nullString(u.Phone),
		int(u.Role), nullString(u.Sno), int(u.Status),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, store.ErrAlreadyExists
		}
		return 0, err
	}
	return res.LastInsertId()
}

func (r *usersRepo) UpdateUser(ctx context.Context, u domain.User) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users
		 SET name = ?, phone = ?, role = ?, sno = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		u.Name, nullString(u.Phone), int(u.Role), nullString(u.Sno), u.ID,
	)
	if err != nil {
		return err
	}
	return requireRowTouched(res)
}

func (r *usersRepo) UpdateUserStatus(ctx context.Context, userID int64, status domain.UserStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		int(status), userID,
	)
	if err != nil {
		return err
	}
	return requireRowTouched(res)
}

func (r *usersRepo) ListUsers(ctx context.Context, offset, limit int64) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY id DESC LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *usersRepo) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (domain.User, error) {
	var (
		u            domain.User
		phone, sno   sql.NullString
		role, status int
	)
	err := row.Scan(
		&u.ID, &u.AccountName, &u.PasswordHash, &u.Name, &phone,
		&role, &sno, &status, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.Phone = phone.String
	u.Sno = sno.String
	u.Role = domain.Role(role)
	u.Status = domain.UserStatus(status)
	return u, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func requireRowTouched(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	// modernc.org/sqlite reports constraint failures in the message;
	// there is no typed error to unwrap.
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
