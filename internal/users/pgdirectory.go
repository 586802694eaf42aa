package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eyfs-nursery/eyfs-nursery/internal/platform/db"
	"github.com/eyfs-nursery/eyfs-nursery/internal/shared"
)

// PGDirectory implements Directory on PostgreSQL for deployments that need
// durable accounts instead of the seeded in-memory store.
type PGDirectory struct {
	pool *pgxpool.Pool
}

// NewPGDirectory constructs a PostgreSQL backed directory.
func NewPGDirectory(pool *pgxpool.Pool) *PGDirectory {
	return &PGDirectory{pool: pool}
}

const userColumns = `id, first_name, last_name, email, username, password_hash, phone,
	role, status, avatar, created_at, last_login, qualifications, rooms, contract_type`

// List returns all users ordered by creation time.
func (d *PGDirectory) List(ctx context.Context) ([]User, error) {
	rows, err := d.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("users: list: %w", err)
	}
	defer rows.Close()
	var out []User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ByID fetches a user by id.
func (d *PGDirectory) ByID(ctx context.Context, id string) (*User, error) {
	row := d.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanOne(row)
}

// ByIdentifier fetches a user by exact username or email.
func (d *PGDirectory) ByIdentifier(ctx context.Context, identifier string) (*User, error) {
	row := d.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1 OR email = $1`, identifier)
	return scanOne(row)
}

// Insert stores a new user.
func (d *PGDirectory) Insert(ctx context.Context, user User) error {
	var lastLogin *time.Time
	if !user.LastLogin.IsZero() {
		lastLogin = &user.LastLogin
	}
	_, err := d.pool.Exec(ctx, `INSERT INTO users (`+userColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`,
		user.ID, user.FirstName, user.LastName, user.Email, user.Username,
		user.PasswordHash, user.Phone, user.Role, user.Status, user.Avatar,
		user.CreatedAt, lastLogin, user.Qualifications, user.Rooms, user.ContractType)
	if isUniqueViolation(err) {
		return shared.ErrDuplicate
	}
	return err
}

// Update replaces the stored record with the same id.
func (d *PGDirectory) Update(ctx context.Context, user User) error {
	var lastLogin *time.Time
	if !user.LastLogin.IsZero() {
		lastLogin = &user.LastLogin
	}
	tag, err := d.pool.Exec(ctx, `UPDATE users SET
		first_name = $2, last_name = $3, email = $4, username = $5,
		password_hash = $6, phone = $7, role = $8, status = $9, avatar = $10,
		last_login = $11, qualifications = $12, rooms = $13, contract_type = $14
		WHERE id = $1`,
		user.ID, user.FirstName, user.LastName, user.Email, user.Username,
		user.PasswordHash, user.Phone, user.Role, user.Status, user.Avatar,
		lastLogin, user.Qualifications, user.Rooms, user.ContractType)
	if isUniqueViolation(err) {
		return shared.ErrDuplicate
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// EnsureSeed inserts the given users when the table is empty. The check and
// the inserts run in one transaction so two booting instances cannot both
// seed.
func (d *PGDirectory) EnsureSeed(ctx context.Context, seed []User) error {
	if len(seed) == 0 {
		return nil
	}
	return db.WithTx(ctx, d.pool, func(tx pgx.Tx) error {
		var count int
		if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
			return fmt.Errorf("users: count: %w", err)
		}
		if count > 0 {
			return nil
		}
		for _, user := range seed {
			var lastLogin *time.Time
			if !user.LastLogin.IsZero() {
				lastLogin = &user.LastLogin
			}
			if _, err := tx.Exec(ctx, `INSERT INTO users (`+userColumns+`)
				VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`,
				user.ID, user.FirstName, user.LastName, user.Email, user.Username,
				user.PasswordHash, user.Phone, user.Role, user.Status, user.Avatar,
				user.CreatedAt, lastLogin, user.Qualifications, user.Rooms, user.ContractType); err != nil {
				return fmt.Errorf("users: seed %s: %w", user.Username, err)
			}
		}
		return nil
	})
}

// Delete removes the user with the given id.
func (d *PGDirectory) Delete(ctx context.Context, id string) error {
	tag, err := d.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func scanOne(row pgx.Row) (*User, error) {
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func scanUser(row pgx.Row) (User, error) {
	var user User
	var lastLogin *time.Time
	err := row.Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email,
		&user.Username, &user.PasswordHash, &user.Phone, &user.Role, &user.Status,
		&user.Avatar, &user.CreatedAt, &lastLogin, &user.Qualifications,
		&user.Rooms, &user.ContractType)
	if err != nil {
		return User{}, err
	}
	if lastLogin != nil {
		user.LastLogin = *lastLogin
	}
	return user, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ Directory = (*PGDirectory)(nil)
