package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
)

type PostgresFarmerRepository struct {
	db *pgxpool.Pool
}

func NewPostgresFarmerRepository(db *pgxpool.Pool) *PostgresFarmerRepository {
	return &PostgresFarmerRepository{db: db}
}

// uniqueViolation is the Postgres SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

const farmerColumns = `id, name, phone, password, language, state, district, created_at`

func (r *PostgresFarmerRepository) Save(ctx context.Context, farmer *Farmer) error {
	// Generate UUID if not already set
	if farmer.ID == "" {
		farmer.ID = uuid.New().String()
	}

	query := `
		INSERT INTO farmers (id, name, phone, password, language, state, district)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`
	err := r.db.QueryRow(ctx, query,
		farmer.ID, farmer.Name, farmer.Phone, farmer.Password,
		farmer.Language, farmer.State, farmer.District,
	).Scan(&farmer.CreatedAt)
	if isUniqueViolation(err) {
		return ErrPhoneTaken
	}
	if err != nil {
		return eris.Wrap(err, "insert farmer")
	}
	return nil
}

func (r *PostgresFarmerRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM farmers WHERE phone = $1)`,
		phone,
	).Scan(&exists)
	if err != nil {
		return false, eris.Wrap(err, "check farmer phone")
	}
	return exists, nil
}

func (r *PostgresFarmerRepository) FindByPhone(ctx context.Context, phone string) (*Farmer, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+farmerColumns+` FROM farmers WHERE phone = $1`,
		phone,
	)
	return scanFarmer(row)
}

func (r *PostgresFarmerRepository) FindByID(ctx context.Context, id string) (*Farmer, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+farmerColumns+` FROM farmers WHERE id = $1`,
		id,
	)
	return scanFarmer(row)
}

func scanFarmer(row pgx.Row) (*Farmer, error) {
	farmer := &Farmer{}
	err := row.Scan(
		&farmer.ID, &farmer.Name, &farmer.Phone, &farmer.Password,
		&farmer.Language, &farmer.State, &farmer.District, &farmer.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrFarmerNotFound
	}
	if err != nil {
		return nil, eris.Wrap(err, "scan farmer")
	}
	return farmer, nil
}
