package recommend

import (
	"context"
	"encoding/json"

	"yieldx/internal/soil"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
)

type PostgresHistoryRepository struct {
	db *pgxpool.Pool
}

func NewPostgresHistoryRepository(db *pgxpool.Pool) *PostgresHistoryRepository {
	return &PostgresHistoryRepository{db: db}
}

func (r *PostgresHistoryRepository) Save(ctx context.Context, entry *HistoryEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}

	results, err := json.Marshal(entry.Results)
	if err != nil {
		return eris.Wrap(err, "encode results")
	}

	var farmerID *string
	if entry.FarmerID != "" {
		farmerID = &entry.FarmerID
	}

	query := `
		INSERT INTO recommendation_history
			(id, farmer_id, state, district, lat, lon, soil_ph, climate, source, fallback, results)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at
	`
	err = r.db.QueryRow(ctx, query,
		entry.ID, farmerID, entry.State, entry.District,
		entry.Lat, entry.Lon, entry.SoilPH, entry.Climate,
		string(entry.Source), entry.Fallback, results,
	).Scan(&entry.CreatedAt)
	if err != nil {
		return eris.Wrap(err, "insert recommendation history")
	}
	return nil
}

func (r *PostgresHistoryRepository) ListByFarmer(ctx context.Context, farmerID string, limit int) ([]HistoryEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, state, district, lat, lon, soil_ph, climate, source, fallback, results, created_at
		FROM recommendation_history
		WHERE farmer_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, farmerID, limit)
	if err != nil {
		return nil, eris.Wrap(err, "query recommendation history")
	}
	defer rows.Close()

	entries := []HistoryEntry{}
	for rows.Next() {
		var (
			e       HistoryEntry
			source  string
			results []byte
		)
		if err := rows.Scan(
			&e.ID, &e.State, &e.District, &e.Lat, &e.Lon, &e.SoilPH,
			&e.Climate, &source, &e.Fallback, &results, &e.CreatedAt,
		); err != nil {
			return nil, eris.Wrap(err, "scan recommendation history")
		}
		e.FarmerID = farmerID
		e.Source = soil.Source(source)
		if err := json.Unmarshal(results, &e.Results); err != nil {
			return nil, eris.Wrapf(err, "decode results of %s", e.ID)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "iterate recommendation history")
	}
	return entries, nil
}
