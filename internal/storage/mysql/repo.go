// Package mysql persists the template catalog.
package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"hotel_search/internal/domain"
)

func valInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// UpsertCity writes the city row and replaces its templates in one transaction.
func (r *Repo) UpsertCity(ctx context.Context, c domain.CatalogCity) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, upsertCitySQL, c.Key, c.Position, c.Default); err != nil {
		return fmt.Errorf("upsert city %q: %w", c.Key, err)
	}
	if _, err = tx.ExecContext(ctx, deleteTemplatesSQL, c.Key); err != nil {
		return fmt.Errorf("clear templates of %q: %w", c.Key, err)
	}

	if len(c.Templates) > 0 {
		values := make([]string, 0, len(c.Templates))
		args := make([]any, 0, len(c.Templates)*18) // 18 params per row
		for i, t := range c.Templates {
			amen := t.Amenities
			if amen == nil {
				amen = []string{}
			}
			amenJSON, mErr := json.Marshal(amen)
			if mErr != nil {
				return fmt.Errorf("marshal amenities of %d: %w", t.ID, mErr)
			}
			values = append(values, templateRowPlaceholders)
			args = append(args,
				c.Key, t.ID, i,
				t.Name, t.Location, t.Distance, t.Image,
				t.Rating, t.Reviews,
				t.RoomType, t.BedType,
				string(amenJSON),
				t.Price, valInt(t.OriginalPrice), t.Taxes,
				t.FreeCancellation, t.Stars, t.PropertyType,
			)
		}
		if _, err = tx.ExecContext(ctx, insertTemplatesPrefix+strings.Join(values, ","), args...); err != nil {
			return fmt.Errorf("insert templates of %q: %w", c.Key, err)
		}
	}
	return tx.Commit()
}

// LoadCities returns every city with its templates, default set last.
func (r *Repo) LoadCities(ctx context.Context) ([]domain.CatalogCity, error) {
	rows, err := r.db.QueryContext(ctx, listCitiesSQL)
	if err != nil {
		return nil, err
	}
	var cities []domain.CatalogCity
	idx := map[string]int{}
	for rows.Next() {
		var c domain.CatalogCity
		if err := rows.Scan(&c.Key, &c.Position, &c.Default); err != nil {
			rows.Close()
			return nil, err
		}
		idx[c.Key] = len(cities)
		cities = append(cities, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	trows, err := r.db.QueryContext(ctx, listTemplatesSQL)
	if err != nil {
		return nil, err
	}
	defer trows.Close()

	for trows.Next() {
		var (
			key      string
			t        domain.Template
			amenJSON []byte
			origP    sql.NullInt64
		)
		if err := trows.Scan(
			&key, &t.ID, &t.Name, &t.Location, &t.Distance, &t.Image,
			&t.Rating, &t.Reviews, &t.RoomType, &t.BedType,
			&amenJSON, &t.Price, &origP, &t.Taxes,
			&t.FreeCancellation, &t.Stars, &t.PropertyType,
		); err != nil {
			return nil, err
		}
		if len(amenJSON) > 0 {
			if err := json.Unmarshal(amenJSON, &t.Amenities); err != nil {
				return nil, fmt.Errorf("amenities of %d: %w", t.ID, err)
			}
		}
		if origP.Valid {
			op := int(origP.Int64)
			t.OriginalPrice = &op
		}
		i, ok := idx[key]
		if !ok {
			continue // orphan row
		}
		cities[i].Templates = append(cities[i].Templates, t)
	}
	if err := trows.Err(); err != nil {
		return nil, err
	}
	return cities, nil
}
