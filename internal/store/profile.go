package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const profileTable = "profiles"

var profileColumns = []string{
	"id", "full_name", "father_name", "mother_name", "email", "phone_country_code",
	"phone_number", "nationality", "current_living_country", "preferred_countries",
	"budget_min_bdt", "budget_max_bdt", "preferred_currency", "preferred_intake",
	"education", "resume", "created_at",
}

type profileRepo struct {
	drv *entsql.Driver
}

func (r *profileRepo) Create(ctx context.Context, p *ProfileRecord) (int64, error) {
	countries, err := json.Marshal(nonNil(p.PreferredCountries))
	if err != nil {
		return 0, fmt.Errorf("marshal countries: %w", err)
	}
	education, err := json.Marshal(nonNil(p.Education))
	if err != nil {
		return 0, fmt.Errorf("marshal education: %w", err)
	}
	var resume any
	if p.Resume != nil {
		b, err := json.Marshal(p.Resume)
		if err != nil {
			return 0, fmt.Errorf("marshal resume: %w", err)
		}
		resume = string(b)
	}

	now := time.Now().UTC().Truncate(time.Second)
	res, err := execQuery(ctx, r.drv, sqlite.Insert(profileTable).
		Columns(profileColumns[1:]...).
		Values(
			p.FullName, p.FatherName, p.MotherName, p.Email, p.PhoneCountryCode,
			p.PhoneNumber, p.Nationality, p.CurrentLivingCountry, string(countries),
			p.BudgetMinBDT, p.BudgetMaxBDT, p.PreferredCurrency, p.PreferredIntake,
			string(education), resume, now,
		))
	if err != nil {
		return 0, fmt.Errorf("insert profile: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("profile id: %w", err)
	}
	p.ID = id
	p.CreatedAt = now
	return id, nil
}

func (r *profileRepo) Get(ctx context.Context, id int64) (*ProfileRecord, error) {
	rows, err := selectRows(ctx, r.drv, sqlite.Select(profileColumns...).
		From(entsql.Table(profileTable)).
		Where(entsql.EQ("id", id)))
	if err != nil {
		return nil, fmt.Errorf("query profile %d: %w", id, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("query profile %d: %w", id, err)
		}
		return nil, ErrNotFound
	}

	var (
		p                            ProfileRecord
		countries, education, resume []byte
	)
	if err := rows.Scan(
		&p.ID, &p.FullName, &p.FatherName, &p.MotherName, &p.Email, &p.PhoneCountryCode,
		&p.PhoneNumber, &p.Nationality, &p.CurrentLivingCountry, &countries,
		&p.BudgetMinBDT, &p.BudgetMaxBDT, &p.PreferredCurrency, &p.PreferredIntake,
		&education, &resume, &p.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("scan profile %d: %w", id, err)
	}

	if err := json.Unmarshal(countries, &p.PreferredCountries); err != nil {
		return nil, fmt.Errorf("unmarshal countries: %w", err)
	}
	if err := json.Unmarshal(education, &p.Education); err != nil {
		return nil, fmt.Errorf("unmarshal education: %w", err)
	}
	if resume != nil {
		p.Resume = &ResumeMeta{}
		if err := json.Unmarshal(resume, p.Resume); err != nil {
			return nil, fmt.Errorf("unmarshal resume: %w", err)
		}
	}
	return &p, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
