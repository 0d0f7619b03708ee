package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"sitebuilder/internal/domain"
)

// SiteStore implements domain.SiteStore using SQLite.
type SiteStore struct {
	db *DB
}

func NewSiteStore(db *DB) *SiteStore {
	return &SiteStore{db: db}
}

func (s *SiteStore) CreateSite(site *domain.Site) error {
	now := time.Now()
	site.CreatedAt = now
	site.UpdatedAt = now
	_, err := s.db.conn.Exec(
		`INSERT INTO sites (id, name, subdomain, description, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		site.ID, site.Name, site.Subdomain, site.Description, site.CreatedAt, site.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert site: %w", err)
	}
	return nil
}

func (s *SiteStore) GetSite(id string) (*domain.Site, error) {
	site := &domain.Site{}
	err := s.db.conn.QueryRow(
		`SELECT id, name, subdomain, description, created_at, updated_at FROM sites WHERE id = ?`, id,
	).Scan(&site.ID, &site.Name, &site.Subdomain, &site.Description, &site.CreatedAt, &site.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get site %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get site: %w", err)
	}
	return site, nil
}

func (s *SiteStore) ListSites() ([]domain.Site, error) {
	rows, err := s.db.conn.Query(
		`SELECT id, name, subdomain, description, created_at, updated_at FROM sites ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sites := []domain.Site{}
	for rows.Next() {
		var site domain.Site
		if err := rows.Scan(&site.ID, &site.Name, &site.Subdomain, &site.Description, &site.CreatedAt, &site.UpdatedAt); err != nil {
			return nil, err
		}
		sites = append(sites, site)
	}
	return sites, rows.Err()
}

func (s *SiteStore) UpdateSite(site *domain.Site) error {
	site.UpdatedAt = time.Now()
	res, err := s.db.conn.Exec(
		`UPDATE sites SET name = ?, subdomain = ?, description = ?, updated_at = ? WHERE id = ?`,
		site.Name, site.Subdomain, site.Description, site.UpdatedAt, site.ID,
	)
	if err != nil {
		return fmt.Errorf("update site: %w", err)
	}
	return requireRow(res, "site", site.ID)
}

func (s *SiteStore) DeleteSite(id string) error {
	_, err := s.db.conn.Exec(`DELETE FROM sites WHERE id = ?`, id)
	return err
}

func requireRow(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
	}
	return nil
}
