package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"sitebuilder/internal/domain"
)

// PageStore implements domain.PageStore using SQLite.
type PageStore struct {
	db *DB
}

func NewPageStore(db *DB) *PageStore {
	return &PageStore{db: db}
}

const pageColumns = `id, site_id, name, slug, sort_order, elements_json, created_at, updated_at`

func scanPage(row interface{ Scan(...any) error }, p *domain.Page) error {
	return row.Scan(&p.ID, &p.SiteID, &p.Name, &p.Slug, &p.Order, &p.ElementsJSON, &p.CreatedAt, &p.UpdatedAt)
}

func (s *PageStore) CreatePage(p *domain.Page) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.ElementsJSON == "" {
		p.ElementsJSON = "[]"
	}
	_, err := s.db.conn.Exec(
		`INSERT INTO pages (`+pageColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.SiteID, p.Name, p.Slug, p.Order, p.ElementsJSON, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert page: %w", err)
	}
	return nil
}

func (s *PageStore) GetPage(id string) (*domain.Page, error) {
	p := &domain.Page{}
	err := scanPage(s.db.conn.QueryRow(`SELECT `+pageColumns+` FROM pages WHERE id = ?`, id), p)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get page %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get page: %w", err)
	}
	return p, nil
}

func (s *PageStore) ListPages(siteID string) ([]domain.Page, error) {
	rows, err := s.db.conn.Query(
		`SELECT `+pageColumns+` FROM pages WHERE site_id = ? ORDER BY sort_order ASC, created_at ASC`, siteID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pages := []domain.Page{}
	for rows.Next() {
		var p domain.Page
		if err := scanPage(rows, &p); err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

// ListAllPages returns every page across sites.
func (s *PageStore) ListAllPages() ([]domain.Page, error) {
	rows, err := s.db.conn.Query(`SELECT ` + pageColumns + ` FROM pages ORDER BY site_id, sort_order ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pages := []domain.Page{}
	for rows.Next() {
		var p domain.Page
		if err := scanPage(rows, &p); err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

func (s *PageStore) UpdatePage(p *domain.Page) error {
	p.UpdatedAt = time.Now()
	res, err := s.db.conn.Exec(
		`UPDATE pages SET name = ?, slug = ?, sort_order = ?, updated_at = ? WHERE id = ?`,
		p.Name, p.Slug, p.Order, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update page: %w", err)
	}
	return requireRow(res, "page", p.ID)
}

// SavePageElements replaces the stored element tree of a page.
func (s *PageStore) SavePageElements(id, elementsJSON string) error {
	res, err := s.db.conn.Exec(
		`UPDATE pages SET elements_json = ?, updated_at = ? WHERE id = ?`,
		elementsJSON, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("save page elements: %w", err)
	}
	return requireRow(res, "page", id)
}

// PageFingerprint returns a cheap change marker for a page: its
// updated_at and the length of its element document.
func (s *PageStore) PageFingerprint(id string) (string, error) {
	var updated time.Time
	var size int
	err := s.db.conn.QueryRow(
		`SELECT updated_at, length(elements_json) FROM pages WHERE id = ?`, id,
	).Scan(&updated, &size)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("page %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d:%d", updated.UnixNano(), size), nil
}

func (s *PageStore) DeletePage(id string) error {
	tx, err := s.db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, q := range []string{
		`DELETE FROM undo_state WHERE page_id = ?`,
		`DELETE FROM undo_nodes WHERE page_id = ?`,
		`DELETE FROM pages WHERE id = ?`,
	} {
		if _, err := tx.Exec(q, id); err != nil {
			return fmt.Errorf("delete page: %w", err)
		}
	}
	return tx.Commit()
}

func (s *PageStore) DeletePagesBySite(siteID string) error {
	tx, err := s.db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, q := range []string{
		`DELETE FROM undo_state WHERE page_id IN (SELECT id FROM pages WHERE site_id = ?)`,
		`DELETE FROM undo_nodes WHERE page_id IN (SELECT id FROM pages WHERE site_id = ?)`,
		`DELETE FROM pages WHERE site_id = ?`,
	} {
		if _, err := tx.Exec(q, siteID); err != nil {
			return fmt.Errorf("delete site pages: %w", err)
		}
	}
	return tx.Commit()
}
