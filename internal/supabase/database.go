package supabase

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"decky-backend/internal/models"
)

type DatabaseClient struct {
	db *sql.DB
}

func NewDatabaseClient(connectionString string) (*DatabaseClient, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DatabaseClient{db: db}, nil
}

func (d *DatabaseClient) CreateImageAsset(userID, path string, extras map[string]interface{}) (*models.ImageAsset, error) {
	extrasJSON, _ := json.Marshal(extras)

	var asset models.ImageAsset
	err := d.db.QueryRow(`
		INSERT INTO image_assets (id, user_id, path, extras)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, path, extras, created_at
	`, uuid.New(), userID, path, extrasJSON).Scan(
		&asset.ID, &asset.UserID, &asset.Path, &asset.Extras, &asset.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create image asset: %w", err)
	}

	return &asset, nil
}

func (d *DatabaseClient) ListImageAssets(userID string) ([]models.ImageAsset, error) {
	rows, err := d.db.Query(`
		SELECT id, user_id, path, extras, created_at
		FROM image_assets
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list image assets: %w", err)
	}
	defer rows.Close()

	var assets []models.ImageAsset
	for rows.Next() {
		var asset models.ImageAsset
		if err := rows.Scan(&asset.ID, &asset.UserID, &asset.Path, &asset.Extras, &asset.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan image asset: %w", err)
		}
		assets = append(assets, asset)
	}

	return assets, nil
}

func (d *DatabaseClient) CreatePresentation(userID, title string, content map[string]interface{}) (*models.Presentation, error) {
	contentJSON, _ := json.Marshal(content)

	var p models.Presentation
	err := d.db.QueryRow(`
		INSERT INTO presentations (id, user_id, title, content)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, title, content, created_at, updated_at
	`, uuid.New(), userID, title, contentJSON).Scan(
		&p.ID, &p.UserID, &p.Title, &p.Content, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create presentation: %w", err)
	}

	return &p, nil
}

// GetPresentation filters by owner: a presentation that exists but belongs
// to another user is indistinguishable from a missing one.
func (d *DatabaseClient) GetPresentation(presentationID uuid.UUID, userID string) (*models.Presentation, error) {
	var p models.Presentation
	err := d.db.QueryRow(`
		SELECT id, user_id, title, content, created_at, updated_at
		FROM presentations
		WHERE id = $1 AND user_id = $2
	`, presentationID, userID).Scan(
		&p.ID, &p.UserID, &p.Title, &p.Content, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get presentation: %w", err)
	}

	return &p, nil
}

func (d *DatabaseClient) ListPresentations(userID string) ([]models.Presentation, error) {
	rows, err := d.db.Query(`
		SELECT id, user_id, title, content, created_at, updated_at
		FROM presentations
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list presentations: %w", err)
	}
	defer rows.Close()

	var presentations []models.Presentation
	for rows.Next() {
		var p models.Presentation
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.Content, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan presentation: %w", err)
		}
		presentations = append(presentations, p)
	}

	return presentations, nil
}

func (d *DatabaseClient) DeletePresentation(presentationID uuid.UUID, userID string) error {
	_, err := d.db.Exec(`
		DELETE FROM presentations
		WHERE id = $1 AND user_id = $2
	`, presentationID, userID)
	return err
}

func (d *DatabaseClient) Close() error {
	return d.db.Close()
}
