package repository

import (
	"context"

	"juicebox/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TagRepository defines persistence operations for tags. Tag creation has no
// standalone entry point; tags come into existence through post mutations,
// which share the ensureTags upsert inside their transactions.
type TagRepository interface {
	List(ctx context.Context) ([]models.Tag, error)
}

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository returns a new TagRepository implementation.
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

// ensureTags idempotently creates the named tags and returns the canonical
// rows, ids included, whether or not they pre-existed: insert all names
// ignoring conflicts on the unique name column, then re-select the full set.
func ensureTags(db *gorm.DB, names []string) ([]models.Tag, error) {
	unique := dedupe(names)
	if len(unique) == 0 {
		return []models.Tag{}, nil
	}

	rows := make([]models.Tag, 0, len(unique))
	for _, name := range unique {
		rows = append(rows, models.Tag{Name: name})
	}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&rows).Error; err != nil {
		return nil, err
	}

	var tags []models.Tag
	if err := db.Where("name IN ?", unique).Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

func (r *tagRepository) List(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	if err := r.db.WithContext(ctx).Find(&tags).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return tags, nil
}
