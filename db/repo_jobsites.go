package db

import (
	"context"

	"toolify/models"
)

func (r *Repo) CreateJobSite(ctx context.Context, js *models.JobSite) error {
	return r.DB.WithContext(ctx).Create(js).Error
}

func (r *Repo) ListJobSites(ctx context.Context) ([]models.JobSite, error) {
	var sites []models.JobSite
	err := r.DB.WithContext(ctx).Order("name ASC").Find(&sites).Error
	return sites, err
}

func (r *Repo) FindJobSiteByID(ctx context.Context, id string) (*models.JobSite, error) {
	var js models.JobSite
	if err := r.DB.WithContext(ctx).First(&js, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &js, nil
}

func (r *Repo) UpdateJobSite(ctx context.Context, id string, fields map[string]any) error {
	allowed := map[string]bool{"name": true, "location": true, "supervisor": true}
	for k := range fields {
		if !allowed[k] {
			delete(fields, k)
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Model(&models.JobSite{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *Repo) DeleteJobSite(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Delete(&models.JobSite{}, "id = ?", id).Error
}
