package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/prajapatkavitha/restaurant-management-project/internal/model"
)

// SalesReportRepository stores the nightly report artifacts. Upsert keyed by
// date so a re-run of the job for the same day overwrites instead of failing.
type SalesReportRepository interface {
	Upsert(ctx context.Context, rep *model.SalesReport) error
	FindByDate(ctx context.Context, date string) (*model.SalesReport, error)
	List(ctx context.Context, limit int) ([]model.SalesReport, error)
}

type salesReportRepo struct{ db *gorm.DB }

func NewSalesReportRepository(db *gorm.DB) SalesReportRepository {
	return &salesReportRepo{db: db}
}

func (r *salesReportRepo) Upsert(ctx context.Context, rep *model.SalesReport) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"total_orders", "total_revenue", "top_dish", "pdf_path",
		}),
	}).Create(rep).Error
}

func (r *salesReportRepo) FindByDate(ctx context.Context, date string) (*model.SalesReport, error) {
	var rep model.SalesReport
	err := r.db.WithContext(ctx).Where("date = ?", date).First(&rep).Error
	if err != nil {
		return nil, err
	}
	return &rep, nil
}

func (r *salesReportRepo) List(ctx context.Context, limit int) ([]model.SalesReport, error) {
	var list []model.SalesReport
	err := r.db.WithContext(ctx).Order("date desc").Limit(limit).Find(&list).Error
	return list, err
}
