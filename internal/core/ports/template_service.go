package ports

import "context"

// TemplateService defines use-case operations for workout templates.
type TemplateService interface {
	List(ctx context.Context, userID int64) ([]TemplateDetail, error)
	Get(ctx context.Context, userID, templateID int64) (*TemplateDetail, error)
	Create(ctx context.Context, userID int64, in CreateTemplateInput) (*TemplateDetail, error)
	Delete(ctx context.Context, userID, templateID int64) error
}
