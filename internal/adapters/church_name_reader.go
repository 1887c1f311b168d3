package adapters

import (
	"context"

	churchrepo "membercare_backend/internal/churches/repository"
	"membercare_backend/internal/notification"

	"github.com/google/uuid"
)

// ChurchNameReader adapts the churches repository to the notification
// module's lookup interface.
type ChurchNameReader struct {
	repo *churchrepo.Repository
}

func NewChurchNameReader(repo *churchrepo.Repository) *ChurchNameReader {
	return &ChurchNameReader{repo: repo}
}

func (r *ChurchNameReader) ChurchName(ctx context.Context, churchID uuid.UUID) (string, error) {
	church, err := r.repo.GetByID(ctx, churchID)
	if err != nil {
		return "", err
	}
	return church.Name, nil
}

var _ notification.ChurchNameReader = (*ChurchNameReader)(nil)
