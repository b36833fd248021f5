package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/quantpulse/riskscore/models"
	"gorm.io/gorm"
)

// scoreFields are the non-key columns overwritten on every recompute.
// Selecting them explicitly makes GORM write zero values and NULLs too.
var scoreFields = []string{"vol_20d", "news_sent_7d", "vol_z", "sent_z", "total_score"}

// UpsertRiskScore reconciles one computed row against the persisted series:
// update in place when the (instrument, score_date) key exists, insert
// otherwise. A duplicate-key error on the insert means a concurrent writer
// created the row between our lookup and create; that row carries the same
// computed values, so the loser skips. Returns whether a new row was created.
func (s *Store) UpsertRiskScore(ctx context.Context, row *models.RiskScore) (bool, error) {
	var existing models.RiskScore
	err := s.db.WithContext(ctx).
		Where("instrument = ? AND score_date = ?", row.Instrument, row.ScoreDate).
		First(&existing).Error

	switch {
	case err == nil:
		uerr := s.db.WithContext(ctx).
			Model(&existing).
			Select(scoreFields).
			Updates(models.RiskScore{
				Vol20d:     row.Vol20d,
				NewsSent7d: row.NewsSent7d,
				VolZ:       row.VolZ,
				SentZ:      row.SentZ,
				TotalScore: row.TotalScore,
			}).Error
		if uerr != nil {
			return false, fmt.Errorf("update risk score %s@%s: %w", row.Instrument, row.ScoreDate.Format("2006-01-02"), uerr)
		}
		return false, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		cerr := s.db.WithContext(ctx).Create(row).Error
		if cerr == nil {
			return true, nil
		}
		if errors.Is(cerr, gorm.ErrDuplicatedKey) {
			// Lost the insert race; the other writer owns the row now.
			return false, nil
		}
		return false, fmt.Errorf("insert risk score %s@%s: %w", row.Instrument, row.ScoreDate.Format("2006-01-02"), cerr)

	default:
		return false, fmt.Errorf("lookup risk score %s@%s: %w", row.Instrument, row.ScoreDate.Format("2006-01-02"), err)
	}
}
