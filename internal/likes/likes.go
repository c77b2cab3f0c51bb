package likes

import (
	"errors"

	"cafe_directory/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// ErrNotFound is returned by Unlike when no like exists for the pair
var ErrNotFound = errors.New("like not found")

// IsLiked reports whether the user has liked the cafe. Never mutates state.
func IsLiked(db *gorm.DB, userID, cafeID uint) (bool, error) {
	var count int64
	err := db.Model(&domain.Like{}).
		Where("user_id = ? AND cafe_id = ?", userID, cafeID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Like records that the user likes the cafe. Idempotent: liking an
// already-liked cafe is a no-op, never an error and never a second row.
// The composite unique index backs this up against concurrent inserts.
func Like(db *gorm.DB, userID, cafeID uint) (*domain.Like, error) {
	like := domain.Like{UserID: userID, CafeID: cafeID}
	err := db.Transaction(func(tx *gorm.DB) error {
		return tx.Where("user_id = ? AND cafe_id = ?", userID, cafeID).
			FirstOrCreate(&like).Error
	})
	if err != nil {
		// A concurrent insert between lookup and create trips the unique
		// index; that still means the pair is liked.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if err := db.Where("user_id = ? AND cafe_id = ?", userID, cafeID).First(&like).Error; err != nil {
				return nil, err
			}
			return &like, nil
		}
		return nil, err
	}
	return &like, nil
}

// Unlike removes the like for the pair, failing with ErrNotFound when the
// pair was never liked.
func Unlike(db *gorm.DB, userID, cafeID uint) error {
	res := db.Where("user_id = ? AND cafe_id = ?", userID, cafeID).Delete(&domain.Like{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListLiked returns the cafes the user has liked, newest first
func ListLiked(db *gorm.DB, userID uint) ([]domain.Cafe, error) {
	var rows []domain.Like
	err := db.Preload("Cafe").Preload("Cafe.City").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	cafes := make([]domain.Cafe, len(rows))
	for i, row := range rows {
		cafes[i] = row.Cafe
	}
	return cafes, nil
}
