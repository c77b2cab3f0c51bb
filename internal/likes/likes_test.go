package likes

import (
	"testing"

	"cafe_directory/internal/auth"
	"cafe_directory/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory database seeded with a user, a city and
// two cafes
func newTestDB(t *testing.T) (*gorm.DB, *domain.User, *domain.Cafe, *domain.Cafe) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.City{}, &domain.Cafe{}, &domain.User{}, &domain.Like{}))

	user, err := auth.Register(db, auth.RegisterParams{
		Username:  "alice",
		Email:     "alice@test.com",
		FirstName: "Alice",
		LastName:  "Tester",
		Password:  "secret1",
	})
	require.NoError(t, err)

	require.NoError(t, db.Create(&domain.City{Code: "sf", Name: "San Francisco", State: "CA"}).Error)
	blueBottle := domain.Cafe{
		Name: "Blue Bottle", Description: "Third wave", URL: "https://bluebottle.com/",
		Address: "66 Mint St", CityCode: "sf", ImageURL: domain.DefaultImageURL,
	}
	require.NoError(t, db.Create(&blueBottle).Error)
	ritual := domain.Cafe{
		Name: "Ritual", Description: "Roaster", URL: "https://ritual.com/",
		Address: "1026 Valencia St", CityCode: "sf", ImageURL: domain.DefaultImageURL,
	}
	require.NoError(t, db.Create(&ritual).Error)
	return db, user, &blueBottle, &ritual
}

func likeCount(t *testing.T, db *gorm.DB, userID, cafeID uint) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&domain.Like{}).
		Where("user_id = ? AND cafe_id = ?", userID, cafeID).
		Count(&count).Error)
	return count
}

func TestLikeLifecycle(t *testing.T) {
	db, user, cafe, _ := newTestDB(t)

	// New pairs start not liked
	liked, err := IsLiked(db, user.ID, cafe.ID)
	require.NoError(t, err)
	require.False(t, liked)

	// like -> isLiked is true
	rec, err := Like(db, user.ID, cafe.ID)
	require.NoError(t, err)
	require.Equal(t, user.ID, rec.UserID)
	require.Equal(t, cafe.ID, rec.CafeID)

	liked, err = IsLiked(db, user.ID, cafe.ID)
	require.NoError(t, err)
	require.True(t, liked)

	// unlike -> isLiked is false
	require.NoError(t, Unlike(db, user.ID, cafe.ID))
	liked, err = IsLiked(db, user.ID, cafe.ID)
	require.NoError(t, err)
	require.False(t, liked)

	// Second unlike on a pair back in NotLiked fails
	require.ErrorIs(t, Unlike(db, user.ID, cafe.ID), ErrNotFound)
}

func TestLikeIdempotent(t *testing.T) {
	db, user, cafe, _ := newTestDB(t)

	first, err := Like(db, user.ID, cafe.ID)
	require.NoError(t, err)

	// Liking again does not raise and does not create a second row
	second, err := Like(db, user.ID, cafe.ID)
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.EqualValues(t, 1, likeCount(t, db, user.ID, cafe.ID))
}

func TestUnlikeNeverLiked(t *testing.T) {
	db, user, cafe, _ := newTestDB(t)
	require.ErrorIs(t, Unlike(db, user.ID, cafe.ID), ErrNotFound)
}

func TestListLiked(t *testing.T) {
	db, user, blueBottle, ritual := newTestDB(t)

	_, err := Like(db, user.ID, blueBottle.ID)
	require.NoError(t, err)
	_, err = Like(db, user.ID, ritual.ID)
	require.NoError(t, err)

	cafes, err := ListLiked(db, user.ID)
	require.NoError(t, err)
	require.Len(t, cafes, 2)
	// City preloaded for the "City, ST" display string
	require.Equal(t, "San Francisco, CA", cafes[0].CityState())

	require.NoError(t, Unlike(db, user.ID, blueBottle.ID))
	cafes, err = ListLiked(db, user.ID)
	require.NoError(t, err)
	require.Len(t, cafes, 1)
	require.Equal(t, ritual.ID, cafes[0].ID)
}
