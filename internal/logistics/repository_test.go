package logistics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newSQLiteRepository(t *testing.T) Repository {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	repo, err := NewGORMRepository(db)
	require.NoError(t, err)
	return repo
}

func repositories(t *testing.T) map[string]Repository {
	return map[string]Repository{
		"memory": NewMemoryRepository(),
		"gorm":   newSQLiteRepository(t),
	}
}

func sampleNewRequest(material string) NewRequest {
	return NewRequest{
		AnnouncementID: "1",
		Material:       material,
		Quantity:       500,
		Unit:           "ədəd",
		FromLocation:   "Ağdam",
		ToLocation:     "Gəncə",
		OfferedPrice:   500,
	}
}

func TestRepository_Create_ForcesOpenStatus(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			created, err := repo.Create(context.Background(), sampleNewRequest("Beton Bloklar M200"))
			require.NoError(t, err)

			assert.NotEmpty(t, created.ID)
			assert.Equal(t, StatusOpen, created.Status)
			assert.False(t, created.CreatedAt.IsZero())
			assert.Equal(t, "Gəncə", created.ToLocation)
			assert.Equal(t, 500.0, created.OfferedPrice)
		})
	}
}

func TestRepository_FindAll_NewestFirst(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			var ids []string
			for _, m := range []string{"a", "b", "c"} {
				created, err := repo.Create(ctx, sampleNewRequest(m))
				require.NoError(t, err)
				ids = append(ids, created.ID)
				time.Sleep(2 * time.Millisecond)
			}

			all, err := repo.FindAll(ctx)
			require.NoError(t, err)
			require.Len(t, all, 3)
			assert.Equal(t, []string{ids[2], ids[1], ids[0]}, []string{all[0].ID, all[1].ID, all[2].ID})
		})
	}
}

func TestRepository_Seed(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, repo.(Seeder).Seed(ctx, DemoRequests()))
			require.NoError(t, repo.(Seeder).Seed(ctx, DemoRequests()))

			all, err := repo.FindAll(ctx)
			require.NoError(t, err)
			require.Len(t, all, 5)

			var ids []string
			for _, r := range all {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, []string{"log5", "log2", "log1", "log3", "log4"}, ids)
			assert.Equal(t, StatusAccepted, all[4].Status)
		})
	}
}

func TestStatus_Valid(t *testing.T) {
	assert.True(t, StatusOpen.Valid())
	assert.True(t, StatusAccepted.Valid())
	assert.True(t, StatusCompleted.Valid())
	assert.False(t, Status("cancelled").Valid())
}
