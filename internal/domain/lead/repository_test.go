package lead

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	db, err := gorm.Open(gormsqlite.New(gormsqlite.Config{
		DriverName: "sqlite",
		DSN:        ":memory:",
	}), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&Lead{}))
	return NewRepository(db)
}

func insertLead(t *testing.T, repo *Repository, name string) *Lead {
	t.Helper()
	start := "2025-03-01"
	l, err := repo.Insert(context.Background(), &Payload{
		Name:            name,
		Email:           name + "@x.com",
		CampaignOptions: []string{"crm", "paid-media"},
		Budget:          50000,
		MainObjective:   "awareness",
		StartDate:       &start,
	})
	require.NoError(t, err)
	return l
}

func TestRepository_InsertAndGet(t *testing.T) {
	repo := newTestRepository(t)
	created := insertLead(t, repo, "ana")

	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, StatusPending, created.Status)

	got, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana", got.Name)
	assert.Equal(t, []string{"crm", "paid-media"}, got.CampaignOptions)
	require.NotNil(t, got.StartDate)
	assert.Equal(t, "2025-03-01", got.StartDate.Format("2006-01-02"))
	assert.Nil(t, got.EndDate)
	assert.Nil(t, got.Products)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrLeadNotFound)
}

func TestRepository_ListNewestFirst(t *testing.T) {
	repo := newTestRepository(t)
	first := insertLead(t, repo, "first")
	time.Sleep(5 * time.Millisecond)
	second := insertLead(t, repo, "second")

	all, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)
	assert.Equal(t, first.ID, all[1].ID)
}

func TestRepository_ListFilterAndPage(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	a := insertLead(t, repo, "a")
	insertLead(t, repo, "b")
	insertLead(t, repo, "c")
	require.NoError(t, repo.UpdateStatus(ctx, a.ID, StatusDone))

	pending := StatusPending
	leads, total, err := repo.List(ctx, Filter{Status: &pending, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, leads, 1)
	assert.Equal(t, StatusPending, leads[0].Status)

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[StatusPending])
	assert.Equal(t, int64(1), counts[StatusDone])
	assert.Equal(t, int64(0), counts[StatusCancelled])
}

func TestRepository_UpdateStatus_NotFound(t *testing.T) {
	repo := newTestRepository(t)

	err := repo.UpdateStatus(context.Background(), uuid.New(), StatusDone)
	assert.ErrorIs(t, err, ErrLeadNotFound)
}
