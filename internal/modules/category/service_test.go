package category

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/lumen-studio/core/internal/database"
	"github.com/lumen-studio/core/internal/models"
	"github.com/lumen-studio/core/internal/modules/audit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:category_test_%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return NewService(db, audit.NewRecorder(db, zap.NewNop())), db
}

func TestCreateRejectsDuplicates(t *testing.T) {
	svc, _ := newTestService(t)

	cat, err := svc.Create("alice", &CreateCategoryDTO{Name: "Web"})
	require.NoError(t, err)
	assert.Equal(t, "Web", cat.Name)

	_, err = svc.Create("alice", &CreateCategoryDTO{Name: "Web"})
	assert.ErrorIs(t, err, ErrNameTaken)
}

func TestCreateSurfacesStoreErrors(t *testing.T) {
	svc, db := newTestService(t)

	require.NoError(t, db.Migrator().DropTable(&models.Category{}))

	_, err := svc.Create("alice", &CreateCategoryDTO{Name: "Web"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNameTaken, "a failed duplicate check must not read as no duplicate")
}

func TestListCountsReferences(t *testing.T) {
	svc, db := newTestService(t)

	web, err := svc.Create("alice", &CreateCategoryDTO{Name: "Web"})
	require.NoError(t, err)
	_, err = svc.Create("alice", &CreateCategoryDTO{Name: "Empty"})
	require.NoError(t, err)

	require.NoError(t, db.Create(&models.PortfolioItem{
		Title: "a", CategoryID: web.ID, CategoryName: web.Name, CoverImageURL: "x",
	}).Error)
	require.NoError(t, db.Create(&models.PortfolioItem{
		Title: "b", CategoryID: web.ID, CategoryName: web.Name, CoverImageURL: "x", IsDeleted: true,
	}).Error)

	cats, err := svc.List()
	require.NoError(t, err)
	require.Len(t, cats, 2)

	counts := map[string]int64{}
	for _, c := range cats {
		counts[c.Name] = c.ItemCount
	}
	assert.Equal(t, int64(2), counts["Web"], "archived items count as references")
	assert.Zero(t, counts["Empty"])
}

func TestRenameSyncsItemNames(t *testing.T) {
	svc, db := newTestService(t)

	cat, err := svc.Create("alice", &CreateCategoryDTO{Name: "Web"})
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.PortfolioItem{
		Title: "a", CategoryID: cat.ID, CategoryName: "Web", CoverImageURL: "x",
	}).Error)

	name := "Web Design"
	updated, err := svc.Update("alice", cat.ID, &UpdateCategoryDTO{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Web Design", updated.Name)

	var item models.PortfolioItem
	require.NoError(t, db.First(&item).Error)
	assert.Equal(t, "Web Design", item.CategoryName, "denormalized names are re-synced on rename")
}

func TestRenameToExistingNameFails(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create("alice", &CreateCategoryDTO{Name: "Web"})
	require.NoError(t, err)
	cat, err := svc.Create("alice", &CreateCategoryDTO{Name: "Branding"})
	require.NoError(t, err)

	name := "Web"
	_, err = svc.Update("alice", cat.ID, &UpdateCategoryDTO{Name: &name})
	assert.ErrorIs(t, err, ErrNameTaken)

	same := "Branding"
	updated, err := svc.Update("alice", cat.ID, &UpdateCategoryDTO{Name: &same})
	require.NoError(t, err, "renaming to the current name is a no-op")
	assert.Equal(t, "Branding", updated.Name)
}

func TestDeleteBlockedWhileReferenced(t *testing.T) {
	svc, db := newTestService(t)

	cat, err := svc.Create("alice", &CreateCategoryDTO{Name: "Web"})
	require.NoError(t, err)
	item := models.PortfolioItem{
		Title: "a", CategoryID: cat.ID, CategoryName: cat.Name, CoverImageURL: "x", IsDeleted: true,
	}
	require.NoError(t, db.Create(&item).Error)

	err = svc.Delete("alice", cat.ID)
	var inUse *InUseError
	require.ErrorAs(t, err, &inUse, "even archived references block deletion")
	assert.Equal(t, int64(1), inUse.Count)

	require.NoError(t, db.Delete(&models.PortfolioItem{}, "id = ?", item.ID).Error)
	require.NoError(t, svc.Delete("alice", cat.ID))

	got, err := svc.GetByID(cat.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDeleteUnknownCategory(t *testing.T) {
	svc, _ := newTestService(t)
	assert.ErrorIs(t, svc.Delete("alice", 999), gorm.ErrRecordNotFound)
}

func TestMutationsAreAudited(t *testing.T) {
	svc, db := newTestService(t)

	cat, err := svc.Create("alice", &CreateCategoryDTO{Name: "Web"})
	require.NoError(t, err)
	name := "Web Design"
	_, err = svc.Update("alice", cat.ID, &UpdateCategoryDTO{Name: &name})
	require.NoError(t, err)
	require.NoError(t, svc.Delete("alice", cat.ID))

	var entries []models.AuditLogEntry
	require.NoError(t, db.Order("id ASC").Find(&entries).Error)
	require.Len(t, entries, 3)
	assert.Equal(t, models.AuditCreate, entries[0].Action)
	assert.Equal(t, models.AuditUpdate, entries[1].Action)
	assert.Equal(t, models.AuditDelete, entries[2].Action)
	for _, e := range entries {
		assert.Equal(t, "alice", e.Actor)
		assert.Equal(t, "categories", e.TargetTable)
		assert.Equal(t, cat.ID, e.RecordID)
	}
}
