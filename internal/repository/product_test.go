package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"warehouse/internal/models"
)

func TestGetByID_ReturnsCreatedRecord(t *testing.T) {
	repo := &ProductRepo{DB: newTestDB(t)}
	ctx := context.Background()

	product := models.Product{Name: "Pen", Quantity: 3, Description: "blue ink"}
	require.NoError(t, repo.Create(ctx, &product))
	require.NotZero(t, product.ID)

	got, err := repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, product.ID, got.ID)
	assert.Equal(t, "Pen", got.Name)
	assert.Equal(t, 3, got.Quantity)
	assert.Equal(t, "blue ink", got.Description)
}

func TestGetByID_NotFound(t *testing.T) {
	repo := &ProductRepo{DB: newTestDB(t)}

	_, err := repo.GetByID(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestUpdate_OverwritesFieldsKeepsID(t *testing.T) {
	repo := &ProductRepo{DB: newTestDB(t)}
	ctx := context.Background()

	product := models.Product{Name: "Pen", Quantity: 3, Description: "blue ink"}
	require.NoError(t, repo.Create(ctx, &product))

	updated := models.Product{ID: product.ID, Name: "Marker", Quantity: 7, Description: "black"}
	require.NoError(t, repo.Update(ctx, &updated))

	got, err := repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, product.ID, got.ID)
	assert.Equal(t, "Marker", got.Name)
	assert.Equal(t, 7, got.Quantity)
	assert.Equal(t, "black", got.Description)
}

func TestUpdate_MissingRecordIsNoOp(t *testing.T) {
	repo := &ProductRepo{DB: newTestDB(t)}
	ctx := context.Background()

	err := repo.Update(ctx, &models.Product{ID: 99, Name: "Ghost"})
	require.NoError(t, err)

	var count int64
	require.NoError(t, repo.DB.Model(&models.Product{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDelete_RemovesRecordAndIgnoresMissing(t *testing.T) {
	repo := &ProductRepo{DB: newTestDB(t)}
	ctx := context.Background()

	product := models.Product{Name: "Pen"}
	require.NoError(t, repo.Create(ctx, &product))

	require.NoError(t, repo.Delete(ctx, product.ID))
	_, err := repo.GetByID(ctx, product.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	require.NoError(t, repo.Delete(ctx, product.ID))
}

func TestSearchByName_CaseInsensitiveContains(t *testing.T) {
	repo := &ProductRepo{DB: newTestDB(t)}
	ctx := context.Background()

	for _, name := range []string{"Pen", "Pencil", "Stapler", "Sharpener"} {
		require.NoError(t, repo.Create(ctx, &models.Product{Name: name}))
	}

	got, err := repo.SearchByName(ctx, "pen")
	require.NoError(t, err)

	names := make([]string, len(got))
	for i, p := range got {
		names[i] = p.Name
	}
	assert.Equal(t, []string{"Pen", "Pencil", "Sharpener"}, names)
}

func TestSearchByName_CappedAtLimitOrderedByName(t *testing.T) {
	repo := &ProductRepo{DB: newTestDB(t)}
	ctx := context.Background()

	for i := 0; i < SearchLimit+5; i++ {
		require.NoError(t, repo.Create(ctx, &models.Product{Name: fmt.Sprintf("Pen %02d", i)}))
	}

	got, err := repo.SearchByName(ctx, "Pen")
	require.NoError(t, err)
	require.Len(t, got, SearchLimit)

	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i-1].Name, got[i].Name)
	}
}

func TestListPage_OrderAndOffset(t *testing.T) {
	repo := &ProductRepo{DB: newTestDB(t)}
	ctx := context.Background()

	for _, name := range []string{"Delta", "Alpha", "Echo", "Bravo", "Charlie", "Foxtrot", "Golf"} {
		require.NoError(t, repo.Create(ctx, &models.Product{Name: name}))
	}

	page1, err := repo.ListPage(ctx, 1, 5, "name", true)
	require.NoError(t, err)
	require.Len(t, page1, 5)
	assert.Equal(t, "Alpha", page1[0].Name)
	assert.Equal(t, "Echo", page1[4].Name)

	page2, err := repo.ListPage(ctx, 2, 5, "name", true)
	require.NoError(t, err)
	require.Len(t, page2, 2)
	assert.Equal(t, "Foxtrot", page2[0].Name)
	assert.Equal(t, "Golf", page2[1].Name)

	desc, err := repo.ListPage(ctx, 1, 5, "name", false)
	require.NoError(t, err)
	require.Len(t, desc, 5)
	assert.Equal(t, "Golf", desc[0].Name)
}

func TestListPage_UnknownSortFieldFallsBackToID(t *testing.T) {
	repo := &ProductRepo{DB: newTestDB(t)}
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Product{Name: "Zulu"}))
	require.NoError(t, repo.Create(ctx, &models.Product{Name: "Alpha"}))

	got, err := repo.ListPage(ctx, 1, 5, "name; DROP TABLE products", true)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Zulu", got[0].Name)

	var count int64
	require.NoError(t, repo.DB.Model(&models.Product{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestSortColumn_AllowList(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "name", SortColumn("Name"))
	assert.Equal(t, "quantity", SortColumn("quantity"))
	assert.Equal(t, "id", SortColumn(""))
	assert.Equal(t, "id", SortColumn("1; DELETE FROM products"))
}
