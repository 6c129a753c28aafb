package services

import (
	"context"
	"errors"
	"math"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rafaelsantos7520/draymodas/cache"
	"github.com/rafaelsantos7520/draymodas/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogSearch_CategoryAndMinPrice(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCatalogService(db, nil, 0)
	c1 := createCategory(t, db, "Vestidos")
	c2 := createCategory(t, db, "Blusas")

	createProduct(t, db, productSeed{Name: "P1", Price: "50", Category: c1})
	p2 := createProduct(t, db, productSeed{Name: "P2", Price: "150", Category: c1, Minute: 1})
	createProduct(t, db, productSeed{Name: "P3", Price: "80", Category: c2, Minute: 2})

	page, err := svc.Search(context.Background(), models.ProductFilter{
		CategoryID: &c1.ID,
		MinPrice:   decPtr("60"),
	})
	require.NoError(t, err)

	require.Len(t, page.Data, 1)
	assert.Equal(t, p2.ID, page.Data[0].ID)
	assert.Equal(t, int64(1), page.Meta.Total)
	assert.Equal(t, 1, page.Meta.TotalPages)
	assert.False(t, page.Meta.HasNextPage)
}

func TestCatalogSearch_SecondPageByPriceAsc(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCatalogService(db, nil, 0)
	c := createCategory(t, db, "Vestidos")

	createProduct(t, db, productSeed{Name: "caro", Price: "300", Category: c})
	createProduct(t, db, productSeed{Name: "barato", Price: "10", Category: c, Minute: 1})
	middle := createProduct(t, db, productSeed{Name: "medio", Price: "99.90", Category: c, Minute: 2})

	page, err := svc.Search(context.Background(), models.ProductFilter{
		Sort:    models.SortPriceAsc,
		Page:    2,
		PerPage: 1,
	})
	require.NoError(t, err)

	require.Len(t, page.Data, 1)
	assert.Equal(t, middle.ID, page.Data[0].ID)
	assert.True(t, page.Data[0].Price.Equal(dec("99.9")))
	assert.Equal(t, models.Pagination{
		Total:       3,
		CurrentPage: 2,
		PerPage:     1,
		TotalPages:  3,
		HasNextPage: true,
	}, page.Meta)
}

func TestCatalogSearch_PagesCoverFilteredSetExactlyOnce(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCatalogService(db, nil, 0)
	c := createCategory(t, db, "Vestidos")

	// repeated prices force the id tiebreaker
	prices := []string{"40", "40", "40", "75", "75", "120", "10"}
	all := make(map[uuid.UUID]bool)
	for i, price := range prices {
		p := createProduct(t, db, productSeed{Name: "vestido", Price: price, Category: c, Minute: i % 2})
		all[p.ID] = true
	}

	for _, sort := range []models.SortOrder{models.SortRelevance, models.SortPriceAsc, models.SortPriceDesc} {
		seen := make(map[uuid.UUID]bool)
		filter := models.ProductFilter{Sort: sort, PerPage: 3}

		first, err := svc.Search(context.Background(), filter)
		require.NoError(t, err)
		require.Equal(t, int64(len(prices)), first.Meta.Total)
		require.Equal(t, 3, first.Meta.TotalPages)

		for page := 1; page <= first.Meta.TotalPages; page++ {
			filter.Page = page
			result, err := svc.Search(context.Background(), filter)
			require.NoError(t, err)
			for _, p := range result.Data {
				assert.False(t, seen[p.ID], "product %s repeated across pages for sort %s", p.ID, sort)
				seen[p.ID] = true
			}
			assert.Equal(t, page < 3, result.Meta.HasNextPage)
		}
		assert.Equal(t, all, seen, "sort %s", sort)
	}
}

func TestCatalogSearch_PriceDescIsReverseOfPriceAsc(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCatalogService(db, nil, 0)
	c := createCategory(t, db, "Saias")

	for i, price := range []string{"89.90", "15", "89.90", "230", "15"} {
		createProduct(t, db, productSeed{Name: "saia", Price: price, Category: c, Minute: i})
	}

	asc, err := svc.Search(context.Background(), models.ProductFilter{Sort: models.SortPriceAsc})
	require.NoError(t, err)
	desc, err := svc.Search(context.Background(), models.ProductFilter{Sort: models.SortPriceDesc})
	require.NoError(t, err)

	ascIDs := productIDs(asc.Data)
	descIDs := productIDs(desc.Data)
	require.Len(t, descIDs, len(ascIDs))
	for i := range ascIDs {
		assert.Equal(t, ascIDs[i], descIDs[len(descIDs)-1-i])
	}
	for i := 1; i < len(asc.Data); i++ {
		assert.True(t, asc.Data[i-1].Price.LessThanOrEqual(asc.Data[i].Price))
	}
}

func TestCatalogSearch_RelevanceIsNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCatalogService(db, nil, 0)
	c := createCategory(t, db, "Blusas")

	createProduct(t, db, productSeed{Name: "antiga", Price: "10", Category: c, Minute: 0})
	createProduct(t, db, productSeed{Name: "nova", Price: "10", Category: c, Minute: 20})
	createProduct(t, db, productSeed{Name: "meio", Price: "10", Category: c, Minute: 10})

	page, err := svc.Search(context.Background(), models.ProductFilter{Sort: "relevance"})
	require.NoError(t, err)
	assert.Equal(t, []string{"nova", "meio", "antiga"}, productNames(page.Data))
}

func TestCatalogSearch_SizesMatchAnyOfTheSet(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCatalogService(db, nil, 0)
	c := createCategory(t, db, "Vestidos")
	p, m, g := createSize(t, db, "P"), createSize(t, db, "M"), createSize(t, db, "G")

	onlyP := createProduct(t, db, productSeed{Name: "so P", Price: "10", Category: c, Sizes: []models.Size{p}})
	onlyM := createProduct(t, db, productSeed{Name: "so M", Price: "20", Category: c, Sizes: []models.Size{m}})
	both := createProduct(t, db, productSeed{Name: "P e M", Price: "30", Category: c, Sizes: []models.Size{p, m}})
	createProduct(t, db, productSeed{Name: "so G", Price: "40", Category: c, Sizes: []models.Size{g}})

	page, err := svc.Search(context.Background(), models.ProductFilter{
		SizeIDs: []uuid.UUID{p.ID, m.ID},
		Sort:    models.SortPriceAsc,
	})
	require.NoError(t, err)

	assert.Equal(t, []uuid.UUID{onlyP.ID, onlyM.ID, both.ID}, productIDs(page.Data))
	assert.Equal(t, int64(3), page.Meta.Total, "a product with both sizes is counted once")
}

func TestCatalogSearch_UnknownSizeMatchesNothing(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCatalogService(db, nil, 0)
	c := createCategory(t, db, "Vestidos")
	createProduct(t, db, productSeed{Name: "vestido", Price: "10", Category: c, Sizes: []models.Size{createSize(t, db, "M")}})

	page, err := svc.Search(context.Background(), models.ProductFilter{SizeIDs: []uuid.UUID{uuid.New()}})
	require.NoError(t, err)
	assert.Empty(t, page.Data)
	assert.Equal(t, int64(0), page.Meta.Total)
}

func TestCatalogSearch_MinAboveMaxIsEmptyNotError(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCatalogService(db, nil, 0)
	c := createCategory(t, db, "Vestidos")
	createProduct(t, db, productSeed{Name: "vestido", Price: "75", Category: c})

	page, err := svc.Search(context.Background(), models.ProductFilter{
		MinPrice: decPtr("100"),
		MaxPrice: decPtr("50"),
	})
	require.NoError(t, err)
	assert.NotNil(t, page.Data)
	assert.Empty(t, page.Data)
	assert.Equal(t, int64(0), page.Meta.Total)
	assert.Equal(t, 0, page.Meta.TotalPages)
	assert.False(t, page.Meta.HasNextPage)
}

func TestCatalogSearch_PriceBoundsAreInclusive(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCatalogService(db, nil, 0)
	c := createCategory(t, db, "Vestidos")
	createProduct(t, db, productSeed{Name: "a", Price: "50", Category: c})
	createProduct(t, db, productSeed{Name: "b", Price: "99.90", Category: c})
	createProduct(t, db, productSeed{Name: "c", Price: "100", Category: c})

	page, err := svc.Search(context.Background(), models.ProductFilter{
		MinPrice: decPtr("50"),
		MaxPrice: decPtr("99.90"),
		Sort:     models.SortPriceAsc,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, productNames(page.Data))
}

func TestCatalogSearch_SearchIsCaseInsensitiveOnNameOnly(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCatalogService(db, nil, 0)
	c := createCategory(t, db, "Vestidos")

	createProduct(t, db, productSeed{Name: "Vestido Floral", Price: "10", Category: c})
	createProduct(t, db, productSeed{Name: "Saia Jeans", Price: "20", Category: c})
	// description mentions "floral" but the name does not
	other := createProduct(t, db, productSeed{Name: "Blusa Lisa", Price: "30", Category: c})
	require.NoError(t, db.Model(&other).Update("description", "estampa floral").Error)

	page, err := svc.Search(context.Background(), models.ProductFilter{Search: "  FLORAL "})
	require.NoError(t, err)
	assert.Equal(t, []string{"Vestido Floral"}, productNames(page.Data))
}

func TestCatalogSearch_SearchFoldsAccentedTerm(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCatalogService(db, nil, 0)
	c := createCategory(t, db, "Calcas")

	createProduct(t, db, productSeed{Name: "Calça Jeans", Price: "10", Category: c})
	createProduct(t, db, productSeed{Name: "Calca Sarja", Price: "20", Category: c})

	page, err := svc.Search(context.Background(), models.ProductFilter{Search: "CALÇA"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Calça Jeans"}, productNames(page.Data))
}

func TestCatalogSearch_SearchEscapesWildcards(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCatalogService(db, nil, 0)
	c := createCategory(t, db, "Promo")

	createProduct(t, db, productSeed{Name: "Camisa 50% off", Price: "10", Category: c})
	createProduct(t, db, productSeed{Name: "Camisa 500 fios", Price: "20", Category: c})
	createProduct(t, db, productSeed{Name: "Kit_basico", Price: "30", Category: c})
	createProduct(t, db, productSeed{Name: "Kit basico", Price: "40", Category: c})

	page, err := svc.Search(context.Background(), models.ProductFilter{Search: "50%"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Camisa 50% off"}, productNames(page.Data))

	page, err = svc.Search(context.Background(), models.ProductFilter{Search: "kit_"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Kit_basico"}, productNames(page.Data))
}

func TestCatalogSearch_UnknownCategoryIsNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCatalogService(db, nil, 0)

	missing := uuid.New()
	_, err := svc.Search(context.Background(), models.ProductFilter{CategoryID: &missing})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalogSearch_EmptyCategoryIsSuccess(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCatalogService(db, nil, 0)
	c := createCategory(t, db, "Vazia")

	page, err := svc.Search(context.Background(), models.ProductFilter{CategoryID: &c.ID})
	require.NoError(t, err)
	assert.Empty(t, page.Data)
	assert.Equal(t, int64(0), page.Meta.Total)
}

func TestCatalogSearch_OnlyActive(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCatalogService(db, nil, 0)
	c := createCategory(t, db, "Vestidos")
	createProduct(t, db, productSeed{Name: "ativo", Price: "10", Category: c})
	createProduct(t, db, productSeed{Name: "inativo", Price: "10", Category: c, Inactive: true, Minute: 1})

	storefront, err := svc.Search(context.Background(), models.ProductFilter{OnlyActive: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"ativo"}, productNames(storefront.Data))

	admin, err := svc.Search(context.Background(), models.ProductFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), admin.Meta.Total)
}

func TestCatalogSearch_ExpandsRelations(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCatalogService(db, nil, 0)
	c := createCategory(t, db, "Vestidos")
	m, p := createSize(t, db, "M"), createSize(t, db, "P")
	product := createProduct(t, db, productSeed{Name: "vestido", Price: "10", Category: c, Sizes: []models.Size{p, m}})

	second := models.Image{URL: "https://cdn.example.com/2.jpg", ProductID: product.ID, CreatedAt: baseTime.Add(time.Hour)}
	first := models.Image{URL: "https://cdn.example.com/1.jpg", ProductID: product.ID, CreatedAt: baseTime}
	require.NoError(t, db.Create(&second).Error)
	require.NoError(t, db.Create(&first).Error)

	page, err := svc.Search(context.Background(), models.ProductFilter{})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)

	got := page.Data[0]
	require.NotNil(t, got.Category)
	assert.Equal(t, "Vestidos", got.Category.Name)
	require.Len(t, got.Images, 2)
	assert.Equal(t, first.ID, got.Images[0].ID)
	assert.Equal(t, second.ID, got.Images[1].ID)
	require.Len(t, got.Sizes, 2)
	assert.Equal(t, "M", got.Sizes[0].Name)
	assert.Equal(t, "P", got.Sizes[1].Name)
}

func TestCatalogSearch_PageBeyondEndIsEmpty(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCatalogService(db, nil, 0)
	c := createCategory(t, db, "Vestidos")
	createProduct(t, db, productSeed{Name: "vestido", Price: "10", Category: c})

	page, err := svc.Search(context.Background(), models.ProductFilter{Page: 5})
	require.NoError(t, err)
	assert.Empty(t, page.Data)
	assert.Equal(t, int64(1), page.Meta.Total)
	assert.Equal(t, 5, page.Meta.CurrentPage)
	assert.False(t, page.Meta.HasNextPage)
}

func TestCatalogSearch_HugePageIsRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCatalogService(db, nil, 0)
	c := createCategory(t, db, "Vestidos")
	createProduct(t, db, productSeed{Name: "vestido", Price: "10", Category: c})

	_, err := svc.Search(context.Background(), models.ProductFilter{Page: 100_000_000_000_000_000, PerPage: 100})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "page", verr.Field)

	// the last page whose offset still fits is served, empty
	page, err := svc.Search(context.Background(), models.ProductFilter{Page: math.MaxInt / 100, PerPage: 100})
	require.NoError(t, err)
	assert.Empty(t, page.Data)
	assert.Equal(t, int64(1), page.Meta.Total)
	assert.False(t, page.Meta.HasNextPage)
}

func TestCatalogNormalize(t *testing.T) {
	svc := NewCatalogService(nil, nil, 24)
	sizeA, sizeB := uuid.New(), uuid.New()

	tests := []struct {
		name    string
		in      models.ProductFilter
		wantErr string
		check   func(t *testing.T, f models.ProductFilter)
	}{
		{
			name: "defaults",
			in:   models.ProductFilter{},
			check: func(t *testing.T, f models.ProductFilter) {
				assert.Equal(t, 1, f.Page)
				assert.Equal(t, 24, f.PerPage)
				assert.Equal(t, models.SortRelevance, f.Sort)
			},
		},
		{
			name: "per page clamped",
			in:   models.ProductFilter{PerPage: 500},
			check: func(t *testing.T, f models.ProductFilter) {
				assert.Equal(t, models.MaxPerPage, f.PerPage)
			},
		},
		{
			name: "sort alias",
			in:   models.ProductFilter{Sort: "price-desc"},
			check: func(t *testing.T, f models.ProductFilter) {
				assert.Equal(t, models.SortPriceDesc, f.Sort)
			},
		},
		{
			name: "size ids deduplicated",
			in:   models.ProductFilter{SizeIDs: []uuid.UUID{sizeA, sizeB, sizeA}},
			check: func(t *testing.T, f models.ProductFilter) {
				assert.Len(t, f.SizeIDs, 2)
				assert.ElementsMatch(t, []uuid.UUID{sizeA, sizeB}, f.SizeIDs)
			},
		},
		{name: "negative page", in: models.ProductFilter{Page: -1}, wantErr: "page"},
		{name: "negative per page", in: models.ProductFilter{PerPage: -5}, wantErr: "perPage"},
		{name: "page offset overflows", in: models.ProductFilter{Page: math.MaxInt / 2}, wantErr: "page"},
		{name: "unknown sort", in: models.ProductFilter{Sort: "popular"}, wantErr: "sort"},
		{name: "negative min price", in: models.ProductFilter{MinPrice: decPtr("-1")}, wantErr: "minPrice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Normalize(tt.in)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrValidation)
				var verr *ValidationError
				require.True(t, errors.As(err, &verr))
				assert.Equal(t, tt.wantErr, verr.Field)
				return
			}
			require.NoError(t, err)
			tt.check(t, got)
		})
	}
}

func TestCatalogNormalize_EqualFiltersShareCacheKey(t *testing.T) {
	svc := NewCatalogService(nil, nil, 0)
	a, b := uuid.New(), uuid.New()

	f1, err := svc.Normalize(models.ProductFilter{SizeIDs: []uuid.UUID{a, b}, Sort: "price-asc", Search: "vestido "})
	require.NoError(t, err)
	f2, err := svc.Normalize(models.ProductFilter{SizeIDs: []uuid.UUID{b, a, b}, Sort: models.SortPriceAsc, Search: "vestido", Page: 1, PerPage: 20})
	require.NoError(t, err)

	assert.Equal(t, f1.CacheKey(), f2.CacheKey())
}

func TestCatalogSearch_ServesFromCacheUntilInvalidated(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCatalogService(db, cache.NewMemoryStore(16, time.Minute), 0)
	c := createCategory(t, db, "Vestidos")
	createProduct(t, db, productSeed{Name: "primeiro", Price: "10", Category: c})

	ctx := context.Background()
	page, err := svc.Search(ctx, models.ProductFilter{})
	require.NoError(t, err)
	require.Equal(t, int64(1), page.Meta.Total)

	// written behind the service's back, so the cached page is still served
	createProduct(t, db, productSeed{Name: "segundo", Price: "20", Category: c, Minute: 1})
	page, err = svc.Search(ctx, models.ProductFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Meta.Total)
	assert.Equal(t, "primeiro", page.Data[0].Name)
	assert.True(t, page.Data[0].Price.Equal(dec("10")))

	svc.Invalidate(ctx)
	page, err = svc.Search(ctx, models.ProductFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Meta.Total)
}

func TestCatalogSearch_StoreFailureIsUnavailable(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCatalogService(db, nil, 0)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = svc.Search(context.Background(), models.ProductFilter{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestCatalogFeatured(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCatalogService(db, nil, 0)
	c := createCategory(t, db, "Vestidos")

	createProduct(t, db, productSeed{Name: "destaque antigo", Price: "10", Category: c, Featured: true, Minute: 1})
	createProduct(t, db, productSeed{Name: "destaque novo", Price: "10", Category: c, Featured: true, Minute: 5})
	createProduct(t, db, productSeed{Name: "comum", Price: "10", Category: c, Minute: 9})
	createProduct(t, db, productSeed{Name: "destaque inativo", Price: "10", Category: c, Featured: true, Inactive: true, Minute: 7})

	products, err := svc.Featured(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"destaque novo", "destaque antigo"}, productNames(products))

	products, err = svc.Featured(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"destaque novo"}, productNames(products))
}

func TestCatalogFilterMetadata(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCatalogService(db, nil, 0)
	blusas := createCategory(t, db, "Blusas")
	vestidos := createCategory(t, db, "Vestidos")
	createCategory(t, db, "Acessorios")
	createSize(t, db, "M")
	createSize(t, db, "G")

	createProduct(t, db, productSeed{Name: "a", Price: "39.90", Category: vestidos})
	createProduct(t, db, productSeed{Name: "b", Price: "249.00", Category: vestidos})
	createProduct(t, db, productSeed{Name: "c", Price: "59.90", Category: blusas})
	createProduct(t, db, productSeed{Name: "d", Price: "999", Category: blusas, Inactive: true})

	meta, err := svc.FilterMetadata(context.Background())
	require.NoError(t, err)

	require.Len(t, meta.Categories, 3)
	assert.Equal(t, "Acessorios", meta.Categories[0].Name)
	assert.Equal(t, int64(0), meta.Categories[0].ProductsCount)
	assert.Equal(t, "Blusas", meta.Categories[1].Name)
	assert.Equal(t, int64(1), meta.Categories[1].ProductsCount, "inactive products are not counted")
	assert.Equal(t, int64(2), meta.Categories[2].ProductsCount)

	require.Len(t, meta.Sizes, 2)
	assert.Equal(t, "G", meta.Sizes[0].Name)

	assert.True(t, meta.PriceRange.Min.Equal(dec("39.9")), "min = %s", meta.PriceRange.Min)
	assert.True(t, meta.PriceRange.Max.Equal(dec("249")), "max = %s", meta.PriceRange.Max)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\%`, escapeLike("50%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\tmp`, escapeLike(`c:\tmp`))
}

func TestCachedLoad_CancelledCallerDoesNotFailOthers(t *testing.T) {
	svc := NewCatalogService(nil, nil, 0)

	var calls atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})
	load := func(ctx context.Context) (int, error) {
		if calls.Add(1) == 1 {
			close(started)
		}
		<-release
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		return 42, nil
	}

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := cachedLoad(firstCtx, svc, "shared", load)
		firstErr <- err
	}()
	<-started

	type result struct {
		v   int
		err error
	}
	second := make(chan result, 1)
	go func() {
		v, err := cachedLoad(context.Background(), svc, "shared", load)
		second <- result{v, err}
	}()
	time.Sleep(20 * time.Millisecond)

	cancelFirst()
	select {
	case err := <-firstErr:
		assert.ErrorIs(t, err, context.Canceled)
		assert.NotErrorIs(t, err, ErrUnavailable)
	case <-time.After(time.Second):
		t.Fatal("cancelled caller kept waiting on the shared load")
	}

	close(release)
	select {
	case res := <-second:
		require.NoError(t, res.err)
		assert.Equal(t, 42, res.v)
	case <-time.After(time.Second):
		t.Fatal("second caller never received the shared load")
	}
	assert.Equal(t, int32(1), calls.Load())
}
