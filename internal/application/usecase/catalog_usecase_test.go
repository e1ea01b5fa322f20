package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"verseone/internal/application/usecase"
	productdom "verseone/internal/domain/product"
)

var testNow = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

func TestCatalog_CreateWithoutRemoteUsesFreshLocalID(t *testing.T) {
	ctx := context.Background()
	repos := newLocalRepos()
	uc := usecase.NewCatalogUsecaseWithClock(repos.products, nil, &seqIDs{}, fixedClock{testNow})

	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		p, err := uc.Create(ctx, boardFields("Psalm 23", 1299))
		require.NoError(t, err)
		assert.NotEmpty(t, p.ID)
		assert.False(t, seen[p.ID], "id %s reused", p.ID)
		seen[p.ID] = true

		got, err := uc.GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}

	items, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 3)
}

func TestCatalog_CreateSkipsIDsAlreadyInUse(t *testing.T) {
	ctx := context.Background()
	repos := newLocalRepos()
	taken := mustProduct("1741944413000", "Existing", 10)
	require.NoError(t, repos.products.Append(ctx, taken))

	uc := usecase.NewCatalogUsecaseWithClock(repos.products, nil, nil, fixedClock{time.UnixMilli(1741944413000)})
	p, err := uc.Create(ctx, boardFields("New", 20))
	require.NoError(t, err)
	assert.Equal(t, "1741944413001", p.ID)
}

func TestCatalog_CreateUsesRemoteID(t *testing.T) {
	ctx := context.Background()
	repos := newLocalRepos()
	remote := newFakeProductRemote()
	uc := usecase.NewCatalogUsecaseWithClock(repos.products, remote, nil, fixedClock{testNow})

	p, err := uc.Create(ctx, boardFields("Psalm 23", 1299))
	require.NoError(t, err)
	assert.Equal(t, "remote00000000000001", p.ID)

	docs, _ := remote.List(ctx)
	require.Len(t, docs, 1)
	assert.Equal(t, p.ID, docs[0].ID)

	local, err := repos.products.List(ctx)
	require.NoError(t, err)
	require.Len(t, local, 1)
	assert.Equal(t, p.ID, local[0].ID)
}

func TestCatalog_CreateFallsBackWhenRemoteFails(t *testing.T) {
	ctx := context.Background()
	repos := newLocalRepos()
	remote := newFakeProductRemote()
	remote.down = true
	uc := usecase.NewCatalogUsecaseWithClock(repos.products, remote, nil, fixedClock{testNow})

	p, err := uc.Create(ctx, boardFields("Psalm 23", 1299))
	require.NoError(t, err)
	assert.Equal(t, "1741944413000", p.ID)

	local, _ := repos.products.List(ctx)
	assert.Len(t, local, 1)
}

func TestCatalog_CreateValidationWritesNothing(t *testing.T) {
	ctx := context.Background()
	repos := newLocalRepos()
	remote := newFakeProductRemote()
	uc := usecase.NewCatalogUsecase(repos.products, remote, nil)

	_, err := uc.Create(ctx, boardFields("", 1299))
	require.ErrorIs(t, err, productdom.ErrValidation)

	_, err = uc.Create(ctx, boardFields("Psalm 23", 0))
	require.ErrorIs(t, err, productdom.ErrValidation)

	local, _ := repos.products.List(ctx)
	assert.Empty(t, local)
	docs, _ := remote.List(ctx)
	assert.Empty(t, docs)
}

func TestCatalog_UpdateAppliesLocallyEvenWhenRemoteFails(t *testing.T) {
	ctx := context.Background()
	repos := newLocalRepos()
	orig := mustProduct("abc", "Old", 10)
	orig.ImagePath = "https://img/old.png"
	require.NoError(t, repos.products.Append(ctx, orig))

	remote := newFakeProductRemote()
	remote.down = true
	uc := usecase.NewCatalogUsecase(repos.products, remote, nil)

	f := boardFields("New", 25)
	updated, err := uc.Update(ctx, "abc", f)
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, "https://img/old.png", updated.ImagePath, "image kept when omitted")
	assert.Equal(t, []string{"abc"}, remote.updated)

	got, err := uc.GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestCatalog_UpdateMissingIsNotFound(t *testing.T) {
	ctx := context.Background()
	repos := newLocalRepos()
	remote := newFakeProductRemote()
	uc := usecase.NewCatalogUsecase(repos.products, remote, nil)

	_, err := uc.Update(ctx, "nope", boardFields("X", 1))
	require.ErrorIs(t, err, productdom.ErrNotFound)
	assert.Empty(t, remote.updated)
}

func TestCatalog_DeleteMissingStillAttemptsRemote(t *testing.T) {
	ctx := context.Background()
	repos := newLocalRepos()
	remote := newFakeProductRemote()
	uc := usecase.NewCatalogUsecase(repos.products, remote, nil)

	ok, err := uc.Delete(ctx, "ghost")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, []string{"ghost"}, remote.deleted)
}

func TestCatalog_DeleteProceedsWhenRemoteFails(t *testing.T) {
	ctx := context.Background()
	repos := newLocalRepos()
	require.NoError(t, repos.products.Append(ctx, mustProduct("abc", "Board", 10)))
	remote := newFakeProductRemote()
	remote.down = true
	uc := usecase.NewCatalogUsecase(repos.products, remote, nil)

	ok, err := uc.Delete(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = uc.GetByID(ctx, "abc")
	assert.ErrorIs(t, err, productdom.ErrNotFound)
}

func TestCatalog_EnsureDefaultsOnlyWhenEmpty(t *testing.T) {
	ctx := context.Background()
	repos := newLocalRepos()
	uc := usecase.NewCatalogUsecase(repos.products, nil, nil)

	seeded, err := uc.EnsureDefaults(ctx)
	require.NoError(t, err)
	assert.True(t, seeded)

	items, _ := uc.List(ctx)
	assert.Len(t, items, len(productdom.DefaultCatalog()))

	seeded, err = uc.EnsureDefaults(ctx)
	require.NoError(t, err)
	assert.False(t, seeded)
}

func TestCatalog_AddReview(t *testing.T) {
	ctx := context.Background()
	repos := newLocalRepos()
	require.NoError(t, repos.products.Append(ctx, mustProduct("abc", "Board", 10)))
	uc := usecase.NewCatalogUsecaseWithClock(repos.products, nil, &seqIDs{}, fixedClock{testNow})

	p, err := uc.AddReview(ctx, "abc", "Sarah", "Lovely", 4)
	require.NoError(t, err)
	require.Len(t, p.Reviews, 1)
	assert.Equal(t, "rv-1", p.Reviews[0].ID)
	assert.Equal(t, "2025-03-14", p.Reviews[0].Date)

	_, err = uc.AddReview(ctx, "abc", "Sarah", "Too good", 9)
	assert.ErrorIs(t, err, productdom.ErrValidation)
}
