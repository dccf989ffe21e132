package repository

import (
	"sync"
	"testing"

	"github.com/gofrs/uuid"

	"github.com/recetario/recetario/model"
)

func TestGormRepository_AddRecipeInteraction(t *testing.T) {
	t.Parallel()
	repo, assert, require, user, recipe := setupWithUserAndRecipe(t, common)

	t.Run("nil id", func(t *testing.T) {
		t.Parallel()
		assert.ErrorIs(repo.AddRecipeInteraction(uuid.Nil, recipe.ID, model.InteractionKindLike), ErrNilID)
	})

	t.Run("recipe not found", func(t *testing.T) {
		t.Parallel()
		assert.ErrorIs(repo.AddRecipeInteraction(user.ID, uuid.Must(uuid.NewV4()), model.InteractionKindLike), ErrNotFound)
	})

	t.Run("invalid kind", func(t *testing.T) {
		t.Parallel()
		assert.True(IsArgError(repo.AddRecipeInteraction(user.ID, recipe.ID, model.InteractionKind("star"))))
	})

	t.Run("success and duplicate", func(t *testing.T) {
		t.Parallel()
		u := mustMakeUser(t, repo, rand)
		r := mustMakeRecipe(t, repo, u.ID, rand)

		require.NoError(repo.AddRecipeInteraction(u.ID, r.ID, model.InteractionKindLike))
		// 重複は成功扱いのno-opで、二重カウントされない
		require.NoError(repo.AddRecipeInteraction(u.ID, r.ID, model.InteractionKindLike))

		c, err := repo.CountRecipeInteractions(r.ID, model.InteractionKindLike)
		require.NoError(err)
		assert.Equal(1, c)

		fresh, err := repo.GetRecipe(r.ID)
		require.NoError(err)
		assert.Equal(1, fresh.LikeCount)
		assert.Equal(0, fresh.SaveCount)
	})
}

func TestGormRepository_RemoveRecipeInteraction(t *testing.T) {
	t.Parallel()
	repo, assert, require, user, recipe := setupWithUserAndRecipe(t, common)

	require.NoError(repo.AddRecipeInteraction(user.ID, recipe.ID, model.InteractionKindSave))
	require.NoError(repo.RemoveRecipeInteraction(user.ID, recipe.ID, model.InteractionKindSave))
	// 取り消し済みへの再実行もエラーにならない
	require.NoError(repo.RemoveRecipeInteraction(user.ID, recipe.ID, model.InteractionKindSave))

	c, err := repo.CountRecipeInteractions(recipe.ID, model.InteractionKindSave)
	require.NoError(err)
	assert.Equal(0, c)

	fresh, err := repo.GetRecipe(recipe.ID)
	require.NoError(err)
	assert.Equal(0, fresh.SaveCount)
}

func TestGormRepository_GetUserRecipeInteractions(t *testing.T) {
	t.Parallel()
	repo, assert, require, user, recipe := setupWithUserAndRecipe(t, common)

	require.NoError(repo.AddRecipeInteraction(user.ID, recipe.ID, model.InteractionKindLike))
	require.NoError(repo.AddRecipeInteraction(user.ID, recipe.ID, model.InteractionKindSave))

	arr, err := repo.GetUserRecipeInteractions(user.ID, recipe.ID)
	require.NoError(err)
	assert.Len(arr, 2)
}

// 複数ユーザーが同一レシピへ同時にいいねしても、権威カウントは
// 最終的にオン状態のユーザー数に一致する。
func TestGormRepository_ConcurrentInteractions(t *testing.T) {
	t.Parallel()
	repo, assert, require := setup(t, ex1)
	owner := mustMakeUser(t, repo, rand)
	recipe := mustMakeRecipe(t, repo, owner.ID, rand)

	const n = 10
	users := make([]*model.User, n)
	for i := range users {
		users[i] = mustMakeUser(t, repo, rand)
	}

	var wg sync.WaitGroup
	for _, u := range users {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			_ = repo.AddRecipeInteraction(id, recipe.ID, model.InteractionKindLike)
		}(u.ID)
	}
	wg.Wait()

	c, err := repo.CountRecipeInteractions(recipe.ID, model.InteractionKindLike)
	require.NoError(err)
	assert.Equal(n, c)

	fresh, err := repo.RefreshRecipeCounters(recipe.ID)
	require.NoError(err)
	assert.Equal(n, fresh.LikeCount)

	for _, u := range users {
		arr, err := repo.GetUserRecipeInteractions(u.ID, recipe.ID)
		require.NoError(err)
		assert.Len(arr, 1)
	}
}
