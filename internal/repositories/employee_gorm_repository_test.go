package repositories_test

import (
	"context"
	"testing"
	"time"

	"staffsync/internal/apperror"
	"staffsync/internal/models"
	"staffsync/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedEmployee(t *testing.T, repo *repositories.GORMEmployeeRepository, name, email, department string) *models.Employee {
	t.Helper()
	ctx := context.Background()
	seq, err := repo.NextSequence(ctx)
	require.NoError(t, err)
	e, err := models.NewEmployee(seq, name, email, time.Date(2021, 3, 20, 0, 0, 0, 0, time.UTC), 45000000, department)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, e))
	return e
}

func TestGORMEmployeeRepository(t *testing.T) {
	repo := repositories.NewGORMEmployeeRepository(openTestDB(t))
	ctx := context.Background()

	next, err := repo.NextSequence(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, next)

	kim := seedEmployee(t, repo, "Kim Cheolsu", "kim@staffsync.com", "Dev")
	lee := seedEmployee(t, repo, "Lee Younghee", "lee@staffsync.com", "Design")
	park := seedEmployee(t, repo, "Park Minsu", "park@staffsync.com", "Dev")
	assert.Equal(t, "EMP001", kim.Number)
	assert.Equal(t, "EMP003", park.Number)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "EMP002", all[1].Number)
	assert.Equal(t, "2021-03-20", all[1].FormattedHireDate())

	byNumber, err := repo.GetByNumber(ctx, "EMP002")
	require.NoError(t, err)
	assert.Equal(t, lee.ID, byNumber.ID)

	_, err = repo.GetByNumber(ctx, "EMP999")
	assert.True(t, apperror.IsNotFound(err))

	dev, err := repo.GetByDepartment(ctx, "Dev")
	require.NoError(t, err)
	assert.Len(t, dev, 2)

	found, err := repo.SearchByName(ctx, "minsu")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, park.ID, found[0].ID)

	exists, err := repo.ExistsByEmail(ctx, "lee@staffsync.com")
	require.NoError(t, err)
	assert.True(t, exists)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestGORMEmployeeRepository_SearchByNameFoldsUnicode(t *testing.T) {
	repo := repositories.NewGORMEmployeeRepository(openTestDB(t))
	ctx := context.Background()

	zoe := seedEmployee(t, repo, "ZOË Ångström", "zoe@staffsync.com", "Dev")
	seedEmployee(t, repo, "Kim Minsu", "kim@staffsync.com", "Dev")

	found, err := repo.SearchByName(ctx, "zoë ångström")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, zoe.ID, found[0].ID)

	found, err = repo.SearchByName(ctx, "ÅNGSTRÖM")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, zoe.ID, found[0].ID)
}

func TestGORMEmployeeRepository_Constraints(t *testing.T) {
	repo := repositories.NewGORMEmployeeRepository(openTestDB(t))
	ctx := context.Background()

	kim := seedEmployee(t, repo, "Kim", "kim@staffsync.com", "Dev")
	lee := seedEmployee(t, repo, "Lee", "lee@staffsync.com", "Design")

	dup, err := models.NewEmployee(3, "Kim Again", "kim@staffsync.com", time.Now(), 1, "Dev")
	require.NoError(t, err)
	err = repo.Create(ctx, dup)
	assert.True(t, apperror.IsValidation(err))

	taken := "kim@staffsync.com"
	_, err = repo.UpdateWithLock(ctx, lee.ID, func(e *models.Employee) error {
		return e.Update(nil, &taken, nil, nil)
	})
	assert.True(t, apperror.IsValidation(err))

	salary := 52000000.0
	updated, err := repo.UpdateWithLock(ctx, kim.ID, func(e *models.Employee) error {
		return e.Update(nil, nil, &salary, nil)
	})
	require.NoError(t, err)
	assert.Equal(t, 52000000.0, updated.Salary)

	_, err = repo.UpdateWithLock(ctx, "missing", func(*models.Employee) error { return nil })
	assert.True(t, apperror.IsNotFound(err))

	require.NoError(t, repo.Delete(ctx, kim.ID))
	_, err = repo.GetByID(ctx, kim.ID)
	assert.True(t, apperror.IsNotFound(err))
	assert.True(t, apperror.IsNotFound(repo.Delete(ctx, kim.ID)))
}
