package store

import (
	"context"
	"testing"
	"time"

	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestRepository(t *testing.T) Repository {
	t.Helper()
	logger, _ := logrustest.NewNullLogger()
	db, err := Open(":memory:", logger)
	require.NoError(t, err)
	return NewRepository(db, logger)
}

func TestSave_InsertsNewExtraction(t *testing.T) {
	repo := newTestRepository(t)

	err := repo.Save(context.Background(), &Extraction{
		SHA256:     "5f2b7c",
		Filename:   "sample.msi",
		Kind:       "AU3",
		Status:     StatusExtracted,
		XorKey:     "0x9f",
		KeySource:  "embedded",
		ConfigJSON: `{"c2_port": 8080}`,
	})
	require.NoError(t, err)

	stored, err := repo.FindBySHA256(context.Background(), "5f2b7c")
	require.NoError(t, err)
	assert.NotEmpty(t, stored.ID)
	assert.False(t, stored.CreatedAt.IsZero())
	assert.Equal(t, "sample.msi", stored.Filename)
	assert.Equal(t, StatusExtracted, stored.Status)
	assert.Equal(t, "0x9f", stored.XorKey)
}

func TestSave_UpsertsBySampleHash(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &Extraction{
		SHA256: "5f2b7c", Filename: "sample.msi", Status: StatusNoPayload,
	}))
	first, err := repo.FindBySHA256(ctx, "5f2b7c")
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, &Extraction{
		SHA256: "5f2b7c", Filename: "sample.msi", Status: StatusExtracted,
	}))

	updated, err := repo.FindBySHA256(ctx, "5f2b7c")
	require.NoError(t, err)
	assert.Equal(t, first.ID, updated.ID)
	assert.Equal(t, StatusExtracted, updated.Status)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestFindBySHA256_Missing(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.FindBySHA256(context.Background(), "does-not-exist")

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestList_NewestFirst(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &Extraction{
		SHA256:    "older",
		CreatedAt: time.Date(2023, 8, 1, 12, 0, 0, 0, time.UTC),
	}))
	require.NoError(t, repo.Save(ctx, &Extraction{
		SHA256:    "newer",
		CreatedAt: time.Date(2023, 8, 2, 12, 0, 0, 0, time.UTC),
	}))

	all, err := repo.List(ctx)

	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "newer", all[0].SHA256)
	assert.Equal(t, "older", all[1].SHA256)
}

func TestCountByStatus(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &Extraction{SHA256: "a", Status: StatusExtracted}))
	require.NoError(t, repo.Save(ctx, &Extraction{SHA256: "b", Status: StatusExtracted}))
	require.NoError(t, repo.Save(ctx, &Extraction{SHA256: "c", Status: StatusNoPayload}))

	count, err := repo.CountByStatus(ctx, StatusExtracted)

	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
