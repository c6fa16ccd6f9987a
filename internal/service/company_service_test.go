package service

import (
	"context"
	"testing"
	"time"

	"worknet/internal/model"
	"worknet/internal/repository/mysql"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 五家公司，最新在前
func seedCompanies() *fakeCompanyStore {
	return newFakeCompanyStore(
		model.Company{ID: 5, Name: "Echo", EmployerID: 52},
		model.Company{ID: 4, Name: "Delta", EmployerID: 51},
		model.Company{ID: 3, Name: "Charlie", EmployerID: 51},
		model.Company{ID: 2, Name: "Bravo", EmployerID: 50},
		model.Company{ID: 1, Name: "Alpha", EmployerID: 50},
	)
}

func newCompanyFixture() (*CompanyService, *fakeCompanyStore, *fakeFollowStore) {
	repo := seedCompanies()
	follows := newFakeFollowStore()
	return &CompanyService{repo: repo, follows: follows}, repo, follows
}

func TestListAllPaging(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newCompanyFixture()

	// limit=2 时五家公司分三页，空页返回空列表而不是错误
	page0, next, err := svc.ListAll(ctx, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, next)
	require.Len(t, page0, 2)
	assert.Equal(t, uint64(5), page0[0].ID)
	assert.Equal(t, uint64(4), page0[1].ID)

	page1, next, err := svc.ListAll(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, next)
	require.Len(t, page1, 2)
	assert.Equal(t, uint64(3), page1[0].ID)

	page2, next, err := svc.ListAll(ctx, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, next)
	require.Len(t, page2, 1)
	assert.Equal(t, uint64(1), page2[0].ID)

	page3, next, err := svc.ListAll(ctx, 3, 2)
	require.NoError(t, err)
	assert.Equal(t, 4, next)
	assert.Empty(t, page3)

	// 负页码按第 0 页处理
	neg, next, err := svc.ListAll(ctx, -1, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, next)
	assert.Equal(t, page0, neg)
}

// updated_at 相同的行靠 id 双降序兜底，翻页不丢行不重复
func TestListAllTieBreak(t *testing.T) {
	ctx := context.Background()
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	// 乱序写入，全部同一时间戳
	repo := newFakeCompanyStore(
		model.Company{ID: 2, Name: "B", UpdatedAt: ts},
		model.Company{ID: 4, Name: "D", UpdatedAt: ts},
		model.Company{ID: 1, Name: "A", UpdatedAt: ts},
		model.Company{ID: 3, Name: "C", UpdatedAt: ts},
	)
	svc := &CompanyService{repo: repo, follows: newFakeFollowStore()}

	page0, _, err := svc.ListAll(ctx, 0, 2)
	require.NoError(t, err)
	require.Len(t, page0, 2)
	assert.Equal(t, uint64(4), page0[0].ID)
	assert.Equal(t, uint64(3), page0[1].ID)

	page1, _, err := svc.ListAll(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, page1, 2)
	assert.Equal(t, uint64(2), page1[0].ID)
	assert.Equal(t, uint64(1), page1[1].ID)
}

// 已关注与未关注两个视图互斥，拼起来是全集
func TestFollowedViewsPartition(t *testing.T) {
	ctx := context.Background()
	svc, _, follows := newCompanyFixture()

	_, _ = follows.Follow(ctx, 7, 2)
	_, _ = follows.Follow(ctx, 7, 5)

	followed, next, err := svc.ListFollowed(ctx, 7, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, next)
	require.Len(t, followed, 2)
	assert.Equal(t, uint64(5), followed[0].ID)
	assert.Equal(t, uint64(2), followed[1].ID)

	notFollowed, _, err := svc.ListNotFollowed(ctx, 7, 0, 10)
	require.NoError(t, err)
	require.Len(t, notFollowed, 3)

	seen := map[uint64]bool{}
	for _, c := range followed {
		seen[c.ID] = true
	}
	for _, c := range notFollowed {
		assert.False(t, seen[c.ID], "company %d in both views", c.ID)
		seen[c.ID] = true
	}
	assert.Len(t, seen, 5)
}

func TestFollowedViewsNoFollows(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newCompanyFixture()

	// 没有任何关注时：已关注为空，未关注等于全量
	followed, _, err := svc.ListFollowed(ctx, 7, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, followed)

	notFollowed, _, err := svc.ListNotFollowed(ctx, 7, 0, 10)
	require.NoError(t, err)
	assert.Len(t, notFollowed, 5)
}

func TestDetails(t *testing.T) {
	ctx := context.Background()
	svc, _, follows := newCompanyFixture()

	company, isFollowed, err := svc.Details(ctx, 3, 7)
	require.NoError(t, err)
	assert.Equal(t, "Charlie", company.Name)
	assert.False(t, isFollowed)

	_, _ = follows.Follow(ctx, 7, 3)
	_, isFollowed, err = svc.Details(ctx, 3, 7)
	require.NoError(t, err)
	assert.True(t, isFollowed)

	_, _, err = svc.Details(ctx, 404, 7)
	assert.ErrorIs(t, err, mysql.ErrCompanyNotFound)
}

func TestSearchByName(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newCompanyFixture()

	list, err := svc.SearchByName(ctx, "lt")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Delta", list[0].Name)
}

func TestCompanyCRUD(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newCompanyFixture()

	_, err := svc.Create(ctx, 60, "", "", "")
	assert.ErrorIs(t, err, ErrEmptyName)
	_, err = svc.Create(ctx, 0, "Foxtrot", "", "")
	assert.ErrorIs(t, err, ErrInvalidID)

	created, err := svc.Create(ctx, 60, "Foxtrot", "desc", "img")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	updated, err := svc.Update(ctx, created.ID, map[string]any{"name": "Foxtrot Ltd"})
	require.NoError(t, err)
	assert.Equal(t, "Foxtrot Ltd", updated.Name)

	deleted, err := svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)

	_, _, err = svc.Details(ctx, created.ID, 0)
	assert.ErrorIs(t, err, mysql.ErrCompanyNotFound)
}

func TestListByEmployer(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newCompanyFixture()

	list, err := svc.ListByEmployer(ctx, 51)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
