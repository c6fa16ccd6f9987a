package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"worknet/internal/model"
	"worknet/internal/repository/mysql"
)

// 内存版存储实现，行为对齐 mysql 仓储的语义，供本包测试注入

func pageSlice[T any](list []T, offset, limit int) []T {
	if offset >= len(list) {
		return nil
	}
	end := offset + limit
	if end > len(list) {
		end = len(list)
	}
	out := make([]T, end-offset)
	copy(out, list[offset:end])
	return out
}

type fakeCounterCache struct {
	likes       map[uint64]int64
	comments    map[uint64]int64
	has         map[uint64]bool
	invalidated int
}

func newFakeCounterCache() *fakeCounterCache {
	return &fakeCounterCache{
		likes:    map[uint64]int64{},
		comments: map[uint64]int64{},
		has:      map[uint64]bool{},
	}
}

func (f *fakeCounterCache) GetCounts(ctx context.Context, postID uint64) (int64, int64, bool, error) {
	if !f.has[postID] {
		return 0, 0, false, nil
	}
	return f.likes[postID], f.comments[postID], true, nil
}

func (f *fakeCounterCache) SetCounts(ctx context.Context, postID uint64, likes, comments int64) error {
	f.likes[postID] = likes
	f.comments[postID] = comments
	f.has[postID] = true
	return nil
}

func (f *fakeCounterCache) Invalidate(ctx context.Context, postID uint64, delay ...time.Duration) error {
	delete(f.has, postID)
	f.invalidated++
	return nil
}

type fakeCounterLock struct {
	allow bool
}

func (f *fakeCounterLock) Acquire(ctx context.Context, postID uint64, token string) (bool, error) {
	return f.allow, nil
}

func (f *fakeCounterLock) Release(ctx context.Context, postID uint64, token string) error {
	return nil
}

type fakeInteractionStore struct {
	posts    map[uint64]*model.Post
	likes    map[uint64]*model.Like
	comments map[uint64]*model.Comment
	saves    map[uint64]*model.Save
	nextID   uint64
}

func newFakeInteractionStore(posts ...*model.Post) *fakeInteractionStore {
	f := &fakeInteractionStore{
		posts:    map[uint64]*model.Post{},
		likes:    map[uint64]*model.Like{},
		comments: map[uint64]*model.Comment{},
		saves:    map[uint64]*model.Save{},
		nextID:   1,
	}
	for _, p := range posts {
		f.posts[p.ID] = p
	}
	return f
}

func (f *fakeInteractionStore) livePost(postID uint64) (*model.Post, error) {
	p, ok := f.posts[postID]
	if !ok || p.Status != 0 {
		return nil, mysql.ErrPostNotFound
	}
	return p, nil
}

func (f *fakeInteractionStore) AddLike(ctx context.Context, postID, userID uint64, now time.Time) (*model.Like, *model.Post, error) {
	post, err := f.livePost(postID)
	if err != nil {
		return nil, nil, err
	}
	for _, l := range f.likes {
		if l.PostID == postID && l.UserID == userID {
			return nil, nil, mysql.ErrAlreadyLiked
		}
	}
	like := &model.Like{ID: f.nextID, PostID: postID, UserID: userID, CreatedAt: now}
	f.nextID++
	f.likes[like.ID] = like
	post.LikesCount++
	return like, post, nil
}

func (f *fakeInteractionStore) DeleteLike(ctx context.Context, postID, likeID uint64) (*model.Like, error) {
	post, err := f.livePost(postID)
	if err != nil {
		return nil, err
	}
	like, ok := f.likes[likeID]
	if !ok || like.PostID != postID {
		return nil, mysql.ErrLikeNotFound
	}
	delete(f.likes, likeID)
	if post.LikesCount > 0 {
		post.LikesCount--
	}
	return like, nil
}

func (f *fakeInteractionStore) AddComment(ctx context.Context, postID, userID uint64, body string, now time.Time) (*model.Comment, *model.Post, error) {
	post, err := f.livePost(postID)
	if err != nil {
		return nil, nil, err
	}
	comment := &model.Comment{ID: f.nextID, PostID: postID, UserID: userID, Body: body, CreatedAt: now, UpdatedAt: now}
	f.nextID++
	f.comments[comment.ID] = comment
	post.CommentsCount++
	return comment, post, nil
}

func (f *fakeInteractionStore) UpdateComment(ctx context.Context, postID, commentID uint64, body string) (*model.Comment, error) {
	c, ok := f.comments[commentID]
	if !ok || c.PostID != postID {
		return nil, mysql.ErrCommentNotFound
	}
	c.Body = body
	return c, nil
}

func (f *fakeInteractionStore) DeleteComment(ctx context.Context, postID, commentID uint64) (*model.Comment, error) {
	post, err := f.livePost(postID)
	if err != nil {
		return nil, err
	}
	c, ok := f.comments[commentID]
	if !ok || c.PostID != postID {
		return nil, mysql.ErrCommentNotFound
	}
	delete(f.comments, commentID)
	if post.CommentsCount > 0 {
		post.CommentsCount--
	}
	return c, nil
}

func (f *fakeInteractionStore) AddSave(ctx context.Context, postID, userID uint64, now time.Time) (*model.Save, error) {
	if _, err := f.livePost(postID); err != nil {
		return nil, err
	}
	for _, s := range f.saves {
		if s.PostID == postID && s.UserID == userID {
			return nil, mysql.ErrAlreadySaved
		}
	}
	save := &model.Save{ID: f.nextID, PostID: postID, UserID: userID, CreatedAt: now}
	f.nextID++
	f.saves[save.ID] = save
	return save, nil
}

func (f *fakeInteractionStore) DeleteSave(ctx context.Context, saveID uint64) (*model.Save, error) {
	s, ok := f.saves[saveID]
	if !ok {
		return nil, mysql.ErrSaveNotFound
	}
	delete(f.saves, saveID)
	return s, nil
}

func (f *fakeInteractionStore) ListLikes(ctx context.Context, postID uint64) ([]model.Like, error) {
	var out []model.Like
	for _, l := range f.likes {
		if l.PostID == postID {
			out = append(out, *l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeInteractionStore) ListComments(ctx context.Context, postID uint64, offset, limit int) ([]model.Comment, error) {
	var out []model.Comment
	for _, c := range f.comments {
		if c.PostID == postID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return pageSlice(out, offset, limit), nil
}

func (f *fakeInteractionStore) ListSaves(ctx context.Context, postID uint64) ([]model.Save, error) {
	var out []model.Save
	for _, s := range f.saves {
		if s.PostID == postID {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// fakeCompanyStore 存储不保序，各 List 方法返回前按
// updated_at DESC, id DESC 排序，与 mysql 仓储的排序键一致
type fakeCompanyStore struct {
	list   []model.Company
	nextID uint64
}

func newFakeCompanyStore(companies ...model.Company) *fakeCompanyStore {
	f := &fakeCompanyStore{nextID: 1}
	for _, c := range companies {
		if c.ID >= f.nextID {
			f.nextID = c.ID + 1
		}
	}
	f.list = append(f.list, companies...)
	return f
}

// feedOrder 排序后的副本，id 兜底排序保证时间戳相同的行顺序稳定
func (f *fakeCompanyStore) feedOrder() []model.Company {
	out := make([]model.Company, len(f.list))
	copy(out, f.list)
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (f *fakeCompanyStore) Create(ctx context.Context, c *model.Company) error {
	c.ID = f.nextID
	f.nextID++
	f.list = append(f.list, *c)
	return nil
}

func (f *fakeCompanyStore) FindByID(ctx context.Context, id uint64) (*model.Company, error) {
	for i := range f.list {
		if f.list[i].ID == id {
			c := f.list[i]
			return &c, nil
		}
	}
	return nil, mysql.ErrCompanyNotFound
}

func (f *fakeCompanyStore) MetaData(ctx context.Context, id uint64) (*model.Company, error) {
	c, err := f.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &model.Company{ID: c.ID, Name: c.Name, ProfileImage: c.ProfileImage}, nil
}

func (f *fakeCompanyStore) SearchByName(ctx context.Context, name string) ([]model.Company, error) {
	var out []model.Company
	for _, c := range f.feedOrder() {
		if strings.Contains(c.Name, name) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCompanyStore) ListPage(ctx context.Context, offset, limit int) ([]model.Company, error) {
	return pageSlice(f.feedOrder(), offset, limit), nil
}

func (f *fakeCompanyStore) ListByIDs(ctx context.Context, ids []uint64, offset, limit int) ([]model.Company, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	in := map[uint64]bool{}
	for _, id := range ids {
		in[id] = true
	}
	var out []model.Company
	for _, c := range f.feedOrder() {
		if in[c.ID] {
			out = append(out, c)
		}
	}
	return pageSlice(out, offset, limit), nil
}

func (f *fakeCompanyStore) ListExcludingIDs(ctx context.Context, ids []uint64, offset, limit int) ([]model.Company, error) {
	excl := map[uint64]bool{}
	for _, id := range ids {
		excl[id] = true
	}
	out := make([]model.Company, 0, len(f.list))
	for _, c := range f.feedOrder() {
		if !excl[c.ID] {
			out = append(out, c)
		}
	}
	return pageSlice(out, offset, limit), nil
}

func (f *fakeCompanyStore) ListByEmployer(ctx context.Context, employerID uint64) ([]model.Company, error) {
	var out []model.Company
	for _, c := range f.feedOrder() {
		if c.EmployerID == employerID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCompanyStore) EmployerIDs(ctx context.Context, companyIDs []uint64) ([]uint64, error) {
	if len(companyIDs) == 0 {
		return nil, nil
	}
	in := map[uint64]bool{}
	for _, id := range companyIDs {
		in[id] = true
	}
	seen := map[uint64]bool{}
	var out []uint64
	for _, c := range f.list {
		if in[c.ID] && !seen[c.EmployerID] {
			seen[c.EmployerID] = true
			out = append(out, c.EmployerID)
		}
	}
	return out, nil
}

func (f *fakeCompanyStore) Update(ctx context.Context, id uint64, fields map[string]any) (*model.Company, error) {
	for i := range f.list {
		if f.list[i].ID == id {
			if v, ok := fields["name"]; ok {
				f.list[i].Name = v.(string)
			}
			if v, ok := fields["description"]; ok {
				f.list[i].Description = v.(string)
			}
			if v, ok := fields["profile_image"]; ok {
				f.list[i].ProfileImage = v.(string)
			}
			c := f.list[i]
			return &c, nil
		}
	}
	return nil, mysql.ErrCompanyNotFound
}

func (f *fakeCompanyStore) DeleteByID(ctx context.Context, id uint64) (*model.Company, error) {
	for i := range f.list {
		if f.list[i].ID == id {
			c := f.list[i]
			f.list = append(f.list[:i], f.list[i+1:]...)
			return &c, nil
		}
	}
	return nil, mysql.ErrCompanyNotFound
}

type fakeFollowStore struct {
	follows map[uint64][]uint64 // userID -> companyIDs，按关注先后排列
}

func newFakeFollowStore() *fakeFollowStore {
	return &fakeFollowStore{follows: map[uint64][]uint64{}}
}

func (f *fakeFollowStore) Follow(ctx context.Context, userID, companyID uint64) (bool, error) {
	for _, id := range f.follows[userID] {
		if id == companyID {
			return false, nil
		}
	}
	f.follows[userID] = append(f.follows[userID], companyID)
	return true, nil
}

func (f *fakeFollowStore) Unfollow(ctx context.Context, userID, companyID uint64) (bool, error) {
	ids := f.follows[userID]
	for i, id := range ids {
		if id == companyID {
			f.follows[userID] = append(ids[:i], ids[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeFollowStore) IsFollowing(ctx context.Context, userID, companyID uint64) (bool, error) {
	for _, id := range f.follows[userID] {
		if id == companyID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeFollowStore) FollowedCompanyIDs(ctx context.Context, userID uint64) ([]uint64, error) {
	out := make([]uint64, len(f.follows[userID]))
	copy(out, f.follows[userID])
	return out, nil
}

func (f *fakeFollowStore) FollowerCount(ctx context.Context, companyID uint64) (int64, error) {
	var n int64
	for _, ids := range f.follows {
		for _, id := range ids {
			if id == companyID {
				n++
			}
		}
	}
	return n, nil
}

// fakePostStore 存储不保序，读取时按 updated_at DESC, id DESC 排序
type fakePostStore struct {
	list   []*model.Post
	nextID uint64
}

func newFakePostStore(posts ...*model.Post) *fakePostStore {
	f := &fakePostStore{nextID: 1}
	for _, p := range posts {
		if p.ID >= f.nextID {
			f.nextID = p.ID + 1
		}
	}
	f.list = append(f.list, posts...)
	return f
}

// feedOrder 未删除帖子的排序副本，排序键与公司列表一致
func (f *fakePostStore) feedOrder() []model.Post {
	var out []model.Post
	for _, p := range f.list {
		if p.Status == 0 {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (f *fakePostStore) Create(ctx context.Context, post *model.Post) error {
	post.ID = f.nextID
	f.nextID++
	f.list = append(f.list, post)
	return nil
}

func (f *fakePostStore) FindByID(ctx context.Context, id uint64) (*model.Post, error) {
	for _, p := range f.list {
		if p.ID == id && p.Status == 0 {
			cp := *p
			return &cp, nil
		}
	}
	return nil, mysql.ErrPostNotFound
}

func (f *fakePostStore) ListPage(ctx context.Context, offset, limit int) ([]model.Post, error) {
	return pageSlice(f.feedOrder(), offset, limit), nil
}

func (f *fakePostStore) ListByAuthors(ctx context.Context, authorIDs []uint64, offset, limit int) ([]model.Post, error) {
	if len(authorIDs) == 0 {
		return nil, nil
	}
	in := map[uint64]bool{}
	for _, id := range authorIDs {
		in[id] = true
	}
	var out []model.Post
	for _, p := range f.feedOrder() {
		if in[p.AuthorID] {
			out = append(out, p)
		}
	}
	return pageSlice(out, offset, limit), nil
}

func (f *fakePostStore) ListShares(ctx context.Context, postID uint64, excludeIDs []uint64) ([]model.Post, error) {
	excl := map[uint64]bool{}
	for _, id := range excludeIDs {
		excl[id] = true
	}
	var out []model.Post
	for _, p := range f.feedOrder() {
		if p.SharedFromID != nil && *p.SharedFromID == postID && !excl[p.ID] {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePostStore) UpdateContent(ctx context.Context, postID, authorID uint64, fields map[string]any) (int64, error) {
	for _, p := range f.list {
		if p.ID == postID && p.AuthorID == authorID && p.Status == 0 {
			if v, ok := fields["content"]; ok {
				p.Content = v.(string)
			}
			if v, ok := fields["media"]; ok {
				p.Media = v.(string)
			}
			p.UpdatedAt = time.Now()
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakePostStore) SoftDelete(ctx context.Context, postID, authorID uint64) (int64, error) {
	for _, p := range f.list {
		if p.ID == postID && p.AuthorID == authorID && p.Status == 0 {
			p.Status = 1
			return 1, nil
		}
	}
	return 0, nil
}
