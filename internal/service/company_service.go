package service

import (
	"context"

	"worknet/internal/model"
	"worknet/internal/repository/mysql"
)

// CompanyStore 公司目录的存储契约。
// 关注集合的包含/排除过滤是显式方法，业务层不感知底层查询语法
type CompanyStore interface {
	Create(ctx context.Context, c *model.Company) error
	FindByID(ctx context.Context, id uint64) (*model.Company, error)
	MetaData(ctx context.Context, id uint64) (*model.Company, error)
	SearchByName(ctx context.Context, name string) ([]model.Company, error)
	ListPage(ctx context.Context, offset, limit int) ([]model.Company, error)
	ListByIDs(ctx context.Context, ids []uint64, offset, limit int) ([]model.Company, error)
	ListExcludingIDs(ctx context.Context, ids []uint64, offset, limit int) ([]model.Company, error)
	ListByEmployer(ctx context.Context, employerID uint64) ([]model.Company, error)
	EmployerIDs(ctx context.Context, companyIDs []uint64) ([]uint64, error)
	Update(ctx context.Context, id uint64, fields map[string]any) (*model.Company, error)
	DeleteByID(ctx context.Context, id uint64) (*model.Company, error)
}

// CompanyService 公司目录 + 关注维度的分页视图。
// 统一分页约定：page 从 0 开始，offset = page*limit，
// 返回的页码是「下一页该请求的值」即 page+1
type CompanyService struct {
	repo    CompanyStore
	follows FollowStore
}

func NewCompanyService() *CompanyService {
	return &CompanyService{
		repo:    &mysql.CompanyRepository{DB: mysql.DB},
		follows: &mysql.FollowerRepository{DB: mysql.DB},
	}
}

// normalizePage 页码与页大小的统一收口
func normalizePage(page, limit int) (offset, size, p int) {
	if page < 0 {
		page = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return page * limit, limit, page
}

// ListAll 全量公司分页
func (s *CompanyService) ListAll(ctx context.Context, page, limit int) ([]model.Company, int, error) {
	offset, size, p := normalizePage(page, limit)
	list, err := s.repo.ListPage(ctx, offset, size)
	if err != nil {
		return nil, 0, err
	}
	return list, p + 1, nil
}

// ListFollowed 只看用户已关注的公司
func (s *CompanyService) ListFollowed(ctx context.Context, userID uint64, page, limit int) ([]model.Company, int, error) {
	if userID == 0 {
		return nil, 0, ErrInvalidID
	}
	offset, size, p := normalizePage(page, limit)
	ids, err := s.follows.FollowedCompanyIDs(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	list, err := s.repo.ListByIDs(ctx, ids, offset, size)
	if err != nil {
		return nil, 0, err
	}
	return list, p + 1, nil
}

// ListNotFollowed 已关注集合的补集，关注为空时等价于 ListAll
func (s *CompanyService) ListNotFollowed(ctx context.Context, userID uint64, page, limit int) ([]model.Company, int, error) {
	if userID == 0 {
		return nil, 0, ErrInvalidID
	}
	offset, size, p := normalizePage(page, limit)
	ids, err := s.follows.FollowedCompanyIDs(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	list, err := s.repo.ListExcludingIDs(ctx, ids, offset, size)
	if err != nil {
		return nil, 0, err
	}
	return list, p + 1, nil
}

// Details 公司详情，顺带告知请求者是否已关注
func (s *CompanyService) Details(ctx context.Context, id, userID uint64) (*model.Company, bool, error) {
	if id == 0 {
		return nil, false, ErrInvalidID
	}
	company, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	followed := false
	if userID != 0 {
		if followed, err = s.follows.IsFollowing(ctx, userID, id); err != nil {
			return nil, false, err
		}
	}
	return company, followed, nil
}

func (s *CompanyService) MetaData(ctx context.Context, id uint64) (*model.Company, error) {
	if id == 0 {
		return nil, ErrInvalidID
	}
	return s.repo.MetaData(ctx, id)
}

func (s *CompanyService) SearchByName(ctx context.Context, name string) ([]model.Company, error) {
	return s.repo.SearchByName(ctx, name)
}

func (s *CompanyService) ListByEmployer(ctx context.Context, employerID uint64) ([]model.Company, error) {
	if employerID == 0 {
		return nil, ErrInvalidID
	}
	return s.repo.ListByEmployer(ctx, employerID)
}

func (s *CompanyService) Create(ctx context.Context, employerID uint64, name, description, profileImage string) (*model.Company, error) {
	if employerID == 0 {
		return nil, ErrInvalidID
	}
	if name == "" {
		return nil, ErrEmptyName
	}
	company := &model.Company{
		Name:         name,
		Description:  description,
		ProfileImage: profileImage,
		EmployerID:   employerID,
	}
	if err := s.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

func (s *CompanyService) Update(ctx context.Context, id uint64, fields map[string]any) (*model.Company, error) {
	if id == 0 {
		return nil, ErrInvalidID
	}
	if len(fields) == 0 {
		return s.repo.FindByID(ctx, id)
	}
	return s.repo.Update(ctx, id, fields)
}

func (s *CompanyService) Delete(ctx context.Context, id uint64) (*model.Company, error) {
	if id == 0 {
		return nil, ErrInvalidID
	}
	return s.repo.DeleteByID(ctx, id)
}
