package service

import (
	"context"
	"log"
	"time"

	"worknet/internal/model"
	"worknet/internal/pkg"
	"worknet/internal/repository/mysql"
)

// FollowStore 关注索引的存储契约
type FollowStore interface {
	Follow(ctx context.Context, userID, companyID uint64) (bool, error)
	Unfollow(ctx context.Context, userID, companyID uint64) (bool, error)
	IsFollowing(ctx context.Context, userID, companyID uint64) (bool, error)
	FollowedCompanyIDs(ctx context.Context, userID uint64) ([]uint64, error)
	FollowerCount(ctx context.Context, companyID uint64) (int64, error)
}

type OutboxStore interface {
	ListPending(ctx context.Context, batchSize int) ([]model.FollowOutbox, error)
	MarkFailed(ctx context.Context, id uint64) error
	MarkSent(ctx context.Context, id uint64) error
}

type ReconcilerStore interface {
	ScanBatch(ctx context.Context, batchSize int, lastID uint64) ([]mysql.CounterRow, uint64, error)
	RealLikes(ctx context.Context, postID uint64) (int64, error)
	RealComments(ctx context.Context, postID uint64) (int64, error)
	FixLikes(ctx context.Context, postID uint64, real int64) error
	FixComments(ctx context.Context, postID uint64, real int64) error
}

type FollowService struct {
	repo      FollowStore
	companies CompanyStore
}

type Sender func(ctx context.Context, ob *model.FollowOutbox) error

// OutboxRelayer 定时把 pending 的关注事件投递出去
type OutboxRelayer struct {
	repo      OutboxStore
	batchSize int
	interval  time.Duration
	sender    Sender
}

// PostCountReconciler 帖子计数对账任务：定期用台账表的真实数量
// 修正 likes_count/comments_count 的漂移
type PostCountReconciler struct {
	repo      ReconcilerStore
	batchSize int
	interval  time.Duration
}

func NewFollowService() *FollowService {
	return &FollowService{
		repo:      &mysql.FollowerRepository{DB: mysql.DB},
		companies: &mysql.CompanyRepository{DB: mysql.DB},
	}
}

func NewOutboxRelayer(sender Sender) *OutboxRelayer {
	return &OutboxRelayer{
		repo:      &mysql.OutboxRepository{DB: mysql.DB},
		batchSize: 200,
		interval:  time.Second,
		sender:    sender,
	}
}

func NewPostCountReconciler() *PostCountReconciler {
	return &PostCountReconciler{
		repo:      &mysql.PostCounterReconcilerRepo{DB: mysql.DB},
		batchSize: 500,
		interval:  5 * time.Minute,
	}
}

// Follow 幂等关注：重复关注返回 changed=false，不报错
func (s *FollowService) Follow(ctx context.Context, userID, companyID uint64) (bool, error) {
	if userID == 0 || companyID == 0 {
		return false, ErrInvalidID
	}
	// 公司必须真实存在，幂等性只对重复动作生效
	if _, err := s.companies.FindByID(ctx, companyID); err != nil {
		return false, err
	}
	return s.repo.Follow(ctx, userID, companyID)
}

// Unfollow 幂等取关：从未关注过也视为成功
func (s *FollowService) Unfollow(ctx context.Context, userID, companyID uint64) (bool, error) {
	if userID == 0 || companyID == 0 {
		return false, ErrInvalidID
	}
	return s.repo.Unfollow(ctx, userID, companyID)
}

func (s *FollowService) IsFollowing(ctx context.Context, userID, companyID uint64) (bool, error) {
	if userID == 0 || companyID == 0 {
		return false, ErrInvalidID
	}
	return s.repo.IsFollowing(ctx, userID, companyID)
}

func (s *FollowService) FollowedCompanyIDs(ctx context.Context, userID uint64) ([]uint64, error) {
	if userID == 0 {
		return nil, ErrInvalidID
	}
	return s.repo.FollowedCompanyIDs(ctx, userID)
}

func (s *FollowService) FollowerCount(ctx context.Context, companyID uint64) (int64, error) {
	if companyID == 0 {
		return 0, ErrInvalidID
	}
	return s.repo.FollowerCount(ctx, companyID)
}

// Run outbox 投递循环
func (r *OutboxRelayer) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.drainOnce(ctx)
		}
	}
}

func (r *OutboxRelayer) drainOnce(ctx context.Context) {
	rows, err := r.repo.ListPending(ctx, r.batchSize)
	if err != nil {
		log.Printf("outbox query err: %v", err)
		return
	}
	for i := range rows {
		ob := rows[i]
		if err = r.sender(ctx, &ob); err != nil {
			_ = r.repo.MarkFailed(ctx, ob.ID)
			continue
		}
		_ = r.repo.MarkSent(ctx, ob.ID)
	}
}

// LogSender 未配置 Kafka 时的兜底 sender，只打日志
func LogSender(ctx context.Context, ob *model.FollowOutbox) error {
	log.Printf("OUTBOX SEND type=%s company=%d user=%d payload=%s", ob.EventType, ob.CompanyID, ob.UserID, ob.Payload)
	return nil
}

// KafkaSender 按公司 id 作为 key 投递，同一公司的事件保序
func KafkaSender(p *pkg.KafkaProducer) Sender {
	return func(ctx context.Context, ob *model.FollowOutbox) error {
		return p.Send(ctx, pkg.MakeKeyFromID(ob.CompanyID), []byte(ob.Payload))
	}
}

// Run 对账定时任务启动器
func (r *PostCountReconciler) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.reconcileOnce(ctx)
		}
	}
}

// reconcileOnce 全表走一遍：keyset 逐批扫描，发现漂移就修正并留日志
func (r *PostCountReconciler) reconcileOnce(ctx context.Context) {
	var lastID uint64
	for {
		rows, next, err := r.repo.ScanBatch(ctx, r.batchSize, lastID)
		if err != nil {
			log.Printf("reconcile scan err: %v", err)
			return
		}
		if len(rows) == 0 {
			return
		}
		for _, row := range rows {
			realLikes, err := r.repo.RealLikes(ctx, row.ID)
			if err != nil {
				continue
			}
			if realLikes != row.LikesCount {
				log.Printf("reconcile: post=%d likes_count %d -> %d", row.ID, row.LikesCount, realLikes)
				_ = r.repo.FixLikes(ctx, row.ID, realLikes)
			}
			realComments, err := r.repo.RealComments(ctx, row.ID)
			if err != nil {
				continue
			}
			if realComments != row.CommentsCount {
				log.Printf("reconcile: post=%d comments_count %d -> %d", row.ID, row.CommentsCount, realComments)
				_ = r.repo.FixComments(ctx, row.ID, realComments)
			}
		}
		lastID = next
	}
}
