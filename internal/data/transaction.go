package data

import (
	"Lyra_Tube/internal/repository"

	"gorm.io/gorm"
)

// UnitOfWork 事务管理器接口：把一个函数包裹在数据库事务中执行，
// 并为它提供绑定到该事务的 Repositories
type UnitOfWork interface {
	Execute(func(repos *TransactionalRepositories) error) error
}

// TransactionalRepositories 持有所有需要在同一个事务中操作的 Repository。
// 观看事件的消费要在一个事务里同时加播放量和写观看历史，"一荣俱荣，一损俱损"
type TransactionalRepositories struct {
	VideoRepo repository.VideoRepository
	UserRepo  repository.UserRepository
}

// db是事务的入口和管理者
type gormUnitOfWork struct {
	db        *gorm.DB
	videoRepo repository.VideoRepository
	userRepo  repository.UserRepository
}

// NewUnitOfWork 创建一个基于GORM的"工作单元"。接收的是原始的、非事务的 repositories
func NewUnitOfWork(db *gorm.DB, videoRepo repository.VideoRepository, userRepo repository.UserRepository) UnitOfWork {
	return &gormUnitOfWork{
		db:        db,
		videoRepo: videoRepo,
		userRepo:  userRepo,
	}
}

// Execute 用gorm开启事务，把绑定了事务的Repo副本注入到业务函数里，
// 函数返回error则整体回滚，返回nil则提交
func (u *gormUnitOfWork) Execute(fn func(repos *TransactionalRepositories) error) error {
	return u.db.Transaction(func(tx *gorm.DB) error {
		transactionalRepos := &TransactionalRepositories{
			VideoRepo: u.videoRepo.WithTx(tx),
			UserRepo:  u.userRepo.WithTx(tx),
		}
		return fn(transactionalRepos)
	})
}
