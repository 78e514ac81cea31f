package user

import (
	"context"
)

// Repository 用户仓储接口
// 设计说明:
// 1. 接口定义在domain层(依赖倒置原则)，实现在infrastructure/persistence/mysql
// 2. 邮箱/用户名唯一性由数据库UNIQUE索引保证，实现负责把冲突翻译成业务错误
// 3. 便于单元测试(Mock此接口)
type Repository interface {
	// Create 创建用户
	// 邮箱冲突返回errors.ErrEmailDuplicate，用户名冲突返回ErrUsernameDuplicate
	Create(ctx context.Context, user *User) error

	// FindByID 根据ID查找用户，不存在返回errors.ErrUserNotFound
	FindByID(ctx context.Context, id uint) (*User, error)

	// FindByEmail 根据邮箱查找用户
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByUsername 根据用户名查找用户
	FindByUsername(ctx context.Context, username string) (*User, error)

	// Update 更新用户信息
	Update(ctx context.Context, user *User) error
}

// AddressRepository 收货地址仓储接口
type AddressRepository interface {
	// Create 创建地址(首个地址自动成为默认)
	Create(ctx context.Context, addr *Address) error

	// FindByID 根据ID查找地址，不存在返回ErrAddressNotFound
	FindByID(ctx context.Context, id uint) (*Address, error)

	// ListByUser 用户的全部地址(默认地址在前)
	ListByUser(ctx context.Context, userID uint) ([]*Address, error)

	// SetDefault 将某地址设为默认(同事务取消其余默认标志)
	SetDefault(ctx context.Context, userID, addressID uint) error

	// CountByUser 用户的地址数量
	CountByUser(ctx context.Context, userID uint) (int64, error)
}

// PaymentRepository 支付方式仓储接口
type PaymentRepository interface {
	// Create 创建支付方式
	Create(ctx context.Context, pm *PaymentMethod) error

	// FindByID 根据ID查找，不存在返回ErrPaymentNotFound
	FindByID(ctx context.Context, id uint) (*PaymentMethod, error)

	// ListByUser 用户的全部支付方式(默认在前)
	ListByUser(ctx context.Context, userID uint) ([]*PaymentMethod, error)

	// CountByUser 用户的支付方式数量
	CountByUser(ctx context.Context, userID uint) (int64, error)

	// Delete 删除支付方式
	Delete(ctx context.Context, id uint) error

	// SetDefault 将某支付方式设为默认
	SetDefault(ctx context.Context, userID, paymentID uint) error
}

// FavoriteRepository 收藏仓储接口
type FavoriteRepository interface {
	// Create 收藏图书，(用户,图书)唯一索引冲突返回ErrAlreadyFavorited
	Create(ctx context.Context, fav *Favorite) error

	// Delete 取消收藏
	Delete(ctx context.Context, userID, bookID uint) error

	// ListByUser 用户的收藏(按收藏时间倒序)
	ListByUser(ctx context.Context, userID uint) ([]*Favorite, error)

	// Exists 是否已收藏
	Exists(ctx context.Context, userID, bookID uint) (bool, error)
}

// PlaceRepository 参照数据仓储接口(城市/图书馆/书店)
type PlaceRepository interface {
	// ListCities 全部城市(按名称排序)
	ListCities(ctx context.Context) ([]*City, error)

	// ListLibraries 图书馆列表，cityID为0时返回全部
	ListLibraries(ctx context.Context, cityID uint) ([]*Library, error)

	// ListStores 书店列表，cityID为0时返回全部
	ListStores(ctx context.Context, cityID uint) ([]*Store, error)

	// FindStoreByID 根据ID查找书店，不存在返回errors.ErrStoreNotFound
	FindStoreByID(ctx context.Context, id uint) (*Store, error)

	// FindLibraryByID 根据ID查找图书馆
	FindLibraryByID(ctx context.Context, id uint) (*Library, error)
}

// RequestRepository 馆员工单仓储接口
type RequestRepository interface {
	// Create 创建工单
	Create(ctx context.Context, req *LibrarianRequest) error

	// FindByID 根据ID查找工单，不存在返回ErrRequestNotFound
	FindByID(ctx context.Context, id uint) (*LibrarianRequest, error)

	// Update 更新工单(状态流转)
	Update(ctx context.Context, req *LibrarianRequest) error

	// ListOpen 待处理工单(open/in_progress，优先级高在前)
	ListOpen(ctx context.Context) ([]*LibrarianRequest, error)

	// ListByUser 某用户发起的全部工单
	ListByUser(ctx context.Context, userID uint) ([]*LibrarianRequest, error)

	// ListLibrarianIDs 全部馆员的用户ID(新工单广播通知用)
	ListLibrarianIDs(ctx context.Context) ([]uint, error)
}
