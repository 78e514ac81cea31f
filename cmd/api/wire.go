//go:build wireinject
// +build wireinject

// Wire依赖注入配置
//
// Wire在编译期生成依赖组装代码(wire_gen.go)，零运行时开销、类型安全。
// 修改依赖关系后运行:
//
//	wire gen ./cmd/api
package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"

	appcatalog "github.com/xiebiao/biblioteca/internal/application/catalog"
	appfeedback "github.com/xiebiao/biblioteca/internal/application/feedback"
	appinventory "github.com/xiebiao/biblioteca/internal/application/inventory"
	apploan "github.com/xiebiao/biblioteca/internal/application/loan"
	appnotification "github.com/xiebiao/biblioteca/internal/application/notification"
	apporder "github.com/xiebiao/biblioteca/internal/application/order"
	appuser "github.com/xiebiao/biblioteca/internal/application/user"
	"github.com/xiebiao/biblioteca/internal/domain/catalog"
	"github.com/xiebiao/biblioteca/internal/domain/feedback"
	"github.com/xiebiao/biblioteca/internal/domain/inventory"
	"github.com/xiebiao/biblioteca/internal/domain/loan"
	"github.com/xiebiao/biblioteca/internal/domain/notification"
	"github.com/xiebiao/biblioteca/internal/domain/user"
	"github.com/xiebiao/biblioteca/internal/infrastructure/config"
	"github.com/xiebiao/biblioteca/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/biblioteca/internal/infrastructure/persistence/redis"
	ifacehttp "github.com/xiebiao/biblioteca/internal/interface/http"
	"github.com/xiebiao/biblioteca/internal/interface/http/handler"
	"github.com/xiebiao/biblioteca/internal/interface/http/middleware"
)

// infrastructureSet 基础设施:配置、MySQL、Redis、MQ
var infrastructureSet = wire.NewSet(
	config.Load,
	mysql.NewDB,
	redis.NewClient,
	providePublisher,
)

// repositorySet 仓储实现
var repositorySet = wire.NewSet(
	mysql.NewUserRepository,
	mysql.NewBookRepository,
	mysql.NewLoanRepository,
	mysql.NewInventoryRepository,
	mysql.NewOrderRepository,
	mysql.NewNotificationRepository,
	mysql.NewFeedbackRepository,
	mysql.NewAddressRepository,
	mysql.NewPaymentRepository,
	mysql.NewFavoriteRepository,
	mysql.NewPlaceRepository,
	mysql.NewRequestRepository,
	provideTxManager,
)

// domainSet 领域服务
var domainSet = wire.NewSet(
	catalog.NewService,
	loan.NewService,
	inventory.NewService,
	notification.NewService,
	feedback.NewService,
	user.NewService,
	user.NewProfileService,
	user.NewRequestService,
)

// applicationSet 应用层用例
var applicationSet = wire.NewSet(
	appcatalog.NewAddBookUseCase,
	appcatalog.NewEditBookUseCase,
	appcatalog.NewRemoveBookUseCase,
	appcatalog.NewListBooksUseCase,
	appcatalog.NewSearchBooksUseCase,
	appcatalog.NewGetBookUseCase,
	apploan.NewBorrowBookUseCase,
	apploan.NewReturnBookUseCase,
	apploan.NewReserveBookUseCase,
	apploan.NewJoinWaitlistUseCase,
	apploan.NewMyLoansUseCase,
	apploan.NewSweepReservationsUseCase,
	appinventory.NewAdjustStockUseCase,
	appinventory.NewListStockUseCase,
	apporder.NewCreateOrderUseCase,
	apporder.NewAdvanceOrderUseCase,
	apporder.NewCancelOrderUseCase,
	apporder.NewListMyOrdersUseCase,
	apporder.NewGetOrderUseCase,
	appnotification.NewNotificationUseCase,
	appfeedback.NewReviewUseCase,
	appuser.NewRegisterUseCase,
	appuser.NewLoginUseCase,
	appuser.NewLogoutUseCase,
	appuser.NewProfileUseCase,
	appuser.NewPlacesUseCase,
	appuser.NewRequestUseCase,
)

// middlewareSet JWT、会话与认证中间件
var middlewareSet = wire.NewSet(
	provideJWTManager,
	provideSessionStore,
	middleware.NewAuthMiddleware,
)

// handlerSet HTTP处理器
var handlerSet = wire.NewSet(
	handler.NewBookHandler,
	handler.NewLoanHandler,
	handler.NewInventoryHandler,
	handler.NewOrderHandler,
	handler.NewNotificationHandler,
	handler.NewFeedbackHandler,
	handler.NewUserHandler,
	handler.NewPlaceHandler,
	handler.NewRequestHandler,
)

// InitializeApp 组装整个应用，返回配置好的Gin引擎
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		middlewareSet,
		handlerSet,
		ifacehttp.NewRouter,
	)
	return nil, nil
}
