// Package http 组装Gin路由
package http

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/xiebiao/biblioteca/internal/infrastructure/config"
	"github.com/xiebiao/biblioteca/internal/interface/http/handler"
	"github.com/xiebiao/biblioteca/internal/interface/http/middleware"
	"github.com/xiebiao/biblioteca/pkg/metrics"
	"github.com/xiebiao/biblioteca/pkg/response"
)

// NewRouter 创建并配置Gin引擎
// 路由分三层:公开接口、登录接口、角色接口(librarian/bookseller)
func NewRouter(
	cfg *config.Config,
	bookHandler *handler.BookHandler,
	loanHandler *handler.LoanHandler,
	inventoryHandler *handler.InventoryHandler,
	orderHandler *handler.OrderHandler,
	notificationHandler *handler.NotificationHandler,
	feedbackHandler *handler.FeedbackHandler,
	userHandler *handler.UserHandler,
	placeHandler *handler.PlaceHandler,
	requestHandler *handler.RequestHandler,
	auth *middleware.AuthMiddleware,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(metrics.GinMiddleware())

	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{"message": "pong", "status": "healthy"})
	})

	// Prometheus指标端点
	r.GET("/metrics", metrics.Handler())

	// Swagger文档(访问/swagger/index.html)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		// ===== 公开接口 =====
		users := v1.Group("/users")
		{
			users.POST("/register", userHandler.Register)
			users.POST("/login", userHandler.Login)
		}

		// 参照数据(注册选从属单位、下单选书店)
		v1.GET("/cities", placeHandler.ListCities)
		v1.GET("/libraries", placeHandler.ListLibraries)
		v1.GET("/stores", placeHandler.ListStores)

		// 图书浏览与检索
		books := v1.Group("/books")
		{
			books.GET("", bookHandler.ListBooks)
			books.GET("/search", bookHandler.SearchByTitle)
			books.GET("/by-author", bookHandler.SearchByAuthor)
			books.GET("/authors", bookHandler.ListAuthors)
			books.GET("/genres", bookHandler.ListGenres)
			books.GET("/:id", bookHandler.GetBook)
			books.GET("/:id/stock", inventoryHandler.ListBookStock)
			books.GET("/:id/reviews", feedbackHandler.ListBookReviews)
		}

		// ===== 登录接口 =====
		authorized := v1.Group("")
		authorized.Use(auth.RequireAuth())
		{
			authorized.POST("/users/logout", userHandler.Logout)

			// 借阅(读者)
			authorized.POST("/books/:id/reserve", loanHandler.Reserve)
			authorized.POST("/books/:id/waitlist", loanHandler.JoinWaitlist)
			authorized.GET("/loans/mine", loanHandler.MyLoans)

			// 订单
			authorized.POST("/orders", orderHandler.CreateOrder)
			authorized.GET("/orders", orderHandler.ListMyOrders)
			authorized.GET("/orders/:id", orderHandler.GetOrder)
			authorized.POST("/orders/:id/cancel", orderHandler.CancelOrder)

			// 通知
			authorized.GET("/notifications", notificationHandler.ListUnread)
			authorized.GET("/notifications/count", notificationHandler.CountUnread)
			authorized.PUT("/notifications/read", notificationHandler.MarkAllRead)

			// 书评
			authorized.POST("/reviews", feedbackHandler.PostReview)
			authorized.GET("/reviews/mine", feedbackHandler.MyReviews)
			authorized.POST("/reviews/:id/vote", feedbackHandler.VoteReview)

			// 个人资料
			profile := authorized.Group("/profile")
			{
				profile.POST("/addresses", userHandler.AddAddress)
				profile.GET("/addresses", userHandler.ListAddresses)
				profile.PUT("/addresses/:id/default", userHandler.SetDefaultAddress)
				profile.POST("/payments", userHandler.AddPaymentMethod)
				profile.GET("/payments", userHandler.ListPaymentMethods)
				profile.DELETE("/payments/:id", userHandler.RemovePaymentMethod)
				profile.PUT("/payments/:id/default", userHandler.SetDefaultPayment)
				profile.POST("/favorites/:id", userHandler.SaveFavorite)
				profile.DELETE("/favorites/:id", userHandler.RemoveFavorite)
				profile.GET("/favorites", userHandler.ListFavorites)
			}

			// 工单
			authorized.POST("/requests", requestHandler.Submit)
			authorized.GET("/requests/mine", requestHandler.ListMine)
		}

		// ===== 馆员接口 =====
		librarian := v1.Group("")
		librarian.Use(auth.RequireAuth(), auth.RequireRole("librarian"))
		{
			librarian.POST("/books", bookHandler.AddBook)
			librarian.PUT("/books/:id", bookHandler.EditBook)
			librarian.DELETE("/books/:id", bookHandler.RemoveBook)

			librarian.POST("/loans/books/:id/borrow", loanHandler.Borrow)
			librarian.POST("/loans/books/:id/return", loanHandler.Return)
			librarian.POST("/loans/reservations/sweep", loanHandler.SweepReservations)

			librarian.PUT("/reviews/:id/moderate", feedbackHandler.ModerateReview)

			librarian.GET("/requests/open", requestHandler.ListOpen)
			librarian.PUT("/requests/:id/status", requestHandler.Move)
		}

		// ===== 书店人员接口 =====
		bookseller := v1.Group("")
		bookseller.Use(auth.RequireAuth(), auth.RequireRole("bookseller"))
		{
			bookseller.PUT("/inventory", inventoryHandler.AdjustStock)
			bookseller.GET("/inventory", inventoryHandler.ListMyStoreStock)

			bookseller.POST("/orders/:id/advance", orderHandler.AdvanceOrder)
		}
	}

	return r
}
