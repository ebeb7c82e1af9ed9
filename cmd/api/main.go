package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/xiebiao/warehouse/docs"
	apppurchase "github.com/xiebiao/warehouse/internal/application/purchase"
	appregistry "github.com/xiebiao/warehouse/internal/application/registry"
	appstock "github.com/xiebiao/warehouse/internal/application/stock"
	"github.com/xiebiao/warehouse/internal/infrastructure/config"
	"github.com/xiebiao/warehouse/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/warehouse/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/warehouse/internal/interface/http/handler"
	"github.com/xiebiao/warehouse/internal/interface/http/middleware"
	"github.com/xiebiao/warehouse/pkg/jwt"
	"github.com/xiebiao/warehouse/pkg/logger"
	"github.com/xiebiao/warehouse/pkg/metrics"
	"github.com/xiebiao/warehouse/pkg/mq"
	"github.com/xiebiao/warehouse/pkg/response"
)

// @title           书店仓储核心API
// @version         1.0
// @description     书店库存与采购核心:地点台账、调拨、低库存告警、采购审批与收货
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization

// main 主程序入口(手动依赖注入,wire.go提供Wire版本)
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 2. 初始化日志
	if _, err := logger.Init(logger.Options{
		Level:        cfg.Log.Level,
		Format:       cfg.Log.Format,
		Output:       cfg.Log.Output,
		EnableCaller: cfg.Log.EnableCaller,
	}); err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer logger.Sync()

	logger.L().Info("配置加载成功",
		zap.Int("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("database", fmt.Sprintf("%s:%d/%s", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)),
		zap.String("redis", cfg.Redis.Addr()),
		zap.Bool("mq_enabled", cfg.MQ.Enabled),
	)

	// 3. 初始化指标
	metrics.InitMetrics()

	// 4. 初始化数据库连接
	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	// 5. 初始化Redis连接与库存读缓存
	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatalf("初始化Redis失败: %v", err)
	}
	stockCache := redis.NewStockCache(redisClient, cfg.Redis.CacheTTL)

	// 6. 初始化事件发布者(可选,未启用时静默降级)
	var (
		stockPublisher    appstock.EventPublisher
		purchasePublisher apppurchase.EventPublisher
	)
	if cfg.MQ.Enabled {
		publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange)
		if err != nil {
			log.Fatalf("初始化RabbitMQ失败: %v", err)
		}
		defer publisher.Close()
		stockPublisher = publisher
		purchasePublisher = publisher
	}

	// 7. 依赖注入(手动组装)
	// Repository ← UseCase ← Handler

	// 基础设施层
	locationRepo := mysql.NewLocationRepository(db)
	vendorRepo := mysql.NewVendorRepository(db)
	stockRepo := mysql.NewStockRepository(db)
	transferRepo := mysql.NewTransferRepository(db)
	alertRepo := mysql.NewAlertRepository(db)
	requestRepo := mysql.NewPurchaseRequestRepository(db)
	orderRepo := mysql.NewPurchaseOrderRepository(db)
	txManager := mysql.NewTxManager(db)
	jwtManager := jwt.NewManager(cfg.JWT.Secret)

	// 应用层:告警监控器(台账变更后的派生动作)
	alertMonitor := appstock.NewAlertMonitor(stockRepo, alertRepo, stockPublisher)

	// 应用层:地点与供应商
	createLocationUC := appregistry.NewCreateLocationUseCase(locationRepo)
	updateLocationUC := appregistry.NewUpdateLocationUseCase(locationRepo)
	trashLocationUC := appregistry.NewTrashLocationUseCase(locationRepo)
	restoreLocationUC := appregistry.NewRestoreLocationUseCase(locationRepo)
	listLocationsUC := appregistry.NewListLocationsUseCase(locationRepo)
	getLocationUC := appregistry.NewGetLocationUseCase(locationRepo)
	createVendorUC := appregistry.NewCreateVendorUseCase(vendorRepo)
	updateVendorUC := appregistry.NewUpdateVendorUseCase(vendorRepo)
	trashVendorUC := appregistry.NewTrashVendorUseCase(vendorRepo)
	restoreVendorUC := appregistry.NewRestoreVendorUseCase(vendorRepo)
	listVendorsUC := appregistry.NewListVendorsUseCase(vendorRepo)
	getVendorUC := appregistry.NewGetVendorUseCase(vendorRepo)

	// 应用层:库存台账
	setStockUC := appstock.NewSetStockUseCase(stockRepo, locationRepo, txManager, alertMonitor, stockCache)
	adjustStockUC := appstock.NewAdjustStockUseCase(stockRepo, alertMonitor, stockCache)
	getStockUC := appstock.NewGetStockUseCase(stockRepo)
	listStockUC := appstock.NewListStockUseCase(stockRepo, stockCache)
	transferUC := appstock.NewTransferUseCase(stockRepo, transferRepo, locationRepo, txManager, alertMonitor, stockPublisher, stockCache)
	listTransfersUC := appstock.NewListTransfersUseCase(transferRepo)
	listAlertsUC := appstock.NewListAlertsUseCase(alertRepo)

	// 应用层:采购
	createRequestUC := apppurchase.NewCreateRequestUseCase(requestRepo, locationRepo)
	submitRequestUC := apppurchase.NewSubmitRequestUseCase(requestRepo)
	reviewRequestUC := apppurchase.NewReviewRequestUseCase(requestRepo)
	completeRequestUC := apppurchase.NewCompleteRequestUseCase(requestRepo)
	listRequestsUC := apppurchase.NewListRequestsUseCase(requestRepo)
	getRequestUC := apppurchase.NewGetRequestUseCase(requestRepo)
	createOrderUC := apppurchase.NewCreateOrderUseCase(orderRepo, requestRepo, vendorRepo, txManager)
	batchOrdersUC := apppurchase.NewCreateOrdersBatchUseCase(createOrderUC)
	receiveOrderUC := apppurchase.NewReceiveOrderUseCase(orderRepo, requestRepo, stockRepo, txManager, alertMonitor, purchasePublisher, stockCache)
	cancelOrderUC := apppurchase.NewCancelOrderUseCase(orderRepo, txManager)
	listOrdersUC := apppurchase.NewListOrdersUseCase(orderRepo)
	getOrderUC := apppurchase.NewGetOrderUseCase(orderRepo)

	// 接口层
	locationHandler := handler.NewLocationHandler(createLocationUC, updateLocationUC, trashLocationUC, restoreLocationUC, listLocationsUC, getLocationUC)
	vendorHandler := handler.NewVendorHandler(createVendorUC, updateVendorUC, trashVendorUC, restoreVendorUC, listVendorsUC, getVendorUC)
	stockHandler := handler.NewStockHandler(setStockUC, adjustStockUC, getStockUC, listStockUC, transferUC, listTransfersUC, listAlertsUC)
	requestHandler := handler.NewPurchaseRequestHandler(createRequestUC, submitRequestUC, reviewRequestUC, completeRequestUC, listRequestsUC, getRequestUC)
	orderHandler := handler.NewPurchaseOrderHandler(createOrderUC, batchOrdersUC, receiveOrderUC, cancelOrderUC, listOrdersUC, getOrderUC)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager)

	// 8. 初始化Gin引擎
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(middleware.Metrics())

	// 9. 注册路由
	registerRoutes(r, locationHandler, vendorHandler, stockHandler, requestHandler, orderHandler, authMiddleware)

	// 10. 启动服务
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.L().Info("服务启动", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		log.Fatalf("启动服务失败: %v", err)
	}
}

// registerRoutes 注册路由
// 约定:查询类接口公开,所有变更类接口要求操作人身份
func registerRoutes(
	r *gin.Engine,
	locationHandler *handler.LocationHandler,
	vendorHandler *handler.VendorHandler,
	stockHandler *handler.StockHandler,
	requestHandler *handler.PurchaseRequestHandler,
	orderHandler *handler.PurchaseOrderHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	auth := authMiddleware.RequireActor()
	{
		// 地点模块
		locations := v1.Group("/locations")
		{
			locations.GET("", locationHandler.List)
			locations.GET("/:id", locationHandler.Get)
			locations.POST("", auth, locationHandler.Create)
			locations.PUT("/:id", auth, locationHandler.Update)
			locations.DELETE("/:id", auth, locationHandler.Trash)
			locations.PATCH("/:id/restore", auth, locationHandler.Restore)

			// 地点维度的库存台账
			locations.GET("/:id/stocks", stockHandler.ListStocks)
			locations.GET("/:id/stocks/:bookId", stockHandler.GetStock)
			locations.PUT("/:id/stocks/:bookId", auth, stockHandler.SetStock)
			locations.POST("/:id/stocks/:bookId/credit", auth, stockHandler.Credit)
			locations.POST("/:id/stocks/:bookId/debit", auth, stockHandler.Debit)
		}

		// 供应商模块
		vendors := v1.Group("/vendors")
		{
			vendors.GET("", vendorHandler.List)
			vendors.GET("/:id", vendorHandler.Get)
			vendors.POST("", auth, vendorHandler.Create)
			vendors.PUT("/:id", auth, vendorHandler.Update)
			vendors.DELETE("/:id", auth, vendorHandler.Trash)
			vendors.PATCH("/:id/restore", auth, vendorHandler.Restore)
		}

		// 调拨模块
		transfers := v1.Group("/transfers")
		{
			transfers.GET("", stockHandler.ListTransfers)
			transfers.POST("", auth, stockHandler.Transfer)
		}

		// 告警模块
		v1.GET("/alerts", stockHandler.ListAlerts)

		// 采购申请模块
		requests := v1.Group("/purchase-requests")
		{
			requests.GET("", requestHandler.List)
			requests.GET("/:id", requestHandler.Get)
			requests.POST("", auth, requestHandler.Create)
			requests.PATCH("/:id/submit", auth, requestHandler.Submit)
			requests.PATCH("/:id/review", auth, requestHandler.Review)
			requests.PATCH("/:id/complete", auth, requestHandler.Complete)
		}

		// 采购单模块
		orders := v1.Group("/purchase-orders")
		{
			orders.GET("", orderHandler.List)
			orders.GET("/:id", orderHandler.Get)
			orders.POST("", auth, orderHandler.Create)
			orders.POST("/batch", auth, orderHandler.CreateBatch)
			orders.PATCH("/:id/receive", auth, orderHandler.Receive)
			orders.PATCH("/:id/cancel", auth, orderHandler.Cancel)
		}
	}
}
