//go:build wireinject
// +build wireinject

// Wire依赖注入配置
//
// 使用方式:
//
//	wire gen ./cmd/api
//
// 生成wire_gen.go后,main.go可改为调用InitializeApp()。
// 当前main.go保留手动组装版本,两者依赖图保持一致。

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	goredis "github.com/redis/go-redis/v9"

	apppurchase "github.com/xiebiao/warehouse/internal/application/purchase"
	appregistry "github.com/xiebiao/warehouse/internal/application/registry"
	appstock "github.com/xiebiao/warehouse/internal/application/stock"
	"github.com/xiebiao/warehouse/internal/infrastructure/config"
	"github.com/xiebiao/warehouse/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/warehouse/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/warehouse/internal/interface/http/handler"
	"github.com/xiebiao/warehouse/internal/interface/http/middleware"
	"github.com/xiebiao/warehouse/pkg/jwt"
	"github.com/xiebiao/warehouse/pkg/mq"
)

// infrastructureSet 基础设施层依赖
var infrastructureSet = wire.NewSet(
	config.Load,
	mysql.NewDB,
	redis.NewClient,
	provideStockCache,
	provideJWTManager,
	providePublisher,
	provideStockPublisher,
	providePurchasePublisher,
)

// repositorySet 仓储层依赖
var repositorySet = wire.NewSet(
	mysql.NewLocationRepository,
	mysql.NewVendorRepository,
	mysql.NewStockRepository,
	mysql.NewTransferRepository,
	mysql.NewAlertRepository,
	mysql.NewPurchaseRequestRepository,
	mysql.NewPurchaseOrderRepository,
	mysql.NewTxManager,
)

// applicationSet 应用层依赖
var applicationSet = wire.NewSet(
	appstock.NewAlertMonitor,
	appregistry.NewCreateLocationUseCase,
	appregistry.NewUpdateLocationUseCase,
	appregistry.NewTrashLocationUseCase,
	appregistry.NewRestoreLocationUseCase,
	appregistry.NewListLocationsUseCase,
	appregistry.NewGetLocationUseCase,
	appregistry.NewCreateVendorUseCase,
	appregistry.NewUpdateVendorUseCase,
	appregistry.NewTrashVendorUseCase,
	appregistry.NewRestoreVendorUseCase,
	appregistry.NewListVendorsUseCase,
	appregistry.NewGetVendorUseCase,
	appstock.NewSetStockUseCase,
	appstock.NewAdjustStockUseCase,
	appstock.NewGetStockUseCase,
	appstock.NewListStockUseCase,
	appstock.NewTransferUseCase,
	appstock.NewListTransfersUseCase,
	appstock.NewListAlertsUseCase,
	apppurchase.NewCreateRequestUseCase,
	apppurchase.NewSubmitRequestUseCase,
	apppurchase.NewReviewRequestUseCase,
	apppurchase.NewCompleteRequestUseCase,
	apppurchase.NewListRequestsUseCase,
	apppurchase.NewGetRequestUseCase,
	apppurchase.NewCreateOrderUseCase,
	apppurchase.NewCreateOrdersBatchUseCase,
	apppurchase.NewReceiveOrderUseCase,
	apppurchase.NewCancelOrderUseCase,
	apppurchase.NewListOrdersUseCase,
	apppurchase.NewGetOrderUseCase,
)

// interfaceSet 接口层依赖
var interfaceSet = wire.NewSet(
	handler.NewLocationHandler,
	handler.NewVendorHandler,
	handler.NewStockHandler,
	handler.NewPurchaseRequestHandler,
	handler.NewPurchaseOrderHandler,
	middleware.NewAuthMiddleware,
)

// 接口绑定:用例依赖接口,Wire需要知道用哪个实现
var bindSet = wire.NewSet(
	wire.Bind(new(appstock.TxManager), new(*mysql.TxManager)),
	wire.Bind(new(apppurchase.TxManager), new(*mysql.TxManager)),
	wire.Bind(new(appstock.StockCache), new(*redis.StockCache)),
	wire.Bind(new(apppurchase.StockCache), new(*redis.StockCache)),
	wire.Bind(new(apppurchase.AlertEvaluator), new(*appstock.AlertMonitor)),
)

// provideJWTManager 从配置创建JWT管理器
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(cfg.JWT.Secret)
}

// provideStockCache 从Redis客户端创建库存读缓存
func provideStockCache(client *goredis.Client, cfg *config.Config) *redis.StockCache {
	return redis.NewStockCache(client, cfg.Redis.CacheTTL)
}

// providePublisher 从配置创建MQ发布者
// MQ未启用时返回nil,由接口提供者降级为nil接口
func providePublisher(cfg *config.Config) (*mq.Publisher, error) {
	if !cfg.MQ.Enabled {
		return nil, nil
	}
	return mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange)
}

// provideStockPublisher 库存侧事件发布接口
// 显式判空转换,避免nil指针装进非nil接口绕过用例的判空降级
func provideStockPublisher(pub *mq.Publisher) appstock.EventPublisher {
	if pub == nil {
		return nil
	}
	return pub
}

// providePurchasePublisher 采购侧事件发布接口
func providePurchasePublisher(pub *mq.Publisher) apppurchase.EventPublisher {
	if pub == nil {
		return nil
	}
	return pub
}

// InitializeApp Wire注入器:声明最终要构造的目标
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		applicationSet,
		interfaceSet,
		bindSet,
		provideEngine,
	)
	return nil, nil
}

// provideEngine 组装Gin引擎并注册路由
func provideEngine(
	cfg *config.Config,
	locationHandler *handler.LocationHandler,
	vendorHandler *handler.VendorHandler,
	stockHandler *handler.StockHandler,
	requestHandler *handler.PurchaseRequestHandler,
	orderHandler *handler.PurchaseOrderHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(middleware.Metrics())
	registerRoutes(r, locationHandler, vendorHandler, stockHandler, requestHandler, orderHandler, authMiddleware)
	return r
}
