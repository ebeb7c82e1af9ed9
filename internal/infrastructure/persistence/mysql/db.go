package mysql

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/warehouse/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构（AutoMigrate）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	// 1. 构建DSN连接字符串
	dsn := cfg.Database.DSN()

	// 2. 配置GORM日志
	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	// 3. 连接数据库
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 4. 配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// 5. 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Println("✓ 数据库连接成功")

	// 6. 自动迁移表结构（开发环境）
	// 注意：生产环境应使用专门的迁移工具（如golang-migrate）
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
// 学习要点：AutoMigrate只会创建表、添加字段，不会删除或修改现有字段
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&LocationModel{},
		&VendorModel{},
		&StockRecordModel{},
		&TransferModel{},
		&AlertModel{},
		&PurchaseRequestModel{},
		&PurchaseOrderModel{},
		&PurchaseOrderItemModel{},
	)
}

// LocationModel GORM地点模型（仓库/门店）
// 设计说明：
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. domain/registry/location.go是领域实体，不依赖GORM
// 3. Code的"同类型未回收内唯一"无法用普通唯一索引表达
//    （回收站里的旧编码允许被复用），由仓储层查询校验
type LocationModel struct {
	ID        uint       `gorm:"primaryKey"`
	Kind      string     `gorm:"index:idx_kind_code;size:16;not null;comment:地点类型(WAREHOUSE/STORE)"`
	Code      string     `gorm:"index:idx_kind_code;size:50;not null;comment:编码"`
	Name      string     `gorm:"size:100;not null;comment:名称"`
	Address   string     `gorm:"size:255;comment:地址"`
	City      string     `gorm:"size:50;comment:城市"`
	Phone     string     `gorm:"size:30;comment:联系电话"`
	Active    bool       `gorm:"default:true;comment:是否启用"`
	TrashedAt *time.Time `gorm:"index;comment:回收时间(NULL表示正常)"`
	CreatedAt time.Time  `gorm:"comment:创建时间"`
	UpdatedAt time.Time  `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (LocationModel) TableName() string {
	return "locations"
}

// VendorModel GORM供应商模型
type VendorModel struct {
	ID          uint       `gorm:"primaryKey"`
	Code        string     `gorm:"index;size:50;not null;comment:编码"`
	Name        string     `gorm:"size:100;not null;comment:供应商名称"`
	ContactName string     `gorm:"size:50;comment:联系人"`
	Email       string     `gorm:"size:100;comment:联系邮箱"`
	Phone       string     `gorm:"size:30;comment:联系电话"`
	Active      bool       `gorm:"default:true;comment:是否启用"`
	TrashedAt   *time.Time `gorm:"index;comment:回收时间(NULL表示正常)"`
	CreatedAt   time.Time  `gorm:"comment:创建时间"`
	UpdatedAt   time.Time  `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (VendorModel) TableName() string {
	return "vendors"
}

// StockRecordModel GORM库存台账模型
// 设计说明：
// 1. (kind, location_id, book_id)复合唯一索引：一个地点一本书一行
// 2. Quantity非负由仓储层条件更新保证（UPDATE ... WHERE quantity + ? >= 0）
// 3. 永不硬删除，数量为0是合法终态
type StockRecordModel struct {
	ID                uint      `gorm:"primaryKey"`
	Kind              string    `gorm:"uniqueIndex:uk_ledger_key;size:16;not null;comment:地点类型"`
	LocationID        uint      `gorm:"uniqueIndex:uk_ledger_key;not null;comment:地点ID"`
	BookID            uint      `gorm:"uniqueIndex:uk_ledger_key;not null;comment:图书ID"`
	Quantity          int       `gorm:"not null;default:0;comment:当前数量"`
	LowStockThreshold int       `gorm:"not null;default:0;comment:低库存阈值"`
	CreatedAt         time.Time `gorm:"comment:创建时间"`
	UpdatedAt         time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (StockRecordModel) TableName() string {
	return "stock_records"
}

// TransferModel GORM调拨日志模型
// 只增不改（Append-Only），无UpdatedAt
type TransferModel struct {
	ID             uint      `gorm:"primaryKey"`
	BookID         uint      `gorm:"index;not null;comment:图书ID"`
	FromKind       string    `gorm:"size:16;not null;comment:源地点类型"`
	FromLocationID uint      `gorm:"index;not null;comment:源地点ID"`
	ToKind         string    `gorm:"size:16;not null;comment:目标地点类型"`
	ToLocationID   uint      `gorm:"index;not null;comment:目标地点ID"`
	Quantity       int       `gorm:"not null;comment:调拨数量"`
	Note           string    `gorm:"size:255;comment:备注"`
	ActorID        uint      `gorm:"not null;comment:操作人ID"`
	CreatedAt      time.Time `gorm:"index;comment:创建时间"`
}

// TableName 指定表名
func (TransferModel) TableName() string {
	return "stock_transfers"
}

// AlertModel GORM低库存告警模型
// Quantity/Threshold是告警打开时刻的快照
//
// OpenKey是生成列:OPEN状态时为"kind/location/book",其余状态为NULL。
// MySQL唯一索引允许多个NULL,因此uk_alert_open在数据库层保证
// 同一Key同时至多一条OPEN告警,历史RESOLVED行不受限
type AlertModel struct {
	ID         uint       `gorm:"primaryKey"`
	Kind       string     `gorm:"index:idx_alert_key;size:16;not null;comment:地点类型"`
	LocationID uint       `gorm:"index:idx_alert_key;not null;comment:地点ID"`
	BookID     uint       `gorm:"index:idx_alert_key;not null;comment:图书ID"`
	Status     string     `gorm:"index;size:16;not null;comment:状态(OPEN/RESOLVED)"`
	OpenKey    *string    `gorm:"->;type:varchar(64) GENERATED ALWAYS AS (IF(status = 'OPEN', CONCAT(kind, '/', location_id, '/', book_id), NULL)) STORED;uniqueIndex:uk_alert_open"`
	Quantity   int        `gorm:"not null;comment:打开时库存快照"`
	Threshold  int        `gorm:"not null;comment:打开时阈值快照"`
	OpenedAt   time.Time  `gorm:"comment:打开时间"`
	ResolvedAt *time.Time `gorm:"comment:解除时间"`
}

// TableName 指定表名
func (AlertModel) TableName() string {
	return "low_stock_alerts"
}

// PurchaseRequestModel GORM采购申请模型
type PurchaseRequestModel struct {
	ID                uint      `gorm:"primaryKey"`
	BookID            uint      `gorm:"index;not null;comment:图书ID"`
	WarehouseID       uint      `gorm:"index;not null;comment:目标仓库ID"`
	RequestedQuantity int       `gorm:"not null;comment:申请数量"`
	EstimatedCost     *int64    `gorm:"comment:预估成本(分)"`
	Status            string    `gorm:"index;size:20;not null;comment:状态"`
	ApprovedQuantity  *int      `gorm:"comment:审批数量"`
	ApprovedCost      *int64    `gorm:"comment:审批成本(分)"`
	ReviewNote        string    `gorm:"size:255;comment:审批备注"`
	RequestedBy       uint      `gorm:"not null;comment:申请人ID"`
	ApprovedBy        *uint     `gorm:"comment:审批人ID"`
	PurchaseOrderID   *uint     `gorm:"comment:关联采购单ID(至多设置一次)"`
	CreatedAt         time.Time `gorm:"index;comment:创建时间"`
	UpdatedAt         time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (PurchaseRequestModel) TableName() string {
	return "purchase_requests"
}

// PurchaseOrderModel GORM采购单模型
// 与PurchaseOrderItemModel是一对多关系
type PurchaseOrderModel struct {
	ID          uint                     `gorm:"primaryKey"`
	RequestID   uint                     `gorm:"index;not null;comment:来源采购申请ID"`
	VendorID    uint                     `gorm:"index;not null;comment:供应商ID"`
	WarehouseID uint                     `gorm:"index;not null;comment:收货仓库ID"`
	Status      string                   `gorm:"index;size:20;not null;comment:状态"`
	TotalCost   int64                    `gorm:"not null;comment:总成本(分,派生)"`
	Note        string                   `gorm:"size:255;comment:备注"`
	CreatedBy   uint                     `gorm:"not null;comment:创建人ID"`
	ApprovedBy  *uint                    `gorm:"comment:审批人ID"`
	ExpectedAt  *time.Time               `gorm:"comment:预计到货时间"`
	SentAt      *time.Time               `gorm:"comment:下发时间"`
	ReceivedAt  *time.Time               `gorm:"comment:收货完成时间"`
	Items       []PurchaseOrderItemModel `gorm:"foreignKey:OrderID"` // 一对多关联
	CreatedAt   time.Time                `gorm:"index;comment:创建时间"`
	UpdatedAt   time.Time                `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (PurchaseOrderModel) TableName() string {
	return "purchase_orders"
}

// PurchaseOrderItemModel GORM采购单明细模型
// 不变式 0 <= received_quantity <= ordered_quantity 由领域层保证
type PurchaseOrderItemModel struct {
	ID               uint  `gorm:"primaryKey"`
	OrderID          uint  `gorm:"index;not null;comment:采购单ID"`
	BookID           uint  `gorm:"index;not null;comment:图书ID"`
	OrderedQuantity  int   `gorm:"not null;comment:订购数量"`
	ReceivedQuantity int   `gorm:"not null;default:0;comment:已收数量"`
	UnitCost         int64 `gorm:"not null;comment:单价(分)"`
}

// TableName 指定表名
func (PurchaseOrderItemModel) TableName() string {
	return "purchase_order_items"
}
