package mysql

import (
	"context"

	"gorm.io/gorm"
)

// TxManager 事务管理器
// 教学要点:
// 1. 封装GORM的Transaction方法
// 2. 通过context传递事务DB(避免全局变量)
// 3. fn返回error时自动ROLLBACK,返回nil时自动COMMIT
//
// 使用示例(调拨):
//
//	err := txManager.Transaction(ctx, func(ctx context.Context) error {
//	    // 1. 按固定顺序锁定两侧台账行
//	    // 2. 扣减源 → 失败则整体回滚,目标不受影响
//	    // 3. 目标入账
//	    // 4. 追加调拨日志
//	    return nil
//	})
type TxManager struct {
	db *gorm.DB
}

// NewTxManager 创建事务管理器
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// Transaction 执行事务
// fn函数内通过同一context调用的所有Repository操作都在同一事务中执行
func (m *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 将事务DB注入到Context中,Repository的getDB会从context提取
		txCtx := context.WithValue(ctx, "tx", tx)
		return fn(txCtx)
	})
}
