package dto

// SetStockRequest HTTP设置库存请求
// 绝对数量Upsert,阈值可选(缺省0)
type SetStockRequest struct {
	Kind              string `json:"kind" binding:"required,oneof=WAREHOUSE STORE" example:"WAREHOUSE"`
	Stock             int    `json:"stock" binding:"min=0" example:"100"`
	LowStockThreshold *int   `json:"low_stock_threshold" binding:"omitempty,min=0" example:"10"`
}

// AdjustStockRequest HTTP库存增减请求(credit/debit)
type AdjustStockRequest struct {
	Kind     string `json:"kind" binding:"required,oneof=WAREHOUSE STORE"`
	Quantity int    `json:"quantity" binding:"required,min=1" example:"5"`
}

// ListStocksRequest HTTP地点台账列表请求
type ListStocksRequest struct {
	Kind string `form:"kind" binding:"required,oneof=WAREHOUSE STORE"`
}

// TransferRequest HTTP调拨请求
type TransferRequest struct {
	BookID         uint   `json:"book_id" binding:"required" example:"1"`
	FromKind       string `json:"from_kind" binding:"required,oneof=WAREHOUSE STORE" example:"WAREHOUSE"`
	FromLocationID uint   `json:"from_location_id" binding:"required" example:"1"`
	ToKind         string `json:"to_kind" binding:"required,oneof=WAREHOUSE STORE" example:"STORE"`
	ToLocationID   uint   `json:"to_location_id" binding:"required" example:"2"`
	Quantity       int    `json:"quantity" binding:"required,min=1" example:"5"`
	Note           string `json:"note" binding:"max=200"`
}

// ListTransfersRequest HTTP调拨日志列表请求
type ListTransfersRequest struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ListAlertsRequest HTTP告警列表请求
type ListAlertsRequest struct {
	Status   string `form:"status" binding:"omitempty,oneof=OPEN RESOLVED"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}
