package dto

// CreateLocationRequest HTTP创建地点请求
type CreateLocationRequest struct {
	Kind    string `json:"kind" binding:"required,oneof=WAREHOUSE STORE" example:"WAREHOUSE"`
	Code    string `json:"code" binding:"required,max=50" example:"WH-SH-01"`
	Name    string `json:"name" binding:"required,max=100" example:"上海中心仓"`
	Address string `json:"address" binding:"max=200" example:"上海市嘉定区XX路100号"`
	City    string `json:"city" binding:"max=50" example:"上海"`
	Phone   string `json:"phone" binding:"max=20" example:"021-12345678"`
}

// UpdateLocationRequest HTTP更新地点请求
// 指针字段表示"传了才改"
type UpdateLocationRequest struct {
	Name    *string `json:"name" binding:"omitempty,max=100"`
	Address *string `json:"address" binding:"omitempty,max=200"`
	City    *string `json:"city" binding:"omitempty,max=50"`
	Phone   *string `json:"phone" binding:"omitempty,max=20"`
	Active  *bool   `json:"active"`
}

// ListLocationsRequest HTTP地点列表请求
type ListLocationsRequest struct {
	Kind   string `form:"kind" binding:"omitempty,oneof=WAREHOUSE STORE"`
	Filter string `form:"filter" binding:"omitempty,oneof=active trashed all" example:"active"`
}

// CreateVendorRequest HTTP创建供应商请求
type CreateVendorRequest struct {
	Code        string `json:"code" binding:"required,max=50" example:"VND-001"`
	Name        string `json:"name" binding:"required,max=100" example:"华东图书发行有限公司"`
	ContactName string `json:"contact_name" binding:"max=50" example:"王经理"`
	Email       string `json:"email" binding:"omitempty,email,max=100"`
	Phone       string `json:"phone" binding:"max=20"`
}

// UpdateVendorRequest HTTP更新供应商请求
type UpdateVendorRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	ContactName *string `json:"contact_name" binding:"omitempty,max=50"`
	Email       *string `json:"email" binding:"omitempty,email,max=100"`
	Phone       *string `json:"phone" binding:"omitempty,max=20"`
	Active      *bool   `json:"active"`
}

// ListVendorsRequest HTTP供应商列表请求
type ListVendorsRequest struct {
	Filter string `form:"filter" binding:"omitempty,oneof=active trashed all"`
}
