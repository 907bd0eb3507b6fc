package dto

type ListOperationLogsQuery struct {
	Username string `query:"username"`
	Path     string `query:"path"`
	Page     int    `query:"page"`
	PageSize int    `query:"page_size"`
}
