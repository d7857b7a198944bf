package request_models

type PageQuery struct {
	Page  int `form:"page,default=1"`
	Limit int `form:"limit,default=5"`
}
