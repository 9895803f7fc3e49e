package models

type CreateUserRequest struct {
	Username string `json:"username" validate:"required,username,max=64"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type CreatePoemRequest struct {
	Title      string `json:"title" validate:"required,nonblank,max=200"`
	Body       string `json:"body" validate:"required,nonblank"`
	UserID     string `json:"user_id" validate:"required,uuid"`
	CategoryID string `json:"category_id" validate:"omitempty,uuid"`
	ThemeID    string `json:"theme_id" validate:"omitempty,uuid"`
}

type CreateCommentRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
	Body   string `json:"body" validate:"required,nonblank,max=2000"`
}

type CreateLabelRequest struct {
	Name string `json:"name" validate:"required,nonblank,max=100"`
}
