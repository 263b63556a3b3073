package dto

type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

type CreateMilestoneRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Deadline    *string `json:"deadline"`
	ParentID    *string `json:"parent_id"`
	Status      string  `json:"status"`
}

type UpdateMilestoneRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Deadline    *string `json:"deadline"`
	ParentID    *string `json:"parent_id"`
	Status      *string `json:"status"`
}

type UpdateShareLinkRequest struct {
	RegenerateLink bool `json:"regenerate_link"`
}
