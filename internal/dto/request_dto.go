package dto

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=32"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest authenticates an existing account.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// StartQuizRequest starts a new quiz. Count outside [1,10] is clamped, not
// rejected. Category is the provider's category ID; empty means any.
type StartQuizRequest struct {
	Count    int    `json:"count"`
	Category string `json:"category"`
}

// AnswerRequest records one answer. Position is a pointer so 0 is
// distinguishable from "field missing".
type AnswerRequest struct {
	Position *int   `json:"position" binding:"required"`
	Label    string `json:"label" binding:"required"`
}
