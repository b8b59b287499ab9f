package domain_auth

type CheckEmailRequest struct {
	Email string `form:"email" json:"email" binding:"required"`
}

// RegisterRequest is bound from JSON or multipart form data.
type RegisterRequest struct {
	FirstName string `form:"firstName" json:"firstName" binding:"required"`
	LastName  string `form:"lastName" json:"lastName" binding:"required"`
	Email     string `form:"email" json:"email" binding:"required,email"`
	Phone     string `form:"phone" json:"phone" binding:"required"`
	Location  string `form:"location" json:"location" binding:"required"`
	Password  string `form:"password" json:"password" binding:"required"`
	Role      string `form:"role" json:"role" binding:"omitempty,oneof=user admin"`
	Status    string `form:"status" json:"status" binding:"omitempty,oneof=active inActive delete"`
}

type LoginRequest struct {
	Email    string `form:"email" json:"email" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// 找回密码分三步: 1 发送验证码, 2 校验验证码, 3 设置新密码
const (
	ForgotStepSendCode = 1
	ForgotStepVerify   = 2
	ForgotStepReset    = 3
)

type ForgotPasswordRequest struct {
	Email           string `json:"email" binding:"required"`
	Step            int    `json:"step"`
	OTP             string `json:"otp"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type ResetPasswordRequest struct {
	OldPassword     string `json:"oldPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword"`
}

type UpdateProfileRequest struct {
	FirstName string `form:"firstName" json:"firstName" binding:"required"`
	LastName  string `form:"lastName" json:"lastName" binding:"required"`
	Email     string `form:"email" json:"email" binding:"required,email"`
	Location  string `form:"location" json:"location" binding:"required"`
	PhoneNo   string `form:"phoneNo" json:"phoneNo" binding:"required"`
}

type AdminUpdateUserRequest struct {
	FirstName string `form:"firstName" json:"firstName" binding:"required,min=3,max=50"`
	LastName  string `form:"lastName" json:"lastName" binding:"required,min=3,max=50"`
	Email     string `form:"email" json:"email" binding:"required,email"`
	Role      string `form:"role" json:"role" binding:"required,oneof=admin user"`
	Status    string `form:"status" json:"status" binding:"required,oneof=active inActive delete"`
	Location  string `form:"location" json:"location" binding:"required"`
	PhoneNo   string `form:"phoneNo" json:"phoneNo" binding:"required"`
}

// ProfileImage is an uploaded image held in memory.
type ProfileImage struct {
	Filename string
	Data     []byte
}
