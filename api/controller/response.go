package controller

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/amitshekhariitbhu/go-auth-admin/domain/domain_activity"
	"github.com/amitshekhariitbhu/go-auth-admin/domain/domain_auth"
	"github.com/amitshekhariitbhu/go-auth-admin/internal/deviceutil"
	"github.com/gin-gonic/gin"
)

// ProfileImageField is the multipart field carrying an uploaded profile image.
const ProfileImageField = "profileImage"

// maxImageSize 头像大小上限
const maxImageSize = 5 << 20

// ErrorResponse 统一错误响应
func ErrorResponse(ctx *gin.Context, status int, code string, message string) {
	ctx.JSON(status, gin.H{
		"status":  "error",
		"code":    code,
		"message": message,
	})
}

// MessageResponse writes {status:"success", message}.
func MessageResponse(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, gin.H{
		"status":  "success",
		"message": message,
	})
}

// ClientInfo describes the caller for the activity log.
func ClientInfo(ctx *gin.Context) domain_activity.ClientInfo {
	return domain_activity.ClientInfo{
		IPAddress: deviceutil.ClientIP(ctx.GetHeader("X-Forwarded-For"), ctx.ClientIP()),
		Device:    deviceutil.ClientDevice(ctx.Request.UserAgent()),
	}
}

// ProfileImage reads the optional profile image upload. Requests without a
// multipart body or without the field yield nil.
func ProfileImage(ctx *gin.Context) (*domain_auth.ProfileImage, error) {
	header, err := ctx.FormFile(ProfileImageField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}
	if header.Size > maxImageSize {
		return nil, fmt.Errorf("image %s exceeds %d bytes", header.Filename, maxImageSize)
	}

	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return &domain_auth.ProfileImage{Filename: header.Filename, Data: data}, nil
}
