package response

import (
	"errors"
	"net/http"

	cErr "assetflow/internal/pkg/error"

	"github.com/gin-gonic/gin"
)

type Response struct {
	RequestID   string `json:"requestID"`
	Code        int    `json:"code"`
	Data        any    `json:"data"`
	Message     string `json:"message"`
	Description string `json:"description"`
}

// Create 設定 201 並交由 Response middleware 封裝
func Create(c *gin.Context, data any) {
	c.Status(http.StatusCreated)
	setData(c, data, "Create Success")
}

func Success(c *gin.Context, data any) {
	setData(c, data, "Request Success")
}

func setData(c *gin.Context, data any, message string) {
	if h, ok := data.(gin.H); ok {
		if msg, ok := h["message"].(string); ok && msg != "" {
			message = msg
			delete(h, "message")
		}
	}
	c.Set("data", data)
	c.Set("message", message)
	c.Abort()
}

func AbortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

func Fail(c *gin.Context, requestID string, httpCode int, errorCode int, msg string, desc string) {
	c.JSON(httpCode, Response{
		RequestID:   requestID,
		Code:        errorCode,
		Data:        nil,
		Message:     msg,
		Description: desc,
	})
	c.Abort()
}

func FailByErr(c *gin.Context, requestID string, err error) {
	var appErr *cErr.Error
	if errors.As(err, &appErr) {
		Fail(c, requestID, appErr.HttpCode(), appErr.ErrorCode(), appErr.Error(), appErr.ErrorDesc())
		return
	}
	Fail(c, requestID, http.StatusInternalServerError, cErr.INTERNAL_ERROR, err.Error(), "internal error")
}
