package request

import (
	"errors"
	"regexp"

	cErr "assetflow/internal/pkg/error"

	"github.com/go-playground/validator/v10"
)

// Validator 讓 DTO 自訂驗證失敗訊息，key 為 "欄位.規則"
type Validator interface {
	GetMessages() ValidatorMessages
}

type ValidatorMessages map[string]string

var reg = regexp.MustCompile(`\[\d+\]`)

// GetError 從請求和錯誤中獲取錯誤信息
func GetError(request interface{}, err error) *cErr.Error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		custom, isValidator := request.(Validator)

		var errorMessages []string
		for _, v := range validationErrors {
			if isValidator {
				field := reg.ReplaceAllString(v.Field(), ".*")
				if message, exist := custom.GetMessages()[field+"."+v.Tag()]; exist {
					errorMessages = append(errorMessages, message)
					continue
				}
			}
			errorMessages = append(errorMessages, v.Error())
		}
		if len(errorMessages) > 0 {
			return cErr.ValidateErr(errorMessages[0])
		}
	}

	return cErr.ValidateErr("Parameter error")
}
