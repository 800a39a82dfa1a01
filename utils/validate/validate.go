package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"assetflow/internal/core"
	cErr "assetflow/internal/pkg/error"
	"assetflow/internal/pkg/request"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// 輸出格式化的 validator error（欄位 json 名/型別/規則列表）
func ValidationErrorResponse(obj interface{}, err error) string {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		var b strings.Builder
		b.WriteString("Validation error:\n")
		for _, fe := range errs {
			field := jsonFieldName(obj, fe.StructField())
			ftype := fieldType(obj, fe.StructField())
			format := getFieldFormat(obj, fe.StructField())
			b.WriteString(fmt.Sprintf(" - Field \"%s\" (type: %s) failed the '%s' validation (rules: %v)\n",
				field, ftype, fe.Tag(), format))
		}
		return b.String()
	}
	return fmt.Sprintf("Validation error: %s", err.Error())
}

func structType(obj interface{}) reflect.Type {
	t := reflect.TypeOf(obj)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

func jsonFieldName(obj interface{}, structField string) string {
	if f, ok := structType(obj).FieldByName(structField); ok {
		tag := f.Tag.Get("json")
		if tag != "" && tag != "-" {
			return strings.Split(tag, ",")[0]
		}
	}
	return structField
}

func fieldType(obj interface{}, structField string) string {
	if f, ok := structType(obj).FieldByName(structField); ok {
		return f.Type.String()
	}
	return ""
}

func getFieldFormat(obj interface{}, structField string) []string {
	if f, ok := structType(obj).FieldByName(structField); ok {
		tag := f.Tag.Get("binding")
		if tag != "" {
			return strings.Split(tag, ",")
		}
	}
	return nil
}

func ParseObjectID(c *gin.Context, key string) (id primitive.ObjectID, cause error, responseErr error) {
	return ParseObjectIDHex(c.Param(key), key)
}

// ParseObjectIDHex 解析 body / query 裡的 id 字串
func ParseObjectIDHex(hex string, key string) (id primitive.ObjectID, cause error, responseErr error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, err, cErr.ValidatePathParamsErr("invalid " + key)
	}
	return id, nil, nil
}

// ParseObjectIDs 批次 id，空陣列視為錯誤
func ParseObjectIDs(hexes []string, key string) ([]primitive.ObjectID, error, error) {
	if len(hexes) == 0 {
		err := errors.New(key + " must be a non-empty array")
		return nil, err, cErr.BadRequestBody(err.Error())
	}
	ids := make([]primitive.ObjectID, 0, len(hexes))
	seen := make(map[primitive.ObjectID]struct{}, len(hexes))
	for _, hex := range hexes {
		id, cause, respErr := ParseObjectIDHex(hex, key)
		if cause != nil {
			return nil, cause, respErr
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil, nil
}

func BindAndValidate(c *gin.Context, req any) (cause error, responseErr error) {
	if err := c.ShouldBindJSON(req); err != nil {
		if _, ok := req.(request.Validator); ok {
			return err, request.GetError(req, err)
		}
		return err, cErr.ValidateErr(ValidationErrorResponse(req, err))
	}
	return nil, nil
}

// ParseCategory 驗證列表分類標記
func ParseCategory(raw string) (core.AssetCategory, error) {
	category := core.AssetCategory(strings.TrimSpace(raw))
	if !category.Valid() {
		return "", cErr.BadRequestQuery(fmt.Sprintf("invalid category %q", raw))
	}
	return category, nil
}

// ParseRequestStatus 空字串代表不篩選
func ParseRequestStatus(raw string) (core.RequestStatus, error) {
	status := core.RequestStatus(strings.TrimSpace(raw))
	if status != "" && !status.Valid() {
		return "", cErr.BadRequestQuery(fmt.Sprintf("invalid requestStatus %q", raw))
	}
	return status, nil
}
