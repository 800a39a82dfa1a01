package command

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"assetflow/internal/core"
	"assetflow/internal/database/mongodb/model"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RoleUpdater 由 mongodb PersonRepository 實作
type RoleUpdater interface {
	UpdateByEmail(ctx context.Context, email string, patch model.PersonPatch) (int64, error)
}

type RoleHandler struct {
	logger  *zap.Logger
	persons RoleUpdater
}

func NewRoleHandler(logger *zap.Logger, persons RoleUpdater) *RoleHandler {
	return &RoleHandler{
		logger:  logger,
		persons: persons,
	}
}

// GrantRole 指定人員角色；空字串代表清除
func (handler *RoleHandler) GrantRole(cmd *cobra.Command, email string, role string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return errors.New("--email is required")
	}
	r := core.Role(strings.TrimSpace(role))
	if !r.Valid() {
		return fmt.Errorf("invalid role %q, expect employee or hr_manager", role)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	matched, err := handler.persons.UpdateByEmail(ctx, email, model.PersonPatch{Role: &r})
	if err != nil {
		handler.logger.Error("grant role failed", zap.String("email", email), zap.Error(err))
		return err
	}
	if matched == 0 {
		return fmt.Errorf("person %s not found", email)
	}
	handler.logger.Info("role granted", zap.String("email", email), zap.String("role", string(r)))
	cmd.Printf("%s is now %q\n", email, r)
	return nil
}
