package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"assetflow/config"
	"assetflow/internal/core"
	"assetflow/internal/database/mongodb/repository"
	"assetflow/internal/dto"
	cErr "assetflow/internal/pkg/error"
	"assetflow/internal/telemetry"

	"github.com/golang-jwt/jwt/v4"
)

type AuthService struct {
	trace   *telemetry.Trace
	persons PersonStore
	secret  []byte
	ttl     time.Duration
	issuer  string
	now     func() time.Time
}

func NewAuthService(trace *telemetry.Trace, conf *config.Configuration, persons PersonStore) (*AuthService, error) {
	if strings.TrimSpace(conf.Auth.TokenSecret) == "" {
		return nil, errors.New("AUTH__TOKEN_SECRET is required")
	}
	return &AuthService{
		trace:   trace,
		persons: persons,
		secret:  []byte(conf.Auth.TokenSecret),
		ttl:     conf.Auth.TokenTTL,
		issuer:  conf.Auth.Issuer,
		now:     time.Now,
	}, nil
}

// IssueToken 簽發 HS256 token，不檢查人員是否已註冊
func (s *AuthService) IssueToken(ctx context.Context, email string) (*dto.TokenResponseDto, error) {
	_, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	claims := core.NewClaims(normalizeEmail(email), s.issuer, s.now().UTC(), s.ttl)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		end(err)
		return nil, cErr.InternalServer("sign token failed")
	}
	return &dto.TokenResponseDto{Token: signed, ExpiresIn: int64(s.ttl / time.Second)}, nil
}

// ParseToken 驗證簽章、演算法、issuer 與到期時間
func (s *AuthService) ParseToken(tokenString string) (*core.Claims, error) {
	claims := &core.Claims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, cErr.InvalidToken("invalid or expired token")
	}
	if !claims.VerifyIssuer(s.issuer, true) || claims.Email == "" {
		return nil, cErr.InvalidToken("invalid token claims")
	}
	return claims, nil
}

// ResolveCaller 角色每次從人員資料讀取；尚未註冊者角色為空
func (s *AuthService) ResolveCaller(ctx context.Context, email string) (core.Caller, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	caller := core.Caller{Email: normalizeEmail(email)}
	person, err := s.persons.GetByEmail(ctx, caller.Email)
	if err != nil {
		if repository.IsNotFound(err) {
			return caller, nil
		}
		end(err)
		return caller, cErr.DatabaseError("database ResolveCaller error")
	}
	caller.Role = person.Role
	caller.HREmail = person.HREmail
	return caller, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
