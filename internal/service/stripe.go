package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"assetflow/config"
	"assetflow/internal/core"
	cErr "assetflow/internal/pkg/error"
	"assetflow/internal/telemetry"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// StripeGateway 以 stripe-go 呼叫 PaymentIntents API
type StripeGateway struct {
	trace   *telemetry.Trace
	intents *paymentintent.Client
	enabled bool
}

func NewStripeGateway(logger *zap.Logger, trace *telemetry.Trace, conf *config.Configuration) *StripeGateway {
	backendConfig := &stripe.BackendConfig{
		HTTPClient:        &http.Client{Timeout: time.Duration(conf.Payment.TimeoutSeconds) * time.Second},
		MaxNetworkRetries: stripe.Int64(int64(max(conf.Payment.MaxNetworkRetries, 0))),
		LeveledLogger:     logger.Named("stripe").Sugar(),
	}
	if baseURL := strings.TrimRight(conf.Payment.BaseURL, "/"); baseURL != "" {
		backendConfig.URL = stripe.String(baseURL)
	}
	return &StripeGateway{
		trace: trace,
		intents: &paymentintent.Client{
			B:   stripe.GetBackendWithConfig(stripe.APIBackend, backendConfig),
			Key: conf.Payment.SecretKey,
		},
		enabled: conf.Payment.SecretKey != "",
	}
}

func (g *StripeGateway) CreateIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (_ *PaymentIntent, returnedError error) {
	ctx, span := g.trace.StartSpanForLayer(ctx, core.SpanStripeGateway)
	defer func() { g.trace.EndSpan(span, returnedError) }()
	span.SetAttributes(attribute.String("stripe.op", "create"), attribute.Int64("stripe.amount", amount))

	if !g.enabled {
		return nil, cErr.ServiceUnavailable("payment processor is not configured")
	}
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx
	params.SetIdempotencyKey(uuid.NewString())
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	intent, err := g.intents.New(params)
	if err != nil {
		return nil, stripeError(err)
	}
	return toPaymentIntent(intent)
}

func (g *StripeGateway) RetrieveIntent(ctx context.Context, intentID string) (_ *PaymentIntent, returnedError error) {
	ctx, span := g.trace.StartSpanForLayer(ctx, core.SpanStripeGateway)
	defer func() { g.trace.EndSpan(span, returnedError) }()
	span.SetAttributes(attribute.String("stripe.op", "retrieve"), attribute.String("stripe.intent_id", intentID))

	if strings.TrimSpace(intentID) == "" {
		return nil, cErr.BadRequestBody("transactionId is required")
	}
	if !g.enabled {
		return nil, cErr.ServiceUnavailable("payment processor is not configured")
	}
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	intent, err := g.intents.Get(intentID, params)
	if err != nil {
		return nil, stripeError(err)
	}
	span.SetAttributes(attribute.String("stripe.intent_status", string(intent.Status)))
	return toPaymentIntent(intent)
}

func toPaymentIntent(intent *stripe.PaymentIntent) (*PaymentIntent, error) {
	if intent == nil || intent.ID == "" {
		return nil, cErr.ExternalResponseFormatError("unexpected payment processor response")
	}
	return &PaymentIntent{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
		Status:       string(intent.Status),
		Amount:       intent.Amount,
		Currency:     string(intent.Currency),
		Metadata:     intent.Metadata,
	}, nil
}

// stripeError 4xx（429 除外）視為請求錯誤，其餘為金流商失敗
func stripeError(err error) error {
	var apiErr *stripe.Error
	if errors.As(err, &apiErr) {
		status := apiErr.HTTPStatusCode
		if status >= http.StatusBadRequest && status < http.StatusInternalServerError && status != http.StatusTooManyRequests {
			return cErr.BadRequest(fmt.Sprintf("payment processor rejected the request: %s", apiErr.Msg))
		}
		return cErr.ExternalRequestError(apiErr.Msg)
	}
	if isTimeout(err) {
		return cErr.GatewayTimeout("payment processor timeout")
	}
	return cErr.ExternalRequestError("payment processor request failed")
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
