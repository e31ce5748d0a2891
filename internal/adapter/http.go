package adapter

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-trip-keeper/internal/config"
	"github.com/MKhiriev/go-trip-keeper/internal/logger"
	"github.com/MKhiriev/go-trip-keeper/internal/utils"
	"github.com/MKhiriev/go-trip-keeper/models"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	hashKey string

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs the REST implementation of [ServerAdapter].
// The base url comes from adapterCfg.HTTPAddress (scheme defaults to http).
// When appCfg.HashKey is set every JSON body is signed with the HashSHA256
// header.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, appCfg config.ClientApp, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	if appCfg.HashKey != "" {
		utils.InitHasherPool(appCfg.HashKey)
	}

	return &httpServerAdapter{
		client:  utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		hashKey: appCfg.HashKey,
		logger:  logger,
	}, nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpServerAdapter) Ping(ctx context.Context) error {
	_, err := call[struct{}](ctx, h, http.MethodGet, "/api/ping", nil)
	return err
}

func (h *httpServerAdapter) SignUp(ctx context.Context, user models.User) (models.AuthResponse, error) {
	auth, err := call[models.AuthResponse](ctx, h, http.MethodPost, "/api/auth/signup", user)
	if err != nil {
		return models.AuthResponse{}, err
	}
	h.SetToken(auth.AccessToken)
	return auth, nil
}

func (h *httpServerAdapter) SignIn(ctx context.Context, user models.User) (models.AuthResponse, error) {
	auth, err := call[models.AuthResponse](ctx, h, http.MethodPost, "/api/auth/signin", user)
	if err != nil {
		return models.AuthResponse{}, err
	}
	h.SetToken(auth.AccessToken)
	return auth, nil
}

func (h *httpServerAdapter) GetUser(ctx context.Context) (models.User, error) {
	return call[models.User](ctx, h, http.MethodGet, "/api/auth/user", nil)
}

func (h *httpServerAdapter) UpdateUser(ctx context.Context, update models.UserUpdate) (models.User, error) {
	return call[models.User](ctx, h, http.MethodPut, "/api/auth/user", update)
}

func (h *httpServerAdapter) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	resp, err := call[models.CheckEmailResponse](ctx, h, http.MethodPost, "/accounts-check-email-exists", models.CheckEmailRequest{Email: email})
	if err != nil {
		return false, err
	}
	return resp.Exists, nil
}

func (h *httpServerAdapter) DeleteAccount(ctx context.Context) error {
	_, err := call[models.FunctionResponse](ctx, h, http.MethodPost, "/accounts-delete-account-immediately", struct{}{})
	return err
}

func (h *httpServerAdapter) ExportData(ctx context.Context, format models.ExportFormat) (models.ExportResponse, error) {
	return call[models.ExportResponse](ctx, h, http.MethodPost, "/accounts-export-user-data", models.ExportRequest{Format: format})
}

func (h *httpServerAdapter) SendWelcome(ctx context.Context, req models.NotificationRequest) error {
	_, err := call[models.FunctionResponse](ctx, h, http.MethodPost, "/accounts-send-welcome", req)
	return err
}

func (h *httpServerAdapter) SendPasswordChanged(ctx context.Context, req models.NotificationRequest) error {
	_, err := call[models.FunctionResponse](ctx, h, http.MethodPost, "/accounts-send-password-changed", req)
	return err
}

// request prepares an authenticated request. A non-nil body is sent as JSON
// and signed when a hash key is configured.
func (h *httpServerAdapter) request(ctx context.Context, body any) (*resty.Request, error) {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}
	if traceID, ok := utils.TraceIDFromContext(ctx); ok {
		req.SetHeader(utils.TraceIDHeader, traceID)
	}
	if body == nil {
		return req, nil
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("error encoding request body: %w", err)
	}
	req.SetHeader("Content-Type", "application/json").SetBody(payload)
	if h.hashKey != "" {
		req.SetHeader(utils.HashHeader, hex.EncodeToString(utils.Hash(payload)))
	}
	return req, nil
}

// call sends one JSON request and decodes a 2xx answer into T. Empty bodies
// decode to the zero value.
func call[T any](ctx context.Context, h *httpServerAdapter, method, path string, body any) (T, error) {
	var result T

	req, err := h.request(ctx, body)
	if err != nil {
		return result, err
	}
	resp, err := req.Execute(method, path)
	return decode[T](h, method, path, resp, err)
}

func decode[T any](h *httpServerAdapter, method, path string, resp *resty.Response, err error) (T, error) {
	var result T
	if err != nil {
		h.logger.Debug().Err(err).Str("method", method).Str("path", path).Msg("backend request failed")
		return result, fmt.Errorf("%w: %s %s: %w", ErrTransport, method, path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return result, err
	}

	if len(resp.Body()) == 0 {
		return result, nil
	}
	if err = json.Unmarshal(resp.Body(), &result); err != nil {
		return result, fmt.Errorf("%w: %s %s: %w", ErrInvalidFormat, method, path, err)
	}
	return result, nil
}
