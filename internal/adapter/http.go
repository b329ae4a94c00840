package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/pentagon14032008-ux/Life-OS/internal/config"
	"github.com/pentagon14032008-ux/Life-OS/internal/logger"
	"github.com/pentagon14032008-ux/Life-OS/internal/utils"
	"github.com/pentagon14032008-ux/Life-OS/models"
)

// DeviceIDHeader names the header carrying the calling installation id.
const DeviceIDHeader = "X-Device-ID"

type httpServerAdapter struct {
	client *utils.HTTPClient

	hashKey  string
	token    string
	deviceID string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of [ServerAdapter].
// It normalises and validates the base URL from adapterCfg.HTTPAddress,
// configures the underlying HTTP client with the resolved base URL, request
// timeout and a User-Agent carrying the build version, and initialises the
// shared HMAC hasher pool used for transport integrity hashes.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, appCfg config.ClientApp, buildInfo models.AppBuildInfo, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	userAgent := "life-os"
	if buildInfo.Known() {
		userAgent += "/" + buildInfo.BuildVersion()
	}

	client := utils.NewHTTPClient(adapterCfg.RequestTimeout, userAgent)
	client.SetBaseURL(baseURL)

	utils.InitHasherPool(appCfg.HashKey)

	return &httpServerAdapter{client: client, hashKey: appCfg.HashKey, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [AuthAdapter]. The token is whitespace-trimmed.
func (h *httpServerAdapter) SetToken(token string) {
	h.token = strings.TrimSpace(token)
}

// Token implements [AuthAdapter].
func (h *httpServerAdapter) Token() string {
	return h.token
}

// SetDeviceID implements [AuthAdapter].
func (h *httpServerAdapter) SetDeviceID(deviceID string) {
	h.deviceID = strings.TrimSpace(deviceID)
}

// Register implements [AuthAdapter]. It POSTs the user credentials to
// POST /api/auth/register. On success the bearer token is extracted from the
// Authorization response header and stored via SetToken.
func (h *httpServerAdapter) Register(ctx context.Context, user models.User) (models.User, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		Post("/api/auth/register")
	if err != nil {
		return models.User{}, transportError("register request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.User{}, fmt.Errorf("register parse bearer token: %w", err)
	}

	h.SetToken(token)
	return user, nil
}

// RequestSalt implements [AuthAdapter]. The returned user carries only
// Login and EncryptionSalt.
func (h *httpServerAdapter) RequestSalt(ctx context.Context, user models.User) (models.User, error) {
	var foundUser models.User // only login and encryption salt

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.User{Login: user.Login}).
		SetResult(&foundUser).
		Post("/api/auth/params")
	if err != nil {
		return user, transportError("salt request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return user, err
	}

	return models.User{Login: user.Login, EncryptionSalt: foundUser.EncryptionSalt}, nil
}

// Login implements [AuthAdapter]. It POSTs the pre-computed auth hash to
// POST /api/auth/login and stores the bearer token from the response.
func (h *httpServerAdapter) Login(ctx context.Context, user models.User) (models.User, error) {
	var foundUser models.User

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.User{Login: user.Login, AuthHash: user.AuthHash}).
		SetResult(&foundUser).
		Post("/api/auth/login")
	if err != nil {
		return user, transportError("login request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return user, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return user, fmt.Errorf("login parse bearer token: %w", err)
	}

	h.SetToken(token)
	return foundUser, nil
}

// GetVault implements [RemoteStore].
func (h *httpServerAdapter) GetVault(ctx context.Context) (*models.VaultRecord, error) {
	var record models.VaultRecord

	resp, err := h.authedRequest(ctx).
		SetResult(&record).
		Get("/api/vault")
	if err != nil {
		return nil, transportError("get vault request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &record, nil
}

// PutVault implements [RemoteStore]. The body carries an HMAC of the record
// which the server checks before storing it.
func (h *httpServerAdapter) PutVault(ctx context.Context, record models.VaultRecord) (models.VaultRecord, error) {
	if record.DeviceID == "" {
		record.DeviceID = h.deviceID
	}
	req := models.VaultUploadRequest{Record: record, Hash: computeTransportHash(record)}

	var stored models.VaultRecord
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&stored).
		Put("/api/vault")
	if err != nil {
		return models.VaultRecord{}, transportError("put vault request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.VaultRecord{}, err
	}

	return stored, nil
}

// DeleteVault implements [RemoteStore]. The server removes the vault row
// together with the whole history.
func (h *httpServerAdapter) DeleteVault(ctx context.Context) error {
	resp, err := h.authedRequest(ctx).Delete("/api/vault")
	if err != nil {
		return transportError("delete vault request", err)
	}
	if err = mapHTTPError(resp); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}

// InsertVersion implements [RemoteStore].
func (h *httpServerAdapter) InsertVersion(ctx context.Context, version models.VaultVersion) error {
	req := models.VersionUploadRequest{Version: version, Hash: computeTransportHash(version)}

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/api/vault/versions")
	if err != nil {
		return transportError("insert version request", err)
	}

	return mapHTTPError(resp)
}

// ListVersions implements [RemoteStore]. A non-positive limit leaves the
// choice to the server.
func (h *httpServerAdapter) ListVersions(ctx context.Context, limit int) ([]models.VersionInfo, error) {
	req := h.authedRequest(ctx)
	if limit > 0 {
		req.SetQueryParam("limit", strconv.Itoa(limit))
	}

	var list models.VersionListResponse
	resp, err := req.SetResult(&list).Get("/api/vault/versions")
	if err != nil {
		return nil, transportError("list versions request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	if list.Versions == nil {
		list.Versions = []models.VersionInfo{}
	}
	return list.Versions, nil
}

// GetVersion implements [RemoteStore].
func (h *httpServerAdapter) GetVersion(ctx context.Context, createdAt time.Time) (*models.VaultVersion, error) {
	var version models.VaultVersion

	resp, err := h.authedRequest(ctx).
		SetPathParam("createdAt", createdAt.UTC().Format(time.RFC3339Nano)).
		SetResult(&version).
		Get("/api/vault/versions/{createdAt}")
	if err != nil {
		return nil, transportError("get version request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &version, nil
}

// PruneVersions implements [RemoteStore].
func (h *httpServerAdapter) PruneVersions(ctx context.Context, keep int) (int64, error) {
	var pruned models.PruneResponse

	resp, err := h.authedRequest(ctx).
		SetQueryParam("keep", strconv.Itoa(keep)).
		SetResult(&pruned).
		Delete("/api/vault/versions")
	if err != nil {
		return 0, transportError("prune versions request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return 0, err
	}

	return pruned.Deleted, nil
}

// RegisterDevice implements [DeviceAdapter]. Registering a revoked device
// does not lift the revocation.
func (h *httpServerAdapter) RegisterDevice(ctx context.Context, device models.Device) (models.Device, error) {
	var stored models.Device

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParam("id", device.DeviceID).
		SetBody(device).
		SetResult(&stored).
		Put("/api/devices/{id}")
	if err != nil {
		return models.Device{}, transportError("register device request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Device{}, err
	}

	return stored, nil
}

// Heartbeat implements [DeviceAdapter].
func (h *httpServerAdapter) Heartbeat(ctx context.Context, deviceID string) error {
	resp, err := h.authedRequest(ctx).
		SetPathParam("id", deviceID).
		Post("/api/devices/{id}/heartbeat")
	if err != nil {
		return transportError("heartbeat request", err)
	}

	return mapHTTPError(resp)
}

// GetDevice implements [DeviceAdapter].
func (h *httpServerAdapter) GetDevice(ctx context.Context, deviceID string) (models.Device, error) {
	var device models.Device

	resp, err := h.authedRequest(ctx).
		SetPathParam("id", deviceID).
		SetResult(&device).
		Get("/api/devices/{id}")
	if err != nil {
		return models.Device{}, transportError("get device request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Device{}, err
	}

	return device, nil
}

// ListDevices implements [DeviceAdapter].
func (h *httpServerAdapter) ListDevices(ctx context.Context) ([]models.Device, error) {
	resp, err := h.authedRequest(ctx).Get("/api/devices")
	if err != nil {
		return nil, transportError("list devices request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	devices := []models.Device{}
	if err = json.Unmarshal(resp.Body(), &devices); err != nil {
		return nil, fmt.Errorf("decode devices response: %w", err)
	}
	return devices, nil
}

// RevokeDevice implements [DeviceAdapter].
func (h *httpServerAdapter) RevokeDevice(ctx context.Context, deviceID string) error {
	resp, err := h.authedRequest(ctx).
		SetPathParam("id", deviceID).
		Post("/api/devices/{id}/revoke")
	if err != nil {
		return transportError("revoke device request", err)
	}

	return mapHTTPError(resp)
}

// DeleteDevice implements [DeviceAdapter].
func (h *httpServerAdapter) DeleteDevice(ctx context.Context, deviceID string) error {
	resp, err := h.authedRequest(ctx).
		SetPathParam("id", deviceID).
		Delete("/api/devices/{id}")
	if err != nil {
		return transportError("delete device request", err)
	}

	return mapHTTPError(resp)
}

// ServerVersion implements [ServerAdapter].
func (h *httpServerAdapter) ServerVersion(ctx context.Context) (string, error) {
	resp, err := h.client.R().SetContext(ctx).Get("/api/version")
	if err != nil {
		return "", transportError("version request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("version: unexpected status %d", resp.StatusCode())
	}

	var body struct {
		Version string `json:"version"`
	}
	if err = json.Unmarshal(resp.Body(), &body); err != nil {
		return "", fmt.Errorf("decode version response: %w", err)
	}
	return body.Version, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	if h.deviceID != "" {
		req.SetHeader(DeviceIDHeader, h.deviceID)
	}
	return req
}

func computeTransportHash(v any) string {
	payload, err := json.Marshal(v)
	if err != nil {
		return ""
	}

	return utils.HashHex(payload)
}
