package lock

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"kayakbay-backend/internal/config"
	"kayakbay-backend/internal/logger"
)

// preProvisionedTokenLifetime is how long a token handed to us via
// configuration is assumed to stay valid (the platform issues 90-day tokens).
const preProvisionedTokenLifetime = 90 * 24 * time.Hour

// TTLockClient implements PasscodeProvider against the TTLock cloud API.
// It holds only the cached OAuth credential; every passcode lives on the
// platform side, identified by the grant handle.
type TTLockClient struct {
	apiURL       string
	clientID     string
	clientSecret string
	username     string
	password     string
	presetToken  string
	httpClient   *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

func NewTTLockClient(cfg config.TTLockConfig) *TTLockClient {
	return &TTLockClient{
		apiURL:       strings.TrimRight(cfg.APIURL, "/"),
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		username:     cfg.Username,
		password:     cfg.Password,
		presetToken:  cfg.AccessToken,
		httpClient:   &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
	}
}

type keyboardPwdResponse struct {
	KeyboardPwd   string `json:"keyboardPwd"`
	KeyboardPwdID int64  `json:"keyboardPwdId"`
	ErrCode       int    `json:"errcode"`
	ErrMsg        string `json:"errmsg"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	ErrCode     int    `json:"errcode"`
	ErrMsg      string `json:"errmsg"`
}

// IssueTimedCode requests a timed keypad code valid only inside
// [validFrom, validUntil]. Per the provider contract it never reports an
// error: any failure degrades to a local fallback code with handle 0, logged
// for operational follow-up.
func (c *TTLockClient) IssueTimedCode(ctx context.Context, lockID int64, validFrom, validUntil time.Time) Grant {
	logger.ExternalServiceCall("ttlock", "IssueTimedCode", "lock_id", lockID)

	grant, err := c.requestTimedCode(ctx, lockID, validFrom, validUntil)
	logger.ExternalServiceResult("ttlock", "IssueTimedCode", err, "lock_id", lockID)
	if err != nil {
		fallback := Grant{Code: FallbackCode(), Handle: 0}
		logger.Warn("lock provider unavailable, issued fallback passcode",
			"lock_id", lockID, "valid_until", validUntil, "error", err)
		return fallback
	}
	return grant
}

func (c *TTLockClient) requestTimedCode(ctx context.Context, lockID int64, validFrom, validUntil time.Time) (Grant, error) {
	token, err := c.ensureAccessToken(ctx)
	if err != nil {
		return Grant{}, err
	}

	params := url.Values{}
	params.Set("clientId", c.clientID)
	params.Set("accessToken", token)
	params.Set("lockId", strconv.FormatInt(lockID, 10))
	params.Set("keyboardPwdType", "3") // period passcode, no gateway needed
	params.Set("keyboardPwdName", "Kayak Rental")
	params.Set("startDate", strconv.FormatInt(validFrom.UnixMilli(), 10))
	params.Set("endDate", strconv.FormatInt(validUntil.UnixMilli(), 10))
	params.Set("date", strconv.FormatInt(time.Now().UnixMilli(), 10))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.apiURL+"/v3/keyboardPwd/get?"+params.Encode(), nil)
	if err != nil {
		return Grant{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Grant{}, err
	}
	defer resp.Body.Close()

	var body keyboardPwdResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Grant{}, fmt.Errorf("decode passcode response: %w", err)
	}
	if body.ErrCode != 0 {
		return Grant{}, fmt.Errorf("provider error %d: %s", body.ErrCode, body.ErrMsg)
	}
	if body.KeyboardPwd == "" {
		return Grant{}, fmt.Errorf("no passcode in response")
	}
	return Grant{Code: body.KeyboardPwd, Handle: body.KeyboardPwdID}, nil
}

// RevokeCode attempts early deletion of a managed passcode. False means the
// grant could not be revoked and will self-expire at its window end; a zero
// handle short-circuits without a remote call.
func (c *TTLockClient) RevokeCode(ctx context.Context, lockID, handle int64) bool {
	if handle <= 0 {
		return false
	}

	token, err := c.ensureAccessToken(ctx)
	if err != nil {
		logger.Warn("passcode revocation skipped, authentication failed", "lock_id", lockID, "error", err)
		return false
	}

	params := url.Values{}
	params.Set("clientId", c.clientID)
	params.Set("accessToken", token)
	params.Set("lockId", strconv.FormatInt(lockID, 10))
	params.Set("keyboardPwdId", strconv.FormatInt(handle, 10))
	params.Set("deleteType", "2") // delete from the lock itself
	params.Set("date", strconv.FormatInt(time.Now().UnixMilli(), 10))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.apiURL+"/v3/keyboardPwd/delete?"+params.Encode(), nil)
	if err != nil {
		return false
	}

	logger.ExternalServiceCall("ttlock", "RevokeCode", "lock_id", lockID, "handle", handle)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.ExternalServiceResult("ttlock", "RevokeCode", err, "lock_id", lockID)
		return false
	}
	defer resp.Body.Close()

	var body keyboardPwdResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		logger.ExternalServiceResult("ttlock", "RevokeCode", err, "lock_id", lockID)
		return false
	}
	if body.ErrCode != 0 {
		logger.Warn("passcode revocation rejected by provider",
			"lock_id", lockID, "handle", handle, "errcode", body.ErrCode, "errmsg", body.ErrMsg)
		return false
	}
	logger.ExternalServiceResult("ttlock", "RevokeCode", nil, "lock_id", lockID)
	return true
}

// Authenticate eagerly obtains a credential; services call it at startup to
// surface configuration problems early. IssueTimedCode and RevokeCode
// authenticate lazily on their own.
func (c *TTLockClient) Authenticate(ctx context.Context) error {
	_, err := c.ensureAccessToken(ctx)
	return err
}

// ensureAccessToken returns the cached credential, re-authenticating only
// when the cache is empty or expired.
func (c *TTLockClient) ensureAccessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	// Pre-provisioned long-lived credential wins over the password grant.
	if c.presetToken != "" {
		c.accessToken = c.presetToken
		c.tokenExpiry = time.Now().Add(preProvisionedTokenLifetime)
		return c.accessToken, nil
	}

	if c.clientID == "" || c.clientSecret == "" || c.username == "" || c.password == "" {
		return "", ErrNotConfigured
	}

	// The platform wants the account password as lowercase md5 hex.
	sum := md5.Sum([]byte(c.password))
	form := url.Values{}
	form.Set("clientId", c.clientID)
	form.Set("clientSecret", c.clientSecret)
	form.Set("username", c.username)
	form.Set("password", hex.EncodeToString(sum[:]))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.apiURL+"/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("lock provider authentication failed: %w", err)
	}
	defer resp.Body.Close()

	var body tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if body.AccessToken == "" {
		return "", fmt.Errorf("lock provider authentication rejected: errcode %d %s", body.ErrCode, body.ErrMsg)
	}

	expiresIn := body.ExpiresIn
	if expiresIn == 0 {
		expiresIn = 7776000 // provider default, 90 days
	}
	c.accessToken = body.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(expiresIn) * time.Second)
	return c.accessToken, nil
}
