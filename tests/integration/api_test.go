package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpHandler "custodial-vault-platform/internal/adapter/http/handler"
	redisStorage "custodial-vault-platform/internal/adapter/storage/redis"
	"custodial-vault-platform/internal/service"
	"custodial-vault-platform/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp builds a full application stack: real HTTP layer, middleware,
// services, and Redis notification bus (miniredis), over in-memory repos.

type testApp struct {
	server  *httptest.Server
	redis   *miniredis.Miniredis
	wallets *inMemoryWalletRepo
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)

	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	bus := redisStorage.NewNotificationBus(rdb)

	workspaceRepo, vaultRepo, walletRepo, addressRepo := newInMemoryStore()
	txRepo := newInMemoryTransactionRepo()
	settingsRepo := newInMemorySettingsRepo()
	transactor := newInMemoryTransactor()

	chainSvc := service.NewChainSimService()
	hashSvc := service.NewArgon2HashService()
	tokenSvc := service.NewJWTTokenService("test-jwt-secret-key-32bytes!!", 24*time.Hour, "test-issuer")
	log := logger.New("error", false)

	workspaceSvc := service.NewWorkspaceService(workspaceRepo, hashSvc, tokenSvc, log)
	ledgerSvc := service.NewLedgerService(walletRepo, transactor, log)
	ownershipSvc := service.NewOwnershipService(addressRepo, log)
	vaultSvc := service.NewVaultService(vaultRepo, walletRepo, addressRepo, chainSvc, bus, log)
	transferSvc := service.NewTransferService(txRepo, walletRepo, vaultRepo, addressRepo, ledgerSvc, ownershipSvc, chainSvc, bus, transactor, 1, log)
	transitionSvc := service.NewTransitionService(txRepo, ledgerSvc, bus, transactor, log)

	router := httpHandler.NewRouter(httpHandler.RouterDeps{
		WorkspaceSvc:  workspaceSvc,
		VaultSvc:      vaultSvc,
		TransferSvc:   transferSvc,
		TransitionSvc: transitionSvc,
		OwnershipSvc:  ownershipSvc,
		TxRepo:        txRepo,
		SettingsRepo:  settingsRepo,
		TokenSvc:      tokenSvc,
		Logger:        log,
	})

	server := httptest.NewServer(router)

	return &testApp{
		server:  server,
		redis:   mr,
		wallets: walletRepo,
	}
}

func (a *testApp) close() {
	a.server.Close()
	a.redis.Close()
}

// do issues a JSON request and decodes the envelope into out (which may be nil).
func (a *testApp) do(t *testing.T, method, path, token string, body any, out any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, a.server.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

type envelope struct {
	Data      json.RawMessage `json:"data"`
	ErrorCode string          `json:"error_code"`
	Message   string          `json:"message"`
}

// workspaceFixture is one registered workspace with a vault, a BTC wallet,
// and one deposit address.
type workspaceFixture struct {
	token   string
	vaultID string
	wallet  string
	address string
}

func (a *testApp) registerWorkspace(t *testing.T, name string) string {
	t.Helper()
	var env envelope
	resp := a.do(t, http.MethodPost, "/api/v1/workspaces", "", map[string]any{"name": name}, &env)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var reg struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &reg))
	return reg.Token
}

func (a *testApp) setupWorkspace(t *testing.T, name, assetID string) *workspaceFixture {
	t.Helper()
	token := a.registerWorkspace(t, name)
	return a.addVault(t, token, name+" treasury", assetID)
}

// addVault creates a vault with one asset wallet and one deposit address
// under an existing workspace token.
func (a *testApp) addVault(t *testing.T, token, name, assetID string) *workspaceFixture {
	t.Helper()

	var env envelope
	resp := a.do(t, http.MethodPost, "/api/v1/vault/accounts", token, map[string]any{"name": name}, &env)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var vault struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &vault))

	env = envelope{}
	resp = a.do(t, http.MethodPost, "/api/v1/vault/accounts/"+vault.ID+"/wallets", token, map[string]any{"asset_id": assetID}, &env)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var wallet struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &wallet))

	env = envelope{}
	resp = a.do(t, http.MethodPost, "/api/v1/wallets/"+wallet.ID+"/addresses", token, nil, &env)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var addr struct {
		Address string `json:"address"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &addr))

	return &workspaceFixture{token: token, vaultID: vault.ID, wallet: wallet.ID, address: addr.Address}
}

// creditIncoming funds a fixture's wallet via an already-settled external deposit.
func (a *testApp) creditIncoming(t *testing.T, f *workspaceFixture, assetID, amount string) {
	t.Helper()
	hash := fmt.Sprintf("%064d", time.Now().UnixNano())
	resp := a.do(t, http.MethodPost, "/api/v1/transactions/incoming", f.token, map[string]any{
		"asset_id":            assetID,
		"source_address":      "bc1q0000000000000000000000000000000000000e",
		"destination_address": f.address,
		"amount":              amount,
		"hash":                hash,
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

type transferView struct {
	ID          string `json:"id"`
	AssetID     string `json:"asset_id"`
	Amount      string `json:"amount"`
	NetworkFee  string `json:"network_fee"`
	State       string `json:"state"`
	Source      struct {
		Type             string `json:"type"`
		Address          string `json:"address"`
		VaultAccountName string `json:"vault_account_name"`
	} `json:"source"`
	Destination struct {
		Type             string `json:"type"`
		Address          string `json:"address"`
		VaultAccountName string `json:"vault_account_name"`
	} `json:"destination"`
}

func (a *testApp) transfer(t *testing.T, f *workspaceFixture, assetID, dest, amount string) (*transferView, *envelope, int) {
	t.Helper()
	var env envelope
	resp := a.do(t, http.MethodPost, "/api/v1/transactions", f.token, map[string]any{
		"vault_account_id":    f.vaultID,
		"asset_id":            assetID,
		"destination_address": dest,
		"amount":              amount,
	}, &env)
	if resp.StatusCode != http.StatusCreated {
		return nil, &env, resp.StatusCode
	}
	var view transferView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	return &view, &env, resp.StatusCode
}

func (a *testApp) transition(t *testing.T, token, txID, state string) (*envelope, int) {
	t.Helper()
	var env envelope
	resp := a.do(t, http.MethodPost, "/api/v1/transactions/"+txID+"/state", token, map[string]any{"state": state}, &env)
	return &env, resp.StatusCode
}

func (a *testApp) listTransactions(t *testing.T, token string) []transferView {
	t.Helper()
	var env envelope
	resp := a.do(t, http.MethodGet, "/api/v1/transactions", token, nil, &env)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var views []transferView
	require.NoError(t, json.Unmarshal(env.Data, &views))
	return views
}

func (a *testApp) available(t *testing.T, f *workspaceFixture) string {
	t.Helper()
	var env envelope
	resp := a.do(t, http.MethodGet, "/api/v1/vault/accounts", f.token, nil, &env)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var accounts []struct {
		Wallets []struct {
			ID      string `json:"id"`
			Balance string `json:"balance"`
			Pending string `json:"pending"`
		} `json:"wallets"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &accounts))
	for _, acc := range accounts {
		for _, w := range acc.Wallets {
			if w.ID == f.wallet {
				wallet, err := a.wallets.GetByID(t.Context(), mustUUID(t, w.ID))
				require.NoError(t, err)
				require.NotNil(t, wallet)
				return wallet.Available().String()
			}
		}
	}
	t.Fatalf("wallet %s not found", f.wallet)
	return ""
}

func mustUUID(t *testing.T, s string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(s)
	require.NoError(t, err)
	return id
}

// --- Integration Tests ---

func TestIntegration_HealthCheck(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	resp, err := http.Get(app.server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestIntegration_RegisterAndIssueToken(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	var env envelope
	resp := app.do(t, http.MethodPost, "/api/v1/workspaces", "", map[string]any{"name": "acme"}, &env)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var reg struct {
		WorkspaceID string `json:"workspace_id"`
		APIKey      string `json:"api_key"`
		Token       string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &reg))
	assert.NotEmpty(t, reg.WorkspaceID)
	assert.Contains(t, reg.APIKey, "cvp_")
	assert.NotEmpty(t, reg.Token)

	// Exchange the API key for a fresh token.
	env = envelope{}
	resp = app.do(t, http.MethodPost, "/api/v1/auth/token", "", map[string]any{
		"workspace_id": reg.WorkspaceID,
		"api_key":      reg.APIKey,
	}, &env)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Wrong key is rejected.
	env = envelope{}
	resp = app.do(t, http.MethodPost, "/api/v1/auth/token", "", map[string]any{
		"workspace_id": reg.WorkspaceID,
		"api_key":      "cvp_wrong",
	}, &env)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "AUTH_001", env.ErrorCode)
}

// TestIntegration_ReservationLifecycle walks the canonical funding story:
// deposit 1.0 BTC, reserve 0.6 gross, fail a second 0.6, roll the first back.
func TestIntegration_ReservationLifecycle(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	ws := app.setupWorkspace(t, "alpha", "BTC")
	app.creditIncoming(t, ws, "BTC", "1.0")
	require.Equal(t, "1", app.available(t, ws))

	dest := "bc1qffffffffffffffffffffffffffffffffffffff"
	view, _, code := app.transfer(t, ws, "BTC", dest, "0.6")
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "SUBMITTED", view.State)
	// Gross 0.6 = 0.5998 transfer + 0.0002 base fee.
	assert.Equal(t, "0.5998", view.Amount)
	assert.Equal(t, "0.0002", view.NetworkFee)
	assert.Equal(t, "0.4", app.available(t, ws))

	// A second 0.6 does not fit into the remaining 0.4.
	_, env, code := app.transfer(t, ws, "BTC", dest, "0.6")
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "LED_001", env.ErrorCode)
	assert.Contains(t, env.Message, "available 0.4")
	assert.Contains(t, env.Message, "required 0.6")

	// Cancelling releases the reservation in full.
	_, code = app.transition(t, ws.token, view.ID, "CANCELLED")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "1", app.available(t, ws))
}

// TestIntegration_SettlementFlow drives a transfer between two vaults of one
// workspace through the whole forward path and verifies both wallets after
// settlement.
func TestIntegration_SettlementFlow(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	src := app.setupWorkspace(t, "treasury", "BTC")
	dst := app.addVault(t, src.token, "cold storage", "BTC")
	app.creditIncoming(t, src, "BTC", "1.0")

	view, _, code := app.transfer(t, src, "BTC", dst.address, "0.6")
	require.Equal(t, http.StatusCreated, code)

	for _, state := range []string{"PENDING_AUTHORIZATION", "QUEUED", "BROADCASTING", "CONFIRMING", "COMPLETED"} {
		env, code := app.transition(t, src.token, view.ID, state)
		require.Equal(t, http.StatusOK, code, "transition to %s: %s", state, env.Message)
	}

	// Source paid 0.6 gross; the destination vault got the 0.5998 net of fee.
	assert.Equal(t, "0.4", app.available(t, src))
	assert.Equal(t, "0.5998", app.available(t, dst))
}

// TestIntegration_IllegalTransition verifies the state machine rejects edge
// skips and reports both states.
func TestIntegration_IllegalTransition(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	ws := app.setupWorkspace(t, "gamma", "BTC")
	app.creditIncoming(t, ws, "BTC", "1.0")

	view, _, code := app.transfer(t, ws, "BTC", "bc1qffffffffffffffffffffffffffffffffffffff", "0.5")
	require.Equal(t, http.StatusCreated, code)

	env, code := app.transition(t, ws.token, view.ID, "COMPLETED")
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "LED_003", env.ErrorCode)
	assert.Contains(t, env.Message, "SUBMITTED -> COMPLETED")

	// Same-state transition is an idempotent no-op.
	env, code = app.transition(t, ws.token, view.ID, "SUBMITTED")
	assert.Equal(t, http.StatusOK, code)
}

// TestIntegration_PerspectiveAsymmetry verifies the two workspaces on a
// transfer each see their own endpoint as a vault account, the other as a
// one-time address, and different transaction ids.
func TestIntegration_PerspectiveAsymmetry(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	sender := app.setupWorkspace(t, "sender", "BTC")
	receiver := app.setupWorkspace(t, "receiver", "BTC")
	outsider := app.setupWorkspace(t, "outsider", "BTC")
	app.creditIncoming(t, sender, "BTC", "1.0")

	view, _, code := app.transfer(t, sender, "BTC", receiver.address, "0.6")
	require.Equal(t, http.StatusCreated, code)

	assert.Equal(t, "VAULT_ACCOUNT", view.Source.Type)
	assert.Equal(t, "ONE_TIME_ADDRESS", view.Destination.Type)

	receiverViews := app.listTransactions(t, receiver.token)
	require.Len(t, receiverViews, 1)
	assert.Equal(t, "ONE_TIME_ADDRESS", receiverViews[0].Source.Type)
	assert.Equal(t, "VAULT_ACCOUNT", receiverViews[0].Destination.Type)
	assert.NotEqual(t, view.ID, receiverViews[0].ID)

	// A workspace owning neither endpoint sees nothing.
	assert.Empty(t, app.listTransactions(t, outsider.token))

	// The receiver cannot drive the sender's transaction, neither under the
	// sender's id nor under the id minted for its own perspective.
	env, code := app.transition(t, receiver.token, view.ID, "PENDING_AUTHORIZATION")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "NF_001", env.ErrorCode)

	env, code = app.transition(t, receiver.token, receiverViews[0].ID, "CANCELLED")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "NF_001", env.ErrorCode)

	// The sender's transfer and its reservation survive untouched.
	var senderView *transferView
	for _, v := range app.listTransactions(t, sender.token) {
		if v.ID == view.ID {
			senderView = &v
			break
		}
	}
	require.NotNil(t, senderView)
	assert.Equal(t, "SUBMITTED", senderView.State)
	assert.Equal(t, "0.4", app.available(t, sender))
}

func TestIntegration_IncomingDepositForeignAddress(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	alpha := app.setupWorkspace(t, "alpha", "BTC")
	beta := app.setupWorkspace(t, "beta", "BTC")

	// Alpha tries to register a deposit landing on beta's address.
	hash := fmt.Sprintf("%064d", time.Now().UnixNano())
	var env envelope
	resp := app.do(t, http.MethodPost, "/api/v1/transactions/incoming", alpha.token, map[string]any{
		"asset_id":            "BTC",
		"source_address":      "bc1q0000000000000000000000000000000000000e",
		"destination_address": beta.address,
		"amount":              "2.5",
		"hash":                hash,
	}, &env)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NF_001", env.ErrorCode)

	// No settled-looking transaction survives on either side, and no
	// balance moved.
	assert.Empty(t, app.listTransactions(t, alpha.token))
	assert.Empty(t, app.listTransactions(t, beta.token))
	assert.Equal(t, "0", app.available(t, beta))
}

func TestIntegration_AutoTransitionToggle(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	token := app.registerWorkspace(t, "ops")

	var env envelope
	resp := app.do(t, http.MethodGet, "/api/v1/admin/auto-transition", token, nil, &env)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(env.Data), `"enabled":true`)

	env = envelope{}
	resp = app.do(t, http.MethodPut, "/api/v1/admin/auto-transition", token, map[string]any{"enabled": false}, &env)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(env.Data), `"enabled":false`)
}
