package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	faucetservice "rgbfaucet/contexts/asset-distribution/faucet-service"
	"rgbfaucet/contexts/asset-distribution/faucet-service/domain/entities"
	"rgbfaucet/contexts/asset-distribution/faucet-service/domain/services"
	faucethttp "rgbfaucet/contexts/asset-distribution/faucet-service/transport/http"
)

const (
	testUserKey     = "user-key"
	testOperatorKey = "operator-key"
	testAsset       = "rgb:2dkSTbr-jFhznbPmo-TQafzswCN-av4gTsJjX-ttx6CNou5-M98k8Zd"
)

func newTestServer() *httptest.Server {
	module := faucetservice.NewInMemoryModule(
		map[string]entities.AssetGroup{
			"group_1": {AssetID: testAsset, AmountPerRequest: 10, RequestsPerWallet: 1},
		},
		[]entities.AssetInfo{
			{AssetID: testAsset, Name: "Faucet Token", Balance: 1000},
		},
		nil,
	)
	server := New(module, testUserKey, testOperatorKey, nil, "")
	return httptest.NewServer(server.Handler())
}

func get(t *testing.T, ts *httptest.Server, path string, key string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, ts.URL+path, nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if key != "" {
		req.Header.Set(apiKeyHeader, key)
	}
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("request %s failed: %v", path, err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, into any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestAuthRequiredOnAllSurfaces(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	wallet := services.HashWalletID("xpub-auth")
	cases := []struct {
		path string
		key  string
	}{
		{"/receive/config/" + wallet, ""},
		{"/receive/config/" + wallet, "wrong-key"},
		{"/control/requests", ""},
		{"/control/requests", testUserKey},
		{"/control/fail", testUserKey},
		{"/reserve/top_up_btc", testUserKey},
	}
	for _, c := range cases {
		resp := get(t, ts, c.path, c.key)
		resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("%s with key %q: expected 401, got %d", c.path, c.key, resp.StatusCode)
		}
	}
}

func TestReceiveAssetFlow(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	wallet := services.HashWalletID("xpub-flow")
	resp := get(t, ts, "/receive/asset/"+wallet+"/utxob:flow-1", testUserKey)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var received faucethttp.ReceiveAssetResponse
	decode(t, resp, &received)
	if received.Request.Status != string(entities.RequestStatusPending) {
		t.Fatalf("expected pending request, got %s", received.Request.Status)
	}
	if received.Asset.AssetID != testAsset {
		t.Fatalf("expected asset %s, got %s", testAsset, received.Asset.AssetID)
	}

	// Quota for the group is now exhausted.
	resp = get(t, ts, "/receive/asset/"+wallet+"/utxob:flow-2", testUserKey)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 on exhausted quota, got %d", resp.StatusCode)
	}
	var failure faucethttp.ErrorResponse
	decode(t, resp, &failure)
	if failure.Code != "quota_exceeded" {
		t.Fatalf("expected quota_exceeded, got %s", failure.Code)
	}
}

func TestReceiveAssetRejectsRawXpub(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	resp := get(t, ts, "/receive/asset/tpubD6NzVbkrYhZ4XYa9MoLt4Bi/utxob:xpub-1", testUserKey)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for unhashed wallet id, got %d", resp.StatusCode)
	}
}

func TestReceiveConfigReportsRemaining(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	wallet := services.HashWalletID("xpub-config")
	resp := get(t, ts, "/receive/config/"+wallet, testUserKey)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var config faucethttp.ReceiveConfigResponse
	decode(t, resp, &config)
	group, ok := config.Groups["group_1"]
	if !ok {
		t.Fatalf("group_1 missing from config: %+v", config.Groups)
	}
	if group.RequestsLeft != 1 || group.AssetID != testAsset {
		t.Fatalf("unexpected group config: %+v", group)
	}
}

func TestControlSurface(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	resp := get(t, ts, "/control/requests", testOperatorKey)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var requests faucethttp.ListRequestsResponse
	decode(t, resp, &requests)
	if len(requests.Requests) != 0 {
		t.Fatalf("fresh store should have no pending requests, got %d", len(requests.Requests))
	}

	resp = get(t, ts, "/control/assets", testOperatorKey)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var assets faucethttp.ListAssetsResponse
	decode(t, resp, &assets)
	if _, ok := assets.Assets[testAsset]; !ok {
		t.Fatalf("asset overview missing %s: %+v", testAsset, assets.Assets)
	}

	resp = get(t, ts, "/control/fail", testOperatorKey)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var result faucethttp.ResultResponse
	decode(t, resp, &result)
	if result.Result {
		t.Fatal("fail with nothing expired should report false")
	}

	resp = get(t, ts, "/control/refresh/rgb:unknown", testOperatorKey)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown asset, got %d", resp.StatusCode)
	}
}

func TestReserveSurface(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	resp := get(t, ts, "/reserve/top_up_btc", testOperatorKey)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var address faucethttp.ReserveAddressResponse
	decode(t, resp, &address)
	if address.Address == "" {
		t.Fatal("expected a non-empty address")
	}

	resp = get(t, ts, "/reserve/top_up_rgb?asset_id="+testAsset, testOperatorKey)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var slot faucethttp.ReserveSlotResponse
	decode(t, resp, &slot)
	if slot.RecipientID == "" || slot.Expiration == "" {
		t.Fatalf("incomplete reserve slot: %+v", slot)
	}

	resp = get(t, ts, "/reserve/top_up_rgb?asset_id="+testAsset+"&amount=abc", testOperatorKey)
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for a bad amount, got %d", resp.StatusCode)
	}
}
