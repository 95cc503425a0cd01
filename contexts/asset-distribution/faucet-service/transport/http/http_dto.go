package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type RequestDTO struct {
	ID          int64  `json:"id"`
	WalletID    string `json:"wallet_id"`
	AssetGroup  string `json:"asset_group"`
	AssetID     string `json:"asset_id"`
	RecipientID string `json:"recipient_id"`
	Amount      uint64 `json:"amount"`
	Status      string `json:"status"`
	TxID        string `json:"txid,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type ReceiveAssetResponse struct {
	Request RequestDTO `json:"request"`
	Asset   AssetDTO   `json:"asset"`
}

type ReceiveConfigResponse struct {
	Groups map[string]GroupConfigDTO `json:"groups"`
}

type GroupConfigDTO struct {
	AssetID      string `json:"asset_id"`
	Amount       uint64 `json:"amount"`
	RequestsLeft int    `json:"requests_left"`
}

type ListRequestsResponse struct {
	Requests []RequestDTO `json:"requests"`
}

type TransferDTO struct {
	AssetID            string   `json:"asset_id"`
	RecipientID        string   `json:"recipient_id,omitempty"`
	Amount             uint64   `json:"amount"`
	Status             string   `json:"status"`
	Kind               string   `json:"kind"`
	TxID               string   `json:"txid,omitempty"`
	TransportEndpoints []string `json:"transport_endpoints,omitempty"`
	ExpiresAt          string   `json:"expires_at,omitempty"`
}

type ListTransfersResponse struct {
	Transfers []TransferDTO `json:"transfers"`
}

type AssetDTO struct {
	AssetID   string `json:"asset_id"`
	Name      string `json:"name"`
	Precision uint8  `json:"precision"`
	Balance   uint64 `json:"balance"`
}

type ListAssetsResponse struct {
	Assets map[string]AssetDTO `json:"assets"`
}

type UnspentDTO struct {
	TxID        string          `json:"txid"`
	Vout        uint32          `json:"vout"`
	BTCAmount   uint64          `json:"btc_amount"`
	Colorable   bool            `json:"colorable"`
	Allocations []AllocationDTO `json:"allocations"`
}

type AllocationDTO struct {
	AssetID string `json:"asset_id"`
	Amount  uint64 `json:"amount"`
	Settled bool   `json:"settled"`
}

type ListUnspentsResponse struct {
	Unspents []UnspentDTO `json:"unspents"`
}

type ResultResponse struct {
	Result bool `json:"result"`
}

type ReserveAddressResponse struct {
	Address string `json:"address"`
}

type ReserveSlotResponse struct {
	RecipientID string `json:"recipient_id"`
	Expiration  string `json:"expiration"`
}
