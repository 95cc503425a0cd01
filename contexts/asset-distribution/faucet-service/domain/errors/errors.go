package errors

import "errors"

var (
	ErrQuotaExceeded           = errors.New("request quota exceeded for wallet and asset group")
	ErrUnknownAssetGroup       = errors.New("unknown asset group")
	ErrUnknownAsset            = errors.New("unknown asset ID")
	ErrDuplicateRecipient      = errors.New("a live request already holds this recipient ID")
	ErrInvalidWalletID         = errors.New("wallet ID must be a sha256 hex digest")
	ErrInvalidRecipientID      = errors.New("invalid recipient ID")
	ErrRequestNotFound         = errors.New("distribution request not found")
	ErrInvalidStatusTransition = errors.New("invalid request status transition")
	ErrCollaboratorUnavailable = errors.New("wallet collaborator unavailable")
)
