// Package faucetservice implements the RGB asset faucet core: admission of
// distribution requests under per-wallet quotas, the background batch
// scheduler that turns pending requests into batched on-chain sends, and the
// reconciliation pass that reflects transfer settlement and expiry back into
// request status.
//
// The module keeps domain/application logic decoupled from runtime/platform
// concerns through ports and adapter composition.
package faucetservice
