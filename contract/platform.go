package contract

import (
	"fmt"

	"zetasbox/sdk"
)

// -----------------------------------------------------------------------------
// Platform Configuration State
// -----------------------------------------------------------------------------

// isPlatformInitialized returns true once init_platform ran.
func isPlatformInitialized(st State) bool {
	ptr := st.Get(platformKey())
	return ptr != nil && *ptr != ""
}

// loadPlatform loads the singleton or fails PlatformNotInitialized.
func loadPlatform(st State) (*PlatformConfig, error) {
	ptr := st.Get(platformKey())
	if ptr == nil || *ptr == "" {
		return nil, fail(ErrPlatformNotInitialized, "platform config missing")
	}
	cfg, err := DecodePlatformConfig([]byte(*ptr))
	if err != nil {
		return nil, fmt.Errorf("load platform: %w", err)
	}
	return cfg, nil
}

func savePlatform(st State, cfg *PlatformConfig) {
	st.Set(platformKey(), string(EncodePlatformConfig(cfg)))
}

// isPlatformOwner returns true if addr currently owns the platform config.
func isPlatformOwner(cfg *PlatformConfig, addr sdk.Address) bool {
	return cfg != nil && !addr.IsZero() && cfg.Owner == addr
}

// initPlatform creates the singleton with the signer as owner.
func initPlatform(ctx *opContext, feeRoute sdk.Address) (*PlatformConfig, error) {
	owner := ctx.sender()
	if err := ctx.requireSigner(owner); err != nil {
		return nil, err
	}
	if isPlatformInitialized(ctx.st) {
		return nil, fail(ErrAlreadyExists, "platform config already initialized")
	}
	if err := ctx.verifyNativeAccount(feeRoute); err != nil {
		return nil, err
	}
	cfg := &PlatformConfig{FeeRoute: feeRoute, Owner: owner}
	savePlatform(ctx.st, cfg)
	ctx.emit(newEvent(EventPlatformInit, ctx.platformAddr).with("by", owner).with("fee", feeRoute))
	return cfg, nil
}

// updatePlatform replaces owner and fee route. Only the current owner may call it.
func updatePlatform(ctx *opContext, newOwner, newFeeRoute sdk.Address) (*PlatformConfig, error) {
	cfg, err := loadPlatform(ctx.st)
	if err != nil {
		return nil, err
	}
	caller := ctx.sender()
	if !isPlatformOwner(cfg, caller) {
		return nil, fail(ErrWrongOwner, "%s is not the platform owner", caller)
	}
	if err := ctx.requireSigner(caller); err != nil {
		return nil, err
	}
	if newOwner.IsZero() {
		return nil, fail(ErrWrongOwner, "new owner must be set")
	}
	if err := ctx.verifyNativeAccount(newFeeRoute); err != nil {
		return nil, err
	}
	cfg.Owner = newOwner
	cfg.FeeRoute = newFeeRoute
	savePlatform(ctx.st, cfg)
	ctx.emit(newEvent(EventPlatformUpdate, ctx.platformAddr).with("by", caller).with("owner", newOwner).with("fee", newFeeRoute))
	return cfg, nil
}
