package contract

import "zetasbox/sdk"

// createProject opens a campaign for the calling operator.
func createProject(ctx *opContext, args *CreateProjectArgs) (*ProjectLedger, error) {
	operator := ctx.sender()
	if err := ctx.requireSigner(operator); err != nil {
		return nil, err
	}
	if err := validateProjectArgs(args); err != nil {
		return nil, err
	}
	addr, bump, err := ctx.deriveProject(operator)
	if err != nil {
		return nil, err
	}
	if projectExists(ctx.st, addr) {
		return nil, fail(ErrAlreadyExists, "project %s", addr)
	}

	// the ledger must be the only one able to mint, and it must own both vaults
	auth, live, err := ctx.caps.MintAuthority(args.TokenMint)
	if err != nil {
		return nil, NewError(ErrMintMismatch, err, "token mint %s", args.TokenMint)
	}
	if !live || auth != addr {
		return nil, fail(ErrMintMismatch, "mint authority of %s must be %s", args.TokenMint, addr)
	}
	if err := ctx.verifyAccount(args.PledgeVault, addr, sdk.NativeMint); err != nil {
		return nil, err
	}
	if err := ctx.verifyAccount(args.TokenVault, addr, args.TokenMint); err != nil {
		return nil, err
	}

	p := newProjectLedger(addr, bump, operator, args)
	saveProject(ctx.st, p)
	addToIndex(ctx.st, projectIndexKey(), addr)
	ctx.emit(newEvent(EventProjectCreated, addr).with("by", operator).with("mint", args.TokenMint))
	return p, nil
}

// initDonate opens the donor ledger of the caller on project.
func initDonate(ctx *opContext, project sdk.Address) (*DonorLedger, error) {
	contributor := ctx.sender()
	if err := ctx.requireSigner(contributor); err != nil {
		return nil, err
	}
	p, err := loadProject(ctx.st, project)
	if err != nil {
		return nil, err
	}
	addr, bump, err := ctx.deriveDonor(project, contributor)
	if err != nil {
		return nil, err
	}
	if donorExists(ctx.st, addr) {
		return nil, fail(ErrAlreadyExists, "donor ledger %s", addr)
	}
	count, ok := checkedAdd(p.DonorCount, 1)
	if !ok {
		return nil, fail(ErrArithmeticOverflow, "donor count")
	}

	d := newDonorLedger(addr, bump, project, contributor)
	p.DonorCount = count
	saveDonor(ctx.st, d)
	saveProject(ctx.st, p)
	addToIndex(ctx.st, donorIndexKey(project), addr)
	ctx.emit(newEvent(EventDonorOpened, project).with("by", contributor).with("ledger", addr))
	return d, nil
}

// loadDonorFor loads project and donor ledger and checks the ledger belongs to the signing caller.
func loadDonorFor(ctx *opContext, project, donor sdk.Address) (*ProjectLedger, *DonorLedger, error) {
	contributor := ctx.sender()
	if err := ctx.requireSigner(contributor); err != nil {
		return nil, nil, err
	}
	p, err := loadProject(ctx.st, project)
	if err != nil {
		return nil, nil, err
	}
	d, err := loadDonor(ctx.st, donor)
	if err != nil {
		return nil, nil, err
	}
	if err := d.belongsTo(project, contributor); err != nil {
		return nil, nil, err
	}
	return p, d, nil
}

// donate records a pledge and moves it from the caller account into the pledge vault.
func donate(ctx *opContext, project, donor, from sdk.Address, amount uint64, now uint32) (*DonorLedger, error) {
	p, d, err := loadDonorFor(ctx, project, donor)
	if err != nil {
		return nil, err
	}
	plan, err := p.planDonation(amount, now)
	if err != nil {
		return nil, err
	}
	if err := ctx.caps.TransferValue(from, p.PledgeVault, amount, d.Contributor); err != nil {
		return nil, NewError(ErrTransferFailed, err, "pledge %d from %s", amount, from)
	}

	p.applyDonation(plan)
	d.credit(plan)
	saveProject(ctx.st, p)
	saveDonor(ctx.st, d)
	ctx.emit(newEvent(EventDonated, project).
		with("by", d.Contributor).
		with("am", amount).
		with("tk", plan.DonorTokens).
		with("total", p.TotalDonated))
	return d, nil
}

// seedPool closes a successful raise: pool tokens are minted, the pool share of pledges is
// paid out minus the platform fee and the external pool is created. The LP tokens the pool
// issues to the operator go to the platform owner.
func seedPool(ctx *opContext, project sdk.Address, args *SeedPoolArgs, now uint32) (*SeedResult, error) {
	p, err := loadProject(ctx.st, project)
	if err != nil {
		return nil, err
	}
	if err := ctx.requireOperator(p); err != nil {
		return nil, err
	}
	if p.Pool.IsSeeded() {
		return nil, fail(ErrPoolAlreadyInitialized, "pool %s already seeded", p.Pool.ID)
	}
	if !p.GoalMet() {
		return nil, fail(ErrDonationBelowMinimum, "raised %d of %d", p.TotalDonated, p.MinGoal)
	}
	if !p.CanSeed(now) {
		return nil, fail(ErrSeedWindowExpired, "window ended %d, now %d", p.Window.End, now)
	}
	platform, err := loadPlatform(ctx.st)
	if err != nil {
		return nil, err
	}
	if err := ctx.verifyAccount(args.CoinAccount, p.ProjectWallet, p.TokenMint); err != nil {
		return nil, err
	}
	if err := ctx.verifyAccount(args.PcAccount, p.ProjectWallet, sdk.NativeMint); err != nil {
		return nil, err
	}

	auth, live, err := ctx.caps.MintAuthority(p.TokenMint)
	if err != nil {
		return nil, NewError(ErrMintFailed, err, "token mint %s", p.TokenMint)
	}
	if live && auth == p.Address {
		if err := ctx.caps.MintValue(p.TokenMint, args.CoinAccount, p.TokenForPool, p.Address); err != nil {
			return nil, NewError(ErrMintFailed, err, "pool tokens %d", p.TokenForPool)
		}
	}

	net, fee := splitFee(p.SolForPool)
	if err := ctx.caps.TransferValue(p.PledgeVault, args.PcAccount, net, p.Address); err != nil {
		return nil, NewError(ErrTransferFailed, err, "pool pledge share %d", net)
	}
	if err := ctx.caps.TransferValue(p.PledgeVault, platform.FeeRoute, fee, p.Address); err != nil {
		return nil, NewError(ErrTransferFailed, err, "pool fee %d", fee)
	}

	receipt, err := ctx.caps.CreateLiquidityPool(sdk.PoolParams{
		Nonce:       args.Nonce,
		OpenTime:    args.OpenTime,
		CoinMint:    p.TokenMint,
		PcMint:      sdk.NativeMint,
		CoinAccount: args.CoinAccount,
		PcAccount:   args.PcAccount,
		CoinAmount:  p.TokenForPool,
		PcAmount:    net,
		Authority:   p.ProjectWallet,
	})
	if err != nil {
		return nil, NewError(ErrPoolSeedFailed, err, "project %s", project)
	}
	poolID := receipt.ID

	if err := ctx.verifyAccount(args.PlatformLpAccount, platform.Owner, receipt.LpMint); err != nil {
		return nil, err
	}
	lp, err := ctx.caps.BalanceOf(receipt.LpAccount)
	if err != nil {
		return nil, NewError(ErrTransferFailed, err, "lp account %s", receipt.LpAccount)
	}
	if err := ctx.caps.TransferValue(receipt.LpAccount, args.PlatformLpAccount, lp, p.ProjectWallet); err != nil {
		return nil, NewError(ErrTransferFailed, err, "lp tokens %d", lp)
	}

	res := &SeedResult{
		PoolID:       poolID,
		TokenToPool:  p.TokenForPool,
		PledgeToPool: net,
		Fee:          fee,
		LpMint:       receipt.LpMint,
		LpToPlatform: lp,
	}
	p.Pool = Seeded(poolID)
	p.SolForPool = 0
	saveProject(ctx.st, p)
	ctx.emit(newEvent(EventPoolSeeded, project).
		with("pool", poolID).
		with("tk", res.TokenToPool).
		with("am", net).
		with("fee", fee).
		with("lp", lp))
	return res, nil
}

// completeMint mints whatever the pool did not take into the token vault and revokes the mint
// authority. It is a no-op once the authority is gone.
func completeMint(ctx *opContext, p *ProjectLedger) (minted uint64, revoked bool, err error) {
	auth, live, err := ctx.caps.MintAuthority(p.TokenMint)
	if err != nil {
		return 0, false, NewError(ErrMintFailed, err, "token mint %s", p.TokenMint)
	}
	if !live || auth != p.Address {
		return 0, false, nil
	}
	amount := p.OutstandingMint()
	if err := ctx.caps.MintValue(p.TokenMint, p.TokenVault, amount, p.Address); err != nil {
		return 0, false, NewError(ErrMintFailed, err, "outstanding tokens %d", amount)
	}
	if err := ctx.caps.RevokeMintAuthority(p.TokenMint, p.Address); err != nil {
		return 0, false, NewError(ErrMintFailed, err, "revoke %s", p.TokenMint)
	}
	return amount, true, nil
}

// requireSettleable is shared by both claims: the pool exists and the goal was met.
func requireSettleable(p *ProjectLedger) error {
	if !p.Pool.IsSeeded() {
		return fail(ErrPoolNotInitialized, "project %s still raising", p.Address)
	}
	if !p.GoalMet() {
		return fail(ErrDonationBelowMinimum, "raised %d of %d", p.TotalDonated, p.MinGoal)
	}
	return nil
}

// settleProjectClaim pays the operator its token share and its pledge share minus the fee.
func settleProjectClaim(ctx *opContext, project sdk.Address, args *ProjectClaimArgs) (*ClaimResult, error) {
	p, err := loadProject(ctx.st, project)
	if err != nil {
		return nil, err
	}
	if err := ctx.requireOperator(p); err != nil {
		return nil, err
	}
	if err := requireSettleable(p); err != nil {
		return nil, err
	}
	if p.ProjectClaimed {
		if !ctx.idempotent {
			return nil, fail(ErrAlreadySettled, "project %s already claimed", project)
		}
		return &ClaimResult{}, nil
	}
	platform, err := loadPlatform(ctx.st)
	if err != nil {
		return nil, err
	}
	if err := ctx.verifyAccount(args.TokenTo, p.ProjectWallet, p.TokenMint); err != nil {
		return nil, err
	}
	if err := ctx.verifyAccount(args.PledgeTo, p.ProjectWallet, sdk.NativeMint); err != nil {
		return nil, err
	}

	minted, revoked, err := completeMint(ctx, p)
	if err != nil {
		return nil, err
	}
	if err := ctx.caps.TransferValue(p.TokenVault, args.TokenTo, p.TokenForProject, p.Address); err != nil {
		return nil, NewError(ErrTransferFailed, err, "project tokens %d", p.TokenForProject)
	}
	net, fee := splitFee(p.SolForProject)
	if err := ctx.caps.TransferValue(p.PledgeVault, args.PledgeTo, net, p.Address); err != nil {
		return nil, NewError(ErrTransferFailed, err, "project pledge share %d", net)
	}
	if err := ctx.caps.TransferValue(p.PledgeVault, platform.FeeRoute, fee, p.Address); err != nil {
		return nil, NewError(ErrTransferFailed, err, "project fee %d", fee)
	}

	res := &ClaimResult{Minted: minted, Tokens: p.TokenForProject, Pledge: net, Fee: fee, Revoked: revoked}
	p.TokenForProject = 0
	p.SolForProject = 0
	p.ProjectClaimed = true
	saveProject(ctx.st, p)
	ctx.emit(newEvent(EventProjectClaimed, project).
		with("by", p.ProjectWallet).
		with("tk", res.Tokens).
		with("am", net).
		with("fee", fee))
	return res, nil
}

// settleDonorClaim pays a contributor the tokens accrued on its ledger.
func settleDonorClaim(ctx *opContext, project, donor, to sdk.Address) (*ClaimResult, error) {
	p, d, err := loadDonorFor(ctx, project, donor)
	if err != nil {
		return nil, err
	}
	if err := requireSettleable(p); err != nil {
		return nil, err
	}
	replay, err := d.settlement(DonorClaimed, ctx.idempotent)
	if err != nil {
		return nil, err
	}
	if replay {
		return &ClaimResult{}, nil
	}
	if err := ctx.verifyAccount(to, d.Contributor, p.TokenMint); err != nil {
		return nil, err
	}

	minted, revoked, err := completeMint(ctx, p)
	if err != nil {
		return nil, err
	}
	if err := ctx.caps.TransferValue(p.TokenVault, to, d.Entitlement, p.Address); err != nil {
		return nil, NewError(ErrTransferFailed, err, "entitlement %d", d.Entitlement)
	}

	res := &ClaimResult{Minted: minted, Tokens: d.Entitlement, Revoked: revoked}
	d.Entitlement = 0
	d.Status = DonorClaimed
	saveDonor(ctx.st, d)
	ctx.emit(newEvent(EventDonorClaimed, project).with("by", d.Contributor).with("tk", res.Tokens))
	return res, nil
}

// refund returns the full pledge of a contributor once the campaign failed or went stale.
func refund(ctx *opContext, project, donor, to sdk.Address, now uint32) (uint64, error) {
	p, d, err := loadDonorFor(ctx, project, donor)
	if err != nil {
		return 0, err
	}
	if p.Pool.IsSeeded() {
		return 0, fail(ErrPoolAlreadyInitialized, "pool %s already seeded", p.Pool.ID)
	}
	if !p.RefundEligible(now) {
		return 0, fail(ErrRefundNotEligible, "raised %d of %d, window ends %d, now %d", p.TotalDonated, p.MinGoal, p.Window.End, now)
	}
	replay, err := d.settlement(DonorRefunded, ctx.idempotent)
	if err != nil {
		return 0, err
	}
	if replay {
		return 0, nil
	}
	if err := ctx.verifyAccount(to, d.Contributor, sdk.NativeMint); err != nil {
		return 0, err
	}
	amount := d.Donated
	if err := ctx.caps.TransferValue(p.PledgeVault, to, amount, p.Address); err != nil {
		return 0, NewError(ErrTransferFailed, err, "refund %d", amount)
	}

	d.Donated = 0
	d.Status = DonorRefunded
	saveDonor(ctx.st, d)
	ctx.emit(newEvent(EventRefunded, project).with("by", d.Contributor).with("am", amount))
	return amount, nil
}
