package contract

import "zetasbox/sdk"

// validateProjectArgs runs the creation checks that need no capability.
func validateProjectArgs(args *CreateProjectArgs) error {
	if s := ratioSum(args.SolSplit.ProjectPct, args.SolSplit.PoolPct); s != PercentBase {
		return fail(ErrInvalidRatio, "pledge split sums to %d", s)
	}
	if s := ratioSum(args.TokenSplit.ProjectPct, args.TokenSplit.PoolPct, args.TokenSplit.DonorPct); s != PercentBase {
		return fail(ErrInvalidRatio, "token split sums to %d", s)
	}
	if args.Window.Start > args.Window.End {
		return fail(ErrInvalidWindow, "start %d after end %d", args.Window.Start, args.Window.End)
	}
	if args.MinGoal > args.MaxCap {
		return fail(ErrInvalidCaps, "min goal %d above max cap %d", args.MinGoal, args.MaxCap)
	}
	return nil
}

// newProjectLedger builds a fresh ledger with zeroed totals and the pool still raising.
func newProjectLedger(addr sdk.Address, bump uint8, operator sdk.Address, args *CreateProjectArgs) *ProjectLedger {
	return &ProjectLedger{
		Address:       addr,
		Bump:          bump,
		TokenMint:     args.TokenMint,
		ProjectWallet: operator,
		Window:        args.Window,
		MinGoal:       args.MinGoal,
		MaxCap:        args.MaxCap,
		SolSplit:      args.SolSplit,
		Pool:          Fundraising(),
		InitMintRate:  args.InitMintRate,
		TokenSplit:    args.TokenSplit,
		PledgeVault:   args.PledgeVault,
		TokenVault:    args.TokenVault,
	}
}

// donationPlan is everything one pledge changes, computed before anything is applied.
type donationPlan struct {
	Amount        uint64
	Minted        uint64
	DonorTokens   uint64
	PoolTokens    uint64
	ProjectTokens uint64
	PoolPledge    uint64
	ProjectPledge uint64
	NewTotal      uint64
	NewMinted     uint64
}

// planDonation validates a pledge against the ledger and computes its splits.
// Example payload: p.planDonation(1_000_000_000, 500)
func (p *ProjectLedger) planDonation(amount uint64, now uint32) (donationPlan, error) {
	if amount == 0 {
		return donationPlan{}, fail(ErrZeroAmount, "pledge must be positive")
	}
	if p.Pool.IsSeeded() {
		return donationPlan{}, fail(ErrPoolAlreadyInitialized, "pool %s already seeded", p.Pool.ID)
	}
	if now < p.Window.Start {
		return donationPlan{}, fail(ErrDonationNotOpen, "opens at %d, now %d", p.Window.Start, now)
	}
	if now > p.Window.End {
		return donationPlan{}, fail(ErrDonationWindowClosed, "closed at %d, now %d", p.Window.End, now)
	}
	total, ok := checkedAdd(p.TotalDonated, amount)
	if !ok || total > p.MaxCap {
		return donationPlan{}, fail(ErrDonationCapExceeded, "total would pass cap %d", p.MaxCap)
	}

	minted, err := mintAmount(p.InitMintRate, amount)
	if err != nil {
		return donationPlan{}, err
	}
	newMinted, ok := checkedAdd(p.TotalMinted, minted)
	if !ok {
		return donationPlan{}, fail(ErrArithmeticOverflow, "total minted exceeds u64")
	}

	donorTokens := pctOf(minted, p.TokenSplit.DonorPct)
	poolTokens := pctOf(minted, p.TokenSplit.PoolPct)
	poolPledge := pctOf(amount, p.SolSplit.PoolPct)

	return donationPlan{
		Amount:        amount,
		Minted:        minted,
		DonorTokens:   donorTokens,
		PoolTokens:    poolTokens,
		ProjectTokens: minted - donorTokens - poolTokens,
		PoolPledge:    poolPledge,
		ProjectPledge: amount - poolPledge,
		NewTotal:      total,
		NewMinted:     newMinted,
	}, nil
}

// applyDonation commits a plan. Buckets are bounded by the already checked totals.
func (p *ProjectLedger) applyDonation(plan donationPlan) {
	p.TotalDonated = plan.NewTotal
	p.TotalMinted = plan.NewMinted
	p.TokenForPool += plan.PoolTokens
	p.TokenForProject += plan.ProjectTokens
	p.SolForPool += plan.PoolPledge
	p.SolForProject += plan.ProjectPledge
}

// recordDonation plans and applies a pledge in one step.
func (p *ProjectLedger) recordDonation(amount uint64, now uint32) (donationPlan, error) {
	plan, err := p.planDonation(amount, now)
	if err != nil {
		return donationPlan{}, err
	}
	p.applyDonation(plan)
	return plan, nil
}

// GoalMet reports whether pledges reached the minimum goal.
func (p *ProjectLedger) GoalMet() bool {
	return p.TotalDonated >= p.MinGoal
}

// CanSeed is the seeding time gate: before the window closes or within the grace after it.
func (p *ProjectLedger) CanSeed(now uint32) bool {
	return now < p.Window.End || uint64(now)-uint64(p.Window.End) <= GracePeriod
}

// RefundEligible is true once the goal was missed after the deadline, or unconditionally
// after the grace period.
func (p *ProjectLedger) RefundEligible(now uint32) bool {
	if !p.GoalMet() && now > p.Window.End {
		return true
	}
	return uint64(now) > uint64(p.Window.End)+GracePeriod
}

// OutstandingMint is what the first settlement still has to mint into the token vault.
func (p *ProjectLedger) OutstandingMint() uint64 {
	return p.TotalMinted - p.TokenForPool
}
