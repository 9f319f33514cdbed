package contract

import (
	"sync"
	"time"

	evbus "github.com/asaskevich/EventBus"
	"go.uber.org/zap"

	"zetasbox/sdk"
)

// Options tune a Controller. Zero values are usable.
type Options struct {
	// ProgramID owns derived ledger addresses, DefaultProgramID when zero.
	ProgramID sdk.Address
	// IdempotentSettlement makes replayed settlements and refunds succeed with zero payout
	// instead of failing AlreadySettled.
	IdempotentSettlement bool
	Logger               *zap.Logger
	Metrics              *Metrics
	// Bus receives committed events, a private bus is created when nil.
	Bus evbus.Bus
}

// Controller runs the crowdfunding lifecycle. Every mutating operation executes inside one store
// transaction; capability effects are rolled back with it when the capabilities support
// checkpoints.
type Controller struct {
	mu           sync.Mutex
	store        Store
	caps         sdk.Capabilities
	programID    sdk.Address
	platformAddr sdk.Address
	idempotent   bool
	log          *zap.Logger
	metrics      *Metrics
	bus          evbus.Bus
}

// NewController wires a controller over store and caps.
func NewController(store Store, caps sdk.Capabilities, opts Options) (*Controller, error) {
	programID := opts.ProgramID
	if programID.IsZero() {
		programID = DefaultProgramID
	}
	platformAddr, _, err := sdk.DeriveAddress(programID, []byte(SeedPlatform))
	if err != nil {
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	bus := opts.Bus
	if bus == nil {
		bus = evbus.New()
	}
	return &Controller{
		store:        store,
		caps:         caps,
		programID:    programID,
		platformAddr: platformAddr,
		idempotent:   opts.IdempotentSettlement,
		log:          log.Named("ledger"),
		metrics:      opts.Metrics,
		bus:          bus,
	}, nil
}

func (c *Controller) newContext(st State, env sdk.Env) *opContext {
	return &opContext{
		st:           st,
		env:          env,
		caps:         c.caps,
		programID:    c.programID,
		platformAddr: c.platformAddr,
		idempotent:   c.idempotent,
	}
}

// run executes fn as one atomic operation and publishes its events after commit.
func (c *Controller) run(op string, env sdk.Env, fn func(ctx *opContext) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	started := time.Now()
	var rollback func()
	if tx, ok := c.caps.(sdk.Transactional); ok {
		rollback = tx.Checkpoint()
	}
	var events []Event
	err := c.store.Update(func(st State) error {
		ctx := c.newContext(st, env)
		if err := fn(ctx); err != nil {
			return err
		}
		events = ctx.events
		return nil
	})
	c.metrics.observe(op, started, err)
	if err != nil {
		if rollback != nil {
			rollback()
		}
		c.log.Warn("operation aborted",
			zap.String("op", op),
			zap.Stringer("sender", env.Sender),
			zap.String("code", CodeOf(err)),
			zap.Error(err))
		return err
	}
	c.log.Debug("operation committed", zap.String("op", op), zap.Stringer("sender", env.Sender))
	for _, ev := range events {
		c.publish(ev)
	}
	return nil
}

func (c *Controller) publish(ev Event) {
	ev = stampEvent(ev)
	c.log.Info(ev.String(), zap.String("event_id", ev.ID))
	c.bus.Publish(EventTopic, ev)
}

// Subscribe registers fn for every committed event. Handlers run synchronously on publish.
func (c *Controller) Subscribe(fn func(Event)) error {
	return c.bus.Subscribe(EventTopic, fn)
}

// Unsubscribe removes a handler registered with Subscribe.
func (c *Controller) Unsubscribe(fn func(Event)) error {
	return c.bus.Unsubscribe(EventTopic, fn)
}

// -----------------------------------------------------------------------------
// Addresses
// -----------------------------------------------------------------------------

// ProgramID returns the id ledger addresses derive from.
func (c *Controller) ProgramID() sdk.Address { return c.programID }

// ProjectAddress derives the ledger address of the project run by operator.
func (c *Controller) ProjectAddress(operator sdk.Address) (sdk.Address, error) {
	addr, _, err := sdk.DeriveAddress(c.programID, []byte(SeedProject), operator.Bytes())
	return addr, err
}

// DonorAddress derives the donor ledger address of contributor on project.
func (c *Controller) DonorAddress(project, contributor sdk.Address) (sdk.Address, error) {
	addr, _, err := sdk.DeriveAddress(c.programID, []byte(SeedDonate), project.Bytes(), contributor.Bytes())
	return addr, err
}

// PlatformAddress is the derived identity of the platform singleton.
func (c *Controller) PlatformAddress() sdk.Address { return c.platformAddr }

// -----------------------------------------------------------------------------
// Operations
// -----------------------------------------------------------------------------

// CreateProject opens a campaign run by env.Sender. The token mint authority must already be
// the derived project address and both vaults must be owned by it.
func (c *Controller) CreateProject(env sdk.Env, args CreateProjectArgs) (*ProjectLedger, error) {
	var out *ProjectLedger
	err := c.run("create_project", env, func(ctx *opContext) (err error) {
		out, err = createProject(ctx, &args)
		return err
	})
	return out, err
}

// InitDonate opens the donor ledger of env.Sender on project.
func (c *Controller) InitDonate(env sdk.Env, project sdk.Address) (*DonorLedger, error) {
	var out *DonorLedger
	err := c.run("init_donate", env, func(ctx *opContext) (err error) {
		out, err = initDonate(ctx, project)
		return err
	})
	return out, err
}

// Donate pledges amount from the caller's account from.
// Example payload: c.Donate(sdk.SignedBy(alice), project, aliceLedger, aliceWallet, 1_000_000_000, now)
func (c *Controller) Donate(env sdk.Env, project, donor, from sdk.Address, amount uint64, now uint32) (*DonorLedger, error) {
	var out *DonorLedger
	err := c.run("donate", env, func(ctx *opContext) (err error) {
		out, err = donate(ctx, project, donor, from, amount, now)
		return err
	})
	if err == nil {
		c.metrics.addPledged(amount)
	}
	return out, err
}

// SeedPool seeds the liquidity pool of a successful raise.
func (c *Controller) SeedPool(env sdk.Env, project sdk.Address, args SeedPoolArgs, now uint32) (*SeedResult, error) {
	var out *SeedResult
	err := c.run("seed_pool", env, func(ctx *opContext) (err error) {
		out, err = seedPool(ctx, project, &args, now)
		return err
	})
	return out, err
}

// SettleProjectClaim pays the operator share.
func (c *Controller) SettleProjectClaim(env sdk.Env, project sdk.Address, args ProjectClaimArgs) (*ClaimResult, error) {
	var out *ClaimResult
	err := c.run("settle_project_claim", env, func(ctx *opContext) (err error) {
		out, err = settleProjectClaim(ctx, project, &args)
		return err
	})
	if err == nil {
		c.metrics.addTokensPaid(out.Tokens)
	}
	return out, err
}

// SettleDonorClaim pays the entitlement of the caller's donor ledger to the token account to.
func (c *Controller) SettleDonorClaim(env sdk.Env, project, donor, to sdk.Address) (*ClaimResult, error) {
	var out *ClaimResult
	err := c.run("settle_donor_claim", env, func(ctx *opContext) (err error) {
		out, err = settleDonorClaim(ctx, project, donor, to)
		return err
	})
	if err == nil {
		c.metrics.addTokensPaid(out.Tokens)
	}
	return out, err
}

// Refund returns the caller's pledge to the native account to and reports the amount.
func (c *Controller) Refund(env sdk.Env, project, donor, to sdk.Address, now uint32) (uint64, error) {
	var out uint64
	err := c.run("refund", env, func(ctx *opContext) (err error) {
		out, err = refund(ctx, project, donor, to, now)
		return err
	})
	return out, err
}

// InitPlatform creates the platform config owned by env.Sender.
func (c *Controller) InitPlatform(env sdk.Env, feeRoute sdk.Address) (*PlatformConfig, error) {
	var out *PlatformConfig
	err := c.run("init_platform", env, func(ctx *opContext) (err error) {
		out, err = initPlatform(ctx, feeRoute)
		return err
	})
	return out, err
}

// UpdatePlatform hands the platform to newOwner with a new fee route.
func (c *Controller) UpdatePlatform(env sdk.Env, newOwner, newFeeRoute sdk.Address) (*PlatformConfig, error) {
	var out *PlatformConfig
	err := c.run("update_platform", env, func(ctx *opContext) (err error) {
		out, err = updatePlatform(ctx, newOwner, newFeeRoute)
		return err
	})
	return out, err
}

// -----------------------------------------------------------------------------
// Reads
// -----------------------------------------------------------------------------

// Project loads a project ledger.
func (c *Controller) Project(addr sdk.Address) (*ProjectLedger, error) {
	var out *ProjectLedger
	err := c.store.View(func(st State) (err error) {
		out, err = loadProject(st, addr)
		return err
	})
	return out, err
}

// Donor loads a donor ledger.
func (c *Controller) Donor(addr sdk.Address) (*DonorLedger, error) {
	var out *DonorLedger
	err := c.store.View(func(st State) (err error) {
		out, err = loadDonor(st, addr)
		return err
	})
	return out, err
}

// Donors lists the donor ledgers of project in opening order.
func (c *Controller) Donors(project sdk.Address) ([]*DonorLedger, error) {
	var out []*DonorLedger
	err := c.store.View(func(st State) (err error) {
		if !projectExists(st, project) {
			return fail(ErrProjectNotFound, "project %s", project)
		}
		out, err = listDonors(st, project)
		return err
	})
	return out, err
}

// Projects lists every project ledger in creation order.
func (c *Controller) Projects() ([]*ProjectLedger, error) {
	var out []*ProjectLedger
	err := c.store.View(func(st State) (err error) {
		out, err = listProjects(st)
		return err
	})
	return out, err
}

// Platform loads the platform config.
func (c *Controller) Platform() (*PlatformConfig, error) {
	var out *PlatformConfig
	err := c.store.View(func(st State) (err error) {
		out, err = loadPlatform(st)
		return err
	})
	return out, err
}
