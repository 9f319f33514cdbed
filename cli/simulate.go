package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"zetasbox/contract"
	"zetasbox/sdk"
)

// simulateOpts are the campaign parameters of one simulated run.
type simulateOpts struct {
	Persist    bool
	Start      string
	Duration   uint32
	Donors     int
	Amount     uint64
	MinGoal    uint64
	MaxCap     uint64
	MintRate   uint64
	SolPool    uint8
	TokenPool  uint8
	TokenDonor uint8
}

var simOpts simulateOpts

// simulation is what simulate prints.
type simulation struct {
	Outcome    string                   `json:"outcome"`
	Project    *contract.ProjectLedger  `json:"project"`
	Donors     []*contract.DonorLedger  `json:"donors"`
	Platform   *contract.PlatformConfig `json:"platform"`
	Balances   map[string]uint64        `json:"balances"`
	Events     []contract.Event         `json:"events"`
	Operations map[string]float64       `json:"operations"`
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a complete campaign against an in-memory bank",
	Long: `Creates a platform and a project, lets --donors contributors pledge --amount each, then
seeds the pool and settles every claim when the goal is met, or refunds everyone otherwise.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		start, err := contract.ParseTimestamp(simOpts.Start)
		if err != nil {
			return err
		}
		lg, err := openLedger(!simOpts.Persist)
		if err != nil {
			return err
		}
		defer func() {
			if err := lg.close(); err != nil {
				logger.Warn("close store", zap.Error(err))
			}
		}()

		out, err := runCampaign(lg, simOpts, start)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), out)
	},
}

func init() {
	f := simulateCmd.Flags()
	f.BoolVar(&simOpts.Persist, "persist", false, "write ledgers to the configured store instead of memory")
	f.StringVar(&simOpts.Start, "now", "1700000000", "window start, unix seconds or 2006-01-02T15:04:05")
	f.Uint32Var(&simOpts.Duration, "duration", 7*24*3600, "window length in seconds")
	f.IntVar(&simOpts.Donors, "donors", 3, "number of contributors")
	f.Uint64Var(&simOpts.Amount, "amount", 1_000_000_000, "pledge per contributor")
	f.Uint64Var(&simOpts.MinGoal, "goal", 2_000_000_000, "minimum goal")
	f.Uint64Var(&simOpts.MaxCap, "cap", 10_000_000_000, "maximum cap")
	f.Uint64Var(&simOpts.MintRate, "rate", 2_000_000_000, "tokens per pledged unit, scaled by 1e9")
	f.Uint8Var(&simOpts.SolPool, "sol-pool", 60, "percent of pledges seeding the pool")
	f.Uint8Var(&simOpts.TokenPool, "token-pool", 30, "percent of minted tokens for the pool")
	f.Uint8Var(&simOpts.TokenDonor, "token-donor", 50, "percent of minted tokens for contributors")
}

// donorSeat is one simulated contributor and its accounts.
type donorSeat struct {
	id     sdk.Address
	ledger sdk.Address
	wallet sdk.Address
	tokens sdk.Address
}

func runCampaign(lg *ledger, o simulateOpts, start uint32) (*simulation, error) {
	if o.SolPool > 100 || int(o.TokenPool)+int(o.TokenDonor) > 100 {
		return nil, fmt.Errorf("split percentages exceed 100")
	}
	ctrl, bank := lg.ctrl, lg.bank
	var events []contract.Event
	collect := func(ev contract.Event) { events = append(events, ev) }
	if err := ctrl.Subscribe(collect); err != nil {
		return nil, err
	}
	defer func() { _ = ctrl.Unsubscribe(collect) }()

	admin := sdk.NewAddress()
	feeRoute := bank.OpenAccount(admin, sdk.NativeMint)
	if _, err := ctrl.InitPlatform(sdk.SignedBy(admin), feeRoute); err != nil {
		return nil, err
	}

	operator := sdk.NewAddress()
	project, err := ctrl.ProjectAddress(operator)
	if err != nil {
		return nil, err
	}
	mint := bank.CreateMint(project)
	end := start + o.Duration
	p, err := ctrl.CreateProject(sdk.SignedBy(operator), contract.CreateProjectArgs{
		TokenMint:    mint,
		PledgeVault:  bank.OpenAccount(project, sdk.NativeMint),
		TokenVault:   bank.OpenAccount(project, mint),
		Window:       contract.Window{Start: start, End: end},
		MinGoal:      o.MinGoal,
		MaxCap:       o.MaxCap,
		SolSplit:     contract.SolSplit{ProjectPct: 100 - o.SolPool, PoolPct: o.SolPool},
		TokenSplit:   contract.TokenSplit{ProjectPct: 100 - o.TokenPool - o.TokenDonor, PoolPct: o.TokenPool, DonorPct: o.TokenDonor},
		InitMintRate: o.MintRate,
	})
	if err != nil {
		return nil, err
	}

	seats := make([]donorSeat, 0, o.Donors)
	for i := 0; i < o.Donors; i++ {
		s := donorSeat{id: sdk.NewAddress()}
		s.wallet = bank.OpenAccount(s.id, sdk.NativeMint)
		s.tokens = bank.OpenAccount(s.id, mint)
		if err := bank.Deposit(s.wallet, o.Amount); err != nil {
			return nil, err
		}
		d, err := ctrl.InitDonate(sdk.SignedBy(s.id), p.Address)
		if err != nil {
			return nil, err
		}
		s.ledger = d.Address
		if _, err := ctrl.Donate(sdk.SignedBy(s.id), p.Address, s.ledger, s.wallet, o.Amount, start); err != nil {
			return nil, err
		}
		seats = append(seats, s)
	}

	balances := map[string]uint64{}
	outcome := "refunded"
	if p, err = ctrl.Project(p.Address); err != nil {
		return nil, err
	}
	if p.GoalMet() {
		outcome = "settled"
		coin := bank.OpenAccount(operator, mint)
		pc := bank.OpenAccount(operator, sdk.NativeMint)
		_, lpMint, err := bank.PoolAddresses(mint, sdk.NativeMint)
		if err != nil {
			return nil, err
		}
		lpTo := bank.OpenAccount(admin, lpMint)
		seed, err := ctrl.SeedPool(sdk.SignedBy(operator), p.Address, contract.SeedPoolArgs{
			OpenTime:          uint64(end),
			CoinAccount:       coin,
			PcAccount:         pc,
			PlatformLpAccount: lpTo,
		}, end)
		if err != nil {
			return nil, err
		}
		balances["platform:lp"] = bank.Balance(lpTo)
		opTokens := bank.OpenAccount(operator, mint)
		opWallet := bank.OpenAccount(operator, sdk.NativeMint)
		if _, err := ctrl.SettleProjectClaim(sdk.SignedBy(operator), p.Address, contract.ProjectClaimArgs{
			TokenTo:  opTokens,
			PledgeTo: opWallet,
		}); err != nil {
			return nil, err
		}
		for _, s := range seats {
			if _, err := ctrl.SettleDonorClaim(sdk.SignedBy(s.id), p.Address, s.ledger, s.tokens); err != nil {
				return nil, err
			}
			balances["donor:"+s.id.String()] = bank.Balance(s.tokens)
		}
		if pool, ok := bank.Pool(seed.PoolID); ok {
			balances["pool:coin"] = bank.Balance(pool.CoinVault)
			balances["pool:pc"] = bank.Balance(pool.PcVault)
		}
		balances["project:tokens"] = bank.Balance(opTokens)
		balances["project:pledge"] = bank.Balance(opWallet)
	} else {
		after := end + 1
		for _, s := range seats {
			if _, err := ctrl.Refund(sdk.SignedBy(s.id), p.Address, s.ledger, s.wallet, after); err != nil {
				return nil, err
			}
			balances["donor:"+s.id.String()] = bank.Balance(s.wallet)
		}
	}
	balances["fees"] = bank.Balance(feeRoute)
	balances["vault:pledge"] = bank.Balance(p.PledgeVault)
	balances["vault:tokens"] = bank.Balance(p.TokenVault)

	out := &simulation{Outcome: outcome, Balances: balances, Events: events}
	if out.Project, err = ctrl.Project(p.Address); err != nil {
		return nil, err
	}
	if out.Donors, err = ctrl.Donors(p.Address); err != nil {
		return nil, err
	}
	if out.Platform, err = ctrl.Platform(); err != nil {
		return nil, err
	}
	if out.Operations, err = operationCounts(lg); err != nil {
		return nil, err
	}
	return out, nil
}

// operationCounts flattens zetasbox_ledger_operations_total into "op/result" keys.
func operationCounts(lg *ledger) (map[string]float64, error) {
	families, err := lg.metrics.Gather()
	if err != nil {
		return nil, err
	}
	out := map[string]float64{}
	for _, fam := range families {
		if fam.GetName() != "zetasbox_ledger_operations_total" {
			continue
		}
		for _, m := range fam.GetMetric() {
			labels := map[string]string{}
			for _, l := range m.GetLabel() {
				labels[l.GetName()] = l.GetValue()
			}
			out[labels["op"]+"/"+labels["result"]] = m.GetCounter().GetValue()
		}
	}
	return out, nil
}
