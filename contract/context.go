package contract

import "zetasbox/sdk"

// opContext is scoped to the currently executing operation. It bundles the transaction state,
// the caller env and the capabilities, and buffers events until commit.
type opContext struct {
	st           State
	env          sdk.Env
	caps         sdk.Capabilities
	programID    sdk.Address
	platformAddr sdk.Address
	idempotent   bool
	events       []Event
}

// sender returns the address of the current operation caller.
func (c *opContext) sender() sdk.Address {
	return c.env.Sender
}

// requireSigner fails unless id signed the operation.
func (c *opContext) requireSigner(id sdk.Address) error {
	if !c.env.VerifySigner(id) {
		return fail(ErrSignerRequired, "%s must sign", id)
	}
	return nil
}

// requireOperator gates project scoped mutations to the project wallet.
func (c *opContext) requireOperator(p *ProjectLedger) error {
	if c.sender() != p.ProjectWallet {
		return fail(ErrWrongOwner, "%s is not the operator of %s", c.sender(), p.Address)
	}
	return c.requireSigner(p.ProjectWallet)
}

// emit buffers an event, it is only published when the operation commits.
func (c *opContext) emit(e Event) {
	c.events = append(c.events, e)
}

// verifyAccount checks owner and mint of an account passed in by the caller.
func (c *opContext) verifyAccount(account, owner, mint sdk.Address) error {
	if err := c.caps.VerifyOwnership(account, owner); err != nil {
		return NewError(ErrAccountMismatch, err, "account %s", account)
	}
	if err := c.caps.VerifyMintIdentity(account, mint); err != nil {
		return NewError(ErrMintMismatch, err, "account %s", account)
	}
	return nil
}

// verifyNativeAccount only checks that account holds the pledge currency.
func (c *opContext) verifyNativeAccount(account sdk.Address) error {
	if err := c.caps.VerifyMintIdentity(account, sdk.NativeMint); err != nil {
		return NewError(ErrMintMismatch, err, "account %s", account)
	}
	return nil
}

// deriveProject returns the ledger address of the project run by operator.
func (c *opContext) deriveProject(operator sdk.Address) (sdk.Address, uint8, error) {
	return sdk.DeriveAddress(c.programID, []byte(SeedProject), operator.Bytes())
}

// deriveDonor returns the ledger address of contributor on project.
func (c *opContext) deriveDonor(project, contributor sdk.Address) (sdk.Address, uint8, error) {
	return sdk.DeriveAddress(c.programID, []byte(SeedDonate), project.Bytes(), contributor.Bytes())
}
