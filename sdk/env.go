package sdk

// Env is the authorization context of one operation: who calls and which identities signed.
type Env struct {
	Sender        Address
	RequiredAuths []Address
}

// SignedBy builds an Env where the sender is also the only signer.
// Example payload: sdk.SignedBy(alice)
func SignedBy(sender Address, extra ...Address) Env {
	auths := make([]Address, 0, 1+len(extra))
	auths = append(auths, sender)
	auths = append(auths, extra...)
	return Env{Sender: sender, RequiredAuths: auths}
}

// VerifySigner reports whether id signed the operation.
func (e Env) VerifySigner(id Address) bool {
	if id.IsZero() {
		return false
	}
	for _, a := range e.RequiredAuths {
		if a == id {
			return true
		}
	}
	return false
}
