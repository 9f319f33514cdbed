////////////////////////////////////////////////////////////////////////////////
// zetasbox: tokenized crowdfunding settlement ledger
////////////////////////////////////////////////////////////////////////////////

package main

import "zetasbox/cli"

func main() {
	cli.Execute()
}
