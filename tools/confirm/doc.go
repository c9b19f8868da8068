/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package confirm gates document creation on confirmation of a fetched analysis.

The default gate, Open, is fully stateless: fetch results end with a yes/no
prompt and the calling agent is trusted to ask its user before publishing.

NewHMAC hardens this without adding server-side state. Fetch results carry a
token signing the pull request reference and issue time, and publish requests
must present a valid, unexpired token:

	gate, err := confirm.NewHMAC([]byte(secret), confirm.WithTTL(30*time.Minute))
	token := gate.Issue(confirm.Ref{Owner: "chainguard-dev", Repo: "apko", Number: 7})
	err = gate.Verify(token) // nil until the TTL passes
*/
package confirm
