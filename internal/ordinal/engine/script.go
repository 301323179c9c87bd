package engine

import (
	"bytes"

	"github.com/btcsuite/btcd/txscript"
)

var ordMarker = []byte("ord")

// hasInscriptionMarker reports whether an output script is an OP_RETURN
// carrying the three-byte "ord" tag in one of its pushes. Entries for such
// outputs are flagged so queries can surface them without re-parsing scripts.
func hasInscriptionMarker(script []byte) bool {
	if len(script) < 2 || script[0] != txscript.OP_RETURN {
		return false
	}
	tokenizer := txscript.MakeScriptTokenizer(0, script[1:])
	for tokenizer.Next() {
		if bytes.Equal(tokenizer.Data(), ordMarker) {
			return true
		}
	}
	return false
}
