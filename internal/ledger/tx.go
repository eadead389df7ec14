package ledger

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pixil98/go-quest/internal/game"
)

// Tx is a single call into the game. Sender is the authenticated identity of
// the caller and is trusted as given.
type Tx struct {
	ID      string          `json:"id"`
	Sender  game.PlayerID   `json:"sender"`
	Op      string          `json:"op"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Receipt is the outcome of a transaction. Code carries the game error code
// of a rejected transaction, or 0 for malformed ones.
type Receipt struct {
	TxID  string         `json:"tx_id"`
	Ok    bool           `json:"ok"`
	Value any            `json:"value"`
	Code  game.ErrorCode `json:"code,omitempty"`
	Error string         `json:"error,omitempty"`
}

func newReceipt(tx *Tx, value any, err error) *Receipt {
	if err != nil {
		return &Receipt{
			TxID:  tx.ID,
			Code:  game.CodeOf(err),
			Error: err.Error(),
		}
	}
	return &Receipt{TxID: tx.ID, Ok: true, Value: value}
}

// Err converts a failed receipt back into an error. Game rejections are
// returned as their game error so errors.Is keeps working across the wire.
func (r *Receipt) Err() error {
	if r.Ok {
		return nil
	}
	if r.Code != 0 {
		return &game.Error{Code: r.Code, Message: r.Error}
	}
	return NewUserError(r.Error)
}

// decodePayload unmarshals the transaction payload into T. An empty payload
// yields the zero value.
func decodePayload[T any](tx *Tx) (T, error) {
	var v T
	if len(tx.Payload) == 0 {
		return v, nil
	}
	if err := json.Unmarshal(tx.Payload, &v); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return v, NewUserError(fmt.Sprintf("invalid %s payload: malformed json", tx.Op))
		}
		return v, NewUserError(fmt.Sprintf("invalid %s payload: %v", tx.Op, err))
	}
	return v, nil
}
