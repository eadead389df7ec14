package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/pixil98/go-quest/internal/ledger"
)

// Responder serves request/reply subscriptions.
type Responder interface {
	Ready() <-chan struct{}
	Respond(subject string, handler func(data []byte) []byte) (func(), error)
}

// Executor applies transactions.
type Executor interface {
	Exec(ctx context.Context, tx *ledger.Tx) *ledger.Receipt
}

// Gateway accepts transactions on TxSubject and replies with their receipts.
type Gateway struct {
	server Responder
	exec   Executor
}

func NewGateway(server Responder, exec Executor) *Gateway {
	return &Gateway{server: server, exec: exec}
}

func (g *Gateway) Start(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return nil
	case <-g.server.Ready():
	}

	unsub, err := g.server.Respond(TxSubject, func(data []byte) []byte {
		return g.handle(ctx, data)
	})
	if err != nil {
		return fmt.Errorf("subscribing to %s: %w", TxSubject, err)
	}
	defer unsub()

	slog.InfoContext(ctx, "transaction gateway ready", "subject", TxSubject)

	<-ctx.Done()
	return nil
}

func (g *Gateway) handle(ctx context.Context, data []byte) []byte {
	var receipt *ledger.Receipt

	var tx ledger.Tx
	if err := json.Unmarshal(data, &tx); err != nil {
		slog.WarnContext(ctx, "malformed transaction", "error", err)
		receipt = &ledger.Receipt{Error: "malformed transaction"}
	} else {
		receipt = g.exec.Exec(ctx, &tx)
	}

	out, err := json.Marshal(receipt)
	if err != nil {
		slog.ErrorContext(ctx, "encoding receipt", "tx", receipt.TxID, "error", err)
		out, _ = json.Marshal(&ledger.Receipt{TxID: receipt.TxID, Error: "encoding receipt failed"})
	}
	return out
}
