package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/pixil98/go-quest/internal/game"
	"github.com/pixil98/go-quest/internal/ledger"
	"github.com/pixil98/go-quest/internal/messaging"
)

// Requester sends a request and waits for the reply.
type Requester interface {
	Request(subject string, data []byte, timeout time.Duration) (*nats.Msg, error)
}

// DialFunc connects to the server at url. The returned func closes the
// connection.
type DialFunc func(url string) (Requester, func(), error)

func dialNats(url string) (Requester, func(), error) {
	nc, err := nats.Connect(url, nats.Name("questctl"))
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to %s: %w", url, err)
	}
	return nc, nc.Close, nil
}

type client struct {
	req     Requester
	sender  game.PlayerID
	timeout time.Duration
}

// submit sends a transaction and returns its receipt. A rejected transaction
// is returned as an error.
func (c *client) submit(op string, args any) (*ledger.Receipt, error) {
	tx := ledger.Tx{
		ID:     uuid.New().String(),
		Sender: c.sender,
		Op:     op,
	}
	if args != nil {
		payload, err := json.Marshal(args)
		if err != nil {
			return nil, fmt.Errorf("encoding payload: %w", err)
		}
		tx.Payload = payload
	}

	data, err := json.Marshal(tx)
	if err != nil {
		return nil, fmt.Errorf("encoding transaction: %w", err)
	}

	msg, err := c.req.Request(messaging.TxSubject, data, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("submitting %s: %w", op, err)
	}

	var r ledger.Receipt
	if err := json.Unmarshal(msg.Data, &r); err != nil {
		return nil, fmt.Errorf("decoding receipt: %w", err)
	}
	if !r.Ok {
		return &r, r.Err()
	}
	return &r, nil
}
