package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/pixil98/go-quest/internal/display"
	"github.com/pixil98/go-quest/internal/game"
	"github.com/pixil98/go-quest/internal/ledger"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	server  string
	sender  string
	timeout time.Duration
}

func newRootCmd(dial DialFunc) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "questctl",
		Short:         "Submit transactions to a quest server",
		SilenceUsage:  true,
		SilenceErrors: false,
		Long: `questctl submits transactions to a running questd over NATS and prints
the receipt value as JSON.

Every transaction is sent on behalf of --sender, which the server trusts as
the caller identity.`,
	}

	root.PersistentFlags().StringVarP(&opts.server, "server", "s", nats.DefaultURL, "NATS server url")
	root.PersistentFlags().StringVarP(&opts.sender, "sender", "u", "", "player id sending the transaction (required)")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 5*time.Second, "time to wait for a receipt")
	_ = root.MarkPersistentFlagRequired("sender")

	// run wraps a transaction builder into a cobra RunE.
	run := func(build func(args []string) (string, any, error)) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			op, payload, err := build(args)
			if err != nil {
				return err
			}

			req, closeFn, err := dial(opts.server)
			if err != nil {
				return err
			}
			defer closeFn()

			c := &client{req: req, sender: game.PlayerID(opts.sender), timeout: opts.timeout}
			r, err := c.submit(op, payload)
			if err != nil {
				return err
			}
			return printValue(cmd.OutOrStdout(), r.Value)
		}
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "register <username>",
			Short: "Register the sender as a player",
			Args:  cobra.ExactArgs(1),
			RunE: run(func(args []string) (string, any, error) {
				return ledger.OpRegisterPlayer, ledger.RegisterPlayerArgs{Username: args[0]}, nil
			}),
		},
		newExploreCmd(run),
		&cobra.Command{
			Use:   "claim <treasure-id>",
			Short: "Claim a treasure",
			Args:  cobra.ExactArgs(1),
			RunE: run(func(args []string) (string, any, error) {
				id, err := parseID("treasure id", args[0])
				if err != nil {
					return "", nil, err
				}
				return ledger.OpClaimTreasure, ledger.TreasureArgs{TreasureID: game.TreasureID(id)}, nil
			}),
		},
		&cobra.Command{
			Use:   "transfer <treasure-id> <recipient>",
			Short: "Give a claimed treasure to another player",
			Args:  cobra.ExactArgs(2),
			RunE: run(func(args []string) (string, any, error) {
				id, err := parseID("treasure id", args[0])
				if err != nil {
					return "", nil, err
				}
				return ledger.OpTransferTreasure, ledger.TransferTreasureArgs{
					TreasureID: game.TreasureID(id),
					Recipient:  game.PlayerID(args[1]),
				}, nil
			}),
		},
		newCreateLocationCmd(run),
		newCreateTreasureCmd(run),
		&cobra.Command{
			Use:   "set-active <true|false>",
			Short: "Set the game active flag (admin)",
			Args:  cobra.ExactArgs(1),
			RunE: run(func(args []string) (string, any, error) {
				active, err := strconv.ParseBool(args[0])
				if err != nil {
					return "", nil, fmt.Errorf("invalid active flag %q", args[0])
				}
				return ledger.OpSetGameActive, ledger.SetGameActiveArgs{Active: active}, nil
			}),
		},
		&cobra.Command{
			Use:   "player [player-id]",
			Short: "Show a player, the sender by default",
			Args:  cobra.MaximumNArgs(1),
			RunE: run(func(args []string) (string, any, error) {
				var p ledger.PlayerArgs
				if len(args) == 1 {
					p.Player = game.PlayerID(args[0])
				}
				return ledger.OpGetPlayerInfo, p, nil
			}),
		},
		&cobra.Command{
			Use:   "treasure <treasure-id>",
			Short: "Show a treasure",
			Args:  cobra.ExactArgs(1),
			RunE: run(func(args []string) (string, any, error) {
				id, err := parseID("treasure id", args[0])
				if err != nil {
					return "", nil, err
				}
				return ledger.OpGetTreasureInfo, ledger.TreasureArgs{TreasureID: game.TreasureID(id)}, nil
			}),
		},
		&cobra.Command{
			Use:   "location <location-id>",
			Short: "Show a location",
			Args:  cobra.ExactArgs(1),
			RunE: run(func(args []string) (string, any, error) {
				id, err := parseID("location id", args[0])
				if err != nil {
					return "", nil, err
				}
				return ledger.OpGetLocationInfo, ledger.LocationArgs{LocationID: game.LocationID(id)}, nil
			}),
		},
		&cobra.Command{
			Use:   "locations",
			Short: "List all locations",
			Args:  cobra.NoArgs,
			RunE: run(func([]string) (string, any, error) {
				return ledger.OpListLocations, nil, nil
			}),
		},
		&cobra.Command{
			Use:   "stats",
			Short: "Show game statistics",
			Args:  cobra.NoArgs,
			RunE: run(func([]string) (string, any, error) {
				return ledger.OpGetGameStats, nil, nil
			}),
		},
		newLeaderboardCmd(run),
	)

	return root
}

type runFunc func(build func(args []string) (string, any, error)) func(*cobra.Command, []string) error

func newExploreCmd(run runFunc) *cobra.Command {
	var x, y int64
	cmd := &cobra.Command{
		Use:   "explore <location-id>",
		Short: "Explore a location, spending energy",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(args []string) (string, any, error) {
			id, err := parseID("location id", args[0])
			if err != nil {
				return "", nil, err
			}
			return ledger.OpExploreLocation, ledger.ExploreLocationArgs{LocationID: game.LocationID(id), X: x, Y: y}, nil
		}),
	}
	cmd.Flags().Int64Var(&x, "x", 0, "player x coordinate")
	cmd.Flags().Int64Var(&y, "y", 0, "player y coordinate")
	return cmd
}

func newCreateLocationCmd(run runFunc) *cobra.Command {
	var p game.LocationParams
	var typ string
	cmd := &cobra.Command{
		Use:   "create-location",
		Short: "Create a location (admin)",
		Args:  cobra.NoArgs,
		RunE: run(func([]string) (string, any, error) {
			p.LocationType = game.ParseLocationType(typ)
			if p.LocationType == game.LocationTypeUnknown {
				return "", nil, fmt.Errorf("invalid location type %q", typ)
			}
			return ledger.OpCreateLocation, p, nil
		}),
	}
	cmd.Flags().StringVar(&p.Name, "name", "", "location name")
	cmd.Flags().StringVar(&p.Description, "description", "", "location description")
	cmd.Flags().StringVar(&typ, "type", "forest", "forest, mountain, cave, ruins or ocean")
	cmd.Flags().Int64Var(&p.X, "x", 0, "center x coordinate")
	cmd.Flags().Int64Var(&p.Y, "y", 0, "center y coordinate")
	cmd.Flags().Uint64Var(&p.Radius, "radius", 10, "area radius")
	cmd.Flags().Uint64Var(&p.Difficulty, "difficulty", 1, "difficulty level")
	cmd.Flags().Uint64Var(&p.EntryRequirement, "entry-requirement", 1, "minimum player level")
	cmd.Flags().Uint64Var(&p.DiscoveryBonus, "discovery-bonus", 0, "discovery bonus")
	return cmd
}

func newCreateTreasureCmd(run runFunc) *cobra.Command {
	var p game.TreasureParams
	var typ string
	var loc uint64
	cmd := &cobra.Command{
		Use:   "create-treasure",
		Short: "Create a treasure (admin)",
		Args:  cobra.NoArgs,
		RunE: run(func([]string) (string, any, error) {
			p.TreasureType = game.ParseTreasureType(typ)
			if p.TreasureType == game.TreasureTypeUnknown {
				return "", nil, fmt.Errorf("invalid treasure type %q", typ)
			}
			p.LocationID = game.LocationID(loc)
			return ledger.OpCreateTreasure, p, nil
		}),
	}
	cmd.Flags().StringVar(&p.Name, "name", "", "treasure name")
	cmd.Flags().StringVar(&p.Description, "description", "", "treasure description")
	cmd.Flags().StringVar(&typ, "type", "common", "common, rare, epic or legendary")
	cmd.Flags().Uint64Var(&loc, "location", 0, "location id the treasure is hidden in")
	cmd.Flags().Int64Var(&p.X, "x", 0, "x coordinate")
	cmd.Flags().Int64Var(&p.Y, "y", 0, "y coordinate")
	cmd.Flags().Uint64Var(&p.RarityMultiplier, "multiplier", 1, "reward multiplier")
	cmd.Flags().Uint64Var(&p.RequiredLevel, "required-level", 1, "minimum player level to claim")
	return cmd
}

func newLeaderboardCmd(run runFunc) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the top players by total rewards",
		Args:  cobra.NoArgs,
		RunE: run(func([]string) (string, any, error) {
			return ledger.OpLeaderboard, ledger.LeaderboardArgs{Limit: limit}, nil
		}),
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of players to show, 0 for all")
	return cmd
}

func parseID(what, s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", what, s)
	}
	return id, nil
}

// printValue writes text values wrapped and everything else as indented JSON.
func printValue(w io.Writer, v any) error {
	if s, ok := v.(string); ok {
		_, err := fmt.Fprintln(w, display.Wrap(s))
		return err
	}

	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding value: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
