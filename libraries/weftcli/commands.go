package weftcli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"weft/engine/actors"
	"weft/engine/library"
	"weft/messaging/graphindex"
	"weft/messaging/relayer"
	"weft/state/pathfinder"
	"weft/state/trustgraph"
)

func RootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "weftcli",
		Short: "weftcli moves personal credit through the trust graph",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	limit := &cobra.Command{
		Use:   "limit <issuer> <src> <dest>",
		Short: "print the maximum amount of issuer's unit that src can currently send to dest",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot, err := graphindex.FetchGraph(args[1])
			if err != nil {
				return err
			}
			fmt.Println(trustgraph.SendLimit(snapshot, args[0], args[1], args[2]).String())
			return nil
		},
	}
	rootCmd.AddCommand(limit)

	path := &cobra.Command{
		Use:   "path <from> <to> <value>",
		Short: "find a hop sequence that could move value between two accounts right now",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := library.ParseAmount(args[2])
			if err != nil {
				return err
			}
			snapshot, err := graphindex.FetchGraph(args[0])
			if err != nil {
				return err
			}
			hops, err := pathfinder.FindPath(pathfinder.Request{From: args[0], To: args[1], Value: value}, snapshot)
			if err != nil {
				return err
			}
			for i, hop := range hops {
				fmt.Printf("%d: %s -> %s, %s of %s's unit\n", i+1, hop.Src, hop.Dest, hop.Amount.String(), hop.Issuer)
			}
			return nil
		},
	}
	rootCmd.AddCommand(path)

	send := &cobra.Command{
		Use:   "send <to> <value>",
		Short: "send value from the current wallet through the trust graph and settle it on the ledger",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := library.ParseAmount(args[1])
			if err != nil {
				return err
			}
			return runSend(args[0], value)
		},
	}
	rootCmd.AddCommand(send)

	trust := &cobra.Command{
		Use:   "trust <trustee> <percent>",
		Short: "accept the trustee's unit up to percent of your own supply, 0 revokes the connection",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			percent, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid percent %s: %s", args[1], err.Error())
			}
			txRef, err := relayer.SetTrust(actors.MyWallet(), args[0], percent)
			if err != nil {
				return err
			}
			fmt.Printf("trust connection updated\nledger ref: %s\n", txRef)
			return nil
		},
	}
	rootCmd.AddCommand(trust)

	var username string
	var email string
	var salt int64
	register := &cobra.Command{
		Use:   "register",
		Short: "provision a ledger account for the current wallet",
		RunE: func(cmd *cobra.Command, args []string) error {
			wallet := actors.MyWallet()
			safeAddress, err := relayer.PrepareDeploy(wallet, salt)
			if err != nil {
				return err
			}
			if err = relayer.RegisterUser(wallet, username, email, safeAddress); err != nil {
				return err
			}
			fmt.Printf("registered %s at %s\n", username, safeAddress)
			return nil
		},
	}
	register.Flags().StringVarP(&username, "username", "u", "", "the username to register")
	register.Flags().StringVarP(&email, "email", "e", "", "a notification address, never published on the ledger")
	register.Flags().Int64VarP(&salt, "salt", "s", 0, "salt nonce for the deterministic deploy address")
	rootCmd.AddCommand(register)

	return rootCmd
}
